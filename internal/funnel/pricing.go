package funnel

// Tier is a creator sponsorship level.
type Tier string

const (
	TierIcon    Tier = "icon"
	TierPartner Tier = "partner"
	TierRising  Tier = "rising"
)

// Tiers lists every tier in display order.
var Tiers = []Tier{TierIcon, TierPartner, TierRising}

// Unit prices per creator, VAT excluded, in won.
const (
	IconPrice    int64 = 300000
	PartnerPrice int64 = 100000
	RisingPrice  int64 = 50000
)

var tierLabels = map[Tier]string{
	TierIcon:    "아이콘",
	TierPartner: "파트너",
	TierRising:  "라이징",
}

func (t Tier) Valid() bool {
	_, ok := tierLabels[t]
	return ok
}

func (t Tier) Label() string {
	return tierLabels[t]
}

// UnitPrice returns the fixed per-creator price of a tier. Unknown tiers cost nothing.
func UnitPrice(t Tier) int64 {
	switch t {
	case TierIcon:
		return IconPrice
	case TierPartner:
		return PartnerPrice
	case TierRising:
		return RisingPrice
	}
	return 0
}

// Crew counts the creators requested per tier. Counts are never negative.
type Crew struct {
	Icon    int `json:"icon"`
	Partner int `json:"partner"`
	Rising  int `json:"rising"`
}

func (c Crew) Count(t Tier) int {
	switch t {
	case TierIcon:
		return c.Icon
	case TierPartner:
		return c.Partner
	case TierRising:
		return c.Rising
	}
	return 0
}

// With returns a copy of c with the count of t replaced.
func (c Crew) With(t Tier, n int) Crew {
	switch t {
	case TierIcon:
		c.Icon = n
	case TierPartner:
		c.Partner = n
	case TierRising:
		c.Rising = n
	}
	return c
}

func (c Crew) Headcount() int {
	return c.Icon + c.Partner + c.Rising
}

func (c Crew) Valid() bool {
	return c.Icon >= 0 && c.Partner >= 0 && c.Rising >= 0
}

// CrewSubtotal is the VAT-exclusive price of a crew.
func CrewSubtotal(c Crew) int64 {
	var total int64
	for _, t := range Tiers {
		total += UnitPrice(t) * int64(c.Count(t))
	}
	return total
}

// CrewTotalWithVAT adds 10% VAT to the subtotal, rounding half up.
func CrewTotalWithVAT(c Crew) int64 {
	return WithVAT(CrewSubtotal(c))
}

// WithVAT computes round(amount * 1.1) in integer arithmetic.
func WithVAT(amount int64) int64 {
	return (amount*11 + 5) / 10
}
