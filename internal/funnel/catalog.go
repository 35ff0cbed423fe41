package funnel

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Budget is a coarse spend bracket in units of 10,000 won, or BudgetCustom.
type Budget int

const (
	BudgetUnset  Budget = 0
	Budget15     Budget = 15
	Budget30     Budget = 30
	Budget50     Budget = 50
	BudgetCustom Budget = -1
)

// Budgets lists the selectable brackets in display order.
var Budgets = []Budget{Budget50, Budget30, Budget15, BudgetCustom}

func (b Budget) Valid() bool {
	switch b {
	case Budget15, Budget30, Budget50, BudgetCustom:
		return true
	}
	return false
}

func (b Budget) IsCustom() bool {
	return b == BudgetCustom
}

func (b Budget) String() string {
	switch b {
	case BudgetUnset:
		return ""
	case BudgetCustom:
		return "custom"
	}
	return strconv.Itoa(int(b))
}

// Won converts a catalog bracket to won. Custom and unset budgets have no amount.
func (b Budget) Won() int64 {
	if b <= 0 {
		return 0
	}
	return int64(b) * 10000
}

func (b Budget) MarshalJSON() ([]byte, error) {
	switch b {
	case BudgetUnset:
		return []byte("null"), nil
	case BudgetCustom:
		return []byte(`"custom"`), nil
	}
	return []byte(strconv.Itoa(int(b))), nil
}

// UnmarshalJSON accepts 15, "15", "custom" and null.
func (b *Budget) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*b = BudgetUnset
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	if s == "custom" {
		*b = BudgetCustom
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid budget %q", s)
	}
	v := Budget(n)
	if !v.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBudget, n)
	}
	*b = v
	return nil
}

const (
	CustomPlanID   = "custom"
	CustomPlanName = "직접 선택할게요"
)

// Plan is a catalog entry. Price and PriceWithVAT of catalog plans are fixed
// data and are not derived from Crew.
type Plan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Badge        string `json:"badge,omitempty"`
	Composition  string `json:"composition,omitempty"`
	Effect       string `json:"effect,omitempty"`
	Crew         Crew   `json:"crew"`
	Price        int64  `json:"price"`
	PriceWithVAT int64  `json:"priceWithVat"`
}

func (p Plan) IsCustom() bool {
	return p.ID == CustomPlanID
}

// CustomPlan builds the user-composed plan; its prices follow the crew.
func CustomPlan(crew Crew) Plan {
	return Plan{
		ID:           CustomPlanID,
		Name:         CustomPlanName,
		Crew:         crew,
		Price:        CrewSubtotal(crew),
		PriceWithVAT: CrewTotalWithVAT(crew),
	}
}

type budgetInfo struct {
	label    string
	subtitle string
	tier     string
	plans    []Plan
}

var catalog = map[Budget]budgetInfo{
	Budget50: {
		label:    "50만원",
		subtitle: "최대 효과를 원하는 캠핑장",
		tier:     "프리미엄 플러스",
		plans: []Plan{
			{ID: "icon-50", Name: "대박 아이콘 플랜", Badge: "대박", Composition: "아이콘 1 + 파트너 2", Effect: "압도적 노출 (10만+ 유튜버 방문)", Crew: Crew{Icon: 1, Partner: 2}, Price: 500000, PriceWithVAT: 550000},
			{ID: "pro-50", Name: "알찬 프로 플랜", Badge: "알찬", Composition: "파트너 3 + 라이징 4", Effect: "고퀄리티 리뷰 및 상세페이지 활용", Crew: Crew{Partner: 3, Rising: 4}, Price: 500000, PriceWithVAT: 550000},
			{ID: "rising-50", Name: "물량 라이징 플랜", Badge: "물량", Composition: "파트너 2 + 라이징 6", Effect: "SNS/블로그 도배 효과", Crew: Crew{Partner: 2, Rising: 6}, Price: 500000, PriceWithVAT: 550000},
		},
	},
	Budget30: {
		label:    "30만원",
		subtitle: "효율적인 마케팅을 원하는 캠핑장",
		tier:     "프리미엄",
		plans: []Plan{
			{ID: "onepick-30", Name: "원픽 플랜", Badge: "원픽", Composition: "아이콘 1명", Effect: "강력한 임팩트", Crew: Crew{Icon: 1}, Price: 300000, PriceWithVAT: 330000},
			{ID: "best-30", Name: "베스트 플랜", Badge: "베스트", Composition: "파트너 2 + 라이징 2", Effect: "검색 상위 노출 + 다양한 후기", Crew: Crew{Partner: 2, Rising: 2}, Price: 300000, PriceWithVAT: 330000},
			{ID: "spread-30", Name: "확산 플랜", Badge: "확산", Composition: "라이징 6명", Effect: "풍성한 후기 확보", Crew: Crew{Rising: 6}, Price: 300000, PriceWithVAT: 330000},
		},
	},
	Budget15: {
		label:    "15만원",
		subtitle: "합리적인 시작을 원하는 캠핑장",
		tier:     "스탠다드",
		plans: []Plan{
			{ID: "partner-15", Name: "실속 파트너 플랜", Badge: "실속", Composition: "파트너 1 + 라이징 1", Effect: "가성비 고퀄 리뷰", Crew: Crew{Partner: 1, Rising: 1}, Price: 150000, PriceWithVAT: 165000},
			{ID: "starter-15", Name: "입문 스타터 플랜", Badge: "입문", Composition: "라이징 3명", Effect: "오픈 초기 입소문", Crew: Crew{Rising: 3}, Price: 150000, PriceWithVAT: 165000},
		},
	},
}

// PlansForBudget returns the ordered catalog plans of a bracket. Custom and
// unknown budgets have none; callers build a CustomPlan instead.
func PlansForBudget(b Budget) []Plan {
	info, ok := catalog[b]
	if !ok {
		return nil
	}
	out := make([]Plan, len(info.plans))
	copy(out, info.plans)
	return out
}

// FindPlan looks a plan up inside the bracket it belongs to.
func FindPlan(b Budget, id string) (Plan, bool) {
	for _, p := range catalog[b].plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// BudgetTierLabel maps a budget to the tier name used by the record store.
// Custom budgets map to the custom plan name.
func BudgetTierLabel(b Budget) string {
	if b.IsCustom() {
		return CustomPlanName
	}
	return catalog[b].tier
}

// BudgetLabel is the display label of a bracket, e.g. "30만원".
func BudgetLabel(b Budget) string {
	if b.IsCustom() {
		return CustomPlanName
	}
	return catalog[b].label
}

func BudgetSubtitle(b Budget) string {
	if b.IsCustom() {
		return "등급별 인원을 자유롭게 구성하세요"
	}
	return catalog[b].subtitle
}
