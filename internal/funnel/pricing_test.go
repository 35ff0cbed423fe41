package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitPrice(t *testing.T) {
	assert.Equal(t, int64(300000), UnitPrice(TierIcon))
	assert.Equal(t, int64(100000), UnitPrice(TierPartner))
	assert.Equal(t, int64(50000), UnitPrice(TierRising))
	assert.Zero(t, UnitPrice(Tier("gold")))
}

func TestCrewTotals(t *testing.T) {
	tests := []struct {
		name     string
		crew     Crew
		subtotal int64
		total    int64
	}{
		{"empty crew", Crew{}, 0, 0},
		{"one rising", Crew{Rising: 1}, 50000, 55000},
		{"one of each", Crew{Icon: 1, Partner: 1, Rising: 1}, 450000, 495000},
		{"starter", Crew{Rising: 3}, 150000, 165000},
		{"large", Crew{Icon: 3, Partner: 7, Rising: 11}, 2150000, 2365000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.subtotal, CrewSubtotal(tt.crew))
			assert.Equal(t, tt.total, CrewTotalWithVAT(tt.crew))
		})
	}
}

func TestCrewTotalWithVAT_MatchesRoundedTenPercent(t *testing.T) {
	for icon := 0; icon <= 4; icon++ {
		for partner := 0; partner <= 4; partner++ {
			for rising := 0; rising <= 4; rising++ {
				c := Crew{Icon: icon, Partner: partner, Rising: rising}
				sub := CrewSubtotal(c)
				want := int64(float64(sub)*1.1 + 0.5)
				assert.Equal(t, want, CrewTotalWithVAT(c), "crew %+v", c)
				assert.GreaterOrEqual(t, CrewTotalWithVAT(c), sub)
				assert.Equal(t, c.Headcount() == 0, CrewTotalWithVAT(c) == 0)
			}
		}
	}
}

func TestWithVAT_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, int64(11), WithVAT(10))
	assert.Equal(t, int64(17), WithVAT(15)) // 16.5
	assert.Equal(t, int64(1), WithVAT(1))   // 1.1
	assert.Equal(t, int64(0), WithVAT(0))
}

func TestCrew_With(t *testing.T) {
	c := Crew{}.With(TierPartner, 2).With(TierIcon, 1)
	assert.Equal(t, Crew{Icon: 1, Partner: 2}, c)
	assert.Equal(t, 2, c.Count(TierPartner))
	assert.Equal(t, 3, c.Headcount())
	assert.True(t, c.Valid())
}
