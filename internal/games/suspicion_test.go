package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoutMultiplier_Brackets(t *testing.T) {
	cases := []struct {
		name      string
		suspicion float64
		want      float64
	}{
		{"calm", 0, 2},
		{"just below first bracket", 0.2499, 2},
		{"first bracket", 0.25, 1.75},
		{"first bracket upper", 0.49, 1.75},
		{"second bracket", 0.6, 1.5},
		{"third bracket floors at 1.1", 0.75, 1.1},
		{"fully suspicious", 1, 1.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, PayoutMultiplier(2, tc.suspicion, 0.25), 1e-12)
		})
	}
}

func TestPayoutMultiplier_FloorAlwaysHolds(t *testing.T) {
	for _, reduction := range []float64{0, 0.01, 0.3, 1, 10} {
		for s := 0.0; s <= 1.0; s += 0.05 {
			assert.GreaterOrEqual(t, PayoutMultiplier(3, s, reduction), 1.1)
		}
	}
}

func TestPayoutMultiplier_LowBaseIsNotRaised(t *testing.T) {
	assert.Equal(t, 1.05, PayoutMultiplier(1.05, 0.9, 0.25))
}

func TestKickoutChance(t *testing.T) {
	assert.Equal(t, 0.0, KickoutChance(0))
	assert.Equal(t, 0.0, KickoutChance(0.7499))
	assert.Equal(t, 0.0, KickoutChance(0.75))
	assert.InDelta(t, 0.4, KickoutChance(0.85), 1e-12)
	assert.Equal(t, 1.0, KickoutChance(1))
}
