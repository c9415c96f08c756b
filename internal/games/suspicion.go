package games

import "math"

const (
	// PayoutFloor is the lowest multiplier suspicion can push a payout down to
	PayoutFloor = 1.1

	// DefaultPayoutReduction is the bracket reduction constant X
	DefaultPayoutReduction = 0.25

	lowBracket      = 0.25
	midBracket      = 0.5
	highBracket     = 0.75
	kickoutPerPoint = 4.0
)

// SuspicionPolicy describes how much suspicion each manipulation raises.
type SuspicionPolicy struct {
	// Reflip is added every time the player pays to flip again
	Reflip float64 `yaml:"reflip"`

	// Select is added every time the player forces an outcome
	Select float64 `yaml:"select"`
}

// DefaultSuspicionPolicy is used when a game is configured without one
func DefaultSuspicionPolicy() SuspicionPolicy {
	return SuspicionPolicy{
		Reflip: 0.02,
		Select: 0.05,
	}
}

// PayoutMultiplier applies the suspicion brackets to a base payout.
//
//	[0, 0.25)    no reduction
//	[0.25, 0.5)  reduced by X
//	[0.5, 0.75)  reduced by 2X
//	[0.75, 1]    reduced by 4X
//
// Reduced payouts never drop below 1.1, and a base payout already under 1.1
// is never raised.
func PayoutMultiplier(basePayout, suspicion, reduction float64) float64 {
	var steps float64
	switch {
	case suspicion < lowBracket:
		return basePayout
	case suspicion < midBracket:
		steps = 1
	case suspicion < highBracket:
		steps = 2
	default:
		steps = 4
	}

	floor := math.Min(basePayout, PayoutFloor)
	return math.Max(basePayout-steps*reduction, floor)
}

// KickoutChance is the probability a single bet gets the player kicked out.
func KickoutChance(suspicion float64) float64 {
	if suspicion < highBracket {
		return 0
	}
	return math.Min((suspicion-highBracket)*kickoutPerPoint, 1)
}

// clampUnit keeps suspicion inside [0, 1]
func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
