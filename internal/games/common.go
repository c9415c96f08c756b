package games

import (
	"fmt"
	"math"
	"time"
)

// buyoutGranularity is the step buyout prices drop in while the kickout runs out
const buyoutGranularity = 5 * time.Second

// Config describes the economics of one minigame
type Config struct {
	// Name of the game
	Name string

	// BetMin is the smallest bet accepted, must be >= 0
	BetMin float64

	// BetMax is the largest bet accepted, must be > BetMin
	BetMax float64

	// BasePayout multiplies a winning bet before suspicion is applied
	BasePayout float64

	// KickoutLengthMax is how long a kickout lasts
	KickoutLengthMax time.Duration

	// BuyoutFactor scales the price of ending a kickout early
	BuyoutFactor float64

	// PayoutReduction is the bracket constant X, defaults to DefaultPayoutReduction.
	// Zero turns the suspicion brackets off.
	PayoutReduction *float64

	// Suspicion is the rise per manipulation, defaults to DefaultSuspicionPolicy
	Suspicion *SuspicionPolicy
}

// CommonData is the economic state every minigame carries.
//
// Exactly one instance belongs to each minigame. KickoutStartTime being set
// means the player is locked out of the game.
type CommonData struct {
	Name       string
	BetMin     float64
	BetMax     float64
	BasePayout float64

	// CurrentBet is the bet that will be (or has been) committed
	CurrentBet float64

	// BetStart is when the active bet began, nil when no bet is active
	BetStart *time.Time

	// Running tallies since the last kickout reset
	ExpectedWins  float64
	RealWins      float64
	ExpectedGains float64
	RealGains     float64

	// Suspicion is the house's awareness of manipulation, within [0, 1]
	Suspicion float64

	KickoutLengthMax     time.Duration
	KickoutRemaining     time.Duration
	KickoutStartTime     *time.Time
	BuyoutFactor         float64
	CurrentKickoutBuyout float64

	PayoutReduction float64
	Policy          SuspicionPolicy
}

// NewCommonData validates cfg and creates the state for a fresh game session
func NewCommonData(cfg *Config) (*CommonData, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}
	switch {
	case cfg.BetMin < 0:
		return nil, fmt.Errorf("%w: bet min %v is negative", ErrInvalidConfig, cfg.BetMin)
	case !(cfg.BetMax > cfg.BetMin):
		return nil, fmt.Errorf("%w: bet max %v must exceed bet min %v", ErrInvalidConfig, cfg.BetMax, cfg.BetMin)
	case !(cfg.BasePayout > 0):
		return nil, fmt.Errorf("%w: base payout %v must be positive", ErrInvalidConfig, cfg.BasePayout)
	case cfg.KickoutLengthMax <= 0:
		return nil, fmt.Errorf("%w: kickout length must be positive", ErrInvalidConfig)
	case cfg.BuyoutFactor < 0:
		return nil, fmt.Errorf("%w: buyout factor %v is negative", ErrInvalidConfig, cfg.BuyoutFactor)
	case cfg.PayoutReduction != nil && *cfg.PayoutReduction < 0:
		return nil, fmt.Errorf("%w: payout reduction %v is negative", ErrInvalidConfig, *cfg.PayoutReduction)
	}

	reduction := DefaultPayoutReduction
	if cfg.PayoutReduction != nil {
		reduction = *cfg.PayoutReduction
	}
	policy := DefaultSuspicionPolicy()
	if cfg.Suspicion != nil {
		policy = *cfg.Suspicion
	}

	return &CommonData{
		Name:             cfg.Name,
		BetMin:           cfg.BetMin,
		BetMax:           cfg.BetMax,
		BasePayout:       cfg.BasePayout,
		CurrentBet:       cfg.BetMin,
		KickoutLengthMax: cfg.KickoutLengthMax,
		BuyoutFactor:     cfg.BuyoutFactor,
		PayoutReduction:  reduction,
		Policy:           policy,
	}, nil
}

// ValidateBet checks a bet against the game bounds and the money available
func (d *CommonData) ValidateBet(amount, money float64) error {
	if math.IsNaN(amount) || amount < d.BetMin || amount > d.BetMax {
		return ErrBetOutOfBounds
	}
	if amount > money {
		return ErrInsufficientFunds
	}
	return nil
}

// EffectivePayout is the base payout after suspicion brackets are applied
func (d *CommonData) EffectivePayout() float64 {
	return PayoutMultiplier(d.BasePayout, d.Suspicion, d.PayoutReduction)
}

// KickoutChance is the probability the next closed bet triggers a kickout
func (d *CommonData) KickoutChance() float64 {
	return KickoutChance(d.Suspicion)
}

// RaiseSuspicion adds delta to suspicion, clamped to [0, 1]
func (d *CommonData) RaiseSuspicion(delta float64) {
	d.Suspicion = clampUnit(d.Suspicion + delta)
}

// RecordBet updates the expected and real tallies for a closed bet.
// chance is the natural probability of winning, payout the multiplier paid.
func (d *CommonData) RecordBet(bet, payout, chance float64, won bool) {
	d.ExpectedWins += chance
	d.ExpectedGains += bet*payout*chance - bet

	d.RealGains -= bet
	if won {
		d.RealWins++
		d.RealGains += bet * payout
	}
}

// IsKickedOut reports whether the player is locked out of the game
func (d *CommonData) IsKickedOut() bool {
	return d.KickoutStartTime != nil
}

// Kickout locks the player out starting at now
func (d *CommonData) Kickout(now time.Time) {
	start := now
	d.KickoutStartTime = &start
	d.KickoutRemaining = d.KickoutLengthMax
	d.CurrentKickoutBuyout = d.CalculateBuyout(now)
}

// KickoutEndTime returns when the current kickout ends, false if not kicked out
func (d *CommonData) KickoutEndTime() (time.Time, bool) {
	if d.KickoutStartTime == nil {
		return time.Time{}, false
	}
	return d.KickoutStartTime.Add(d.KickoutLengthMax), true
}

// KickoutTimeRemaining returns how long is left on the kickout at now
func (d *CommonData) KickoutTimeRemaining(now time.Time) time.Duration {
	end, ok := d.KickoutEndTime()
	if !ok || !now.Before(end) {
		return 0
	}
	return end.Sub(now)
}

// KickoutUpdate refreshes the kickout state at now and reports whether the
// player is still kicked out.
//
// An expired kickout is cleared (start time, remaining time and buyout), but
// the tallies are left alone; see ResetKickout. Call it once per update tick.
func (d *CommonData) KickoutUpdate(now time.Time) bool {
	end, ok := d.KickoutEndTime()
	if !ok {
		return false
	}

	if !now.Before(end) {
		d.KickoutStartTime = nil
		d.KickoutRemaining = 0
		d.CurrentKickoutBuyout = 0
		return false
	}

	d.KickoutRemaining = end.Sub(now)
	d.CurrentKickoutBuyout = d.CalculateBuyout(now)
	return true
}

// ResetKickout gives the player a clean slate once a kickout is resolved
func (d *CommonData) ResetKickout() {
	d.Suspicion = 0
	d.ExpectedGains = 0
	d.RealGains = 0
	d.ExpectedWins = 0
	d.RealWins = 0
}

// EndKickout lifts a kickout early, after its buyout has been paid
func (d *CommonData) EndKickout() {
	d.KickoutStartTime = nil
	d.KickoutRemaining = 0
	d.CurrentKickoutBuyout = 0
	d.ResetKickout()
}

// CalculateBuyout prices ending the kickout at now.
//
// The maximum is twice the gains above expectation scaled by the buyout
// factor; it falls with the share of kickout time left, rounded up to whole
// 5 second steps. Never negative.
func (d *CommonData) CalculateBuyout(now time.Time) float64 {
	buyoutMax := d.BuyoutFactor * (d.RealGains - d.ExpectedGains) * 2
	if buyoutMax <= 0 {
		return 0
	}

	remaining := d.KickoutTimeRemaining(now)
	steps := math.Ceil(remaining.Seconds() / buyoutGranularity.Seconds())
	timeFactor := math.Min(steps*buyoutGranularity.Seconds()/d.KickoutLengthMax.Seconds(), 1)

	return buyoutMax * timeFactor
}

// BetEndTime returns when the active bet times out, false with no active bet
func (d *CommonData) BetEndTime(betDuration time.Duration) (time.Time, bool) {
	if d.BetStart == nil {
		return time.Time{}, false
	}
	return d.BetStart.Add(betDuration), true
}

// BetTimeRemaining returns the seconds left on the active bet at now.
// An expired bet that has not been closed yet reports 0; no active bet reports false.
func (d *CommonData) BetTimeRemaining(now time.Time, betDuration time.Duration) (float64, bool) {
	end, ok := d.BetEndTime(betDuration)
	if !ok {
		return 0, false
	}
	if !now.Before(end) {
		return 0, true
	}
	return end.Sub(now).Seconds(), true
}
