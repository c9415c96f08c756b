package cointoss

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/improbability/internal/dice"
	"github.com/KirkDiggler/improbability/internal/economy"
	"github.com/KirkDiggler/improbability/internal/games"
)

const (
	// GameName is the display name of the coin toss
	GameName = "Coin Toss"

	// DefaultHeadsChance is a fair coin
	DefaultHeadsChance = 0.5

	// DefaultStartBetDelay is how long the coin spins before the bet commits
	DefaultStartBetDelay = 3 * time.Second

	// DefaultBetDuration is how long a committed bet stays open
	DefaultBetDuration = 30 * time.Second

	// ReflipCost is the entropy spent to flip the coin again
	ReflipCost = 0.5

	// SelectCost is the entropy spent to force heads or tails
	SelectCost = 1.0
)

// Config holds configuration for a coin toss game
type Config struct {
	// Game holds the bet bounds, payout and kickout economics
	Game games.Config

	// HeadsChance is the probability of heads (a win), in (0, 1]
	HeadsChance float64

	// StartBetDelay is the anticipation window, DefaultStartBetDelay when zero
	StartBetDelay time.Duration

	// SkipStartAnimation commits bets immediately instead of waiting StartBetDelay
	SkipStartAnimation bool

	// BetDuration is how long a bet stays open, DefaultBetDuration when zero
	BetDuration time.Duration

	// Entropy computes the entropy granted per bet, FixedEntropy(1) when nil
	Entropy EntropyFunc
}

// DefaultConfig returns the standard coin toss: $1-$100 bets paying 2x
func DefaultConfig() *Config {
	return &Config{
		Game: games.Config{
			Name:             GameName,
			BetMin:           1,
			BetMax:           100,
			BasePayout:       2,
			KickoutLengthMax: 30 * time.Second,
			BuyoutFactor:     0.5,
		},
		HeadsChance: DefaultHeadsChance,
	}
}

// Resolution describes a bet once it has been closed
type Resolution struct {
	Bet           float64
	Won           bool
	Payout        float64
	Paid          float64
	EntropyGained float64
	EntropySpent  float64
	Manipulations int
	Suspicion     float64
	KickedOut     bool
	ClosedAt      time.Time
}

// CoinToss is a bet on a single coin landing heads.
type CoinToss struct {
	HeadsChance float64

	// Result is the current face of the coin, true for heads (a win)
	Result bool

	State State

	// Base is the common economic state of the game
	Base *games.CommonData

	StartBetDelay time.Duration
	BetDuration   time.Duration

	// LastResolution is the most recently closed bet, nil before the first
	LastResolution *Resolution

	entropy       EntropyFunc
	startBetAt    *time.Time
	closingAt     time.Time
	entropyGained float64
	entropySpent  float64
	manipulations int
}

// New creates a coin toss game in the Hold state
func New(cfg *Config) (*CoinToss, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if !(cfg.HeadsChance > 0 && cfg.HeadsChance <= 1) {
		return nil, fmt.Errorf("%w: heads chance %v outside (0, 1]", games.ErrInvalidConfig, cfg.HeadsChance)
	}

	gameCfg := cfg.Game
	if gameCfg.Name == "" {
		gameCfg.Name = GameName
	}
	base, err := games.NewCommonData(&gameCfg)
	if err != nil {
		return nil, err
	}

	delay := cfg.StartBetDelay
	if delay == 0 {
		delay = DefaultStartBetDelay
	}
	if cfg.SkipStartAnimation {
		delay = 0
	}
	duration := cfg.BetDuration
	if duration == 0 {
		duration = DefaultBetDuration
	}
	if delay < 0 || duration < 0 {
		return nil, fmt.Errorf("%w: timers cannot be negative", games.ErrInvalidConfig)
	}

	entropy := cfg.Entropy
	if entropy == nil {
		entropy = FixedEntropy(1)
	}

	return &CoinToss{
		HeadsChance:   cfg.HeadsChance,
		Result:        true,
		State:         StateHold,
		Base:          base,
		StartBetDelay: delay,
		BetDuration:   duration,
		entropy:       entropy,
	}, nil
}

// EntropyGained is the entropy revealed by the current outcome
func (c *CoinToss) EntropyGained() float64 {
	return c.entropy(c)
}

// Flip draws a new outcome according to the heads chance. true is heads.
func (c *CoinToss) Flip(roller dice.Roller) bool {
	return roller.Bool(c.HeadsChance)
}

// Bet commits the initial flip and starts the bet timer at now
func (c *CoinToss) Bet(now time.Time, roller dice.Roller) bool {
	c.Result = c.Flip(roller)
	start := now
	c.Base.BetStart = &start
	return c.Result
}

// BetTimeRemaining returns the seconds left on the bet, 0 when there is none
func (c *CoinToss) BetTimeRemaining(now time.Time) float64 {
	remaining, _ := c.Base.BetTimeRemaining(now, c.BetDuration)
	return remaining
}

// StartBetRemaining returns the seconds left before a starting bet commits
func (c *CoinToss) StartBetRemaining(now time.Time) float64 {
	if c.State != StateStartBet || c.startBetAt == nil {
		return 0
	}
	end := c.startBetAt.Add(c.StartBetDelay)
	if !now.Before(end) {
		return 0
	}
	return end.Sub(now).Seconds()
}

// PlaceBet changes the bet used for the next round
func (c *CoinToss) PlaceBet(amount float64, econ *economy.Economy) error {
	if c.State != StateHold {
		return games.ErrBetInProgress
	}
	if err := c.Base.ValidateBet(amount, econ.Money); err != nil {
		return err
	}
	c.Base.CurrentBet = amount
	return nil
}

// Start begins the anticipation window for a new bet at now
func (c *CoinToss) Start(now time.Time, econ *economy.Economy) error {
	if c.State != StateHold {
		return games.ErrBetInProgress
	}
	if c.updateKickout(now) {
		return games.ErrKickedOut
	}
	if err := c.Base.ValidateBet(c.Base.CurrentBet, econ.Money); err != nil {
		return err
	}

	start := now
	c.startBetAt = &start
	c.State = StateStartBet
	return nil
}

// Reflip pays ReflipCost entropy to flip the coin again
func (c *CoinToss) Reflip(econ *economy.Economy, roller dice.Roller) error {
	if c.State != StateInBet {
		return games.ErrNoBetInProgress
	}
	if err := econ.SpendEntropy(ReflipCost); err != nil {
		return err
	}

	c.Result = c.Flip(roller)
	c.manipulated(ReflipCost, c.Base.Policy.Reflip)
	return nil
}

// Select pays SelectCost entropy to force the coin to heads or tails
func (c *CoinToss) Select(heads bool, econ *economy.Economy) error {
	if c.State != StateInBet {
		return games.ErrNoBetInProgress
	}
	if err := econ.SpendEntropy(SelectCost); err != nil {
		return err
	}

	c.Result = heads
	c.manipulated(SelectCost, c.Base.Policy.Select)
	return nil
}

// EndBet closes the active bet early at now. The stake is not refunded.
func (c *CoinToss) EndBet(now time.Time, econ *economy.Economy, roller dice.Roller) (*Resolution, error) {
	if c.State != StateInBet {
		return nil, games.ErrNoBetInProgress
	}
	c.closingAt = now
	c.State = StateClosingBet
	return c.Advance(now, econ, roller)
}

// Buyout pays the current buyout price at now to lift a kickout early.
// A kickout that has already run out is resolved by expiry instead.
func (c *CoinToss) Buyout(now time.Time, econ *economy.Economy) (float64, error) {
	if !c.updateKickout(now) {
		return 0, games.ErrNotKickedOut
	}

	price := c.Base.CurrentKickoutBuyout
	if !econ.CanAfford(price) {
		return 0, games.ErrInsufficientFunds
	}

	econ.Debit(price)
	c.Base.EndKickout()
	return price, nil
}

// CanQuit reports whether the player may leave the game
func (c *CoinToss) CanQuit() error {
	if c.State != StateHold {
		return games.ErrBetInProgress
	}
	return nil
}

// Advance moves the game forward to now.
//
// Transitions are level-triggered against the stored timestamps, so polling
// at any cadence converges on the same state. Returns the bet closed during
// this call, if any.
func (c *CoinToss) Advance(now time.Time, econ *economy.Economy, roller dice.Roller) (*Resolution, error) {
	var resolved *Resolution

	for {
		switch c.State {
		case StateHold:
			c.updateKickout(now)
			return resolved, nil

		case StateStartBet:
			commitAt := c.startBetAt.Add(c.StartBetDelay)
			if now.Before(commitAt) {
				return resolved, nil
			}
			if err := c.commit(commitAt, econ, roller); err != nil {
				return resolved, err
			}

		case StateInBet:
			end, _ := c.Base.BetEndTime(c.BetDuration)
			if now.Before(end) {
				return resolved, nil
			}
			c.closingAt = end
			c.State = StateClosingBet

		case StateClosingBet:
			resolved = c.close(econ, roller)

		default:
			return resolved, fmt.Errorf("unknown coin toss state %d", c.State)
		}
	}
}

// commit moves StartBet into InBet: takes the stake, flips, starts the timer
// and grants entropy for the revealed outcome.
func (c *CoinToss) commit(at time.Time, econ *economy.Economy, roller dice.Roller) error {
	c.startBetAt = nil
	if err := c.Base.ValidateBet(c.Base.CurrentBet, econ.Money); err != nil {
		c.State = StateHold
		return err
	}

	econ.Debit(c.Base.CurrentBet)
	c.Bet(at, roller)

	c.entropyGained = c.EntropyGained()
	econ.AddEntropy(c.entropyGained)
	c.State = StateInBet
	return nil
}

// close settles the bet and returns to Hold
func (c *CoinToss) close(econ *economy.Economy, roller dice.Roller) *Resolution {
	bet := c.Base.CurrentBet
	payout := c.Base.EffectivePayout()

	var paid float64
	if c.Result {
		paid = payout * bet
		econ.Credit(paid)
	}
	c.Base.RecordBet(bet, payout, c.HeadsChance, c.Result)

	kickedOut := false
	if chance := c.Base.KickoutChance(); chance > 0 && roller.Bool(chance) {
		c.Base.Kickout(c.closingAt)
		kickedOut = true
	}

	res := &Resolution{
		Bet:           bet,
		Won:           c.Result,
		Payout:        payout,
		Paid:          paid,
		EntropyGained: c.entropyGained,
		EntropySpent:  c.entropySpent,
		Manipulations: c.manipulations,
		Suspicion:     c.Base.Suspicion,
		KickedOut:     kickedOut,
		ClosedAt:      c.closingAt,
	}

	c.Base.BetStart = nil
	c.entropyGained = 0
	c.entropySpent = 0
	c.manipulations = 0
	c.LastResolution = res
	c.State = StateHold

	return res
}

// updateKickout refreshes the lockout and wipes the tallies once it has run out
func (c *CoinToss) updateKickout(now time.Time) bool {
	wasKickedOut := c.Base.IsKickedOut()
	stillKickedOut := c.Base.KickoutUpdate(now)
	if wasKickedOut && !stillKickedOut {
		c.Base.ResetKickout()
	}
	return stillKickedOut
}

func (c *CoinToss) manipulated(cost, suspicion float64) {
	c.entropySpent += cost
	c.manipulations++
	c.Base.RaiseSuspicion(suspicion)
}
