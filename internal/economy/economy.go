package economy

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// BaseEntropyCap is the entropy cap of a level 0 machine
	BaseEntropyCap = 100.0

	// StartingMoney is the money a new game starts with, in pence (£1)
	StartingMoney = 240.0

	// StartingEntropy is the entropy a new game starts with
	StartingEntropy = 100.0

	// LevelCost is the money needed to buy one machine level
	LevelCost = 2.0
)

// Economy is the player's economic state shared by every minigame.
//
// It is owned by a session and passed by pointer into whichever minigame is
// active; nothing in this package holds on to it.
type Economy struct {
	// PlayerName is the name the save belongs to
	PlayerName string

	// Money is measured in pence
	Money float64

	// Entropy is measured in bits and is always within [0, EntropyCap()]
	Entropy float64

	// MachineLevel raises the entropy cap one bit per level
	MachineLevel float64

	// GameLength is the total time played on this save
	GameLength time.Duration
}

// New creates the economy for a fresh game
func New(playerName string) (*Economy, error) {
	if err := ValidatePlayerName(playerName); err != nil {
		return nil, err
	}

	return &Economy{
		PlayerName: playerName,
		Money:      StartingMoney,
		Entropy:    StartingEntropy,
	}, nil
}

// ValidatePlayerName checks the name can be stored in a save record
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, ",\r\n") {
		return ErrInvalidPlayerName
	}
	return nil
}

// EntropyCap returns the maximum entropy the machine can store
func (e *Economy) EntropyCap() float64 {
	return BaseEntropyCap + e.MachineLevel
}

// AddEntropy adds gained entropy, clamped to the entropy cap.
// Callers must not pass negative values.
func (e *Economy) AddEntropy(gained float64) {
	e.Entropy = math.Min(e.Entropy+gained, e.EntropyCap())
	e.mustBeValid()
}

// SpendEntropy removes cost from the entropy balance, or rejects the spend
// leaving the balance untouched.
func (e *Economy) SpendEntropy(cost float64) error {
	if cost > e.Entropy {
		return ErrInsufficientEntropy
	}
	e.Entropy -= cost
	e.mustBeValid()
	return nil
}

// CanAfford reports whether amount can be paid from the current money
func (e *Economy) CanAfford(amount float64) bool {
	return amount <= e.Money
}

// Debit takes a bet from the player. Bounds are the caller's responsibility.
func (e *Economy) Debit(amount float64) {
	e.Money -= amount
	e.mustBeValid()
}

// Credit pays amount to the player
func (e *Economy) Credit(amount float64) {
	e.Money += amount
	e.mustBeValid()
}

// IsBroke reports whether the player can no longer cover a game's minimum bet
func (e *Economy) IsBroke(betMin float64) bool {
	return e.Money < betMin
}

// UpgradeMachine converts money into machine levels at LevelCost per level.
// At least reserve money must remain afterwards so the player can keep betting.
// Returns the number of levels bought.
func (e *Economy) UpgradeMachine(invest, reserve float64) (float64, error) {
	if invest <= 0 || math.IsNaN(invest) || math.IsInf(invest, 0) {
		return 0, ErrInvalidInvestment
	}
	if invest+reserve > e.Money {
		return 0, ErrInvestmentTooLarge
	}

	levels := math.Floor(invest / LevelCost)
	e.Money -= levels * LevelCost
	e.MachineLevel += levels
	e.mustBeValid()

	return levels, nil
}

// mustBeValid panics when validation upstream has let an invariant break.
func (e *Economy) mustBeValid() {
	switch {
	case e.Money < 0:
		panic(fmt.Sprintf("economy invariant violated: money %v is negative", e.Money))
	case e.Entropy < 0:
		panic(fmt.Sprintf("economy invariant violated: entropy %v is negative", e.Entropy))
	case e.Entropy > e.EntropyCap():
		panic(fmt.Sprintf("economy invariant violated: entropy %v exceeds cap %v", e.Entropy, e.EntropyCap()))
	case e.MachineLevel < 0:
		panic(fmt.Sprintf("economy invariant violated: machine level %v is negative", e.MachineLevel))
	}
}
