package models

import (
	"time"
)

// BetRecord records a single resolved bet in a minigame
type BetRecord struct {
	// ID is the unique identifier for the bet record
	ID string

	// PlayerID is the ID of the player who placed the bet
	PlayerID string

	// GameName is the name of the minigame the bet was placed in
	GameName string

	// Bet is the amount staked, in pence
	Bet float64

	// Won indicates if the coin landed in the player's favour
	Won bool

	// Payout is the multiplier applied to a winning bet
	Payout float64

	// Paid is the amount credited back to the player
	Paid float64

	// EntropySpent is the entropy spent manipulating the bet
	EntropySpent float64

	// Manipulations is the number of reflips and selects used
	Manipulations int

	// Suspicion is the suspicion level when the bet closed
	Suspicion float64

	// KickedOut indicates if closing the bet got the player kicked out
	KickedOut bool

	// Timestamp is when the bet closed
	Timestamp time.Time
}

// Net is what the bet gained or lost the player
func (r *BetRecord) Net() float64 {
	return r.Paid - r.Bet
}
