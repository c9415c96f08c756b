package models

// PlayerStats aggregates a player's betting history
type PlayerStats struct {
	// PlayerID is the ID of the player
	PlayerID string

	// Bets is the number of bets resolved
	Bets int64

	// Wins is the number of bets won
	Wins int64

	// Kickouts is the number of times the player was kicked out
	Kickouts int64

	// TotalWagered is the sum of all stakes, in pence
	TotalWagered float64

	// TotalPaid is the sum of all payouts, in pence
	TotalPaid float64
}

// Net is the player's total winnings, negative when the house is ahead
func (s *PlayerStats) Net() float64 {
	return s.TotalPaid - s.TotalWagered
}
