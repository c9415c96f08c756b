package bet_ledger

import "github.com/KirkDiggler/improbability/internal/models"

// AddBetRecordInput contains parameters for adding a bet record
type AddBetRecordInput struct {
	Record *models.BetRecord
}

// GetBetRecordsForPlayerInput contains parameters for retrieving bet records for a player
type GetBetRecordsForPlayerInput struct {
	PlayerID string

	// Limit returns only the most recent records when positive
	Limit int
}

// GetBetRecordsForPlayerOutput contains the result of retrieving bet records for a player
type GetBetRecordsForPlayerOutput struct {
	Records []*models.BetRecord
}

// GetPlayerStatsInput contains parameters for retrieving a player's stats
type GetPlayerStatsInput struct {
	PlayerID string
}

// GetPlayerStatsOutput contains a player's stats
type GetPlayerStatsOutput struct {
	Stats *models.PlayerStats
}

// DeletePlayerRecordsInput contains parameters for deleting a player's records
type DeletePlayerRecordsInput struct {
	PlayerID string
}
