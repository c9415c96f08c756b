package bet_ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/improbability/internal/repositories/bet_ledger Repository

import (
	"context"
)

// Repository defines the interface for bet ledger persistence
type Repository interface {
	// AddBetRecord adds a resolved bet to the ledger and updates the player's stats
	AddBetRecord(ctx context.Context, input *AddBetRecordInput) error

	// GetBetRecordsForPlayer retrieves a player's bets, oldest first
	GetBetRecordsForPlayer(ctx context.Context, input *GetBetRecordsForPlayerInput) (*GetBetRecordsForPlayerOutput, error)

	// GetPlayerStats retrieves the aggregated stats for a player
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error)

	// DeletePlayerRecords deletes every bet record and the stats for a player
	DeletePlayerRecords(ctx context.Context, input *DeletePlayerRecordsInput) error
}
