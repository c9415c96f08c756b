package save

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/improbability/internal/repositories/save Repository

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/improbability/internal/economy"
)

// ErrSaveNotFound is returned when a player has no save
var ErrSaveNotFound = errors.New("save not found")

// Repository defines the interface for saved game persistence
type Repository interface {
	// SaveEconomy writes the player's economy, replacing any previous save
	SaveEconomy(ctx context.Context, input *SaveEconomyInput) error

	// LoadEconomy reads a player's saved economy
	LoadEconomy(ctx context.Context, input *LoadEconomyInput) (*economy.Economy, error)

	// DeleteSave removes a player's save
	DeleteSave(ctx context.Context, input *DeleteSaveInput) error
}

// validatePlayerID rejects ids that cannot be used as a key or file name
func validatePlayerID(playerID string) error {
	if playerID == "" {
		return errors.New("player ID cannot be empty")
	}
	if strings.ContainsAny(playerID, `/\`) || playerID == "." || playerID == ".." {
		return errors.New("player ID contains invalid characters")
	}
	return nil
}
