package save

import "github.com/KirkDiggler/improbability/internal/economy"

// SaveEconomyInput contains parameters for saving a player's economy
type SaveEconomyInput struct {
	PlayerID string
	Economy  *economy.Economy
}

// LoadEconomyInput contains parameters for loading a player's economy
type LoadEconomyInput struct {
	PlayerID string
}

// DeleteSaveInput contains parameters for deleting a player's save
type DeleteSaveInput struct {
	PlayerID string
}
