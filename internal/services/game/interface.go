package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/improbability/internal/services/game Service

import "context"

// Service defines the interface for playing the machine
type Service interface {
	// NewGame starts a fresh economy for a player, overwriting any old save
	NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error)

	// LoadGame resumes a player's saved economy
	LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error)

	// SaveGame writes the player's economy to the save repository
	SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error)

	// UpgradeMachine spends money on machine levels to raise the entropy cap
	UpgradeMachine(ctx context.Context, input *UpgradeMachineInput) (*UpgradeMachineOutput, error)

	// EnterCoinToss moves the player to the coin toss table
	EnterCoinToss(ctx context.Context, input *EnterCoinTossInput) (*EnterCoinTossOutput, error)

	// HandleCommand applies a command token to the active minigame
	HandleCommand(ctx context.Context, input *HandleCommandInput) (*HandleCommandOutput, error)

	// GetState advances the player's session to now and returns it
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)

	// PayBuyout pays to end a kickout early
	PayBuyout(ctx context.Context, input *PayBuyoutInput) (*PayBuyoutOutput, error)

	// GetStats returns the player's betting history from the bet ledger
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)

	// DeleteGame removes the player's save and bet history, ending any session
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// EndSession closes the player's session, optionally saving first
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)
}
