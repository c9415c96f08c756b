package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetErrorMessage returns a player-facing message for a rejected action
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)

	// GetBetResultMessage returns a message announcing a closed bet
	GetBetResultMessage(ctx context.Context, input *GetBetResultMessageInput) (*GetBetResultMessageOutput, error)

	// GetKickoutMessage returns a message for a player locked out of a game
	GetKickoutMessage(ctx context.Context, input *GetKickoutMessageInput) (*GetKickoutMessageOutput, error)

	// GetUpgradeMessage returns a message for a machine upgrade
	GetUpgradeMessage(ctx context.Context, input *GetUpgradeMessageInput) (*GetUpgradeMessageOutput, error)

	// GetGameOverMessage returns a message for a player who can no longer cover a bet
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)
}
