package messaging

import "time"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"
)

// Config contains configuration for the messaging service
type Config struct {
	// Seed seeds message selection, zero seeds from the clock
	Seed int64
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is the error returned by the game service
	Err error

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetBetResultMessageInput contains the parameters for GetBetResultMessage
type GetBetResultMessageInput struct {
	PlayerName string
	GameName   string

	// Bet is the stake, in pence
	Bet float64

	Won bool

	// Paid is the amount credited, in pence
	Paid float64

	// Manipulations is the number of reflips and selects used
	Manipulations int

	KickedOut bool
}

// GetBetResultMessageOutput contains the output for GetBetResultMessage
type GetBetResultMessageOutput struct {
	Title   string
	Message string
}

// GetKickoutMessageInput contains the parameters for GetKickoutMessage
type GetKickoutMessageInput struct {
	GameName string

	// Remaining is how long is left on the kickout
	Remaining time.Duration

	// Buyout is the current price to end the kickout, in pence
	Buyout float64
}

// GetKickoutMessageOutput contains the output for GetKickoutMessage
type GetKickoutMessageOutput struct {
	Message string
}

// GetUpgradeMessageInput contains the parameters for GetUpgradeMessage
type GetUpgradeMessageInput struct {
	Levels     float64
	EntropyCap float64
}

// GetUpgradeMessageOutput contains the output for GetUpgradeMessage
type GetUpgradeMessageOutput struct {
	Message string
}

// GetGameOverMessageInput contains the parameters for GetGameOverMessage
type GetGameOverMessageInput struct {
	PlayerName string

	// Money is what the player has left, in pence
	Money float64
}

// GetGameOverMessageOutput contains the output for GetGameOverMessage
type GetGameOverMessageOutput struct {
	Title   string
	Message string
}
