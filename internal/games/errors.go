package games

// GameError is a custom error type for minigame validation errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrBetOutOfBounds    GameError = "bet must be within bounds"
	ErrInsufficientFunds GameError = "insufficient funds"
	ErrKickedOut         GameError = "kicked out of this game"
	ErrNotKickedOut      GameError = "not kicked out of this game"
	ErrBetInProgress     GameError = "a bet is in progress"
	ErrNoBetInProgress   GameError = "no bet in progress"
	ErrInvalidConfig     GameError = "invalid game configuration"
)
