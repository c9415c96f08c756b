package game

// GameError is a custom error type for session errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  GameError = "no game in progress"
	ErrNotInMinigame    GameError = "not playing a minigame"
	ErrInMinigame       GameError = "leave the current minigame first"
	ErrGameOver         GameError = "not enough money left to bet"
	ErrInvalidCommand   GameError = "command not recognized"
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilSaveRepo      GameError = "save repository cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
	ErrEmptyPlayerID    GameError = "player ID cannot be empty"
	ErrNoBetLedger      GameError = "bet history is not available"
)
