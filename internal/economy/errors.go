package economy

// EconomyError is a custom error type for economy validation errors
type EconomyError string

// Error implements the error interface
func (e EconomyError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInsufficientEntropy EconomyError = "insufficient entropy"
	ErrInvalidInvestment   EconomyError = "investment must be positive"
	ErrInvestmentTooLarge  EconomyError = "cannot invest that much, money must remain for betting"
	ErrInvalidPlayerName   EconomyError = "player name cannot be empty or contain commas or newlines"
	ErrMalformedRecord     EconomyError = "malformed save record"
)
