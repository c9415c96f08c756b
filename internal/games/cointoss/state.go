package cointoss

// State is the phase of the coin toss betting cycle
type State int

const (
	// StateHold means no bet is active; the bet can be changed or started
	StateHold State = iota

	// StateStartBet is the short anticipation window before the coin lands
	StateStartBet

	// StateInBet means the bet is committed and its timer is running
	StateInBet

	// StateClosingBet pays out, updates tallies and checks for a kickout
	StateClosingBet
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateHold:
		return "hold"
	case StateStartBet:
		return "start_bet"
	case StateInBet:
		return "in_bet"
	case StateClosingBet:
		return "closing_bet"
	default:
		return "unknown"
	}
}
