package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CommandType identifies a player action in a minigame
type CommandType string

const (
	CommandPlaceBet    CommandType = "place_bet"
	CommandStart       CommandType = "start"
	CommandFlip        CommandType = "flip"
	CommandSelectHeads CommandType = "select_heads"
	CommandSelectTails CommandType = "select_tails"
	CommandEndBet      CommandType = "end_bet"
	CommandBuyout      CommandType = "buyout"
	CommandQuit        CommandType = "quit"
	CommandWait        CommandType = "wait"
)

// Command is a parsed command token
type Command struct {
	Type CommandType

	// Amount is the bet for CommandPlaceBet, in whole pence
	Amount float64
}

var keywordCommands = map[string]CommandType{
	"start":        CommandStart,
	"flip":         CommandFlip,
	"select heads": CommandSelectHeads,
	"select tails": CommandSelectTails,
	"end bet":      CommandEndBet,
	"buyout":       CommandBuyout,
	"quit":         CommandQuit,
	"wait":         CommandWait,
}

// ParseCommand normalises a raw token. A bare number is a bet; bets are
// rounded down to whole pence.
func ParseCommand(raw string) (*Command, error) {
	token := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if token == "" {
		return nil, ErrInvalidCommand
	}

	if cmdType, ok := keywordCommands[token]; ok {
		return &Command{Type: cmdType}, nil
	}

	amountText, isPlaceBet := strings.CutPrefix(token, "place bet ")
	if !isPlaceBet {
		amountText = token
	}

	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommand, raw)
	}

	return &Command{
		Type:   CommandPlaceBet,
		Amount: math.Floor(amount),
	}, nil
}
