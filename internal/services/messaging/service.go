package messaging

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/improbability/internal/economy"
	"github.com/KirkDiggler/improbability/internal/games"
	saveRepo "github.com/KirkDiggler/improbability/internal/repositories/save"
	"github.com/KirkDiggler/improbability/internal/services/game"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages, guarded by mu
	mu   sync.Mutex
	rand *rand.Rand
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// errorMessages maps each known error to a title and its candidate messages
var errorMessages = []struct {
	err      error
	title    string
	messages []string
}{
	{
		err:   games.ErrBetOutOfBounds,
		title: "Bet Refused",
		messages: []string{
			"Bet must be within bounds!",
			"The table doesn't take bets of that size.",
		},
	},
	{
		err:   games.ErrInsufficientFunds,
		title: "Not Enough Money",
		messages: []string{
			"You can't cover that.",
			"Your purse is lighter than your ambition.",
		},
	},
	{
		err:   economy.ErrInsufficientEntropy,
		title: "Out of Entropy",
		messages: []string{
			"The machine hasn't stored enough entropy for that.",
			"Not enough improbability left in the tank.",
		},
	},
	{
		err:   games.ErrKickedOut,
		title: "Kicked Out",
		messages: []string{
			"The house has asked you to step away from the table.",
			"Security is watching. Wait it out or buy your way back in.",
		},
	},
	{
		err:   games.ErrNotKickedOut,
		title: "Nothing to Buy Out",
		messages: []string{
			"You're not kicked out.",
		},
	},
	{
		err:   games.ErrBetInProgress,
		title: "Bet in Progress",
		messages: []string{
			"Finish the current bet first.",
			"The coin is still in play.",
		},
	},
	{
		err:   games.ErrNoBetInProgress,
		title: "No Bet",
		messages: []string{
			"There's no bet running. Start one first.",
		},
	},
	{
		err:   economy.ErrInvalidInvestment,
		title: "Upgrade Refused",
		messages: []string{
			"Invest a positive amount.",
		},
	},
	{
		err:   economy.ErrInvestmentTooLarge,
		title: "Upgrade Refused",
		messages: []string{
			"Cannot invest that much, you must keep enough to place a bet.",
		},
	},
	{
		err:   economy.ErrInvalidPlayerName,
		title: "Invalid Name",
		messages: []string{
			"Names can't be blank or contain commas.",
		},
	},
	{
		err:   saveRepo.ErrSaveNotFound,
		title: "No Save",
		messages: []string{
			"There's no save to load. Start a new game.",
		},
	},
	{
		err:   economy.ErrMalformedRecord,
		title: "Corrupt Save",
		messages: []string{
			"That save can't be read.",
		},
	},
	{
		err:   game.ErrSessionNotFound,
		title: "No Game",
		messages: []string{
			"Start a new game or load a save first.",
		},
	},
	{
		err:   game.ErrNotInMinigame,
		title: "Not at a Table",
		messages: []string{
			"Pick a game first.",
		},
	},
	{
		err:   game.ErrInMinigame,
		title: "Still at the Table",
		messages: []string{
			"Leave the table first.",
		},
	},
	{
		err:   game.ErrGameOver,
		title: "Broke",
		messages: []string{
			"You can't afford the minimum bet any more.",
		},
	},
	{
		err:   game.ErrNoBetLedger,
		title: "No History",
		messages: []string{
			"This machine isn't keeping a ledger.",
		},
	},
	{
		err:   game.ErrInvalidCommand,
		title: "Huh?",
		messages: []string{
			"Invalid Command.",
			"The machine doesn't understand that.",
		},
	},
}

// GetErrorMessage returns a player-facing message for a rejected action
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneNeutral
	}

	for _, known := range errorMessages {
		if errors.Is(input.Err, known.err) {
			return &GetErrorMessageOutput{
				Title:   known.title,
				Message: s.pick(known.messages),
				Tone:    tone,
			}, nil
		}
	}

	return &GetErrorMessageOutput{
		Title:   "Something Went Wrong",
		Message: "The machine sputtered. Try again.",
		Tone:    tone,
	}, nil
}

// GetBetResultMessage returns a message announcing a closed bet
func (s *service) GetBetResultMessage(ctx context.Context, input *GetBetResultMessageInput) (*GetBetResultMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var title, message string
	if input.Won {
		title = "Heads!"
		message = fmt.Sprintf("%s wins %s on a %s bet.", input.PlayerName, FormatMoney(input.Paid), FormatMoney(input.Bet))
		if input.Manipulations > 0 {
			message += " " + s.pick([]string{
				"Funny how that coin keeps landing right.",
				"Lady Luck had a little help.",
			})
		}
	} else {
		title = "Tails"
		message = fmt.Sprintf("%s loses %s.", input.PlayerName, FormatMoney(input.Bet))
	}

	if input.KickedOut {
		message += " " + s.pick([]string{
			"The pit boss has seen enough. You're out.",
			"Security escorts you away from the table.",
		})
	}

	return &GetBetResultMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

// GetKickoutMessage returns a message for a player locked out of a game
func (s *service) GetKickoutMessage(ctx context.Context, input *GetKickoutMessageInput) (*GetKickoutMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	seconds := math.Ceil(input.Remaining.Seconds())
	message := fmt.Sprintf("You're banned from the %s table for another %.0fs.", input.GameName, seconds)
	if input.Buyout > 0 {
		message += fmt.Sprintf(" Buyout: %s.", FormatMoney(input.Buyout))
	} else {
		message += " Buyout: free."
	}

	return &GetKickoutMessageOutput{
		Message: message,
	}, nil
}

// GetUpgradeMessage returns a message for a machine upgrade
func (s *service) GetUpgradeMessage(ctx context.Context, input *GetUpgradeMessageInput) (*GetUpgradeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Levels == 0 {
		return &GetUpgradeMessageOutput{
			Message: "That's not enough for a single level.",
		}, nil
	}

	return &GetUpgradeMessageOutput{
		Message: fmt.Sprintf("Gained %g levels of entropy. Capacity is now %g b.", input.Levels, input.EntropyCap),
	}, nil
}

// GetGameOverMessage returns a message for a player who can no longer cover a bet
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetGameOverMessageOutput{
		Title: "Game Over",
		Message: fmt.Sprintf("%s is down to %s. %s", input.PlayerName, FormatMoney(input.Money), s.pick([]string{
			"The house always wins.",
			"Probability caught up with you.",
			"Even an improbability machine can't beat an empty purse.",
		})),
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}
