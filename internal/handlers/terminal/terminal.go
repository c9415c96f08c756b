package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/improbability/internal/games/cointoss"
	"github.com/KirkDiggler/improbability/internal/services/game"
	"github.com/KirkDiggler/improbability/internal/services/messaging"
	"github.com/rs/zerolog"
)

// recentBets is how many bets the history screen lists
const recentBets = 5

// Config holds the configuration for the terminal front end
type Config struct {
	GameService      game.Service
	MessagingService messaging.Service

	// In and Out are the player's console
	In  io.Reader
	Out io.Writer

	Logger zerolog.Logger
}

// Handler runs the machine as a line-oriented console game
type Handler struct {
	gameService      game.Service
	messagingService messaging.Service
	scanner          *bufio.Scanner
	out              io.Writer
	logger           zerolog.Logger
}

// New creates a new terminal handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.In == nil || cfg.Out == nil {
		return nil, errors.New("input and output cannot be nil")
	}

	return &Handler{
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		scanner:          bufio.NewScanner(cfg.In),
		out:              cfg.Out,
		logger:           cfg.Logger.With().Str("component", "terminal").Logger(),
	}, nil
}

// Run shows the main menu until the player quits or input ends
func (h *Handler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.printf("\n== The Improbability Machine ==\n")
		h.printf("(N)ew Game (overwrites old save)\n(L)oad Save\n(D)elete Save\n(Q)uit\n")

		line, ok := h.prompt("> ")
		if !ok {
			return h.scanner.Err()
		}

		switch strings.ToLower(line) {
		case "n":
			name, ok := h.prompt("Enter your name: ")
			if !ok {
				return h.scanner.Err()
			}

			output, err := h.gameService.NewGame(ctx, &game.NewGameInput{
				PlayerID:   name,
				PlayerName: name,
			})
			if err != nil {
				h.showError(ctx, err)
				continue
			}

			if err := h.gameMenu(ctx, output.Snapshot); err != nil {
				return err
			}
		case "l":
			name, ok := h.prompt("Whose save? ")
			if !ok {
				return h.scanner.Err()
			}

			output, err := h.gameService.LoadGame(ctx, &game.LoadGameInput{
				PlayerID: name,
			})
			if err != nil {
				h.showError(ctx, err)
				continue
			}

			if err := h.gameMenu(ctx, output.Snapshot); err != nil {
				return err
			}
		case "d":
			name, ok := h.prompt("Whose save? ")
			if !ok {
				return h.scanner.Err()
			}
			confirm, ok := h.prompt(fmt.Sprintf("Delete %s's save and history? (y/n) ", name))
			if !ok {
				return h.scanner.Err()
			}
			if strings.ToLower(confirm) != "y" {
				continue
			}

			if _, err := h.gameService.DeleteGame(ctx, &game.DeleteGameInput{
				PlayerID: name,
			}); err != nil {
				h.showError(ctx, err)
				continue
			}
			h.printf("Save deleted.\n")
		case "q":
			return nil
		default:
			h.showError(ctx, game.ErrInvalidCommand)
		}
	}
}

// gameMenu runs the menu between minigames. It returns nil when the player goes back to the main menu.
func (h *Handler) gameMenu(ctx context.Context, snapshot *game.Snapshot) error {
	playerID := snapshot.PlayerID

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if snapshot.GameOver {
			h.showGameOver(ctx, snapshot)
			return h.endSession(ctx, playerID, false)
		}

		h.printStatus(snapshot)
		h.printf("(1) Coin Toss\n(U)pgrade Machine\n(H)istory\n(S)ave\n(Q) Main Menu\n")

		line, ok := h.prompt("> ")
		if !ok {
			return h.endSession(ctx, playerID, false)
		}

		switch strings.ToLower(line) {
		case "1":
			next, err := h.coinToss(ctx, playerID)
			if err != nil {
				return err
			}
			if next != nil {
				snapshot = next
			}
		case "u":
			amount, ok := h.prompt("Invest how much (pence)? ")
			if !ok {
				return h.endSession(ctx, playerID, false)
			}

			invest, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
			if err != nil {
				h.showError(ctx, game.ErrInvalidCommand)
				continue
			}

			output, err := h.gameService.UpgradeMachine(ctx, &game.UpgradeMachineInput{
				PlayerID: playerID,
				Invest:   invest,
			})
			if err != nil {
				h.showError(ctx, err)
				continue
			}

			message, err := h.messagingService.GetUpgradeMessage(ctx, &messaging.GetUpgradeMessageInput{
				Levels:     output.Levels,
				EntropyCap: output.Snapshot.EntropyCap,
			})
			if err == nil {
				h.printf("%s\n", message.Message)
			}
			snapshot = output.Snapshot
		case "h":
			h.showHistory(ctx, playerID)
		case "s":
			output, err := h.gameService.SaveGame(ctx, &game.SaveGameInput{
				PlayerID: playerID,
			})
			if err != nil {
				h.showError(ctx, err)
				continue
			}
			h.printf("Game saved.\n")
			snapshot = output.Snapshot
		case "q":
			answer, ok := h.prompt("Save before leaving? (y/N) ")
			if !ok {
				return h.endSession(ctx, playerID, false)
			}
			return h.endSession(ctx, playerID, strings.EqualFold(answer, "y"))
		default:
			h.showError(ctx, game.ErrInvalidCommand)
		}
	}
}

// coinToss runs the coin toss table until the player quits it or goes broke
func (h *Handler) coinToss(ctx context.Context, playerID string) (*game.Snapshot, error) {
	entered, err := h.gameService.EnterCoinToss(ctx, &game.EnterCoinTossInput{
		PlayerID: playerID,
	})
	if err != nil {
		h.showError(ctx, err)
		return nil, nil
	}

	snapshot := entered.Snapshot
	h.printf("Commands: place bet <pence>, start, flip, select heads, select tails, end bet, buyout, quit. Press enter to wait.\n")

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h.printTable(ctx, snapshot)

		line, ok := h.prompt("coin toss> ")
		if !ok {
			return snapshot, nil
		}
		if strings.TrimSpace(line) == "" {
			line = string(game.CommandWait)
		}

		output, err := h.gameService.HandleCommand(ctx, &game.HandleCommandInput{
			PlayerID: playerID,
			Command:  line,
		})
		if err != nil {
			h.showError(ctx, err)

			// Bets can still close while a command is rejected
			state, stateErr := h.gameService.GetState(ctx, &game.GetStateInput{
				PlayerID: playerID,
			})
			if stateErr != nil {
				continue
			}
			h.showResolutions(ctx, state.Snapshot.PlayerName, state.Resolutions)
			snapshot = state.Snapshot
			if snapshot.GameOver {
				return snapshot, nil
			}
			continue
		}

		h.showResolutions(ctx, output.Snapshot.PlayerName, output.Resolutions)
		if output.BuyoutPaid > 0 {
			h.printf("Paid %s to get back in.\n", messaging.FormatMoney(output.BuyoutPaid))
		}

		snapshot = output.Snapshot
		if output.Quit || snapshot.GameOver {
			return snapshot, nil
		}
	}
}

func (h *Handler) endSession(ctx context.Context, playerID string, save bool) error {
	if _, err := h.gameService.EndSession(ctx, &game.EndSessionInput{
		PlayerID: playerID,
		Save:     save,
	}); err != nil {
		h.showError(ctx, err)
		return nil
	}

	if save {
		h.printf("Game saved.\n")
	}
	return nil
}

func (h *Handler) showHistory(ctx context.Context, playerID string) {
	output, err := h.gameService.GetStats(ctx, &game.GetStatsInput{
		PlayerID:    playerID,
		RecentLimit: recentBets,
	})
	if err != nil {
		h.showError(ctx, err)
		return
	}

	stats := output.Stats
	h.printf("Bets: %d  Wins: %d  Kickouts: %d\n", stats.Bets, stats.Wins, stats.Kickouts)
	h.printf("Wagered: %s  Paid out: %s\n", messaging.FormatMoney(stats.TotalWagered), messaging.FormatMoney(stats.TotalPaid))

	for _, record := range output.Recent {
		outcome := "lost"
		if record.Won {
			outcome = "won"
		}
		h.printf("  %s  %s  %s bet, %s\n",
			record.Timestamp.Format(time.Kitchen),
			record.GameName,
			messaging.FormatMoney(record.Bet),
			outcome,
		)
	}
}

func (h *Handler) showResolutions(ctx context.Context, playerName string, resolutions []*cointoss.Resolution) {
	for _, resolution := range resolutions {
		message, err := h.messagingService.GetBetResultMessage(ctx, &messaging.GetBetResultMessageInput{
			PlayerName:    playerName,
			GameName:      cointoss.GameName,
			Bet:           resolution.Bet,
			Won:           resolution.Won,
			Paid:          resolution.Paid,
			Manipulations: resolution.Manipulations,
			KickedOut:     resolution.KickedOut,
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to build bet result message")
			continue
		}
		h.printf("%s %s\n", message.Title, message.Message)
	}
}

func (h *Handler) showGameOver(ctx context.Context, snapshot *game.Snapshot) {
	message, err := h.messagingService.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
		PlayerName: snapshot.PlayerName,
		Money:      snapshot.Money,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build game over message")
		return
	}
	h.printf("%s: %s\n", message.Title, message.Message)
}

func (h *Handler) showError(ctx context.Context, err error) {
	message, msgErr := h.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Err: err,
	})
	if msgErr != nil {
		h.printf("Error: %v\n", err)
		return
	}

	h.logger.Debug().Err(err).Msg("action rejected")
	h.printf("%s: %s\n", message.Title, message.Message)
}

func (h *Handler) printStatus(snapshot *game.Snapshot) {
	h.printf("\n%s | Money: %s | Entropy: %.1f/%.0f b | Machine level: %g | Played: %s\n",
		snapshot.PlayerName,
		messaging.FormatMoney(snapshot.Money),
		snapshot.Entropy,
		snapshot.EntropyCap,
		snapshot.MachineLevel,
		snapshot.GameLength.Truncate(time.Second),
	)
}

func (h *Handler) printTable(ctx context.Context, snapshot *game.Snapshot) {
	table := snapshot.CoinToss

	h.printf("Money: %s | Entropy: %.1f/%.0f b\n",
		messaging.FormatMoney(snapshot.Money),
		snapshot.Entropy,
		snapshot.EntropyCap,
	)
	h.printf("Bet: %s (min %s, max %s) | Payout: x%.2f | Heads chance: %.0f%%\n",
		messaging.FormatMoney(table.CurrentBet),
		messaging.FormatMoney(table.BetMin),
		messaging.FormatMoney(table.BetMax),
		table.Payout,
		table.HeadsChance*100,
	)

	switch table.State {
	case cointoss.StateStartBet:
		h.printf("The coin is in the air... (%.1fs)\n", table.StartBetRemaining)
	case cointoss.StateInBet:
		h.printf("Coin shows %s | %.1fs left\n", coinFace(table.Result), table.BetTimeRemaining)
	default:
		if !table.KickedOut {
			h.printf("Place your bet.\n")
		}
	}

	if table.KickedOut {
		message, err := h.messagingService.GetKickoutMessage(ctx, &messaging.GetKickoutMessageInput{
			GameName:  cointoss.GameName,
			Remaining: table.KickoutRemaining,
			Buyout:    table.Buyout,
		})
		if err == nil {
			h.printf("%s\n", message.Message)
		}
	}
}

func (h *Handler) prompt(label string) (string, bool) {
	h.printf("%s", label)
	if !h.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(h.scanner.Text()), true
}

func (h *Handler) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(h.out, format, args...); err != nil {
		h.logger.Error().Err(err).Msg("failed to write to terminal")
	}
}

func coinFace(heads bool) string {
	if heads {
		return "HEADS"
	}
	return "TAILS"
}
