package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/improbability/internal/services/game"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// recentBets is how many bets the history embed lists
const recentBets = 5

// MachineCommand handles the /machine command
type MachineCommand struct {
	BaseCommand
	gameService game.Service
	renderer    *renderer
	logger      zerolog.Logger
}

// NewMachineCommand creates a new machine command handler
func NewMachineCommand(gameService game.Service, renderer *renderer, logger zerolog.Logger) *MachineCommand {
	minInvest := 1.0

	return &MachineCommand{
		BaseCommand: BaseCommand{
			Name:        "machine",
			Description: "Play the Improbability Machine",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "new",
					Description: "Start a new game, replacing your save",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Name to play under, defaults to your nickname",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "load",
					Description: "Resume your saved game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show your machine",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "upgrade",
					Description: "Invest money in the machine's entropy capacity",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        "amount",
							Description: "Pence to invest",
							Required:    true,
							MinValue:    &minInvest,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bet",
					Description: "Set your coin toss bet",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        "amount",
							Description: "Bet in pence",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show your betting history",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete your save and betting history",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "quit",
					Description: "Stop playing",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "save",
							Description: "Save before leaving (default true)",
						},
					},
				},
			},
		},
		gameService: gameService,
		renderer:    renderer,
		logger:      logger,
	}
}

// Handle processes a Discord interaction for the machine command
func (c *MachineCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	userID, username := interactionUser(i)
	if userID == "" {
		return RespondWithEphemeralMessage(s, i, "Couldn't tell who you are.")
	}

	ctx := context.Background()
	sub := data.Options[0]
	options := optionMap(sub.Options)

	c.logger.Debug().
		Str("player_id", userID).
		Str("subcommand", sub.Name).
		Msg("handling machine command")

	switch sub.Name {
	case "new":
		name := username
		if opt, ok := options["name"]; ok {
			name = opt.StringValue()
		}
		output, err := c.gameService.NewGame(ctx, &game.NewGameInput{
			PlayerID:   userID,
			PlayerName: name,
		})
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		return c.respondSnapshot(ctx, s, i, output.Snapshot, []string{"A fresh machine hums to life."})
	case "load":
		output, err := c.gameService.LoadGame(ctx, &game.LoadGameInput{
			PlayerID: userID,
		})
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		return c.respondSnapshot(ctx, s, i, output.Snapshot, []string{"Save loaded."})
	case "status":
		output, err := c.gameService.GetState(ctx, &game.GetStateInput{
			PlayerID: userID,
		})
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		notes := c.renderer.notes(ctx, output.Snapshot, output.Resolutions, 0)
		return c.respondSnapshot(ctx, s, i, output.Snapshot, notes)
	case "upgrade":
		output, err := c.gameService.UpgradeMachine(ctx, &game.UpgradeMachineInput{
			PlayerID: userID,
			Invest:   options["amount"].FloatValue(),
		})
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		var notes []string
		message, err := c.renderer.messagingService.GetUpgradeMessage(ctx, upgradeMessageInput(output))
		if err == nil {
			notes = append(notes, message.Message)
		}
		return c.respondSnapshot(ctx, s, i, output.Snapshot, notes)
	case "bet":
		output, err := c.gameService.HandleCommand(ctx, &game.HandleCommandInput{
			PlayerID: userID,
			Command:  fmt.Sprintf("place bet %g", options["amount"].FloatValue()),
		})
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		notes := c.renderer.notes(ctx, output.Snapshot, output.Resolutions, output.BuyoutPaid)
		return c.respondSnapshot(ctx, s, i, output.Snapshot, notes)
	case "stats":
		output, err := c.gameService.GetStats(ctx, &game.GetStatsInput{
			PlayerID:    userID,
			RecentLimit: recentBets,
		})
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		return RespondWithEphemeralEmbed(s, i, statsEmbed(username, output), nil)
	case "delete":
		if _, err := c.gameService.DeleteGame(ctx, &game.DeleteGameInput{
			PlayerID: userID,
		}); err != nil {
			return c.respondError(ctx, s, i, err)
		}
		return RespondWithEphemeralMessage(s, i, "Your save and history are gone.")
	case "quit":
		save := true
		if opt, ok := options["save"]; ok {
			save = opt.BoolValue()
		}
		if _, err := c.gameService.EndSession(ctx, &game.EndSessionInput{
			PlayerID: userID,
			Save:     save,
		}); err != nil {
			return c.respondError(ctx, s, i, err)
		}
		if save {
			return RespondWithEphemeralMessage(s, i, "Game saved. The machine powers down.")
		}
		return RespondWithEphemeralMessage(s, i, "The machine powers down.")
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *MachineCommand) respondSnapshot(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, snapshot *game.Snapshot, notes []string) error {
	embed, components := c.renderer.render(ctx, snapshot, notes)
	return RespondWithEphemeralEmbed(s, i, embed, components)
}

func (c *MachineCommand) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	c.logger.Debug().Err(err).Msg("machine command rejected")
	return RespondWithEphemeralEmbed(s, i, c.renderer.errorEmbed(ctx, err), nil)
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}
