package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/improbability/internal/services/game"
	"github.com/KirkDiggler/improbability/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	gameService game.Service
	renderer    *renderer
	config      *Config
	logger      zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	GameService      game.Service
	MessagingService messaging.Service

	Logger zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		gameService: cfg.GameService,
		renderer:    &renderer{messagingService: cfg.MessagingService},
		config:      cfg,
		logger:      cfg.Logger.With().Str("component", "discord").Logger(),
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	machineCmd := NewMachineCommand(b.gameService, b.renderer, b.logger)
	if err := b.RegisterCommand(machineCmd); err != nil {
		return fmt.Errorf("failed to register machine command: %w", err)
	}

	b.logger.Info().Msg("bot is now running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Error().
				Str("command", cmdName).
				Str("command_id", cmdID).
				Err(err).
				Msg("failed to delete command")
			continue
		}
		b.logger.Info().
			Str("command", cmdName).
			Str("command_id", cmdID).
			Msg("deleted command")
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord, for the configured guild or globally
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error().Str("command", name).Err(err).Msg("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error().
				Str("custom_id", i.MessageComponentData().CustomID).
				Err(err).
				Msg("error handling component interaction")
		}
	}
}

// handleComponentInteraction handles button clicks on the menu and the table
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	customID := i.MessageComponentData().CustomID

	userID, username := interactionUser(i)
	if userID == "" {
		return RespondWithEphemeralMessage(s, i, "Couldn't tell who you are.")
	}

	var (
		snapshot *game.Snapshot
		notes    []string
	)

	switch customID {
	case ButtonPlayCoinToss:
		output, err := b.gameService.EnterCoinToss(ctx, &game.EnterCoinTossInput{
			PlayerID: userID,
		})
		if err != nil {
			return b.respondError(ctx, s, i, err)
		}
		snapshot = output.Snapshot
	case ButtonSave:
		output, err := b.gameService.SaveGame(ctx, &game.SaveGameInput{
			PlayerID: userID,
		})
		if err != nil {
			return b.respondError(ctx, s, i, err)
		}
		snapshot = output.Snapshot
		notes = []string{"Game saved."}
	case ButtonStats:
		output, err := b.gameService.GetStats(ctx, &game.GetStatsInput{
			PlayerID:    userID,
			RecentLimit: recentBets,
		})
		if err != nil {
			return b.respondError(ctx, s, i, err)
		}
		return RespondWithEphemeralEmbed(s, i, statsEmbed(username, output), nil)
	default:
		command, ok := tableButtonCommands[customID]
		if !ok {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
		}

		output, err := b.gameService.HandleCommand(ctx, &game.HandleCommandInput{
			PlayerID: userID,
			Command:  command,
		})
		if err != nil {
			return b.respondError(ctx, s, i, err)
		}
		snapshot = output.Snapshot
		notes = b.renderer.notes(ctx, output.Snapshot, output.Resolutions, output.BuyoutPaid)
	}

	embed, components := b.renderer.render(ctx, snapshot, notes)
	return UpdateWithEmbed(s, i, embed, components)
}

// respondError answers a rejected button with a private message, leaving the table as it was
func (b *Bot) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	b.logger.Debug().Err(err).Msg("button action rejected")
	return RespondWithEphemeralEmbed(s, i, b.renderer.errorEmbed(ctx, err), nil)
}
