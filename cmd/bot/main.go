package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/improbability/internal/common/clock"
	"github.com/KirkDiggler/improbability/internal/common/uuid"
	"github.com/KirkDiggler/improbability/internal/config"
	"github.com/KirkDiggler/improbability/internal/dice"
	"github.com/KirkDiggler/improbability/internal/handlers/discord"
	betLedgerRepo "github.com/KirkDiggler/improbability/internal/repositories/bet_ledger"
	saveRepo "github.com/KirkDiggler/improbability/internal/repositories/save"
	gameService "github.com/KirkDiggler/improbability/internal/services/game"
	"github.com/KirkDiggler/improbability/internal/services/messaging"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.Load(".env"); err != nil {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	env, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid environment")
	}
	zerolog.SetGlobalLevel(env.LogLevel)

	if err := env.RequireDiscord(); err != nil {
		log.Fatal().Err(err).Msg("missing Discord configuration")
	}

	catalog, err := config.LoadCatalog(env.GamesConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load game catalog")
	}

	coinTossConfig, err := catalog.CoinToss.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid coin toss config")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("redis_addr", env.RedisAddr).Msg("failed to connect to Redis")
	}

	// Initialize repositories
	saves, err := saveRepo.NewRedis(&saveRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create save repository")
	}

	betLedger, err := betLedgerRepo.NewRedis(&betLedgerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bet ledger repository")
	}

	gameSvc, err := gameService.New(&gameService.Config{
		CoinToss:      coinTossConfig,
		SaveRepo:      saves,
		BetLedgerRepo: betLedger,
		DiceRoller:    dice.New(&dice.Config{Seed: env.RNGSeed}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Logger:        log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game service")
	}

	messagingSvc, err := messaging.New(&messaging.Config{Seed: env.RNGSeed})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create messaging service")
	}

	bot, err := discord.New(&discord.Config{
		Token:            env.DiscordToken,
		ApplicationID:    env.ApplicationID,
		GuildID:          env.GuildID,
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		Logger:           log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("error stopping bot")
	}

	log.Info().Msg("bot has been shut down")
}
