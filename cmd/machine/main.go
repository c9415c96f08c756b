package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/improbability/internal/common/clock"
	"github.com/KirkDiggler/improbability/internal/common/uuid"
	"github.com/KirkDiggler/improbability/internal/config"
	"github.com/KirkDiggler/improbability/internal/dice"
	"github.com/KirkDiggler/improbability/internal/handlers/terminal"
	betLedgerRepo "github.com/KirkDiggler/improbability/internal/repositories/bet_ledger"
	saveRepo "github.com/KirkDiggler/improbability/internal/repositories/save"
	gameService "github.com/KirkDiggler/improbability/internal/services/game"
	"github.com/KirkDiggler/improbability/internal/services/messaging"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// The game owns stdout, logs go to stderr
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.Load(".env"); err != nil {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	env, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid environment")
	}
	zerolog.SetGlobalLevel(env.LogLevel)

	catalog, err := config.LoadCatalog(env.GamesConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load game catalog")
	}

	coinTossConfig, err := catalog.CoinToss.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid coin toss config")
	}

	saves, err := saveRepo.NewFile(&saveRepo.FileConfig{
		Dir: env.SaveDir,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create save repository")
	}

	// Bet history is kept when Redis is reachable
	var betLedger betLedgerRepo.Repository
	redisClient := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	ledger, err := betLedgerRepo.NewRedis(&betLedgerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Warn().Err(err).Str("redis_addr", env.RedisAddr).Msg("bet history disabled")
	} else {
		betLedger = ledger
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

	handler, err := terminal.New(&terminal.Config{
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		In:               os.Stdin,
		Out:              os.Stdout,
		Logger:           log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("terminal stopped")
	}
}
