package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variable names
const (
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvDiscordToken  = "DISCORD_TOKEN"
	EnvApplicationID = "APPLICATION_ID"
	EnvGuildID       = "GUILD_ID"
	EnvSaveDir       = "SAVE_DIR"
	EnvGamesConfig   = "GAMES_CONFIG"
	EnvRNGSeed       = "RNG_SEED"
	EnvLogLevel      = "LOG_LEVEL"
)

const (
	defaultRedisAddr = "localhost:6379"
	defaultSaveDir   = "saves"
)

// Load reads environment variables from a .env file at path.
// A missing file is not an error; the process environment is used as is.
func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Env is the process configuration read from environment variables
type Env struct {
	RedisAddr     string
	RedisPassword string

	DiscordToken  string
	ApplicationID string
	GuildID       string

	// SaveDir is where the terminal front end writes save files
	SaveDir string

	// GamesConfig is the path of the YAML game catalog, defaults are used when empty
	GamesConfig string

	// RNGSeed seeds the roller, zero means seed from the clock
	RNGSeed int64

	LogLevel zerolog.Level
}

// FromEnv reads Env from the process environment
func FromEnv() (*Env, error) {
	env := &Env{
		RedisAddr:     getEnv(EnvRedisAddr, defaultRedisAddr),
		RedisPassword: os.Getenv(EnvRedisPassword),
		DiscordToken:  os.Getenv(EnvDiscordToken),
		ApplicationID: os.Getenv(EnvApplicationID),
		GuildID:       os.Getenv(EnvGuildID),
		SaveDir:       getEnv(EnvSaveDir, defaultSaveDir),
		GamesConfig:   os.Getenv(EnvGamesConfig),
		LogLevel:      zerolog.InfoLevel,
	}

	if raw := os.Getenv(EnvRNGSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvRNGSeed, raw, err)
		}
		env.RNGSeed = seed
	}

	if raw := os.Getenv(EnvLogLevel); raw != "" {
		level, err := zerolog.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvLogLevel, raw, err)
		}
		env.LogLevel = level
	}

	return env, nil
}

// RequireDiscord checks the variables the Discord bot cannot start without
func (e *Env) RequireDiscord() error {
	if e.DiscordToken == "" {
		return fmt.Errorf("%s environment variable is required", EnvDiscordToken)
	}
	if e.ApplicationID == "" {
		return fmt.Errorf("%s environment variable is required", EnvApplicationID)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
