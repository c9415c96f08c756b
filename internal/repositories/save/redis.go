package save

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/improbability/internal/economy"
	"github.com/redis/go-redis/v9"
)

// saveKeyPrefix is the Redis key prefix for save records
const saveKeyPrefix = "save:"

// Config holds configuration for the Redis save repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed save repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveEconomy stores the economy as a save record under the player's key
func (r *redisRepository) SaveEconomy(ctx context.Context, input *SaveEconomyInput) error {
	if input == nil || input.Economy == nil {
		return errors.New("input and economy cannot be nil")
	}
	if err := validatePlayerID(input.PlayerID); err != nil {
		return err
	}

	if err := economy.ValidatePlayerName(input.Economy.PlayerName); err != nil {
		return err
	}

	record := input.Economy.Serialize()
	if err := r.client.Set(ctx, saveKeyPrefix+input.PlayerID, record, 0).Err(); err != nil {
		return fmt.Errorf("failed to save economy: %w", err)
	}

	return nil
}

// LoadEconomy reads and parses the player's save record
func (r *redisRepository) LoadEconomy(ctx context.Context, input *LoadEconomyInput) (*economy.Economy, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validatePlayerID(input.PlayerID); err != nil {
		return nil, err
	}

	record, err := r.client.Get(ctx, saveKeyPrefix+input.PlayerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSaveNotFound
		}
		return nil, fmt.Errorf("failed to get save: %w", err)
	}

	econ, err := economy.Deserialize(record)
	if err != nil {
		return nil, fmt.Errorf("failed to load save for %s: %w", input.PlayerID, err)
	}

	return econ, nil
}

// DeleteSave removes the player's save record
func (r *redisRepository) DeleteSave(ctx context.Context, input *DeleteSaveInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validatePlayerID(input.PlayerID); err != nil {
		return err
	}

	deleted, err := r.client.Del(ctx, saveKeyPrefix+input.PlayerID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	if deleted == 0 {
		return ErrSaveNotFound
	}

	return nil
}
