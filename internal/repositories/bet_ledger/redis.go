package bet_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/improbability/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	betKeyPrefix         = "bet:"
	playerBetsKeyPrefix  = "player_bets:"
	playerStatsKeyPrefix = "player_stats:"

	// Stats hash fields
	statsBets     = "bets"
	statsWins     = "wins"
	statsKickouts = "kickouts"
	statsWagered  = "wagered"
	statsPaid     = "paid"
)

// Config holds configuration for the Redis bet ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed bet ledger repository
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

// AddBetRecord adds a resolved bet to the ledger and updates the player's stats
func (r *redisRepository) AddBetRecord(ctx context.Context, input *AddBetRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record

	if record.ID == "" {
		return errors.New("bet record ID cannot be empty")
	}

	if record.PlayerID == "" {
		return errors.New("bet record player ID cannot be empty")
	}

	if record.Timestamp.IsZero() {
		return errors.New("bet record timestamp cannot be zero")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal bet record: %w", err)
	}

	pipe := r.client.TxPipeline()

	// Store the bet record
	pipe.Set(ctx, betKeyPrefix+record.ID, recordJSON, 0)

	// Index it under the player, ordered by close time
	pipe.ZAdd(ctx, playerBetsKeyPrefix+record.PlayerID, redis.Z{
		Score:  float64(record.Timestamp.UnixMilli()),
		Member: record.ID,
	})

	// Update player stats
	statsKey := playerStatsKeyPrefix + record.PlayerID
	pipe.HIncrBy(ctx, statsKey, statsBets, 1)
	if record.Won {
		pipe.HIncrBy(ctx, statsKey, statsWins, 1)
	}
	if record.KickedOut {
		pipe.HIncrBy(ctx, statsKey, statsKickouts, 1)
	}
	pipe.HIncrByFloat(ctx, statsKey, statsWagered, record.Bet)
	pipe.HIncrByFloat(ctx, statsKey, statsPaid, record.Paid)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add bet record: %w", err)
	}

	return nil
}

// GetBetRecordsForPlayer retrieves a player's bets, oldest first
func (r *redisRepository) GetBetRecordsForPlayer(ctx context.Context, input *GetBetRecordsForPlayerInput) (*GetBetRecordsForPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	var start int64
	if input.Limit > 0 {
		start = -int64(input.Limit)
	}

	betIDs, err := r.client.ZRange(ctx, playerBetsKeyPrefix+input.PlayerID, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bet IDs for player: %w", err)
	}

	if len(betIDs) == 0 {
		return &GetBetRecordsForPlayerOutput{
			Records: []*models.BetRecord{},
		}, nil
	}

	// Fetch every record in one round trip
	pipe := r.client.Pipeline()
	betCommands := make([]*redis.StringCmd, len(betIDs))
	for i, betID := range betIDs {
		betCommands[i] = pipe.Get(ctx, betKeyPrefix+betID)
	}

	// A missing record surfaces as redis.Nil from Exec; it is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get bet records: %w", err)
	}

	records := make([]*models.BetRecord, 0, len(betIDs))
	for i, cmd := range betCommands {
		recordJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Bet record was deleted between getting the IDs and fetching the record
				continue
			}
			return nil, fmt.Errorf("failed to get bet record %s: %w", betIDs[i], err)
		}

		var record models.BetRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bet record %s: %w", betIDs[i], err)
		}

		records = append(records, &record)
	}

	return &GetBetRecordsForPlayerOutput{
		Records: records,
	}, nil
}

// GetPlayerStats retrieves the aggregated stats for a player.
// A player with no bets gets zeroed stats.
func (r *redisRepository) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, playerStatsKeyPrefix+input.PlayerID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	stats := &models.PlayerStats{PlayerID: input.PlayerID}

	ints := map[string]*int64{
		statsBets:     &stats.Bets,
		statsWins:     &stats.Wins,
		statsKickouts: &stats.Kickouts,
	}
	for field, dst := range ints {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		if *dst, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse player stat %s: %w", field, err)
		}
	}

	floats := map[string]*float64{
		statsWagered: &stats.TotalWagered,
		statsPaid:    &stats.TotalPaid,
	}
	for field, dst := range floats {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		if *dst, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("failed to parse player stat %s: %w", field, err)
		}
	}

	return &GetPlayerStatsOutput{
		Stats: stats,
	}, nil
}

// DeletePlayerRecords deletes every bet record and the stats for a player
func (r *redisRepository) DeletePlayerRecords(ctx context.Context, input *DeletePlayerRecordsInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	playerKey := playerBetsKeyPrefix + input.PlayerID
	betIDs, err := r.client.ZRange(ctx, playerKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get bet IDs for player: %w", err)
	}

	keys := make([]string, 0, len(betIDs)+2)
	for _, betID := range betIDs {
		keys = append(keys, betKeyPrefix+betID)
	}
	keys = append(keys, playerKey, playerStatsKeyPrefix+input.PlayerID)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete player bet records: %w", err)
	}

	return nil
}
