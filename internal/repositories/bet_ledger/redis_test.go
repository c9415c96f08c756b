package bet_ledger

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/improbability/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) addRecords(records ...*models.BetRecord) {
	for _, record := range records {
		err := s.repo.AddBetRecord(context.Background(), &AddBetRecordInput{
			Record: record,
		})
		s.Require().NoError(err)
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedis_Validation() {
	_, err := NewRedis(nil)
	s.EqualError(err, "config cannot be nil")

	_, err = NewRedis(&Config{})
	s.EqualError(err, "redis client cannot be nil")
}

func (s *RedisRepositoryTestSuite) TestAddAndGetBetRecord() {
	s.addRecords(&models.BetRecord{
		ID:            "bet-1",
		PlayerID:      "player-1",
		GameName:      "Coin Toss",
		Bet:           10,
		Won:           true,
		Payout:        2,
		Paid:          20,
		EntropySpent:  1,
		Manipulations: 1,
		Suspicion:     0.05,
		Timestamp:     s.testNow,
	})

	output, err := s.repo.GetBetRecordsForPlayer(context.Background(), &GetBetRecordsForPlayerInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Require().Len(output.Records, 1)

	record := output.Records[0]
	s.Equal("bet-1", record.ID)
	s.Equal("player-1", record.PlayerID)
	s.Equal("Coin Toss", record.GameName)
	s.Equal(10.0, record.Bet)
	s.True(record.Won)
	s.Equal(2.0, record.Payout)
	s.Equal(20.0, record.Paid)
	s.Equal(1.0, record.EntropySpent)
	s.Equal(1, record.Manipulations)
	s.Equal(0.05, record.Suspicion)
	s.False(record.KickedOut)
	s.True(s.testNow.Equal(record.Timestamp))
	s.Equal(10.0, record.Net())
}

func (s *RedisRepositoryTestSuite) TestGetBetRecordsForPlayer_OrderedAndLimited() {
	s.addRecords(
		&models.BetRecord{ID: "bet-2", PlayerID: "player-1", Bet: 2, Timestamp: s.testNow.Add(time.Minute)},
		&models.BetRecord{ID: "bet-1", PlayerID: "player-1", Bet: 1, Timestamp: s.testNow},
		&models.BetRecord{ID: "bet-3", PlayerID: "player-1", Bet: 3, Timestamp: s.testNow.Add(2 * time.Minute)},
		&models.BetRecord{ID: "bet-4", PlayerID: "player-2", Bet: 4, Timestamp: s.testNow},
	)

	output, err := s.repo.GetBetRecordsForPlayer(context.Background(), &GetBetRecordsForPlayerInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Require().Len(output.Records, 3)
	s.Equal("bet-1", output.Records[0].ID)
	s.Equal("bet-2", output.Records[1].ID)
	s.Equal("bet-3", output.Records[2].ID)

	output, err = s.repo.GetBetRecordsForPlayer(context.Background(), &GetBetRecordsForPlayerInput{
		PlayerID: "player-1",
		Limit:    2,
	})
	s.Require().NoError(err)
	s.Require().Len(output.Records, 2)
	s.Equal("bet-2", output.Records[0].ID)
	s.Equal("bet-3", output.Records[1].ID)
}

func (s *RedisRepositoryTestSuite) TestGetBetRecordsForPlayer_Empty() {
	output, err := s.repo.GetBetRecordsForPlayer(context.Background(), &GetBetRecordsForPlayerInput{
		PlayerID: "nobody",
	})
	s.Require().NoError(err)
	s.Empty(output.Records)
}

func (s *RedisRepositoryTestSuite) TestGetBetRecordsForPlayer_SkipsMissingRecord() {
	s.addRecords(
		&models.BetRecord{ID: "bet-1", PlayerID: "player-1", Timestamp: s.testNow},
		&models.BetRecord{ID: "bet-2", PlayerID: "player-1", Timestamp: s.testNow.Add(time.Second)},
	)
	s.mr.Del(betKeyPrefix + "bet-1")

	output, err := s.repo.GetBetRecordsForPlayer(context.Background(), &GetBetRecordsForPlayerInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Require().Len(output.Records, 1)
	s.Equal("bet-2", output.Records[0].ID)
}

func (s *RedisRepositoryTestSuite) TestGetPlayerStats() {
	s.addRecords(
		&models.BetRecord{ID: "bet-1", PlayerID: "player-1", Bet: 10, Won: true, Paid: 20, Timestamp: s.testNow},
		&models.BetRecord{ID: "bet-2", PlayerID: "player-1", Bet: 5, Timestamp: s.testNow.Add(time.Second)},
		&models.BetRecord{ID: "bet-3", PlayerID: "player-1", Bet: 10, Won: true, Paid: 11, KickedOut: true, Timestamp: s.testNow.Add(2 * time.Second)},
	)

	output, err := s.repo.GetPlayerStats(context.Background(), &GetPlayerStatsInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)

	stats := output.Stats
	s.Equal("player-1", stats.PlayerID)
	s.Equal(int64(3), stats.Bets)
	s.Equal(int64(2), stats.Wins)
	s.Equal(int64(1), stats.Kickouts)
	s.InDelta(25.0, stats.TotalWagered, 1e-9)
	s.InDelta(31.0, stats.TotalPaid, 1e-9)
	s.InDelta(6.0, stats.Net(), 1e-9)
}

func (s *RedisRepositoryTestSuite) TestGetPlayerStats_NoBets() {
	output, err := s.repo.GetPlayerStats(context.Background(), &GetPlayerStatsInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Equal(&models.PlayerStats{PlayerID: "player-1"}, output.Stats)
}

func (s *RedisRepositoryTestSuite) TestDeletePlayerRecords() {
	s.addRecords(
		&models.BetRecord{ID: "bet-1", PlayerID: "player-1", Bet: 1, Timestamp: s.testNow},
		&models.BetRecord{ID: "bet-2", PlayerID: "player-2", Bet: 2, Timestamp: s.testNow},
	)

	err := s.repo.DeletePlayerRecords(context.Background(), &DeletePlayerRecordsInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)

	s.False(s.mr.Exists(betKeyPrefix + "bet-1"))
	s.False(s.mr.Exists(playerBetsKeyPrefix + "player-1"))
	s.False(s.mr.Exists(playerStatsKeyPrefix + "player-1"))
	s.True(s.mr.Exists(betKeyPrefix + "bet-2"))

	output, err := s.repo.GetPlayerStats(context.Background(), &GetPlayerStatsInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Equal(int64(0), output.Stats.Bets)
}

func (s *RedisRepositoryTestSuite) TestAddBetRecord_Validation() {
	ctx := context.Background()

	s.Error(s.repo.AddBetRecord(ctx, nil))
	s.Error(s.repo.AddBetRecord(ctx, &AddBetRecordInput{}))
	s.Error(s.repo.AddBetRecord(ctx, &AddBetRecordInput{
		Record: &models.BetRecord{PlayerID: "player-1", Timestamp: s.testNow},
	}))
	s.Error(s.repo.AddBetRecord(ctx, &AddBetRecordInput{
		Record: &models.BetRecord{ID: "bet-1", Timestamp: s.testNow},
	}))
	s.Error(s.repo.AddBetRecord(ctx, &AddBetRecordInput{
		Record: &models.BetRecord{ID: "bet-1", PlayerID: "player-1"},
	}))
}
