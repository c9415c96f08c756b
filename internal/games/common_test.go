package games

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CommonDataTestSuite struct {
	suite.Suite
	data     *CommonData
	testTime time.Time
}

func (s *CommonDataTestSuite) SetupTest() {
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	data, err := NewCommonData(&Config{
		Name:             "Coin Toss",
		BetMin:           1,
		BetMax:           100,
		BasePayout:       2,
		KickoutLengthMax: 30 * time.Second,
		BuyoutFactor:     1,
	})
	s.Require().NoError(err)
	s.data = data
}

func TestCommonDataSuite(t *testing.T) {
	suite.Run(t, new(CommonDataTestSuite))
}

func (s *CommonDataTestSuite) TestNewCommonData_Defaults() {
	s.Equal(1.0, s.data.CurrentBet)
	s.Nil(s.data.BetStart)
	s.Nil(s.data.KickoutStartTime)
	s.Equal(DefaultPayoutReduction, s.data.PayoutReduction)
	s.Equal(DefaultSuspicionPolicy(), s.data.Policy)
}

func (s *CommonDataTestSuite) TestNewCommonData_ZeroReductionDisablesBrackets() {
	reduction := 0.0
	data, err := NewCommonData(&Config{
		BetMin:           1,
		BetMax:           100,
		BasePayout:       2,
		KickoutLengthMax: time.Second,
		PayoutReduction:  &reduction,
	})
	s.Require().NoError(err)
	s.Equal(0.0, data.PayoutReduction)

	data.RaiseSuspicion(0.9)
	s.Equal(2.0, data.EffectivePayout())
}

func (s *CommonDataTestSuite) TestNewCommonData_InvalidConfig() {
	valid := Config{BetMin: 1, BetMax: 100, BasePayout: 2, KickoutLengthMax: time.Second}
	negative := -0.1

	cases := map[string]func(c *Config){
		"negative min":       func(c *Config) { c.BetMin = -1 },
		"max not above min":  func(c *Config) { c.BetMax = 1 },
		"zero payout":        func(c *Config) { c.BasePayout = 0 },
		"zero kickout":       func(c *Config) { c.KickoutLengthMax = 0 },
		"negative buyout":    func(c *Config) { c.BuyoutFactor = -1 },
		"negative reduction": func(c *Config) { c.PayoutReduction = &negative },
	}

	for name, mutate := range cases {
		cfg := valid
		mutate(&cfg)
		_, err := NewCommonData(&cfg)
		s.ErrorIs(err, ErrInvalidConfig, name)
	}

	_, err := NewCommonData(nil)
	s.ErrorIs(err, ErrInvalidConfig)
}

func (s *CommonDataTestSuite) TestValidateBet() {
	s.NoError(s.data.ValidateBet(10, 240))
	s.NoError(s.data.ValidateBet(1, 1))
	s.NoError(s.data.ValidateBet(100, 240))
	s.ErrorIs(s.data.ValidateBet(0.5, 240), ErrBetOutOfBounds)
	s.ErrorIs(s.data.ValidateBet(101, 240), ErrBetOutOfBounds)
	s.ErrorIs(s.data.ValidateBet(10, 5), ErrInsufficientFunds)
}

func (s *CommonDataTestSuite) TestRaiseSuspicion_Clamped() {
	s.data.RaiseSuspicion(0.6)
	s.Equal(0.6, s.data.Suspicion)
	s.data.RaiseSuspicion(0.6)
	s.Equal(1.0, s.data.Suspicion)
	s.data.RaiseSuspicion(-3)
	s.Equal(0.0, s.data.Suspicion)
}

func (s *CommonDataTestSuite) TestRecordBet() {
	s.data.RecordBet(10, 2, 0.5, true)
	s.Equal(0.5, s.data.ExpectedWins)
	s.Equal(1.0, s.data.RealWins)
	s.Equal(0.0, s.data.ExpectedGains)
	s.Equal(10.0, s.data.RealGains)

	s.data.RecordBet(10, 2, 0.5, false)
	s.Equal(1.0, s.data.ExpectedWins)
	s.Equal(1.0, s.data.RealWins)
	s.Equal(0.0, s.data.ExpectedGains)
	s.Equal(0.0, s.data.RealGains)
}

func (s *CommonDataTestSuite) TestKickoutUpdate_NotKickedOut() {
	s.False(s.data.KickoutUpdate(s.testTime))
	s.Nil(s.data.KickoutStartTime)
	s.Equal(time.Duration(0), s.data.KickoutRemaining)
}

func (s *CommonDataTestSuite) TestKickoutUpdate_StillKickedOut() {
	start := s.testTime
	s.data.KickoutStartTime = &start

	now := start.Add(12 * time.Second)
	s.True(s.data.KickoutUpdate(now))
	s.Equal(18*time.Second, s.data.KickoutRemaining)
	s.NotNil(s.data.KickoutStartTime)
}

func (s *CommonDataTestSuite) TestKickoutUpdate_Expired() {
	now := s.testTime
	start := now.Add(-31 * time.Second)
	s.data.KickoutStartTime = &start
	s.data.KickoutRemaining = 5 * time.Second
	s.data.CurrentKickoutBuyout = 12

	s.False(s.data.KickoutUpdate(now))
	s.Nil(s.data.KickoutStartTime)
	s.Equal(time.Duration(0), s.data.KickoutRemaining)
	s.Equal(0.0, s.data.CurrentKickoutBuyout)
}

func (s *CommonDataTestSuite) TestKickoutUpdate_ExactEndIsExpired() {
	start := s.testTime
	s.data.KickoutStartTime = &start

	s.False(s.data.KickoutUpdate(start.Add(30 * time.Second)))
	s.Nil(s.data.KickoutStartTime)
}

func (s *CommonDataTestSuite) TestKickout_StartsLockout() {
	s.data.Kickout(s.testTime)
	s.True(s.data.IsKickedOut())
	s.Equal(30*time.Second, s.data.KickoutRemaining)

	end, ok := s.data.KickoutEndTime()
	s.True(ok)
	s.Equal(s.testTime.Add(30*time.Second), end)
}

func (s *CommonDataTestSuite) TestCalculateBuyout_StepsDownOverTime() {
	s.data.RealGains = 50
	s.data.ExpectedGains = 0
	s.data.Kickout(s.testTime)

	// buyout max = 1 * 50 * 2 = 100
	s.Equal(100.0, s.data.CurrentKickoutBuyout)

	previous := s.data.CurrentKickoutBuyout
	for elapsed := time.Duration(0); elapsed < 30*time.Second; elapsed += 500 * time.Millisecond {
		s.True(s.data.KickoutUpdate(s.testTime.Add(elapsed)))
		price := s.data.CurrentKickoutBuyout
		s.GreaterOrEqual(price, 0.0)
		s.LessOrEqual(price, previous)
		previous = price
	}

	s.True(s.data.KickoutUpdate(s.testTime.Add(1 * time.Second)))
	s.Equal(100.0, s.data.CurrentKickoutBuyout)

	s.True(s.data.KickoutUpdate(s.testTime.Add(5 * time.Second)))
	s.InDelta(100.0*25/30, s.data.CurrentKickoutBuyout, 1e-9)

	s.True(s.data.KickoutUpdate(s.testTime.Add(6 * time.Second)))
	s.InDelta(100.0*25/30, s.data.CurrentKickoutBuyout, 1e-9)

	s.True(s.data.KickoutUpdate(s.testTime.Add(29 * time.Second)))
	s.InDelta(100.0*5/30, s.data.CurrentKickoutBuyout, 1e-9)
}

func (s *CommonDataTestSuite) TestCalculateBuyout_NeverNegative() {
	s.data.RealGains = -40
	s.data.ExpectedGains = 10
	s.data.Kickout(s.testTime)

	s.True(s.data.KickoutUpdate(s.testTime.Add(time.Second)))
	s.Equal(0.0, s.data.CurrentKickoutBuyout)
}

func (s *CommonDataTestSuite) TestResetKickout() {
	s.data.Suspicion = 0.8
	s.data.ExpectedGains = 3
	s.data.RealGains = 40
	s.data.ExpectedWins = 2
	s.data.RealWins = 4

	s.data.ResetKickout()

	s.Equal(0.0, s.data.Suspicion)
	s.Equal(0.0, s.data.ExpectedGains)
	s.Equal(0.0, s.data.RealGains)
	s.Equal(0.0, s.data.ExpectedWins)
	s.Equal(0.0, s.data.RealWins)
}

func (s *CommonDataTestSuite) TestEndKickout() {
	s.data.RealGains = 20
	s.data.Suspicion = 0.9
	s.data.Kickout(s.testTime)

	s.data.EndKickout()

	s.False(s.data.IsKickedOut())
	s.Equal(0.0, s.data.CurrentKickoutBuyout)
	s.Equal(time.Duration(0), s.data.KickoutRemaining)
	s.Equal(0.0, s.data.Suspicion)
	s.Equal(0.0, s.data.RealGains)
}

func (s *CommonDataTestSuite) TestBetTimeRemaining() {
	_, ok := s.data.BetTimeRemaining(s.testTime, 30*time.Second)
	s.False(ok)

	start := s.testTime
	s.data.BetStart = &start

	remaining, ok := s.data.BetTimeRemaining(start.Add(10*time.Second), 30*time.Second)
	s.True(ok)
	s.Equal(20.0, remaining)

	remaining, ok = s.data.BetTimeRemaining(start.Add(45*time.Second), 30*time.Second)
	s.True(ok)
	s.Equal(0.0, remaining)
}
