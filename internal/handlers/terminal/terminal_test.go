package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/improbability/internal/games"
	"github.com/KirkDiggler/improbability/internal/games/cointoss"
	"github.com/KirkDiggler/improbability/internal/models"
	saveRepo "github.com/KirkDiggler/improbability/internal/repositories/save"
	"github.com/KirkDiggler/improbability/internal/services/game"
	gameMocks "github.com/KirkDiggler/improbability/internal/services/game/mocks"
	"github.com/KirkDiggler/improbability/internal/services/messaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TerminalTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockGameService *gameMocks.MockService
	messaging       messaging.Service
	out             *bytes.Buffer
	ctx             context.Context

	// Test data
	testTime     time.Time
	testPlayerID string
}

func (s *TerminalTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGameService = gameMocks.NewMockService(s.mockCtrl)

	messagingService, err := messaging.New(&messaging.Config{Seed: 1})
	s.Require().NoError(err)
	s.messaging = messagingService

	s.out = &bytes.Buffer{}
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testPlayerID = "Ada"
}

func (s *TerminalTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTerminalSuite(t *testing.T) {
	suite.Run(t, new(TerminalTestSuite))
}

// run feeds input to a fresh handler and returns everything it printed
func (s *TerminalTestSuite) run(input string) string {
	handler, err := New(&Config{
		GameService:      s.mockGameService,
		MessagingService: s.messaging,
		In:               strings.NewReader(input),
		Out:              s.out,
		Logger:           zerolog.Nop(),
	})
	s.Require().NoError(err)

	s.Require().NoError(handler.Run(s.ctx))
	return s.out.String()
}

func (s *TerminalTestSuite) snapshot() *game.Snapshot {
	return &game.Snapshot{
		PlayerID:     s.testPlayerID,
		PlayerName:   s.testPlayerID,
		Money:        240,
		Entropy:      100,
		EntropyCap:   100,
		MachineLevel: 0,
		Location:     game.LocationMenu,
		CoinToss: &game.CoinTossSnapshot{
			State:       cointoss.StateHold,
			HeadsChance: 0.5,
			CurrentBet:  1,
			BetMin:      1,
			BetMax:      20,
			Payout:      2,
		},
	}
}

func (s *TerminalTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)

	_, err = New(&Config{GameService: s.mockGameService})
	s.Error(err)

	_, err = New(&Config{GameService: s.mockGameService, MessagingService: s.messaging})
	s.Error(err)
}

func (s *TerminalTestSuite) TestNewGameAndPlayBet() {
	menu := s.snapshot()
	table := s.snapshot()
	table.Location = game.LocationCoinToss

	gomock.InOrder(
		s.mockGameService.EXPECT().
			NewGame(gomock.Any(), &game.NewGameInput{
				PlayerID:   s.testPlayerID,
				PlayerName: s.testPlayerID,
			}).
			Return(&game.NewGameOutput{Snapshot: menu}, nil),
		s.mockGameService.EXPECT().
			EnterCoinToss(gomock.Any(), &game.EnterCoinTossInput{PlayerID: s.testPlayerID}).
			Return(&game.EnterCoinTossOutput{Snapshot: table}, nil),
		s.mockGameService.EXPECT().
			HandleCommand(gomock.Any(), &game.HandleCommandInput{
				PlayerID: s.testPlayerID,
				Command:  "place bet 10",
			}).
			Return(&game.HandleCommandOutput{Snapshot: table}, nil),
		s.mockGameService.EXPECT().
			HandleCommand(gomock.Any(), &game.HandleCommandInput{
				PlayerID: s.testPlayerID,
				Command:  "wait",
			}).
			Return(&game.HandleCommandOutput{
				Resolutions: []*cointoss.Resolution{
					{Bet: 10, Won: true, Payout: 2, Paid: 20, ClosedAt: s.testTime},
				},
				Snapshot: table,
			}, nil),
		s.mockGameService.EXPECT().
			HandleCommand(gomock.Any(), &game.HandleCommandInput{
				PlayerID: s.testPlayerID,
				Command:  "quit",
			}).
			Return(&game.HandleCommandOutput{Quit: true, Snapshot: menu}, nil),
		s.mockGameService.EXPECT().
			EndSession(gomock.Any(), &game.EndSessionInput{PlayerID: s.testPlayerID}).
			Return(&game.EndSessionOutput{Snapshot: menu}, nil),
	)

	output := s.run("n\nAda\n1\nplace bet 10\n\nquit\nq\nn\nq\n")

	s.Contains(output, "Heads!")
	s.Contains(output, "Ada wins")
	s.Contains(output, "Place your bet.")
	s.NotContains(output, "Game saved.")
}

func (s *TerminalTestSuite) TestCommandErrorShowsMessage() {
	table := s.snapshot()
	table.Location = game.LocationCoinToss

	s.mockGameService.EXPECT().
		LoadGame(gomock.Any(), &game.LoadGameInput{PlayerID: s.testPlayerID}).
		Return(&game.LoadGameOutput{Snapshot: s.snapshot()}, nil)
	s.mockGameService.EXPECT().
		EnterCoinToss(gomock.Any(), gomock.Any()).
		Return(&game.EnterCoinTossOutput{Snapshot: table}, nil)
	s.mockGameService.EXPECT().
		HandleCommand(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrInvalidCommand)
	s.mockGameService.EXPECT().
		GetState(gomock.Any(), &game.GetStateInput{PlayerID: s.testPlayerID}).
		Return(&game.GetStateOutput{Snapshot: table}, nil)
	s.mockGameService.EXPECT().
		EndSession(gomock.Any(), gomock.Any()).
		Return(&game.EndSessionOutput{}, nil)

	output := s.run("l\nAda\n1\ndance\n")

	s.Contains(output, "Huh?")
}

func (s *TerminalTestSuite) TestCommandErrorShowsClosedBet() {
	table := s.snapshot()
	table.Location = game.LocationCoinToss

	s.mockGameService.EXPECT().
		LoadGame(gomock.Any(), &game.LoadGameInput{PlayerID: s.testPlayerID}).
		Return(&game.LoadGameOutput{Snapshot: s.snapshot()}, nil)
	s.mockGameService.EXPECT().
		EnterCoinToss(gomock.Any(), gomock.Any()).
		Return(&game.EnterCoinTossOutput{Snapshot: table}, nil)
	s.mockGameService.EXPECT().
		HandleCommand(gomock.Any(), &game.HandleCommandInput{
			PlayerID: s.testPlayerID,
			Command:  "flip",
		}).
		Return(nil, games.ErrNoBetInProgress)
	s.mockGameService.EXPECT().
		GetState(gomock.Any(), &game.GetStateInput{PlayerID: s.testPlayerID}).
		Return(&game.GetStateOutput{
			Resolutions: []*cointoss.Resolution{
				{Bet: 10, Won: true, Payout: 2, Paid: 20, ClosedAt: s.testTime},
			},
			Snapshot: table,
		}, nil)
	s.mockGameService.EXPECT().
		EndSession(gomock.Any(), gomock.Any()).
		Return(&game.EndSessionOutput{}, nil)

	output := s.run("l\nAda\n1\nflip\n")

	s.Contains(output, "Ada wins")
}

func (s *TerminalTestSuite) TestLoadGame_NoSave() {
	s.mockGameService.EXPECT().
		LoadGame(gomock.Any(), &game.LoadGameInput{PlayerID: "Bob"}).
		Return(nil, saveRepo.ErrSaveNotFound)

	output := s.run("l\nBob\n")

	s.Contains(output, "No Save: There's no save to load. Start a new game.")
}

func (s *TerminalTestSuite) TestDeleteSave() {
	s.mockGameService.EXPECT().
		DeleteGame(gomock.Any(), &game.DeleteGameInput{PlayerID: s.testPlayerID}).
		Return(&game.DeleteGameOutput{}, nil)

	output := s.run("d\nAda\nn\nd\nAda\ny\nq\n")

	s.Contains(output, "Delete Ada's save and history? (y/n)")
	s.Equal(1, strings.Count(output, "Save deleted."))
}

func (s *TerminalTestSuite) TestDeleteSave_NoSave() {
	s.mockGameService.EXPECT().
		DeleteGame(gomock.Any(), &game.DeleteGameInput{PlayerID: "Bob"}).
		Return(nil, saveRepo.ErrSaveNotFound)

	output := s.run("d\nBob\ny\n")

	s.Contains(output, "No Save")
	s.NotContains(output, "Save deleted.")
}

func (s *TerminalTestSuite) TestUpgradeAndSaveOnLeave() {
	upgraded := s.snapshot()
	upgraded.Money = 40
	upgraded.MachineLevel = 10
	upgraded.EntropyCap = 110

	gomock.InOrder(
		s.mockGameService.EXPECT().
			LoadGame(gomock.Any(), &game.LoadGameInput{PlayerID: s.testPlayerID}).
			Return(&game.LoadGameOutput{Snapshot: s.snapshot()}, nil),
		s.mockGameService.EXPECT().
			UpgradeMachine(gomock.Any(), &game.UpgradeMachineInput{
				PlayerID: s.testPlayerID,
				Invest:   200,
			}).
			Return(&game.UpgradeMachineOutput{Levels: 10, Snapshot: upgraded}, nil),
		s.mockGameService.EXPECT().
			EndSession(gomock.Any(), &game.EndSessionInput{
				PlayerID: s.testPlayerID,
				Save:     true,
			}).
			Return(&game.EndSessionOutput{Snapshot: upgraded}, nil),
	)

	output := s.run("l\nAda\nu\n200\nq\ny\nq\n")

	s.Contains(output, "Gained 10 levels of entropy. Capacity is now 110 b.")
	s.Contains(output, "Machine level: 10")
	s.Contains(output, "Game saved.")
}

func (s *TerminalTestSuite) TestUpgrade_InvalidAmount() {
	s.mockGameService.EXPECT().
		LoadGame(gomock.Any(), gomock.Any()).
		Return(&game.LoadGameOutput{Snapshot: s.snapshot()}, nil)
	s.mockGameService.EXPECT().
		EndSession(gomock.Any(), gomock.Any()).
		Return(&game.EndSessionOutput{}, nil)

	output := s.run("l\nAda\nu\nlots\n")

	s.Contains(output, "Huh?")
}

func (s *TerminalTestSuite) TestGameOverReturnsToMainMenu() {
	broke := s.snapshot()
	broke.Money = 0
	broke.GameOver = true

	s.mockGameService.EXPECT().
		LoadGame(gomock.Any(), gomock.Any()).
		Return(&game.LoadGameOutput{Snapshot: broke}, nil)
	s.mockGameService.EXPECT().
		EndSession(gomock.Any(), &game.EndSessionInput{PlayerID: s.testPlayerID}).
		Return(&game.EndSessionOutput{Snapshot: broke}, nil)

	output := s.run("l\nAda\nq\n")

	s.Contains(output, "Game Over: Ada is down to")
}

func (s *TerminalTestSuite) TestHistory() {
	s.mockGameService.EXPECT().
		LoadGame(gomock.Any(), gomock.Any()).
		Return(&game.LoadGameOutput{Snapshot: s.snapshot()}, nil)
	s.mockGameService.EXPECT().
		GetStats(gomock.Any(), &game.GetStatsInput{
			PlayerID:    s.testPlayerID,
			RecentLimit: recentBets,
		}).
		Return(&game.GetStatsOutput{
			Stats: &models.PlayerStats{
				PlayerID:     s.testPlayerID,
				Bets:         3,
				Wins:         2,
				Kickouts:     1,
				TotalWagered: 30,
				TotalPaid:    40,
			},
			Recent: []*models.BetRecord{
				{
					ID:        "bet-1",
					PlayerID:  s.testPlayerID,
					GameName:  cointoss.GameName,
					Bet:       10,
					Won:       true,
					Timestamp: s.testTime,
				},
			},
		}, nil)
	s.mockGameService.EXPECT().
		EndSession(gomock.Any(), gomock.Any()).
		Return(&game.EndSessionOutput{}, nil)

	output := s.run("l\nAda\nh\n")

	s.Contains(output, "Bets: 3  Wins: 2  Kickouts: 1")
	s.Contains(output, "12:00PM  Coin Toss")
	s.Contains(output, "won")
}

func (s *TerminalTestSuite) TestKickedOutTable() {
	table := s.snapshot()
	table.Location = game.LocationCoinToss
	table.CoinToss.KickedOut = true
	table.CoinToss.KickoutRemaining = 30 * time.Second

	s.mockGameService.EXPECT().
		LoadGame(gomock.Any(), gomock.Any()).
		Return(&game.LoadGameOutput{Snapshot: s.snapshot()}, nil)
	s.mockGameService.EXPECT().
		EnterCoinToss(gomock.Any(), gomock.Any()).
		Return(&game.EnterCoinTossOutput{Snapshot: table}, nil)
	s.mockGameService.EXPECT().
		EndSession(gomock.Any(), gomock.Any()).
		Return(&game.EndSessionOutput{}, nil)

	output := s.run("l\nAda\n1\n")

	s.Contains(output, "You're banned from the Coin Toss table for another 30s. Buyout: free.")
	s.NotContains(output, "Place your bet.")
}

func (s *TerminalTestSuite) TestContextCancelled() {
	handler, err := New(&Config{
		GameService:      s.mockGameService,
		MessagingService: s.messaging,
		In:               strings.NewReader("q\n"),
		Out:              s.out,
		Logger:           zerolog.Nop(),
	})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.ErrorIs(handler.Run(ctx), context.Canceled)
}
