package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/improbability/internal/common/clock"
	"github.com/KirkDiggler/improbability/internal/common/uuid"
	"github.com/KirkDiggler/improbability/internal/dice"
	"github.com/KirkDiggler/improbability/internal/economy"
	"github.com/KirkDiggler/improbability/internal/games/cointoss"
	"github.com/KirkDiggler/improbability/internal/models"
	betLedgerRepo "github.com/KirkDiggler/improbability/internal/repositories/bet_ledger"
	saveRepo "github.com/KirkDiggler/improbability/internal/repositories/save"
	"github.com/rs/zerolog"
)

// session is one player's economy and the minigame they own
type session struct {
	playerID string
	economy  *economy.Economy
	coinToss *cointoss.CoinToss
	location Location

	// lastSeen is when game length was last accrued
	lastSeen time.Time

	// unreported holds closed bets no response has carried yet
	unreported []*cointoss.Resolution
}

// takeResolutions hands over the closed bets not yet reported, oldest first
func (sess *session) takeResolutions() []*cointoss.Resolution {
	resolutions := sess.unreported
	sess.unreported = nil
	return resolutions
}

// service implements the Service interface
type service struct {
	coinTossCfg   *cointoss.Config
	saveRepo      saveRepo.Repository
	betLedgerRepo betLedgerRepo.Repository
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SaveRepo == nil {
		return nil, ErrNilSaveRepo
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	coinTossCfg := cfg.CoinToss
	if coinTossCfg == nil {
		coinTossCfg = cointoss.DefaultConfig()
	}

	// Fail on a bad game config now rather than on the first session
	if _, err := cointoss.New(coinTossCfg); err != nil {
		return nil, fmt.Errorf("invalid coin toss config: %w", err)
	}

	return &service{
		coinTossCfg:   coinTossCfg,
		saveRepo:      cfg.SaveRepo,
		betLedgerRepo: cfg.BetLedgerRepo,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger.With().Str("component", "game_service").Logger(),
		sessions:      make(map[string]*session),
	}, nil
}

// NewGame starts a fresh economy for a player, overwriting any old save
func (s *service) NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	econ, err := economy.New(input.PlayerName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if err := s.replaceableLocked(input.PlayerID); err != nil {
		return nil, err
	}

	sess, err := s.newSession(input.PlayerID, econ, now)
	if err != nil {
		return nil, err
	}

	if err := s.saveRepo.SaveEconomy(ctx, &saveRepo.SaveEconomyInput{
		PlayerID: input.PlayerID,
		Economy:  econ,
	}); err != nil {
		return nil, fmt.Errorf("failed to write new save: %w", err)
	}

	// The old save is gone, so is its history
	s.clearHistory(ctx, input.PlayerID)

	s.sessions[input.PlayerID] = sess
	s.logger.Info().
		Str("player_id", input.PlayerID).
		Str("player_name", econ.PlayerName).
		Msg("new game started")

	return &NewGameOutput{
		Snapshot: s.snapshot(sess, now),
	}, nil
}

// LoadGame resumes a player's saved economy
func (s *service) LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if err := s.replaceableLocked(input.PlayerID); err != nil {
		return nil, err
	}

	econ, err := s.saveRepo.LoadEconomy(ctx, &saveRepo.LoadEconomyInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	sess, err := s.newSession(input.PlayerID, econ, now)
	if err != nil {
		return nil, err
	}

	s.sessions[input.PlayerID] = sess
	s.logger.Info().
		Str("player_id", input.PlayerID).
		Str("player_name", econ.PlayerName).
		Float64("money", econ.Money).
		Msg("save loaded")

	return &LoadGameOutput{
		Snapshot: s.snapshot(sess, now),
	}, nil
}

// SaveGame writes the player's economy to the save repository
func (s *service) SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	sess, err := s.advanceLocked(ctx, input.PlayerID, now)
	if err != nil {
		return nil, err
	}

	if err := s.saveLocked(ctx, sess); err != nil {
		return nil, err
	}

	return &SaveGameOutput{
		Snapshot: s.snapshot(sess, now),
	}, nil
}

// UpgradeMachine spends money on machine levels to raise the entropy cap.
// The coin toss minimum bet must still be affordable afterwards.
func (s *service) UpgradeMachine(ctx context.Context, input *UpgradeMachineInput) (*UpgradeMachineOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	sess, err := s.advanceLocked(ctx, input.PlayerID, now)
	if err != nil {
		return nil, err
	}

	if sess.location != LocationMenu {
		return nil, ErrInMinigame
	}

	levels, err := sess.economy.UpgradeMachine(input.Invest, sess.coinToss.Base.BetMin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("player_id", sess.playerID).
		Float64("levels", levels).
		Float64("entropy_cap", sess.economy.EntropyCap()).
		Msg("machine upgraded")

	return &UpgradeMachineOutput{
		Levels:   levels,
		Snapshot: s.snapshot(sess, now),
	}, nil
}

// EnterCoinToss moves the player to the coin toss table
func (s *service) EnterCoinToss(ctx context.Context, input *EnterCoinTossInput) (*EnterCoinTossOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	sess, err := s.advanceLocked(ctx, input.PlayerID, now)
	if err != nil {
		return nil, err
	}

	if s.isGameOver(sess) {
		return nil, ErrGameOver
	}

	sess.location = LocationCoinToss

	// A bet left over from a richer session may no longer be affordable
	base := sess.coinToss.Base
	if !sess.economy.CanAfford(base.CurrentBet) {
		base.CurrentBet = base.BetMin
	}

	return &EnterCoinTossOutput{
		Snapshot: s.snapshot(sess, now),
	}, nil
}

// HandleCommand applies a command token to the active minigame.
// Rejected commands leave the session unchanged apart from the time advance.
func (s *service) HandleCommand(ctx context.Context, input *HandleCommandInput) (*HandleCommandOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	cmd, err := ParseCommand(input.Command)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	sess, err := s.advanceLocked(ctx, input.PlayerID, now)
	if err != nil {
		return nil, err
	}

	if sess.location != LocationCoinToss {
		return nil, ErrNotInMinigame
	}

	output := &HandleCommandOutput{
		Command: cmd,
	}

	coinToss := sess.coinToss
	econ := sess.economy

	switch cmd.Type {
	case CommandPlaceBet:
		err = coinToss.PlaceBet(cmd.Amount, econ)

	case CommandStart:
		err = coinToss.Start(now, econ)

	case CommandFlip:
		err = coinToss.Reflip(econ, s.diceRoller)

	case CommandSelectHeads:
		err = coinToss.Select(true, econ)

	case CommandSelectTails:
		err = coinToss.Select(false, econ)

	case CommandEndBet:
		var res *cointoss.Resolution
		res, err = coinToss.EndBet(now, econ, s.diceRoller)
		if res != nil {
			s.recordResolution(ctx, sess, res)
		}

	case CommandBuyout:
		output.BuyoutPaid, err = s.payBuyoutLocked(sess, now)

	case CommandQuit:
		if err = coinToss.CanQuit(); err == nil {
			sess.location = LocationMenu
			output.Quit = true
		}

	case CommandWait:
	}

	if err != nil {
		s.logger.Debug().
			Str("player_id", sess.playerID).
			Str("command", string(cmd.Type)).
			Err(err).
			Msg("command rejected")
		return nil, err
	}

	output.Resolutions = sess.takeResolutions()
	output.Snapshot = s.snapshot(sess, now)
	return output, nil
}

// GetState advances the player's session to now and returns it
func (s *service) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	sess, err := s.advanceLocked(ctx, input.PlayerID, now)
	if err != nil {
		return nil, err
	}

	return &GetStateOutput{
		Resolutions: sess.takeResolutions(),
		Snapshot:    s.snapshot(sess, now),
	}, nil
}

// PayBuyout pays the current buyout price to end a kickout early
func (s *service) PayBuyout(ctx context.Context, input *PayBuyoutInput) (*PayBuyoutOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	sess, err := s.advanceLocked(ctx, input.PlayerID, now)
	if err != nil {
		return nil, err
	}

	paid, err := s.payBuyoutLocked(sess, now)
	if err != nil {
		return nil, err
	}

	return &PayBuyoutOutput{
		Paid:        paid,
		Resolutions: sess.takeResolutions(),
		Snapshot:    s.snapshot(sess, now),
	}, nil
}

// GetStats returns the player's betting history. It does not need an open session.
func (s *service) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}
	if s.betLedgerRepo == nil {
		return nil, ErrNoBetLedger
	}

	statsOutput, err := s.betLedgerRepo.GetPlayerStats(ctx, &betLedgerRepo.GetPlayerStatsInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	output := &GetStatsOutput{
		Stats:  statsOutput.Stats,
		Recent: []*models.BetRecord{},
	}

	if input.RecentLimit > 0 {
		recordsOutput, err := s.betLedgerRepo.GetBetRecordsForPlayer(ctx, &betLedgerRepo.GetBetRecordsForPlayerInput{
			PlayerID: input.PlayerID,
			Limit:    input.RecentLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get recent bets: %w", err)
		}
		output.Recent = recordsOutput.Records
	}

	return output, nil
}

// EndSession closes the player's session. A bet in progress must be closed first.
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	sess, err := s.advanceLocked(ctx, input.PlayerID, now)
	if err != nil {
		return nil, err
	}

	if err := sess.coinToss.CanQuit(); err != nil {
		return nil, err
	}

	if input.Save {
		if err := s.saveLocked(ctx, sess); err != nil {
			return nil, err
		}
	}

	delete(s.sessions, input.PlayerID)
	s.logger.Info().
		Str("player_id", sess.playerID).
		Bool("saved", input.Save).
		Dur("game_length", sess.economy.GameLength).
		Msg("session ended")

	return &EndSessionOutput{
		Snapshot: s.snapshot(sess, now),
	}, nil
}

// DeleteGame removes the player's save and history and ends any session
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replaceableLocked(input.PlayerID); err != nil {
		return nil, err
	}

	if err := s.saveRepo.DeleteSave(ctx, &saveRepo.DeleteSaveInput{
		PlayerID: input.PlayerID,
	}); err != nil {
		return nil, err
	}

	s.clearHistory(ctx, input.PlayerID)

	_, hadSession := s.sessions[input.PlayerID]
	delete(s.sessions, input.PlayerID)
	s.logger.Info().
		Str("player_id", input.PlayerID).
		Bool("ended_session", hadSession).
		Msg("save deleted")

	return &DeleteGameOutput{
		EndedSession: hadSession,
	}, nil
}

// clearHistory drops the player's bet ledger. A failure is only logged.
func (s *service) clearHistory(ctx context.Context, playerID string) {
	if s.betLedgerRepo == nil {
		return
	}

	if err := s.betLedgerRepo.DeletePlayerRecords(ctx, &betLedgerRepo.DeletePlayerRecordsInput{
		PlayerID: playerID,
	}); err != nil {
		s.logger.Error().
			Str("player_id", playerID).
			Err(err).
			Msg("failed to clear bet history")
	}
}

// newSession wraps an economy with a fresh coin toss table at the menu
func (s *service) newSession(playerID string, econ *economy.Economy, now time.Time) (*session, error) {
	coinToss, err := cointoss.New(s.coinTossCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create coin toss: %w", err)
	}

	return &session{
		playerID: playerID,
		economy:  econ,
		coinToss: coinToss,
		location: LocationMenu,
		lastSeen: now,
	}, nil
}

// replaceableLocked rejects replacing a session whose bet is still open
func (s *service) replaceableLocked(playerID string) error {
	existing, ok := s.sessions[playerID]
	if !ok {
		return nil
	}
	return existing.coinToss.CanQuit()
}

// advanceLocked looks up the session and moves it forward to the clock's now:
// game length accrues and the coin toss catches up on any elapsed timers.
func (s *service) advanceLocked(ctx context.Context, playerID string, now time.Time) (*session, error) {
	if playerID == "" {
		return nil, ErrEmptyPlayerID
	}

	sess, ok := s.sessions[playerID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if elapsed := now.Sub(sess.lastSeen); elapsed > 0 {
		sess.economy.GameLength += elapsed
		sess.lastSeen = now
	}

	res, err := sess.coinToss.Advance(now, sess.economy, s.diceRoller)
	if res != nil {
		s.recordResolution(ctx, sess, res)
	}
	if err != nil {
		// The bet could not commit; the table is back in Hold
		s.logger.Warn().
			Str("player_id", playerID).
			Err(err).
			Msg("coin toss bet was not committed")
	}

	return sess, nil
}

// recordResolution queues a closed bet for the next response, logs it and
// writes it to the ledger
func (s *service) recordResolution(ctx context.Context, sess *session, res *cointoss.Resolution) {
	sess.unreported = append(sess.unreported, res)

	s.logger.Info().
		Str("player_id", sess.playerID).
		Str("game", sess.coinToss.Base.Name).
		Float64("bet", res.Bet).
		Bool("won", res.Won).
		Float64("paid", res.Paid).
		Int("manipulations", res.Manipulations).
		Bool("kicked_out", res.KickedOut).
		Msg("bet resolved")

	if s.betLedgerRepo == nil {
		return
	}

	err := s.betLedgerRepo.AddBetRecord(ctx, &betLedgerRepo.AddBetRecordInput{
		Record: &models.BetRecord{
			ID:            s.uuidGenerator.NewUUID(),
			PlayerID:      sess.playerID,
			GameName:      sess.coinToss.Base.Name,
			Bet:           res.Bet,
			Won:           res.Won,
			Payout:        res.Payout,
			Paid:          res.Paid,
			EntropySpent:  res.EntropySpent,
			Manipulations: res.Manipulations,
			Suspicion:     res.Suspicion,
			KickedOut:     res.KickedOut,
			Timestamp:     res.ClosedAt,
		},
	})
	if err != nil {
		// The bet has already been settled; losing the ledger entry must not undo it
		s.logger.Error().
			Str("player_id", sess.playerID).
			Err(err).
			Msg("failed to record bet")
	}
}

// payBuyoutLocked charges the current buyout and lifts the kickout
func (s *service) payBuyoutLocked(sess *session, now time.Time) (float64, error) {
	price, err := sess.coinToss.Buyout(now, sess.economy)
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("player_id", sess.playerID).
		Float64("price", price).
		Msg("kickout bought out")

	return price, nil
}

func (s *service) saveLocked(ctx context.Context, sess *session) error {
	if err := sess.coinToss.CanQuit(); err != nil {
		return err
	}

	if err := s.saveRepo.SaveEconomy(ctx, &saveRepo.SaveEconomyInput{
		PlayerID: sess.playerID,
		Economy:  sess.economy,
	}); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	s.logger.Info().
		Str("player_id", sess.playerID).
		Float64("money", sess.economy.Money).
		Msg("game saved")
	return nil
}

// isGameOver reports whether the player can no longer cover a bet.
// An open bet may still pay out, so it never counts.
func (s *service) isGameOver(sess *session) bool {
	return sess.coinToss.State == cointoss.StateHold &&
		sess.economy.IsBroke(sess.coinToss.Base.BetMin)
}

func (s *service) snapshot(sess *session, now time.Time) *Snapshot {
	econ := sess.economy
	coinToss := sess.coinToss
	base := coinToss.Base

	return &Snapshot{
		PlayerID:     sess.playerID,
		PlayerName:   econ.PlayerName,
		Money:        econ.Money,
		Entropy:      econ.Entropy,
		EntropyCap:   econ.EntropyCap(),
		MachineLevel: econ.MachineLevel,
		GameLength:   econ.GameLength,
		Location:     sess.location,
		CoinToss: &CoinTossSnapshot{
			State:             coinToss.State,
			Result:            coinToss.Result,
			HeadsChance:       coinToss.HeadsChance,
			CurrentBet:        base.CurrentBet,
			BetMin:            base.BetMin,
			BetMax:            base.BetMax,
			Payout:            base.EffectivePayout(),
			StartBetRemaining: coinToss.StartBetRemaining(now),
			BetTimeRemaining:  coinToss.BetTimeRemaining(now),
			KickedOut:         base.IsKickedOut(),
			KickoutRemaining:  base.KickoutTimeRemaining(now),
			Buyout:            base.CurrentKickoutBuyout,
			LastResolution:    coinToss.LastResolution,
		},
		GameOver: s.isGameOver(sess),
	}
}
