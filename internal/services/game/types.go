package game

import (
	"time"

	"github.com/KirkDiggler/improbability/internal/common/clock"
	"github.com/KirkDiggler/improbability/internal/common/uuid"
	"github.com/KirkDiggler/improbability/internal/dice"
	"github.com/KirkDiggler/improbability/internal/games/cointoss"
	"github.com/KirkDiggler/improbability/internal/models"
	betLedgerRepo "github.com/KirkDiggler/improbability/internal/repositories/bet_ledger"
	saveRepo "github.com/KirkDiggler/improbability/internal/repositories/save"
	"github.com/rs/zerolog"
)

// Location is where in the machine a player currently is
type Location string

const (
	// LocationMenu is the game menu between minigames
	LocationMenu Location = "menu"

	// LocationCoinToss is the coin toss table
	LocationCoinToss Location = "coin_toss"
)

// Config holds configuration for the game service
type Config struct {
	// CoinToss configures the coin toss, cointoss.DefaultConfig when nil
	CoinToss *cointoss.Config

	// Repository dependencies
	SaveRepo saveRepo.Repository

	// BetLedgerRepo records resolved bets, optional
	BetLedgerRepo betLedgerRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	Logger zerolog.Logger
}

// Snapshot is the state of a player's session after a call
type Snapshot struct {
	PlayerID   string
	PlayerName string

	// Money is in pence
	Money        float64
	Entropy      float64
	EntropyCap   float64
	MachineLevel float64
	GameLength   time.Duration

	Location Location

	// CoinToss is the coin toss table, always present
	CoinToss *CoinTossSnapshot

	// GameOver is set once the player can no longer cover the minimum bet
	GameOver bool
}

// CoinTossSnapshot is the player-visible state of the coin toss
type CoinTossSnapshot struct {
	State       cointoss.State
	Result      bool
	HeadsChance float64

	CurrentBet float64
	BetMin     float64
	BetMax     float64

	// Payout is the multiplier a win pays right now
	Payout float64

	// StartBetRemaining and BetTimeRemaining are in seconds
	StartBetRemaining float64
	BetTimeRemaining  float64

	KickedOut        bool
	KickoutRemaining time.Duration
	Buyout           float64

	LastResolution *cointoss.Resolution
}

// NewGameInput contains parameters for starting a new game
type NewGameInput struct {
	// PlayerID keys the session and the save
	PlayerID string

	// PlayerName is stored in the save record
	PlayerName string
}

// NewGameOutput contains the result of starting a new game
type NewGameOutput struct {
	Snapshot *Snapshot
}

// LoadGameInput contains parameters for loading a save
type LoadGameInput struct {
	PlayerID string
}

// LoadGameOutput contains the result of loading a save
type LoadGameOutput struct {
	Snapshot *Snapshot
}

// SaveGameInput contains parameters for saving a game
type SaveGameInput struct {
	PlayerID string
}

// SaveGameOutput contains the result of saving a game
type SaveGameOutput struct {
	Snapshot *Snapshot
}

// UpgradeMachineInput contains parameters for upgrading the machine
type UpgradeMachineInput struct {
	PlayerID string

	// Invest is the money offered, in pence
	Invest float64
}

// UpgradeMachineOutput contains the result of upgrading the machine
type UpgradeMachineOutput struct {
	// Levels is the number of machine levels bought
	Levels float64

	Snapshot *Snapshot
}

// EnterCoinTossInput contains parameters for entering the coin toss
type EnterCoinTossInput struct {
	PlayerID string
}

// EnterCoinTossOutput contains the result of entering the coin toss
type EnterCoinTossOutput struct {
	Snapshot *Snapshot
}

// HandleCommandInput contains parameters for handling a command
type HandleCommandInput struct {
	PlayerID string

	// Command is a raw command token such as "place bet 10" or "select heads"
	Command string
}

// HandleCommandOutput contains the result of handling a command
type HandleCommandOutput struct {
	Command *Command

	// Resolutions are the bets closed since the last response that carried them, oldest first
	Resolutions []*cointoss.Resolution

	// BuyoutPaid is set by the buyout command
	BuyoutPaid float64

	// Quit is set when the player left the minigame
	Quit bool

	Snapshot *Snapshot
}

// GetStateInput contains parameters for getting the session state
type GetStateInput struct {
	PlayerID string
}

// GetStateOutput contains the session state
type GetStateOutput struct {
	Resolutions []*cointoss.Resolution
	Snapshot    *Snapshot
}

// PayBuyoutInput contains parameters for paying a kickout buyout
type PayBuyoutInput struct {
	PlayerID string
}

// PayBuyoutOutput contains the result of paying a kickout buyout
type PayBuyoutOutput struct {
	// Paid is the buyout price taken, in pence
	Paid float64

	Resolutions []*cointoss.Resolution
	Snapshot    *Snapshot
}

// GetStatsInput contains parameters for getting a player's stats
type GetStatsInput struct {
	PlayerID string

	// RecentLimit is how many of the latest bets to return, zero for none
	RecentLimit int
}

// GetStatsOutput contains a player's betting history
type GetStatsOutput struct {
	Stats *models.PlayerStats

	// Recent holds the latest bets, oldest first
	Recent []*models.BetRecord
}

// DeleteGameInput contains parameters for deleting a player's save
type DeleteGameInput struct {
	PlayerID string
}

// DeleteGameOutput contains the result of deleting a save
type DeleteGameOutput struct {
	// EndedSession is set when an open session was dropped with the save
	EndedSession bool
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	PlayerID string

	// Save writes the economy before the session is dropped
	Save bool
}

// EndSessionOutput contains the result of ending a session
type EndSessionOutput struct {
	Snapshot *Snapshot
}
