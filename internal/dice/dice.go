package dice

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/improbability/internal/dice Roller

// Roller is the randomness source games draw their outcomes from
type Roller interface {
	// Bool returns true with probability p
	Bool(p float64) bool
}

// DefaultRoller implements Roller on top of math/rand
type DefaultRoller struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &DefaultRoller{
		random: random,
	}
}

// Bool performs a weighted coin draw. p <= 0 never succeeds and p >= 1 always does.
func (r *DefaultRoller) Bool(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.random.Float64() < p
}
