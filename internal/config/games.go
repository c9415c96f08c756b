package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/KirkDiggler/improbability/internal/games"
	"github.com/KirkDiggler/improbability/internal/games/cointoss"
	"gopkg.in/yaml.v3"
)

// Entropy modes for the coin toss
const (
	EntropyFixed   = "fixed"
	EntropyOutcome = "outcome"
)

// Catalog is the YAML game catalog. Every field is optional.
type Catalog struct {
	CoinToss CoinTossConfig `yaml:"coin_toss"`
}

// CoinTossConfig overrides the coin toss defaults. Unset fields keep the default.
type CoinTossConfig struct {
	BetMin             *float64               `yaml:"bet_min"`
	BetMax             *float64               `yaml:"bet_max"`
	BasePayout         *float64               `yaml:"base_payout"`
	HeadsChance        *float64               `yaml:"heads_chance"`
	KickoutLength      *time.Duration         `yaml:"kickout_length"`
	BuyoutFactor       *float64               `yaml:"buyout_factor"`
	PayoutReduction    *float64               `yaml:"payout_reduction"`
	Suspicion          *games.SuspicionPolicy `yaml:"suspicion"`
	StartBetDelay      *time.Duration         `yaml:"start_bet_delay"`
	SkipStartAnimation *bool                  `yaml:"skip_start_animation"`
	BetDuration        *time.Duration         `yaml:"bet_duration"`

	// Entropy is "fixed" (EntropyBits per bet) or "outcome" (-log2 of the outcome's probability)
	Entropy     string   `yaml:"entropy"`
	EntropyBits *float64 `yaml:"entropy_bits"`
}

// LoadCatalog reads the catalog at path. An empty path returns the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return &Catalog{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game catalog: %w", err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse game catalog %s: %w", path, err)
	}

	return catalog, nil
}

// ParseCatalog decodes a YAML catalog and validates it. Unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	// Validate by building once
	if _, err := catalog.CoinToss.Build(); err != nil {
		return nil, err
	}

	return &catalog, nil
}

// Build merges the overrides onto cointoss.DefaultConfig
func (c *CoinTossConfig) Build() (*cointoss.Config, error) {
	cfg := cointoss.DefaultConfig()

	setFloat(&cfg.Game.BetMin, c.BetMin)
	setFloat(&cfg.Game.BetMax, c.BetMax)
	setFloat(&cfg.Game.BasePayout, c.BasePayout)
	setFloat(&cfg.HeadsChance, c.HeadsChance)
	setFloat(&cfg.Game.BuyoutFactor, c.BuyoutFactor)
	if c.PayoutReduction != nil {
		reduction := *c.PayoutReduction
		cfg.Game.PayoutReduction = &reduction
	}
	setDuration(&cfg.Game.KickoutLengthMax, c.KickoutLength)
	setDuration(&cfg.StartBetDelay, c.StartBetDelay)
	setDuration(&cfg.BetDuration, c.BetDuration)

	if c.SkipStartAnimation != nil {
		cfg.SkipStartAnimation = *c.SkipStartAnimation
	}

	if c.Suspicion != nil {
		if c.Suspicion.Reflip < 0 || c.Suspicion.Select < 0 {
			return nil, fmt.Errorf("%w: suspicion rises cannot be negative", games.ErrInvalidConfig)
		}
		policy := *c.Suspicion
		cfg.Game.Suspicion = &policy
	}

	switch c.Entropy {
	case "", EntropyFixed:
		bits := 1.0
		if c.EntropyBits != nil {
			bits = *c.EntropyBits
		}
		if bits < 0 {
			return nil, fmt.Errorf("%w: entropy bits %v is negative", games.ErrInvalidConfig, bits)
		}
		cfg.Entropy = cointoss.FixedEntropy(bits)
	case EntropyOutcome:
		cfg.Entropy = cointoss.OutcomeEntropy
	default:
		return nil, fmt.Errorf("%w: unknown entropy mode %q", games.ErrInvalidConfig, c.Entropy)
	}

	// cointoss.New rejects whatever the merge left invalid
	if _, err := cointoss.New(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *time.Duration) {
	if v != nil {
		*dst = *v
	}
}
