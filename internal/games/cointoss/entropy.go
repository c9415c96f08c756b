package cointoss

import "github.com/KirkDiggler/improbability/internal/economy"

// EntropyFunc computes the entropy a player earns when a bet's outcome is revealed
type EntropyFunc func(c *CoinToss) float64

// FixedEntropy always grants bits, whatever the odds.
// A fair coin reveals exactly -log2(1/2) = 1 bit.
func FixedEntropy(bits float64) EntropyFunc {
	return func(*CoinToss) float64 {
		return bits
	}
}

// OutcomeEntropy grants the information of the realised outcome, -log2(p),
// so unlikely results are worth more.
func OutcomeEntropy(c *CoinToss) float64 {
	p := c.HeadsChance
	if !c.Result {
		p = 1 - p
	}
	if p <= 0 {
		return 0
	}
	return economy.Entropy(p)
}
