package economy

import (
	"fmt"
	"math"
)

// Entropy returns the information, in bits, of an outcome with probability p.
// p must be in (0, 1].
func Entropy(p float64) float64 {
	if !(p > 0 && p <= 1) {
		panic(fmt.Sprintf("entropy: probability %v outside (0, 1]", p))
	}
	if p == 1 {
		return 0
	}
	return -math.Log2(p)
}
