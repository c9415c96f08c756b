package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBool_Bounds(t *testing.T) {
	r := New(&Config{Seed: 7})
	for i := 0; i < 100; i++ {
		assert.True(t, r.Bool(1))
		assert.True(t, r.Bool(1.5))
		assert.False(t, r.Bool(0))
		assert.False(t, r.Bool(-1))
	}
}

func TestBool_SeededIsDeterministic(t *testing.T) {
	a := New(&Config{Seed: 42})
	b := New(&Config{Seed: 42})
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Bool(0.5), b.Bool(0.5))
	}
}

func TestBool_Frequency(t *testing.T) {
	r := New(&Config{Seed: 1234})
	const draws = 20000
	hits := 0
	for i := 0; i < draws; i++ {
		if r.Bool(0.3) {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/draws, 0.02)
}
