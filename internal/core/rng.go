package core

import (
	"math/rand/v2"
	"time"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewTimeRNG creates an RNG seeded from the wall clock.
func NewTimeRNG() *RNG {
	return NewRNG(time.Now().UnixNano())
}

// SeededRNG returns a deterministic RNG for non-zero seeds and a time-seeded
// one for zero.
func SeededRNG(seed int64) *RNG {
	if seed == 0 {
		return NewTimeRNG()
	}
	return NewRNG(seed)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
