package engine

import "math/rand"

// RNG wraps a math/rand source with deterministic position tracking. Every
// draw consumes exactly one value from the source, so (seed, position)
// fully determines the stream state and a battle can be replayed from a
// recorded point. Never shared between sides; each caller owns its stream.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// IntN returns a random integer in [0, n). n must be positive.
func (r *RNG) IntN(n int) int {
	r.pos++
	return int(r.src.Int63() % int64(n))
}

// Bool returns true with probability 1/2.
func (r *RNG) Bool() bool {
	r.pos++
	return r.src.Int63()&1 == 1
}

// Seed returns the seed this stream started from.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// RestoreRNG creates an RNG and advances it to the given position,
// reproducing the exact stream state.
func RestoreRNG(seed, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	rng.pos = position
	return rng
}
