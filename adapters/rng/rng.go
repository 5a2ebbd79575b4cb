package rng

import (
	"math/rand"
)

// Adapter provides deterministic random number streams for simulation runs
type Adapter struct{}

// New creates a new RNG adapter
func New() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(name string, seed int64) *rand.Rand {
	derived := seed
	if name != "" {
		derived += int64(hashString(name))
	}
	return rand.New(rand.NewSource(derived))
}

// IterationStream creates the generator for a single sampling iteration.
// The derivation depends only on the base seed and the iteration ordinal,
// so iteration k draws the same values no matter which worker executes it
// or in what order iterations are scheduled.
func (a *Adapter) IterationStream(baseSeed int64, iteration int) *rand.Rand {
	return rand.New(rand.NewSource(mixSeed(baseSeed, int64(iteration))))
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}

// mixSeed folds an iteration ordinal into the base seed with a splitmix64
// round so consecutive iterations land far apart in the source state space.
func mixSeed(seed, n int64) int64 {
	z := uint64(seed) + uint64(n)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}
