package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic runs
type RNGPort interface {
	// SeededStream creates a deterministic generator for a named operation
	SeededStream(name string, seed int64) *rand.Rand

	// IterationStream derives an independent generator for one Monte Carlo
	// iteration. The derivation depends only on (baseSeed, iteration), so
	// parallel workers draw identical values regardless of scheduling order.
	IterationStream(baseSeed int64, iteration int) *rand.Rand
}
