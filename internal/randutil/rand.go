// Package randutil provides the random sources used by the engine.
//
// Everything random in a session (seating, first button, deck order) flows
// through a single Source so that a fixed seed reproduces a whole session.
package randutil

import (
	crand "crypto/rand"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the random capability consumed by the engine.
//
// IntN returns a uniformly distributed integer in [0, n) and panics if n <= 0.
// Float64 returns a float in [0, 1). *rand.Rand from math/rand/v2 satisfies
// Source; its bounded integers are unbiased.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewSecure returns a ChaCha8 generator keyed from crypto/rand. Use it for
// real play where sessions must not be reproducible.
func NewSecure() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("randutil: failed to read entropy: " + err.Error())
	}
	return rand.New(rand.NewChaCha8(seed))
}

// Shuffle performs an in-place Fisher-Yates shuffle of n elements using src.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		swap(i, j)
	}
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
