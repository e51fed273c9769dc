package etest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// NewRandForTest returns a pseudorandom source
// seeded from the test name,
// so a failing randomized test reproduces on rerun.
func NewRandForTest(t testing.TB) *rand.Rand {
	// Sha256 output is exactly the chacha8 seed size,
	// and it removes any dependence on the test name length.
	seed := sha256.Sum256([]byte(t.Name()))
	return rand.New(rand.NewChaCha8(seed))
}

// RandomIntsForTest returns n pseudorandom ints in [0, limit),
// derived from a seed based on the test name.
func RandomIntsForTest(t testing.TB, n, limit int) []int {
	r := NewRandForTest(t)

	out := make([]int, n)
	for i := range out {
		out[i] = r.IntN(limit)
	}
	return out
}
