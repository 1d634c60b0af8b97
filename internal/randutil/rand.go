// Package randutil builds the random sources used for shuffling. Sources are
// not cryptographically secure; they are re-seedable so a game can be replayed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. The same seed
// always yields the same sequence of shuffles.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Seed returns seed unchanged unless it is zero, in which case a seed is
// derived from the wall clock. Callers log the result so a run can be repeated.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Derive returns the seed for the n-th independent game of a run.
func Derive(base int64, n int) int64 {
	return int64(splitmix(uint64(base) + uint64(n)*goldenRatio64))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
