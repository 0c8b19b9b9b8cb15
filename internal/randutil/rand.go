package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every deck shuffle and seating shuffle in a simulation draws from a source
// built here, so a run is reproducible from its seed alone.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged unless it is zero, in which case a time based
// seed is chosen. Callers log the returned value so the run can be replayed.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Derive produces an independent seed for shard i of a run. Shard 0 keeps the
// run seed so a single-worker run matches an unsharded one.
func Derive(seed int64, shard int) int64 {
	if shard == 0 {
		return seed
	}
	return int64(mix(uint64(seed) + uint64(shard)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
