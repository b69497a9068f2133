package mind

import "math/rand/v2"

// TickRand derives the random stream for one tick from the simulation seed.
// Re-deriving from (seed, tick) instead of persisting generator state keeps
// snapshots plain data and makes a restored simulation replay the same tick
// identically.
func TickRand(seed, tick int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(tick)))
}
