package feature

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
)

// Rnd creates a fresh random source for a single extraction call.
// A source is never shared between calls, so concurrent scoring calls
// neither serialize on a generator nor corrupt its state.
type Rnd func() rand.Source

var seq uint64

// NewSource creates a uniquely seeded random source.
func NewSource() rand.Source {
	return rand.NewSource(uint64(time.Now().UnixNano()) + atomic.AddUint64(&seq, 1))
}

// Seeded fixes the seed, for deterministic sampling in tests.
func Seeded(seed uint64) Rnd {
	return func() rand.Source {
		return rand.NewSource(seed)
	}
}
