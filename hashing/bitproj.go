package hashing

import (
	"golang.org/x/exp/rand"
)

// BitProjector is the hypercube map f from an h-value to {0,1}: a fair
// coin memoized per input, so repeated calls for the same h-value are
// stable for the lifetime of the index.
type BitProjector struct {
	rnd  *rand.Rand
	memo map[int64]uint8
}

func NewBitProjector(rnd *rand.Rand) *BitProjector {
	return &BitProjector{
		rnd:  rnd,
		memo: make(map[int64]uint8),
	}
}

func (f *BitProjector) Bit(h int64) uint8 {
	if b, ok := f.memo[h]; ok {
		return b
	}
	b := uint8(f.rnd.Uint32() & 1)
	f.memo[h] = b
	return b
}
