package hashing

import (
	"golang.org/x/exp/rand"
)

// fingerprintMod is a large prime (2^32 - 5); keeping both factors of
// the modular products below 2^32 means they fit in uint64.
const fingerprintMod uint64 = 4294967291

// Amplified is the amplification g over k base hashes:
// fingerprint(x) = sum(r_i * h_i(x)) mod prime, bucket = fingerprint
// mod table size. The fingerprint is stored with every table entry so
// queries can filter buckets by strict equality.
type Amplified struct {
	hs        []*PStable
	rs        []uint64
	tableSize uint64
}

func NewAmplified(k, dims int, w float64, tableSize int, rnd *rand.Rand) *Amplified {
	g := &Amplified{
		hs:        make([]*PStable, k),
		rs:        make([]uint64, k),
		tableSize: uint64(tableSize),
	}
	for i := 0; i < k; i++ {
		g.hs[i] = NewPStable(dims, w, rnd)
		g.rs[i] = 1 + rnd.Uint64n(fingerprintMod-1)
	}
	return g
}

// Hash returns the bucket for the table of size tableSize and the full
// fingerprint used for strict equality filtering.
func (g *Amplified) Hash(v []float64) (bucket, fingerprint uint64) {
	var acc uint64
	for i, h := range g.hs {
		hv := h.Hash(v) % int64(fingerprintMod)
		if hv < 0 {
			hv += int64(fingerprintMod)
		}
		acc = (acc + g.rs[i]*uint64(hv)%fingerprintMod) % fingerprintMod
	}
	return acc % g.tableSize, acc
}
