// Package hashing holds the randomized hash families behind the
// indices: the p-stable base function h, the amplified key g and the
// hypercube bit projector f. Every constructor takes the rng stream it
// consumes, so callers can seed all randomness deterministically.
package hashing

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/blas/blas64"
)

func newVec(data []float64) blas64.Vector {
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

// NewSource builds the rng stream for one randomized component.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
