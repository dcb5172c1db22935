package hashing

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/stat/distuv"
)

// PStable is the p-stable base hash h(x) = floor((a*x + b) / w) with
// a ~ N(0,1)^d and b uniform in [0, w). It preserves l2 distance in
// expectation. Parameters never change after construction.
type PStable struct {
	a blas64.Vector
	b float64
	w float64
}

func NewPStable(dims int, w float64, rnd *rand.Rand) *PStable {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	coords := make([]float64, dims)
	for i := range coords {
		coords[i] = normal.Rand()
	}
	return &PStable{
		a: newVec(coords),
		b: rnd.Float64() * w,
		w: w,
	}
}

func (h *PStable) Hash(v []float64) int64 {
	dot := blas64.Dot(h.a, newVec(v))
	return int64(math.Floor((dot + h.b) / h.w))
}
