package metric

import (
	"fmt"

	"github.com/gasparian/frechet-search-go/item"
	"gonum.org/v1/gonum/blas/blas64"
)

// NewVec wraps a float64 slice as a blas vector.
func NewVec(data []float64) blas64.Vector {
	if data == nil {
		data = make([]float64, 0)
	}
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

// L2 calculates l2-distance between two coordinate slices.
func L2(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	diff := make([]float64, len(b))
	copy(diff, b)
	res := NewVec(diff)
	blas64.Axpy(-1.0, NewVec(a), res)
	return blas64.Nrm2(res), nil
}

// Euclidean is the Distance over vector items.
func Euclidean(a, b item.Item) (float64, error) {
	av, bv, err := vectorPair(a, b)
	if err != nil {
		return 0, err
	}
	return L2(av.Coords(), bv.Coords())
}
