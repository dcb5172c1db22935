// Package metric holds the distance kernels shared by the indices and
// the clustering driver. All functions are pure and take items by
// reference.
package metric

import (
	"errors"
	"fmt"

	"github.com/gasparian/frechet-search-go/item"
)

var (
	ErrDimensionMismatch = errors.New("vector dimensions do not match")
	ErrWrongKind         = errors.New("metric got an item of the wrong kind")
)

// Distance measures two items of the same kind.
type Distance func(a, b item.Item) (float64, error)

func vectorPair(a, b item.Item) (*item.Vector, *item.Vector, error) {
	av, ok := a.(*item.Vector)
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", a.Name(), ErrWrongKind)
	}
	bv, ok := b.(*item.Vector)
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", b.Name(), ErrWrongKind)
	}
	return av, bv, nil
}

func curvePair(a, b item.Item) (*item.Curve, *item.Curve, error) {
	ac, ok := a.(*item.Curve)
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", a.Name(), ErrWrongKind)
	}
	bc, ok := b.(*item.Curve)
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", b.Name(), ErrWrongKind)
	}
	return ac, bc, nil
}
