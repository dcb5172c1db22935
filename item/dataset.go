package item

import (
	"errors"
	"fmt"

	guuid "github.com/google/uuid"
)

var (
	ErrNoItems    = errors.New("dataset must contain at least one item")
	ErrMixedKinds = errors.New("dataset items must be of a single kind")
	ErrMixedDims  = errors.New("dataset vectors must share one dimensionality")
)

// Dataset is an ordered, read-only collection of items. It owns the
// items; indices and clusters hold shared references into it.
type Dataset struct {
	items       []Item
	dim         int
	maxCurveLen int
}

// NewDataset validates and wraps the given items. Items with an empty
// name get a generated uuid name so that identity stays unique.
func NewDataset(items []Item) (*Dataset, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	ds := &Dataset{items: items}
	for i, it := range items {
		switch v := it.(type) {
		case *Vector:
			if v.name == "" {
				v.name = guuid.NewString()
			}
			if ds.dim == 0 {
				ds.dim = v.Dim()
			} else if ds.dim != v.Dim() {
				return nil, fmt.Errorf("item %q: %w", v.name, ErrMixedDims)
			}
			if ds.maxCurveLen > 0 {
				return nil, ErrMixedKinds
			}
		case *Curve:
			if v.name == "" {
				v.name = guuid.NewString()
			}
			if v.Len() > ds.maxCurveLen {
				ds.maxCurveLen = v.Len()
			}
			if ds.dim > 0 {
				return nil, ErrMixedKinds
			}
		default:
			return nil, fmt.Errorf("item %d: unknown item kind", i)
		}
	}
	return ds, nil
}

func (ds *Dataset) Size() int {
	return len(ds.items)
}

func (ds *Dataset) At(i int) Item {
	return ds.items[i]
}

// Dim returns the vector dimensionality, 0 for curve datasets.
func (ds *Dataset) Dim() int {
	return ds.dim
}

// MaxCurveLen returns the longest curve length, 0 for vector datasets.
func (ds *Dataset) MaxCurveLen() int {
	return ds.maxCurveLen
}
