package cluster

import (
	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
)

// cbTree is a complete binary tree whose leaves are the cluster's
// curves, padded with empty slots up to a power of two. Collapsing it
// post-order yields the mean curve at the root; an empty slot absorbs
// into its sibling unchanged.
type cbTree struct {
	leaves []*item.Curve
	maxLen int
}

func newCBTree(curves []*item.Curve, maxLen int) *cbTree {
	n := 1
	for n < len(curves) {
		n <<= 1
	}
	leaves := make([]*item.Curve, n)
	copy(leaves, curves)
	return &cbTree{leaves: leaves, maxLen: maxLen}
}

func (t *cbTree) root(name string) *item.Curve {
	// rewrap so a single-leaf tree does not hand back the input item
	return item.NewCurve(name, t.collapse(0, len(t.leaves), name).Points())
}

func (t *cbTree) collapse(lo, hi int, name string) *item.Curve {
	if hi-lo == 1 {
		return t.leaves[lo]
	}
	mid := (lo + hi) / 2
	left := t.collapse(lo, mid, name)
	right := t.collapse(mid, hi, name)
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	mean := metric.MeanCurve(name, left, right)
	if mean.Len() > t.maxLen {
		mean = item.NewCurve(name, subsample(mean.Points(), t.maxLen))
	}
	return mean
}

// subsample keeps n uniformly spaced vertices, endpoints included. A
// cap of one keeps just the first vertex; single-point curves are valid
// input, so the cap can legitimately be that small.
func subsample(points []item.Point, n int) []item.Point {
	if len(points) <= n {
		return points
	}
	if n <= 1 {
		return points[:1]
	}
	out := make([]item.Point, n)
	for i := 0; i < n; i++ {
		out[i] = points[i*(len(points)-1)/(n-1)]
	}
	return out
}
