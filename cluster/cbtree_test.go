package cluster

import (
	"testing"

	"github.com/gasparian/frechet-search-go/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zigzag(name string, ys ...float64) *item.Curve {
	points := make([]item.Point, len(ys))
	for i, y := range ys {
		points[i] = item.Point{X: float64(i + 1), Y: y}
	}
	return item.NewCurve(name, points)
}

func TestCBTreeSingleCurve(t *testing.T) {
	c := zigzag("c", 1, 5, 2, 4)
	mean := newCBTree([]*item.Curve{c}, 100).root("m")
	assert.Equal(t, "m", mean.Name())
	assert.Equal(t, c.Points(), mean.Points())
}

func TestCBTreeIdenticalCurves(t *testing.T) {
	a := zigzag("a", 1, 5, 2, 4)
	b := zigzag("b", 1, 5, 2, 4)
	mean := newCBTree([]*item.Curve{a, b}, 100).root("m")
	require.Equal(t, a.Len(), mean.Len())
	for i, pt := range mean.Points() {
		assert.InDelta(t, a.Points()[i].X, pt.X, 1e-9)
		assert.InDelta(t, a.Points()[i].Y, pt.Y, 1e-9)
	}
}

func TestCBTreePadsToPowerOfTwo(t *testing.T) {
	curves := []*item.Curve{
		zigzag("a", 0, 0, 0),
		zigzag("b", 2, 2, 2),
		zigzag("c", 4, 4, 4),
	}
	// 3 leaves pad to 4; the empty slot absorbs into its sibling, so
	// the root is mean(mean(a, b), c) = mean(y=1, y=4)
	mean := newCBTree(curves, 100).root("m")
	require.Equal(t, 3, mean.Len())
	for _, pt := range mean.Points() {
		assert.InDelta(t, 2.5, pt.Y, 1e-9)
	}
}

func TestCBTreeCapsMergedLength(t *testing.T) {
	a := zigzag("a", 1, 2, 3, 4, 5, 6, 7, 8)
	b := zigzag("b", 8, 7, 6, 5, 4, 3, 2, 1)
	mean := newCBTree([]*item.Curve{a, b}, 5).root("m")
	assert.LessOrEqual(t, mean.Len(), 5)
}

func TestCBTreeCapOfOne(t *testing.T) {
	// single-point curves make a cap of one legitimate
	a := zigzag("a", 1, 2, 3)
	b := zigzag("b", 3, 2, 1)
	mean := newCBTree([]*item.Curve{a, b}, 1).root("m")
	assert.Equal(t, 1, mean.Len())
}

func TestSubsampleSingleVertex(t *testing.T) {
	points := zigzag("a", 0, 1, 2).Points()
	out := subsample(points, 1)
	require.Len(t, out, 1)
	assert.Equal(t, points[0], out[0])
}

func TestSubsampleKeepsEndpoints(t *testing.T) {
	points := zigzag("a", 0, 1, 2, 3, 4, 5, 6, 7, 8, 9).Points()
	out := subsample(points, 4)
	require.Len(t, out, 4)
	assert.Equal(t, points[0], out[0])
	assert.Equal(t, points[len(points)-1], out[len(out)-1])
}
