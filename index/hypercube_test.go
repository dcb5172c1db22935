package index

import (
	"testing"

	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCube(items []item.Item, cfg CubeConfig) *Cube {
	dims := items[0].(*item.Vector).Dim()
	c := NewCube(cfg, dims)
	for _, it := range items {
		v := it.(*item.Vector)
		c.Insert(v, v.Coords())
	}
	return c
}

// exhaustiveCube opens every vertex and examines every item, so its
// answers must match brute force exactly.
func exhaustiveCube(items []item.Item) *Cube {
	return buildCube(items, CubeConfig{
		Bits: 3, W: 4, Probes: 1 << 3, M: 1 << 30,
		Dist: metric.Euclidean, Seed: 21,
	})
}

func TestCubeEmptyQuery(t *testing.T) {
	c := NewCube(CubeConfig{Bits: 3, W: 4, Probes: 2, M: 10, Dist: metric.Euclidean, Seed: 1}, 2)
	q := item.NewVector("q", []float64{0, 0})
	_, err := c.KNN(q, q.Coords(), 1)
	assert.ErrorIs(t, err, ErrIndexEmpty)
}

func TestCubeExhaustiveMatchesBruteForce(t *testing.T) {
	items := randomVectors(100, 4, 23)
	ds, err := item.NewDataset(items)
	require.NoError(t, err)
	c := exhaustiveCube(items)
	require.Equal(t, 100, c.Size())

	q := item.NewVector("q", []float64{0.2, -0.1, 0.4, 0})
	approx, err := c.KNN(q, q.Coords(), 5)
	require.NoError(t, err)
	exact, err := BruteForceKNN(ds, q, 5, metric.Euclidean)
	require.NoError(t, err)
	require.Len(t, approx, 5)
	for i := range exact {
		assert.Equal(t, exact[i].Item.Name(), approx[i].Item.Name())
		assert.InDelta(t, exact[i].Dist, approx[i].Dist, 1e-12)
	}
}

func TestCubeExhaustiveRangeRing(t *testing.T) {
	c := exhaustiveCube(plantedLine())
	q := item.NewVector("q", []float64{0})
	within, err := c.Range(q, q.Coords(), 3, 1)
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, nb := range within {
		names[nb.Item.Name()] = true
	}
	assert.Equal(t, map[string]bool{"d1.5": true, "d2.5": true}, names)
}

func TestCubeItemBudget(t *testing.T) {
	items := randomVectors(100, 4, 29)
	c := buildCube(items, CubeConfig{
		Bits: 3, W: 4, Probes: 1 << 3, M: 5,
		Dist: metric.Euclidean, Seed: 31,
	})
	q := item.NewVector("q", []float64{0, 0, 0, 0})
	nearest, err := c.KNN(q, q.Coords(), 100)
	require.NoError(t, err)
	// at most M items may be examined
	assert.LessOrEqual(t, len(nearest), 5)
}

func TestCubeProbeBudget(t *testing.T) {
	items := randomVectors(100, 4, 29)
	exhaustive := exhaustiveCube(items)
	oneBucket := buildCube(items, CubeConfig{
		Bits: 3, W: 4, Probes: 1, M: 1 << 30,
		Dist: metric.Euclidean, Seed: 21,
	})
	q := item.NewVector("q", []float64{0, 0, 0, 0})
	all, err := exhaustive.KNN(q, q.Coords(), 100)
	require.NoError(t, err)
	one, err := oneBucket.KNN(q, q.Coords(), 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(one), len(all))
}

func TestCubeDeterministicProbeOrder(t *testing.T) {
	items := randomVectors(100, 4, 37)
	c := buildCube(items, CubeConfig{
		Bits: 3, W: 4, Probes: 4, M: 40,
		Dist: metric.Euclidean, Seed: 41,
	})
	q := item.NewVector("q", []float64{0.3, 0.1, -0.2, 0})
	first, err := c.KNN(q, q.Coords(), 10)
	require.NoError(t, err)
	second, err := c.KNN(q, q.Coords(), 10)
	require.NoError(t, err)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Item.Name(), second[i].Item.Name())
	}
}
