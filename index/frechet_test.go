package index

import (
	"fmt"
	"testing"

	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// jitteredCurves samples curves around a base level: group g sits near
// y = 10*g with small gaussian jitter.
func jitteredCurves(n, length int, group int, seed uint64) []*item.Curve {
	noise := distuv.Normal{Mu: 0, Sigma: 0.2, Src: rand.NewSource(seed)}
	curves := make([]*item.Curve, n)
	for i := range curves {
		points := make([]item.Point, length)
		for j := range points {
			points[j] = item.Point{
				X: float64(j + 1),
				Y: 10*float64(group) + noise.Rand(),
			}
		}
		curves[i] = item.NewCurve(fmt.Sprintf("g%d-%d", group, i), points)
	}
	return curves
}

func buildFrechetLSH(curves []*item.Curve, maxLen int) *FrechetLSH {
	f := NewFrechetLSH(FrechetConfig{
		LSH: LSHConfig{
			Tables: 4, Hashes: 3, W: 6, TableSize: 4,
			Dist: metric.DiscreteFrechet, Seed: 13,
		},
		Delta:    1.0,
		MaxLen:   maxLen,
		GridSeed: 7,
	})
	for _, c := range curves {
		f.Insert(c)
	}
	return f
}

func TestFrechetSnapDropsConsecutiveDuplicates(t *testing.T) {
	f := NewFrechetLSH(FrechetConfig{
		LSH:      LSHConfig{Tables: 1, Hashes: 1, W: 4, TableSize: 2, Dist: metric.DiscreteFrechet, Seed: 1},
		Delta:    10.0,
		MaxLen:   4,
		GridSeed: 3,
	})
	c := item.NewCurve("c", []item.Point{
		{0.1, 0.1}, {0.100001, 0.100001}, {0.1, 0.1}, {25, 25},
	})
	snapped := f.snap(c)
	require.Len(t, snapped, 2)
}

func TestFrechetEmbedShape(t *testing.T) {
	curves := jitteredCurves(1, 5, 0, 3)
	f := buildFrechetLSH(nil, 8)
	vec := f.embed(curves[0])
	require.Len(t, vec, 16)
	// the tail past the snapped vertices is the sentinel
	assert.Equal(t, padCoord, vec[15])
}

func TestFrechetKNNFindsSelf(t *testing.T) {
	curves := append(jitteredCurves(10, 5, 0, 3), jitteredCurves(10, 5, 1, 4)...)
	f := buildFrechetLSH(curves, 5)
	require.Equal(t, 20, f.Size())

	q := curves[3]
	nearest, err := f.KNN(q, 3)
	require.NoError(t, err)
	require.NotEmpty(t, nearest)
	assert.Equal(t, q.Name(), nearest[0].Item.Name())
	assert.Equal(t, 0.0, nearest[0].Dist)
}

func TestFrechetRangeUsesTrueMetric(t *testing.T) {
	curves := append(jitteredCurves(10, 5, 0, 3), jitteredCurves(10, 5, 1, 4)...)
	f := buildFrechetLSH(curves, 5)

	q := curves[0]
	within, err := f.Range(q, 2.0, 0)
	require.NoError(t, err)
	for _, nb := range within {
		d, derr := metric.DiscreteFrechet(q, nb.Item)
		require.NoError(t, derr)
		assert.InDelta(t, d, nb.Dist, 1e-12)
		assert.Less(t, nb.Dist, 2.0)
	}
}

func TestFrechetRangeWithSetPersists(t *testing.T) {
	curves := jitteredCurves(10, 5, 0, 3)
	f := buildFrechetLSH(curves, 5)

	q := curves[0]
	visited := make(map[string]struct{})
	first, err := f.RangeWithSet(q, 5, visited)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := f.RangeWithSet(q, 5, visited)
	require.NoError(t, err)
	assert.Empty(t, second)
}
