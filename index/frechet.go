package index

import (
	"math"

	"github.com/gasparian/frechet-search-go/hashing"
	"github.com/gasparian/frechet-search-go/item"
)

// padCoord is the sentinel coordinate used to pad flattened curves up
// to the fixed vector length. It only needs to sit far away from real
// grid cells so padded tails rarely collide with snapped vertices.
const padCoord = 1e4

// FrechetConfig wraps the inner vector-index parameters with the grid
// snapping ones. LSH.Dist must be a Fréchet metric over curve items.
type FrechetConfig struct {
	LSH      LSHConfig
	Delta    float64 // grid cell width
	MaxLen   int     // longest dataset curve; flattened length is 2*MaxLen
	GridSeed uint64
}

// FrechetLSH answers curve queries by lifting curves into vectors:
// snap to a randomly shifted grid, drop consecutive duplicates, flatten
// and pad, then delegate to a vector LSH index. True distances keep
// using the Fréchet metric on the original curves.
type FrechetLSH struct {
	delta  float64
	tx     float64
	ty     float64
	padLen int
	lsh    *LSH
}

func NewFrechetLSH(cfg FrechetConfig) *FrechetLSH {
	rnd := hashing.NewSource(cfg.GridSeed)
	f := &FrechetLSH{
		delta:  cfg.Delta,
		tx:     rnd.Float64() * cfg.Delta,
		ty:     rnd.Float64() * cfg.Delta,
		padLen: cfg.MaxLen,
	}
	f.lsh = NewLSH(cfg.LSH, 2*cfg.MaxLen)
	return f
}

// snap replaces each vertex by its grid cell anchor under the random
// shift and drops consecutive duplicates.
func (f *FrechetLSH) snap(c *item.Curve) []item.Point {
	points := c.Points()
	out := make([]item.Point, 0, len(points))
	for _, p := range points {
		s := item.Point{
			X: math.Floor((p.X-f.tx)/f.delta)*f.delta + f.tx,
			Y: math.Floor((p.Y-f.ty)/f.delta)*f.delta + f.ty,
		}
		if n := len(out); n > 0 && out[n-1] == s {
			continue
		}
		out = append(out, s)
	}
	return out
}

// embed flattens the snapped curve into the fixed-length query vector,
// padding with the sentinel. Curves longer than the pad target (query
// curves from outside the dataset can be) are truncated to it.
func (f *FrechetLSH) embed(c *item.Curve) []float64 {
	snapped := f.snap(c)
	if len(snapped) > f.padLen {
		snapped = snapped[:f.padLen]
	}
	vec := make([]float64, 2*f.padLen)
	for i, p := range snapped {
		vec[2*i] = p.X
		vec[2*i+1] = p.Y
	}
	for i := 2 * len(snapped); i < len(vec); i++ {
		vec[i] = padCoord
	}
	return vec
}

func (f *FrechetLSH) Insert(c *item.Curve) {
	f.lsh.Insert(c, f.embed(c))
}

func (f *FrechetLSH) Size() int {
	return f.lsh.Size()
}

func (f *FrechetLSH) KNN(q *item.Curve, n int) ([]Neighbor, error) {
	return f.lsh.KNN(q, f.embed(q), n)
}

func (f *FrechetLSH) Range(q *item.Curve, r, r2 float64) ([]Neighbor, error) {
	return f.lsh.Range(q, f.embed(q), r, r2)
}

// RangeWithSet is the primitive the clustering driver grows its radius
// with; deduplication across calls is the caller-owned visited set.
func (f *FrechetLSH) RangeWithSet(q *item.Curve, r float64, visited map[string]struct{}) ([]Neighbor, error) {
	return f.lsh.RangeWithSet(q, f.embed(q), r, visited)
}
