package index

import (
	"github.com/gasparian/frechet-search-go/hashing"
	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
)

// CubeConfig holds the construction-time parameters of the hypercube
// index. Bits is the hypercube dimension, distinct from the vector one.
type CubeConfig struct {
	Bits   int     // k, bucket count is 2^k
	W      float64 // p-stable window width
	Probes int     // max buckets opened per query
	M      int     // max items examined per query
	Dist   metric.Distance
	Seed   uint64
}

// Cube is the random-projection hypercube: one bucket per vertex,
// addressed by concatenating the f(h(x)) bits MSB-first. Queries probe
// vertices in increasing Hamming distance from the query address until
// either budget runs out.
type Cube struct {
	cfg     CubeConfig
	hs      []*hashing.PStable
	fs      []*hashing.BitProjector
	buckets [][]item.Item
	size    int
}

func NewCube(cfg CubeConfig, dims int) *Cube {
	rnd := hashing.NewSource(cfg.Seed)
	c := &Cube{
		cfg:     cfg,
		hs:      make([]*hashing.PStable, cfg.Bits),
		fs:      make([]*hashing.BitProjector, cfg.Bits),
		buckets: make([][]item.Item, 1<<cfg.Bits),
	}
	for i := 0; i < cfg.Bits; i++ {
		c.hs[i] = hashing.NewPStable(dims, cfg.W, rnd)
		c.fs[i] = hashing.NewBitProjector(rnd)
	}
	return c
}

// address encodes the vertex of a vector in the rightmost Bits bits,
// first projector at the MSB.
func (c *Cube) address(vec []float64) int {
	addr := 0
	for i := 0; i < c.cfg.Bits; i++ {
		addr = addr<<1 | int(c.fs[i].Bit(c.hs[i].Hash(vec)))
	}
	return addr
}

func (c *Cube) Insert(it item.Item, vec []float64) {
	addr := c.address(vec)
	c.buckets[addr] = append(c.buckets[addr], it)
	c.size++
}

func (c *Cube) Size() int {
	return c.size
}

type searchMode int

const (
	modeKNN searchMode = iota
	modeRange
)

// cubeAccumulator replaces the opaque heap pointer of the recursive
// probe with an explicit search-mode plus per-mode storage.
type cubeAccumulator struct {
	mode searchMode
	n    int
	heap nnHeap
	r    float64
	r2   float64
	out  []Neighbor
}

type cubeProbe struct {
	mRem      int
	probesRem int
	q         item.Item
	acc       *cubeAccumulator
	err       error
}

// probeShells walks Hamming shells outwards from the query vertex.
// Visit order inside a shell follows the bit recursion below and is
// deterministic for a given query.
func (c *Cube) probeShells(st *cubeProbe, vertex int) {
	for ham := 0; ; ham++ {
		c.visitCombos(st, vertex, uint(1)<<uint(c.cfg.Bits-1), ham)
		if st.err != nil || st.mRem == 0 || st.probesRem == 0 || ham == c.cfg.Bits {
			return
		}
	}
}

// visitCombos opens every vertex at exactly hamRem bit flips below
// currBit, highest bits first.
func (c *Cube) visitCombos(st *cubeProbe, vertex int, currBit uint, hamRem int) {
	if hamRem == 0 {
		c.visitBucket(st, vertex)
		st.probesRem--
		return
	}
	// the current bit can stay unchanged only while enough lower bits
	// remain to place the rest of the flips
	if currBit>>uint(hamRem) != 0 {
		c.visitCombos(st, vertex, currBit>>1, hamRem)
		if st.err != nil || st.mRem == 0 || st.probesRem == 0 {
			return
		}
	}
	c.visitCombos(st, vertex^int(currBit), currBit>>1, hamRem-1)
}

func (c *Cube) visitBucket(st *cubeProbe, vertex int) {
	for _, it := range c.buckets[vertex] {
		d, err := c.cfg.Dist(st.q, it)
		if err != nil {
			st.err = err
			return
		}
		if st.acc.mode == modeKNN {
			pushAtMostN(&st.acc.heap, Neighbor{Dist: d, Item: it}, st.acc.n)
		} else if st.acc.r2 <= d && d < st.acc.r {
			st.acc.out = append(st.acc.out, Neighbor{Dist: d, Item: it})
		}
		st.mRem--
		if st.mRem == 0 {
			return
		}
	}
}

func (c *Cube) run(q item.Item, qvec []float64, acc *cubeAccumulator) error {
	if c.size == 0 {
		return ErrIndexEmpty
	}
	st := &cubeProbe{
		mRem:      c.cfg.M,
		probesRem: c.cfg.Probes,
		q:         q,
		acc:       acc,
	}
	c.probeShells(st, c.address(qvec))
	return st.err
}

// KNN returns up to n nearest candidates within the probe budgets in
// ascending true distance.
func (c *Cube) KNN(q item.Item, qvec []float64, n int) ([]Neighbor, error) {
	acc := &cubeAccumulator{mode: modeKNN, n: n}
	if err := c.run(q, qvec, acc); err != nil {
		return nil, err
	}
	return drainAscending(&acc.heap), nil
}

// Range collects candidates with true distance in [r2, r) within the
// probe budgets.
func (c *Cube) Range(q item.Item, qvec []float64, r, r2 float64) ([]Neighbor, error) {
	acc := &cubeAccumulator{mode: modeRange, r: r, r2: r2}
	if err := c.run(q, qvec, acc); err != nil {
		return nil, err
	}
	return acc.out, nil
}
