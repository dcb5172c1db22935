package index

import (
	"github.com/gasparian/frechet-search-go/hashing"
	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
)

// LSHConfig holds the construction-time parameters of the LSH index.
// Once an index is built they never change.
type LSHConfig struct {
	Tables    int     // L, number of hash tables
	Hashes    int     // k, base hashes per amplified key
	W         float64 // p-stable window width
	TableSize int     // bucket count per table, usually floor(N/16)
	Dist      metric.Distance
	Seed      uint64
}

type lshEntry struct {
	fingerprint uint64
	it          item.Item
}

type lshTable struct {
	g       *hashing.Amplified
	buckets [][]lshEntry
}

// LSH is the p-stable LSH index: L tables, each bucketing items by its
// own amplified hash. Entries keep the full fingerprint so queries
// filter bucket collisions by strict equality.
type LSH struct {
	cfg    LSHConfig
	tables []lshTable
	size   int
}

func NewLSH(cfg LSHConfig, dims int) *LSH {
	rnd := hashing.NewSource(cfg.Seed)
	l := &LSH{
		cfg:    cfg,
		tables: make([]lshTable, cfg.Tables),
	}
	for i := range l.tables {
		l.tables[i] = lshTable{
			g:       hashing.NewAmplified(cfg.Hashes, dims, cfg.W, cfg.TableSize, rnd),
			buckets: make([][]lshEntry, cfg.TableSize),
		}
	}
	return l
}

// Insert appends the item to one bucket per table.
func (l *LSH) Insert(it item.Item, vec []float64) {
	for i := range l.tables {
		bucket, fingerprint := l.tables[i].g.Hash(vec)
		l.tables[i].buckets[bucket] = append(l.tables[i].buckets[bucket], lshEntry{
			fingerprint: fingerprint,
			it:          it,
		})
	}
	l.size++
}

func (l *LSH) Size() int {
	return l.size
}

// KNN returns up to n nearest candidates in ascending true distance.
// Fewer than n results is legal when the probed buckets run dry.
func (l *LSH) KNN(q item.Item, qvec []float64, n int) ([]Neighbor, error) {
	if l.size == 0 {
		return nil, ErrIndexEmpty
	}
	h := &nnHeap{}
	seen := make(map[string]struct{})
	for i := range l.tables {
		bucket, fingerprint := l.tables[i].g.Hash(qvec)
		for _, e := range l.tables[i].buckets[bucket] {
			if e.fingerprint != fingerprint {
				continue
			}
			if _, ok := seen[e.it.Name()]; ok {
				continue
			}
			seen[e.it.Name()] = struct{}{}
			d, err := l.cfg.Dist(q, e.it)
			if err != nil {
				return nil, err
			}
			pushAtMostN(h, Neighbor{Dist: d, Item: e.it}, n)
		}
	}
	return drainAscending(h), nil
}

// Range collects every candidate whose true distance lies in [r2, r).
func (l *LSH) Range(q item.Item, qvec []float64, r, r2 float64) ([]Neighbor, error) {
	if l.size == 0 {
		return nil, ErrIndexEmpty
	}
	var out []Neighbor
	seen := make(map[string]struct{})
	for i := range l.tables {
		bucket, fingerprint := l.tables[i].g.Hash(qvec)
		for _, e := range l.tables[i].buckets[bucket] {
			if e.fingerprint != fingerprint {
				continue
			}
			if _, ok := seen[e.it.Name()]; ok {
				continue
			}
			seen[e.it.Name()] = struct{}{}
			d, err := l.cfg.Dist(q, e.it)
			if err != nil {
				return nil, err
			}
			if r2 <= d && d < r {
				out = append(out, Neighbor{Dist: d, Item: e.it})
			}
		}
	}
	return out, nil
}

// RangeWithSet is Range with an external visited set that persists
// across calls: items accepted once are never re-examined, which is how
// the Fréchet clustering grows its radius without an inner shell.
func (l *LSH) RangeWithSet(q item.Item, qvec []float64, r float64, visited map[string]struct{}) ([]Neighbor, error) {
	if l.size == 0 {
		return nil, ErrIndexEmpty
	}
	var out []Neighbor
	for i := range l.tables {
		bucket, fingerprint := l.tables[i].g.Hash(qvec)
		for _, e := range l.tables[i].buckets[bucket] {
			if e.fingerprint != fingerprint {
				continue
			}
			if _, ok := visited[e.it.Name()]; ok {
				continue
			}
			d, err := l.cfg.Dist(q, e.it)
			if err != nil {
				return nil, err
			}
			if d < r {
				visited[e.it.Name()] = struct{}{}
				out = append(out, Neighbor{Dist: d, Item: e.it})
			}
		}
	}
	return out, nil
}
