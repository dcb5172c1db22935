// Package index holds the randomized search indices: the p-stable LSH
// index over vectors, the random-projection hypercube and the Fréchet
// wrapper that lifts curves into the vector index. Indices are built
// once, hold non-owning references into the dataset and are queried
// from a single goroutine.
package index

import (
	"container/heap"
	"errors"

	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
)

var (
	ErrIndexEmpty = errors.New("query on an index with no inserts")
)

// Neighbor pairs a candidate item with its true distance to the query.
type Neighbor struct {
	Dist float64
	Item item.Item
}

// nnHeap is a max-heap on distance so the worst candidate sits on top.
type nnHeap []Neighbor

func (h nnHeap) Len() int            { return len(h) }
func (h nnHeap) Less(i, j int) bool  { return h[i].Dist > h[j].Dist }
func (h nnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nnHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *nnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// pushAtMostN keeps the heap at no more than n entries, evicting the
// farthest candidate when a closer one arrives.
func pushAtMostN(h *nnHeap, nb Neighbor, n int) {
	if h.Len() < n {
		heap.Push(h, nb)
		return
	}
	if nb.Dist < (*h)[0].Dist {
		heap.Pop(h)
		heap.Push(h, nb)
	}
}

// drainAscending empties the heap into an ascending-distance slice.
func drainAscending(h *nnHeap) []Neighbor {
	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Neighbor)
	}
	return out
}

// BruteForceKNN scans the whole dataset; the facade's search report
// uses it as ground truth next to the approximate indices.
func BruteForceKNN(ds *item.Dataset, q item.Item, n int, dist metric.Distance) ([]Neighbor, error) {
	h := &nnHeap{}
	for i := 0; i < ds.Size(); i++ {
		it := ds.At(i)
		d, err := dist(q, it)
		if err != nil {
			return nil, err
		}
		pushAtMostN(h, Neighbor{Dist: d, Item: it}, n)
	}
	return drainAscending(h), nil
}
