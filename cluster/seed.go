package cluster

import (
	"math"

	"github.com/gasparian/frechet-search-go/item"
)

// seed runs k-means++ over the dataset: the first centroid uniform,
// every next one sampled proportionally to the squared distance to the
// nearest chosen centroid, via normalized prefix sums and binary
// search. The sampler consumes the driver's own seeded stream so runs
// repeat exactly.
func (d *Driver) seed() error {
	n := d.ds.Size()
	first := d.rnd.Intn(n)

	dmin := make([]float64, n)
	nearest := make([]int, n)
	for i := range dmin {
		dmin[i] = math.MaxFloat64
		nearest[i] = -1
	}
	dmin[first] = 0
	nearest[first] = first

	d.centroids = make([]item.Item, 0, d.cfg.K)
	d.centroids = append(d.centroids, copyAsCentroid(0, d.ds.At(first)))
	isCentroid := make([]bool, n)
	isCentroid[first] = true

	for t := 1; t < d.cfg.K; t++ {
		// refresh the min distances against the newest centroid only
		last := d.centroids[t-1]
		maxD := 0.0
		nonCentroid := make([]int, 0, n-t)
		for i := 0; i < n; i++ {
			if isCentroid[i] {
				continue
			}
			dist, err := d.dist(last, d.ds.At(i))
			if err != nil {
				return err
			}
			if dist < dmin[i] {
				dmin[i] = dist
				nearest[i] = t - 1
			}
			if dmin[i] > maxD {
				maxD = dmin[i]
			}
			nonCentroid = append(nonCentroid, i)
		}

		var pick int
		if maxD == 0 {
			// every remaining point duplicates a centroid; fall back to
			// a uniform draw
			pick = nonCentroid[d.rnd.Intn(len(nonCentroid))]
		} else {
			// prefix sums over (D_i / maxD)^2 keep the partial sums small
			prefix := make([]float64, len(nonCentroid)+1)
			for i, idx := range nonCentroid {
				w := dmin[idx] / maxD
				prefix[i+1] = prefix[i] + w*w
			}
			x := d.rnd.Float64() * prefix[len(prefix)-1]
			if x == 0 {
				x = prefix[len(prefix)-1]
			}
			r, err := searchPrefix(prefix, x)
			if err != nil {
				return err
			}
			pick = nonCentroid[r-1]
		}

		d.centroids = append(d.centroids, copyAsCentroid(t, d.ds.At(pick)))
		isCentroid[pick] = true
		dmin[pick] = 0
		nearest[pick] = t
	}
	return nil
}
