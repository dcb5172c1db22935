package cluster

import (
	"errors"
	"math"
)

var errNotClustered = errors.New("silhouette needs a completed run")

// Silhouette scores the clustering of the last Run: one value per
// cluster plus the overall value appended last. Singleton clusters
// score 0, as does a point whose a and b both vanish.
func (d *Driver) Silhouette() ([]float64, error) {
	if len(d.centroids) == 0 {
		return nil, errNotClustered
	}
	sTotal := 0.0
	totalSize := 0
	out := make([]float64, 0, d.cfg.K+1)

	for i, cl := range d.clusters {
		clEval := 0.0
		totalSize += len(cl)

		for j, it := range cl {
			a := 0.0
			for k, other := range cl {
				if j == k {
					continue
				}
				dist, err := d.dist(it, other)
				if err != nil {
					return nil, err
				}
				a += dist
			}
			if len(cl) > 1 {
				a /= float64(len(cl) - 1)
			}

			// second-closest centroid's cluster supplies b
			second := 0
			minDist := math.MaxFloat64
			for k, c := range d.centroids {
				if k == i {
					continue
				}
				dist, err := d.dist(it, c)
				if err != nil {
					return nil, err
				}
				if dist < minDist {
					minDist = dist
					second = k
				}
			}
			b := 0.0
			for _, other := range d.clusters[second] {
				dist, err := d.dist(it, other)
				if err != nil {
					return nil, err
				}
				b += dist
			}
			if len(d.clusters[second]) > 0 {
				b /= float64(len(d.clusters[second]))
			}

			s := 0.0
			if t := math.Max(a, b); t != 0 {
				s = (b - a) / t
			}
			clEval += s
			sTotal += s
		}

		if len(cl) > 1 {
			clEval /= float64(len(cl) - 1)
		} else {
			clEval = 0
		}
		out = append(out, clEval)
	}
	out = append(out, sTotal/float64(totalSize))
	return out, nil
}
