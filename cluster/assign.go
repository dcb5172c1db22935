package cluster

import (
	"math"

	"github.com/gasparian/frechet-search-go/config"
	"github.com/gasparian/frechet-search-go/index"
	"github.com/gasparian/frechet-search-go/item"
)

// minInitialRadius floors the first reverse-assignment radius so that
// near-duplicate centroids still make forward progress.
const minInitialRadius = 1e-3

type claim struct {
	dist     float64
	centroid int
}

func (d *Driver) assign() error {
	if d.cfg.Assignment == config.AssignLloyd || d.cfg.K == 1 {
		return d.lloydAssign()
	}
	return d.reverseAssign()
}

func (d *Driver) clearClusters() {
	for i := range d.clusters {
		d.clusters[i] = nil
	}
}

// nearestCentroid scans all K centroids; ties go to the lowest index.
func (d *Driver) nearestCentroid(it item.Item) (int, error) {
	best := 0
	bestDist := math.MaxFloat64
	for j, c := range d.centroids {
		dist, err := d.dist(it, c)
		if err != nil {
			return 0, err
		}
		if dist < bestDist {
			bestDist = dist
			best = j
		}
	}
	return best, nil
}

// lloydAssign rebuilds the clusters by exact nearest centroid.
func (d *Driver) lloydAssign() error {
	d.clearClusters()
	for i := 0; i < d.ds.Size(); i++ {
		it := d.ds.At(i)
		best, err := d.nearestCentroid(it)
		if err != nil {
			return err
		}
		d.clusters[best] = append(d.clusters[best], it)
	}
	return nil
}

func (d *Driver) rangeAround(c item.Item, r, r2 float64, visited map[string]struct{}) ([]index.Neighbor, error) {
	switch d.cfg.Assignment {
	case config.AssignLSH:
		v := c.(*item.Vector)
		return d.lsh.Range(v, v.Coords(), r, r2)
	case config.AssignHypercube:
		v := c.(*item.Vector)
		return d.cube.Range(v, v.Coords(), r, r2)
	default:
		return d.flsh.RangeWithSet(c.(*item.Curve), r, visited)
	}
}

// reverseAssign grows range queries outwards from every centroid,
// doubling the radius each pass. Items claim the closest centroid that
// reached them; a pass that claims nothing new ends the growth and the
// leftovers fall back to exact Lloyd.
func (d *Driver) reverseAssign() error {
	minPair := math.MaxFloat64
	for i := 0; i < d.cfg.K; i++ {
		for j := i + 1; j < d.cfg.K; j++ {
			dist, err := d.dist(d.centroids[i], d.centroids[j])
			if err != nil {
				return err
			}
			if dist < minPair {
				minPair = dist
			}
		}
	}
	r := math.Max(minPair/2, minInitialRadius)
	r2 := 0.0

	claims := make(map[string]claim)
	// the Fréchet variant deduplicates through this persistent set
	// instead of an inner shell radius
	visited := make(map[string]struct{})
	frechet := d.cfg.Assignment == config.AssignFrechet

	for {
		progress := false
		for i, c := range d.centroids {
			found, err := d.rangeAround(c, r, r2, visited)
			if err != nil {
				return err
			}
			for _, nb := range found {
				cl, ok := claims[nb.Item.Name()]
				if !ok {
					claims[nb.Item.Name()] = claim{dist: nb.Dist, centroid: i}
					progress = true
				} else if nb.Dist < cl.dist {
					claims[nb.Item.Name()] = claim{dist: nb.Dist, centroid: i}
				}
			}
		}
		if !progress {
			break
		}
		if !frechet {
			r2 = r
		}
		r *= 2
	}

	d.clearClusters()
	for i := 0; i < d.ds.Size(); i++ {
		it := d.ds.At(i)
		if cl, ok := claims[it.Name()]; ok {
			d.clusters[cl.centroid] = append(d.clusters[cl.centroid], it)
			continue
		}
		best, err := d.nearestCentroid(it)
		if err != nil {
			return err
		}
		d.clusters[best] = append(d.clusters[best], it)
	}
	return nil
}
