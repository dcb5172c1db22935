// Package cluster implements the k-means driver: k-means++ seeding,
// exact Lloyd or index-accelerated reverse assignment, and mean-vector
// or mean-curve updates. A driver owns its centroids for one run;
// clusters hold shared references into the dataset and are rebuilt
// every iteration.
package cluster

import (
	"errors"
	"fmt"
	"time"

	"github.com/gasparian/frechet-search-go/config"
	"github.com/gasparian/frechet-search-go/index"
	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	ErrEmptyDataset = errors.New("dataset smaller than the requested cluster count")
)

// Driver runs one clustering from seeding through convergence. It is
// single-threaded; Run occupies the calling goroutine.
type Driver struct {
	ds   *item.Dataset
	cfg  config.Params
	dist metric.Distance
	log  *zap.SugaredLogger
	rnd  *rand.Rand

	centroids    []item.Item
	clusters     [][]item.Item
	iterations   int
	elapsed      time.Duration
	avgDeviation float64

	lsh  *index.LSH
	cube *index.Cube
	flsh *index.FrechetLSH
}

// New validates the configuration against the dataset. A nil logger
// keeps the driver quiet.
func New(ds *item.Dataset, cfg config.Params, dist metric.Distance, log *zap.SugaredLogger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds.Size() < cfg.K {
		return nil, fmt.Errorf("%d items for %d clusters: %w", ds.Size(), cfg.K, ErrEmptyDataset)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Driver{
		ds:   ds,
		cfg:  cfg,
		dist: dist,
		log:  log,
		rnd:  rand.New(rand.NewSource(cfg.Seeds.Seeder)),
	}, nil
}

// Run seeds the centroids and iterates assignment and update until the
// average centroid deviation drops under the configured threshold or
// the iteration cap is hit.
func (d *Driver) Run() error {
	start := time.Now()
	d.iterations = 0
	d.clusters = make([][]item.Item, d.cfg.K)
	if err := d.seed(); err != nil {
		return err
	}
	if err := d.buildIndex(); err != nil {
		return err
	}
	for {
		if err := d.assign(); err != nil {
			return err
		}
		converged, err := d.update()
		if err != nil {
			return err
		}
		if converged {
			break
		}
	}
	d.elapsed = time.Since(start)
	return nil
}

// buildIndex constructs the index backing reverse assignment; Lloyd
// runs need none.
func (d *Driver) buildIndex() error {
	tableSize := d.ds.Size() / 16
	if tableSize < 1 {
		tableSize = 1
	}
	switch d.cfg.Assignment {
	case config.AssignLloyd:
		return nil
	case config.AssignLSH:
		d.lsh = index.NewLSH(index.LSHConfig{
			Tables:    d.cfg.LSHTables,
			Hashes:    d.cfg.LSHHashes,
			W:         d.cfg.W,
			TableSize: tableSize,
			Dist:      d.dist,
			Seed:      d.cfg.Seeds.Hasher,
		}, d.ds.Dim())
		for i := 0; i < d.ds.Size(); i++ {
			v := d.ds.At(i).(*item.Vector)
			d.lsh.Insert(v, v.Coords())
		}
	case config.AssignHypercube:
		d.cube = index.NewCube(index.CubeConfig{
			Bits:   d.cfg.CubeBits,
			W:      d.cfg.W,
			Probes: d.cfg.Probes,
			M:      d.cfg.M,
			Dist:   d.dist,
			Seed:   d.cfg.Seeds.Hasher,
		}, d.ds.Dim())
		for i := 0; i < d.ds.Size(); i++ {
			v := d.ds.At(i).(*item.Vector)
			d.cube.Insert(v, v.Coords())
		}
	case config.AssignFrechet:
		d.flsh = index.NewFrechetLSH(index.FrechetConfig{
			LSH: index.LSHConfig{
				Tables:    d.cfg.LSHTables,
				Hashes:    d.cfg.LSHHashes,
				W:         d.cfg.W,
				TableSize: tableSize,
				Dist:      d.dist,
				Seed:      d.cfg.Seeds.Hasher,
			},
			Delta:    d.cfg.Delta,
			MaxLen:   d.ds.MaxCurveLen(),
			GridSeed: d.cfg.Seeds.Grid,
		})
		for i := 0; i < d.ds.Size(); i++ {
			d.flsh.Insert(d.ds.At(i).(*item.Curve))
		}
	default:
		return fmt.Errorf("assignment %q: %w", d.cfg.Assignment, config.ErrInvalidConfig)
	}
	return nil
}

// Centroids returns the K current centroids.
func (d *Driver) Centroids() []item.Item {
	return d.centroids
}

// Clusters returns the K membership lists of the last iteration.
func (d *Driver) Clusters() [][]item.Item {
	return d.clusters
}

func (d *Driver) Iterations() int {
	return d.iterations
}

func (d *Driver) Elapsed() time.Duration {
	return d.elapsed
}

// AvgDeviation is the mean centroid movement of the last update step.
func (d *Driver) AvgDeviation() float64 {
	return d.avgDeviation
}

func centroidName(i int) string {
	return fmt.Sprintf("centroid-%d", i)
}

// copyAsCentroid clones a dataset item into a centroid the driver owns.
func copyAsCentroid(i int, it item.Item) item.Item {
	switch v := it.(type) {
	case *item.Vector:
		coords := make([]float64, len(v.Coords()))
		copy(coords, v.Coords())
		return item.NewVector(centroidName(i), coords)
	case *item.Curve:
		points := make([]item.Point, len(v.Points()))
		copy(points, v.Points())
		return item.NewCurve(centroidName(i), points)
	}
	return nil
}
