// Package app glues the indices and the clustering driver to external
// I/O: dataset files in, report files out. The core packages stay
// oblivious to formatting.
package app

import (
	"fmt"

	"github.com/gasparian/frechet-search-go/config"
	"github.com/gasparian/frechet-search-go/index"
	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
	"go.uber.org/zap"
)

// App carries one run's parameters and logger.
type App struct {
	Params config.Params
	Log    *zap.SugaredLogger
}

func New(params config.Params, log *zap.SugaredLogger) (*App, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &App{Params: params, Log: log}, nil
}

// Dist resolves the metric of the configured algorithm.
func (a *App) Dist() metric.Distance {
	switch a.Params.Algorithm {
	case config.AlgFrechetDiscrete:
		return metric.DiscreteFrechet
	case config.AlgFrechetContinuous:
		return metric.ContinuousFrechet
	default:
		return metric.Euclidean
	}
}

// annIndex narrows the three index types to the two query shapes the
// search run needs.
type annIndex struct {
	name string
	knn  func(q item.Item, n int) ([]index.Neighbor, error)
	rng  func(q item.Item, r, r2 float64) ([]index.Neighbor, error)
}

// buildIndex constructs the configured index over the whole dataset.
func (a *App) buildIndex(ds *item.Dataset) (*annIndex, error) {
	p := a.Params
	dist := a.Dist()
	tableSize := ds.Size() / 16
	if tableSize < 1 {
		tableSize = 1
	}
	lshCfg := index.LSHConfig{
		Tables:    p.LSHTables,
		Hashes:    p.LSHHashes,
		W:         p.W,
		TableSize: tableSize,
		Dist:      dist,
		Seed:      p.Seeds.Hasher,
	}
	switch {
	case p.Algorithm != config.AlgVector:
		flsh := index.NewFrechetLSH(index.FrechetConfig{
			LSH:      lshCfg,
			Delta:    p.Delta,
			MaxLen:   ds.MaxCurveLen(),
			GridSeed: p.Seeds.Grid,
		})
		for i := 0; i < ds.Size(); i++ {
			flsh.Insert(ds.At(i).(*item.Curve))
		}
		return &annIndex{
			name: "LSH_Frechet",
			knn: func(q item.Item, n int) ([]index.Neighbor, error) {
				return flsh.KNN(q.(*item.Curve), n)
			},
			rng: func(q item.Item, r, r2 float64) ([]index.Neighbor, error) {
				return flsh.Range(q.(*item.Curve), r, r2)
			},
		}, nil
	case p.Assignment == config.AssignHypercube:
		cube := index.NewCube(index.CubeConfig{
			Bits:   p.CubeBits,
			W:      p.W,
			Probes: p.Probes,
			M:      p.M,
			Dist:   dist,
			Seed:   p.Seeds.Hasher,
		}, ds.Dim())
		for i := 0; i < ds.Size(); i++ {
			v := ds.At(i).(*item.Vector)
			cube.Insert(v, v.Coords())
		}
		return &annIndex{
			name: "Hypercube",
			knn: func(q item.Item, n int) ([]index.Neighbor, error) {
				v := q.(*item.Vector)
				return cube.KNN(v, v.Coords(), n)
			},
			rng: func(q item.Item, r, r2 float64) ([]index.Neighbor, error) {
				v := q.(*item.Vector)
				return cube.Range(v, v.Coords(), r, r2)
			},
		}, nil
	default:
		lsh := index.NewLSH(lshCfg, ds.Dim())
		for i := 0; i < ds.Size(); i++ {
			v := ds.At(i).(*item.Vector)
			lsh.Insert(v, v.Coords())
		}
		return &annIndex{
			name: "LSH",
			knn: func(q item.Item, n int) ([]index.Neighbor, error) {
				v := q.(*item.Vector)
				return lsh.KNN(v, v.Coords(), n)
			},
			rng: func(q item.Item, r, r2 float64) ([]index.Neighbor, error) {
				v := q.(*item.Vector)
				return lsh.Range(v, v.Coords(), r, r2)
			},
		}, nil
	}
}

func algorithmLabel(a config.Assignment) string {
	switch a {
	case config.AssignLSH:
		return "Range Search LSH"
	case config.AssignHypercube:
		return "Range Search Hypercube"
	case config.AssignFrechet:
		return "Range Search Frechet"
	default:
		return "Lloyds"
	}
}

func updateLabel(u config.Update) string {
	if u == config.UpdateMeanFrechet {
		return "Mean Frechet"
	}
	return "Mean Vector"
}

func itemLabel(it item.Item) string {
	return fmt.Sprintf("Object %s", it.Name())
}
