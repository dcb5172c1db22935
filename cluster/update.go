package cluster

import (
	"github.com/gasparian/frechet-search-go/config"
	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
	"gonum.org/v1/gonum/blas/blas64"
)

// update replaces every centroid with its cluster mean and reports
// convergence: the mean centroid deviation under the threshold of the
// update method, or the iteration cap reached. Empty clusters keep
// their centroid and contribute nothing to the deviation.
func (d *Driver) update() (bool, error) {
	avgDev := 0.0
	for i, cl := range d.clusters {
		if len(cl) == 0 {
			continue
		}
		var mean item.Item
		if d.cfg.Update == config.UpdateMeanFrechet {
			mean = d.meanCurve(i, cl)
		} else {
			mean = d.meanVector(i, cl)
		}
		dev, err := d.dist(mean, d.centroids[i])
		if err != nil {
			return false, err
		}
		avgDev += dev / float64(d.cfg.K)
		d.centroids[i] = mean
	}
	d.avgDeviation = avgDev
	d.iterations++
	d.log.Debugf("iteration %d: avg deviation %f", d.iterations, avgDev)

	if d.iterations >= d.cfg.MaxIterations {
		return true, nil
	}
	eps := d.cfg.EpsVector
	if d.cfg.Update == config.UpdateMeanFrechet {
		eps = d.cfg.EpsFrechet
	}
	return avgDev < eps, nil
}

// meanVector is the componentwise arithmetic mean of the cluster.
func (d *Driver) meanVector(i int, cl []item.Item) item.Item {
	dim := cl[0].(*item.Vector).Dim()
	acc := metric.NewVec(make([]float64, dim))
	weight := 1.0 / float64(len(cl))
	for _, it := range cl {
		blas64.Axpy(weight, metric.NewVec(it.(*item.Vector).Coords()), acc)
	}
	return item.NewVector(centroidName(i), acc.Data)
}

// meanCurve collapses the cluster's complete binary tree into the
// Fréchet mean curve.
func (d *Driver) meanCurve(i int, cl []item.Item) item.Item {
	curves := make([]*item.Curve, len(cl))
	for j, it := range cl {
		curves[j] = it.(*item.Curve)
	}
	capLen := d.cfg.MeanCurveCap
	if maxLen := d.ds.MaxCurveLen(); capLen > maxLen {
		// mean curves double as index queries, so they must flatten
		// into the same fixed-length vectors as the dataset
		capLen = maxLen
	}
	return newCBTree(curves, capLen).root(centroidName(i))
}
