// Package annbench measures LSH recall against the ann-benchmarks HDF5
// datasets (train / test / neighbors tables).
package annbench

import (
	"sort"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gasparian/frechet-search-go/config"
	"github.com/gasparian/frechet-search-go/index"
	"github.com/gasparian/frechet-search-go/item"
	"github.com/gasparian/frechet-search-go/metric"
	"gonum.org/v1/hdf5"
)

// PrecisionRecall returns the ratios of relevant predictions over the
// predicted and over the true relevant items.
// Both arrays MUST BE SORTED.
func PrecisionRecall(prediction, groundTruth []int) (float64, float64) {
	valid := 0
	for _, val := range prediction {
		idx := sort.SearchInts(groundTruth, val)
		if idx < len(groundTruth) && groundTruth[idx] == val {
			valid++
		}
	}
	precision := 0.0
	if len(prediction) > 0 {
		precision = float64(valid) / float64(len(prediction))
	}
	recall := float64(valid) / float64(len(groundTruth))
	return precision, recall
}

// FloatsFromHDF5 reads a float32 table as a flat slice.
func FloatsFromHDF5(table *hdf5.File, datasetName string) ([]float32, error) {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()
	vecs := make([]float32, dataset.Space().SimpleExtentNPoints())
	if err := dataset.Read(&vecs); err != nil {
		return nil, err
	}
	return vecs, nil
}

// IntsFromHDF5 reads an int32 table as a flat slice.
func IntsFromHDF5(table *hdf5.File, datasetName string) ([]int32, error) {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()
	vals := make([]int32, dataset.Space().SimpleExtentNPoints())
	if err := dataset.Read(&vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func toVectors(flat []float32, dims int) []item.Item {
	items := make([]item.Item, 0, len(flat)/dims)
	for i := 0; i+dims <= len(flat); i += dims {
		coords := make([]float64, dims)
		for j := 0; j < dims; j++ {
			coords[j] = float64(flat[i+j])
		}
		items = append(items, item.NewVector(strconv.Itoa(len(items)), coords))
	}
	return items
}

// Result aggregates one benchmark run.
type Result struct {
	AvgRecall    float64
	AvgPrecision float64
	AvgQueryTime time.Duration
}

// Bench builds an LSH index over the train table and replays the test
// table against the neighbors ground truth.
func Bench(path string, dims, topN int, params config.Params) (*Result, error) {
	table, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer table.Close()

	trainFlat, err := FloatsFromHDF5(table, "train")
	if err != nil {
		return nil, err
	}
	testFlat, err := FloatsFromHDF5(table, "test")
	if err != nil {
		return nil, err
	}
	gtFlat, err := IntsFromHDF5(table, "neighbors")
	if err != nil {
		return nil, err
	}

	train := toVectors(trainFlat, dims)
	ds, err := item.NewDataset(train)
	if err != nil {
		return nil, err
	}
	queries := toVectors(testFlat, dims)
	gtCols := len(gtFlat) / len(queries)

	tableSize := ds.Size() / 16
	if tableSize < 1 {
		tableSize = 1
	}
	lsh := index.NewLSH(index.LSHConfig{
		Tables:    params.LSHTables,
		Hashes:    params.LSHHashes,
		W:         params.W,
		TableSize: tableSize,
		Dist:      metric.Euclidean,
		Seed:      params.Seeds.Hasher,
	}, dims)
	for i := 0; i < ds.Size(); i++ {
		v := ds.At(i).(*item.Vector)
		lsh.Insert(v, v.Coords())
	}

	res := &Result{}
	bar := pb.StartNew(len(queries))
	var totalElapsed time.Duration
	for qi, q := range queries {
		v := q.(*item.Vector)
		start := time.Now()
		closest, err := lsh.KNN(v, v.Coords(), topN)
		if err != nil {
			return nil, err
		}
		totalElapsed += time.Since(start)

		prediction := make([]int, 0, len(closest))
		for _, nb := range closest {
			id, err := strconv.Atoi(nb.Item.Name())
			if err != nil {
				return nil, err
			}
			prediction = append(prediction, id)
		}
		sort.Ints(prediction)

		groundTruth := make([]int, 0, topN)
		for j := 0; j < topN && j < gtCols; j++ {
			groundTruth = append(groundTruth, int(gtFlat[qi*gtCols+j]))
		}
		sort.Ints(groundTruth)

		precision, recall := PrecisionRecall(prediction, groundTruth)
		res.AvgPrecision += precision
		res.AvgRecall += recall
		bar.Increment()
	}
	bar.Finish()

	nq := float64(len(queries))
	res.AvgPrecision /= nq
	res.AvgRecall /= nq
	res.AvgQueryTime = totalElapsed / time.Duration(len(queries))
	return res, nil
}
