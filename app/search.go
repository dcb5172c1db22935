package app

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gasparian/frechet-search-go/index"
)

// RunSearch builds the configured index over the input dataset and
// answers kNN (and, with radius > 0, range) queries for every query
// item, next to brute force as ground truth. Results go to the output
// file in the report format of the experiments.
func (a *App) RunSearch(inputPath, queryPath, outPath string, n int, radius float64) error {
	ds, err := ParseDataset(inputPath, a.Params.Algorithm)
	if err != nil {
		return err
	}
	queries, err := ParseDataset(queryPath, a.Params.Algorithm)
	if err != nil {
		return err
	}
	a.Log.Infow("datasets loaded", "items", ds.Size(), "queries", queries.Size())

	idx, err := a.buildIndex(ds)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	dist := a.Dist()
	maxAF := 0.0
	var apprTotal, trueTotal time.Duration

	bar := pb.StartNew(queries.Size())
	for qi := 0; qi < queries.Size(); qi++ {
		q := queries.At(qi)
		fmt.Fprintf(w, "Query: %s\n", itemLabel(q))
		fmt.Fprintf(w, "Algorithm: %s\n\n", idx.name)

		apprStart := time.Now()
		appr, err := idx.knn(q, n)
		if err != nil {
			return err
		}
		apprElapsed := time.Since(apprStart)

		trueStart := time.Now()
		exact, err := index.BruteForceKNN(ds, q, n, dist)
		if err != nil {
			return err
		}
		trueElapsed := time.Since(trueStart)

		for i := 0; i < n; i++ {
			if i < len(appr) {
				fmt.Fprintf(w, "Approximate Nearest neighbor-%d : %s\n", i+1, itemLabel(appr[i].Item))
				fmt.Fprintf(w, "distanceApproximate : %g\n", appr[i].Dist)
			}
			if i < len(exact) {
				fmt.Fprintf(w, "True Nearest neighbor-%d : %s\n", i+1, itemLabel(exact[i].Item))
				fmt.Fprintf(w, "distanceTrue : %g\n\n", exact[i].Dist)
			}
			if i < len(appr) && i < len(exact) && exact[i].Dist > 0 {
				if af := appr[i].Dist / exact[i].Dist; af > maxAF {
					maxAF = af
				}
			}
		}
		fmt.Fprintf(w, "tApproximate : %v\n", apprElapsed)
		fmt.Fprintf(w, "tTrue : %v\n\n", trueElapsed)
		apprTotal += apprElapsed
		trueTotal += trueElapsed

		if radius > 0 {
			fmt.Fprintf(w, "R-near neighbors: (R = %g)\n", radius)
			within, err := idx.rng(q, radius, 0)
			if err != nil {
				return err
			}
			for _, nb := range within {
				fmt.Fprintf(w, "%s\n", itemLabel(nb.Item))
			}
		}
		fmt.Fprint(w, "\n\n")
		bar.Increment()
	}
	bar.Finish()

	nq := time.Duration(queries.Size())
	fmt.Fprintf(w, "tApproximateAverage: %v\n", apprTotal/nq)
	fmt.Fprintf(w, "tTrueAverage: %v\n", trueTotal/nq)
	fmt.Fprintf(w, "MAF: %g\n", maxAF)
	return nil
}
