package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gasparian/frechet-search-go/cluster"
	"github.com/gasparian/frechet-search-go/item"
)

// RunClustering drives one clustering run over the input dataset and
// writes the cluster report: sizes and centroids, timing, optional
// silhouette and the complete membership listing.
func (a *App) RunClustering(inputPath, outPath string, complete, silhouette bool) error {
	ds, err := ParseDataset(inputPath, a.Params.Algorithm)
	if err != nil {
		return err
	}
	a.Log.Infow("dataset loaded", "items", ds.Size())

	driver, err := cluster.New(ds, a.Params, a.Dist(), a.Log)
	if err != nil {
		return err
	}
	if err := driver.Run(); err != nil {
		return err
	}
	a.Log.Infow("clustering done",
		"iterations", driver.Iterations(),
		"avg_deviation", driver.AvgDeviation(),
		"elapsed", driver.Elapsed(),
	)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintf(w, "Algorithm: Assignment --> %s , Update --> %s\n",
		algorithmLabel(a.Params.Assignment), updateLabel(a.Params.Update))
	for i, cl := range driver.Clusters() {
		fmt.Fprintf(w, "CLUSTER-%d {size : %d , centroid : %s}\n\n",
			i+1, len(cl), formatCentroid(driver.Centroids()[i]))
	}
	fmt.Fprintf(w, "clustering_time : %v\n\n", driver.Elapsed())

	if silhouette {
		scores, err := driver.Silhouette()
		if err != nil {
			return err
		}
		parts := make([]string, len(scores))
		for i, s := range scores {
			parts[i] = fmt.Sprintf("%g", s)
		}
		fmt.Fprintf(w, "Silhouette: [%s]\n\n", strings.Join(parts, ", "))
	}

	if complete {
		for i, cl := range driver.Clusters() {
			names := make([]string, len(cl))
			for j, it := range cl {
				names[j] = it.Name()
			}
			fmt.Fprintf(w, "CLUSTER-%d {%s}\n\n", i+1, strings.Join(names, ","))
		}
	}
	return nil
}

func formatCentroid(c item.Item) string {
	switch v := c.(type) {
	case *item.Vector:
		parts := make([]string, len(v.Coords()))
		for i, x := range v.Coords() {
			parts[i] = fmt.Sprintf("%g", x)
		}
		return strings.Join(parts, " ")
	case *item.Curve:
		parts := make([]string, len(v.Points()))
		for i, p := range v.Points() {
			parts[i] = fmt.Sprintf("(%g, %g)", p.X, p.Y)
		}
		return strings.Join(parts, " ")
	}
	return ""
}
