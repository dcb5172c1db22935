package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gasparian/frechet-search-go/config"
	"github.com/gasparian/frechet-search-go/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseDatasetVectors(t *testing.T) {
	path := writeTemp(t, "input.txt", "item_a\t1.0\t2.0\nitem_b\t3.0\t4.0\nitem_c\t-1.5\t0.5\n")
	ds, err := ParseDataset(path, config.AlgVector)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Size())
	v := ds.At(1).(*item.Vector)
	assert.Equal(t, "item_b", v.Name())
	assert.Equal(t, []float64{3.0, 4.0}, v.Coords())
}

func TestParseDatasetCurves(t *testing.T) {
	path := writeTemp(t, "input.txt", "series_a\t5\t7\t9\n")
	ds, err := ParseDataset(path, config.AlgFrechetDiscrete)
	require.NoError(t, err)
	c := ds.At(0).(*item.Curve)
	require.Equal(t, 3, c.Len())
	assert.Equal(t, item.Point{X: 2, Y: 7}, c.Points()[1])
}

func TestParseDatasetSkipsBlankLines(t *testing.T) {
	path := writeTemp(t, "input.txt", "item_a\t1.0\t2.0\n\nitem_b\t3.0\t4.0\n")
	ds, err := ParseDataset(path, config.AlgVector)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Size())
}

func TestParseDatasetBadValue(t *testing.T) {
	path := writeTemp(t, "input.txt", "item_a\t1.0\tnope\n")
	_, err := ParseDataset(path, config.AlgVector)
	assert.Error(t, err)
}

func gridInput(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "item_%d\t%g\t%g\n", i, float64(i%8), float64(i/8))
	}
	return sb.String()
}

func TestRunSearchWritesReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	query := filepath.Join(dir, "query.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte(gridInput(32)), 0644))
	require.NoError(t, os.WriteFile(query, []byte("q0\t0.5\t0.5\n"), 0644))

	params := config.Defaults()
	params.Assignment = config.AssignLSH
	a, err := New(params, nil)
	require.NoError(t, err)
	require.NoError(t, a.RunSearch(input, query, out, 3, 2.0))

	report, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(report)
	assert.Contains(t, text, "Query: Object q0")
	assert.Contains(t, text, "Algorithm: LSH")
	assert.Contains(t, text, "True Nearest neighbor-1")
	assert.Contains(t, text, "R-near neighbors")
	assert.Contains(t, text, "MAF:")
}

func TestRunClusteringWritesReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte(gridInput(40)), 0644))

	params := config.Defaults()
	params.K = 2
	params.Assignment = config.AssignLloyd
	params.Update = config.UpdateMeanVector
	a, err := New(params, nil)
	require.NoError(t, err)
	require.NoError(t, a.RunClustering(input, out, true, true))

	report, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(report)
	assert.Contains(t, text, "Algorithm: Assignment --> Lloyds , Update --> Mean Vector")
	assert.Contains(t, text, "CLUSTER-1 {size :")
	assert.Contains(t, text, "clustering_time :")
	assert.Contains(t, text, "Silhouette: [")
	assert.Contains(t, text, "CLUSTER-2 {")
}
