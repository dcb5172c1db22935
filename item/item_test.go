package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetVectors(t *testing.T) {
	ds, err := NewDataset([]Item{
		NewVector("a", []float64{0, 1}),
		NewVector("b", []float64{2, 3}),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Size())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, 0, ds.MaxCurveLen())
	assert.Equal(t, "b", ds.At(1).Name())
}

func TestDatasetNamesUnnamedItems(t *testing.T) {
	ds, err := NewDataset([]Item{
		NewVector("", []float64{0, 1}),
		NewVector("", []float64{2, 3}),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ds.At(0).Name())
	assert.NotEmpty(t, ds.At(1).Name())
	assert.NotEqual(t, ds.At(0).Name(), ds.At(1).Name())
}

func TestDatasetRejectsMixedDims(t *testing.T) {
	_, err := NewDataset([]Item{
		NewVector("a", []float64{0, 1}),
		NewVector("b", []float64{2, 3, 4}),
	})
	assert.ErrorIs(t, err, ErrMixedDims)
}

func TestDatasetRejectsMixedKinds(t *testing.T) {
	_, err := NewDataset([]Item{
		NewVector("a", []float64{0, 1}),
		NewCurve("b", []Point{{0, 0}, {1, 1}}),
	})
	assert.ErrorIs(t, err, ErrMixedKinds)
}

func TestDatasetRejectsEmpty(t *testing.T) {
	_, err := NewDataset(nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestDatasetCurves(t *testing.T) {
	ds, err := NewDataset([]Item{
		NewCurve("a", []Point{{1, 0}, {2, 1}}),
		NewCurve("b", []Point{{1, 2}, {2, 0}, {3, 1}}),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.MaxCurveLen())
	assert.Equal(t, 0, ds.Dim())
}

func TestSeriesToCurve(t *testing.T) {
	c := SeriesToCurve("s", []float64{5, 7, 9})
	require.Equal(t, 3, c.Len())
	assert.Equal(t, Point{X: 1, Y: 5}, c.Points()[0])
	assert.Equal(t, Point{X: 3, Y: 9}, c.Points()[2])
}

func TestEqualIsIdentity(t *testing.T) {
	a := NewVector("a", []float64{0})
	a2 := NewVector("a", []float64{42})
	b := NewVector("b", []float64{0})
	assert.True(t, a.Equal(a2))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(NewCurve("a", nil)))
}
