package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPrefix(t *testing.T) {
	p := []float64{0, 1, 3, 6}

	r, err := searchPrefix(p, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 2, r)

	r, err = searchPrefix(p, 6)
	require.NoError(t, err)
	assert.Equal(t, 3, r)

	r, err = searchPrefix(p, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1, r)

	r, err = searchPrefix(p, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r)
}

func TestSearchPrefixOutOfRange(t *testing.T) {
	p := []float64{0, 1, 3, 6}
	_, err := searchPrefix(p, 0)
	assert.ErrorIs(t, err, ErrSamplerOutOfRange)
	_, err = searchPrefix(p, -1)
	assert.ErrorIs(t, err, ErrSamplerOutOfRange)
	_, err = searchPrefix(p, 6.5)
	assert.ErrorIs(t, err, ErrSamplerOutOfRange)
}
