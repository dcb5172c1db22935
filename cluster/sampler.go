package cluster

import (
	"errors"
	"sort"
)

var ErrSamplerOutOfRange = errors.New("weighted search value outside (0, P_last]")

// searchPrefix returns the smallest r with p[r] >= x for a
// non-decreasing prefix-sum array with p[0] = 0. Values outside
// (0, p[last]] are a caller error.
func searchPrefix(p []float64, x float64) (int, error) {
	if x <= 0 || x > p[len(p)-1] {
		return 0, ErrSamplerOutOfRange
	}
	return sort.Search(len(p), func(i int) bool { return p[i] >= x }), nil
}
