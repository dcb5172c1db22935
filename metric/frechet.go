package metric

import (
	"math"

	"github.com/gasparian/frechet-search-go/item"
)

// continuousEps is the bisection tolerance of the continuous Fréchet
// distance; the returned value is within it of the exact distance.
const continuousEps = 1e-4

func pointDist(a, b item.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// frechetTable fills the full O(m*n) dynamic program:
// C[i][j] = max(|p_i - q_j|, min(C[i-1][j], C[i][j-1], C[i-1][j-1])).
// The full table is kept so the optimal traversal can be walked back
// when computing a mean curve.
func frechetTable(p, q []item.Point) [][]float64 {
	m, n := len(p), len(q)
	c := make([][]float64, m)
	for i := range c {
		c[i] = make([]float64, n)
	}
	c[0][0] = pointDist(p[0], q[0])
	for i := 1; i < m; i++ {
		c[i][0] = math.Max(pointDist(p[i], q[0]), c[i-1][0])
	}
	for j := 1; j < n; j++ {
		c[0][j] = math.Max(pointDist(p[0], q[j]), c[0][j-1])
	}
	for i := 1; i < m; i++ {
		for j := 1; j < n; j++ {
			prev := math.Min(c[i-1][j-1], math.Min(c[i-1][j], c[i][j-1]))
			c[i][j] = math.Max(pointDist(p[i], q[j]), prev)
		}
	}
	return c
}

// DiscreteFrechet is the Distance over curve items.
func DiscreteFrechet(a, b item.Item) (float64, error) {
	ac, bc, err := curvePair(a, b)
	if err != nil {
		return 0, err
	}
	c := frechetTable(ac.Points(), bc.Points())
	return c[ac.Len()-1][bc.Len()-1], nil
}

// MeanCurve walks the optimal warping of the discrete Fréchet dynamic
// program backwards and averages matched vertex pairs. The result is
// the Fréchet-optimal-traversal mean used by the mean-curve tree.
func MeanCurve(name string, a, b *item.Curve) *item.Curve {
	p, q := a.Points(), b.Points()
	c := frechetTable(p, q)
	i, j := len(p)-1, len(q)-1
	rev := make([]item.Point, 0, len(p)+len(q))
	for {
		rev = append(rev, item.Point{
			X: (p[i].X + q[j].X) / 2,
			Y: (p[i].Y + q[j].Y) / 2,
		})
		if i == 0 && j == 0 {
			break
		}
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			// step to the predecessor the DP minimized over
			best := c[i-1][j-1]
			bi, bj := i-1, j-1
			if c[i-1][j] < best {
				best = c[i-1][j]
				bi, bj = i-1, j
			}
			if c[i][j-1] < best {
				bi, bj = i, j-1
			}
			i, j = bi, bj
		}
	}
	points := make([]item.Point, len(rev))
	for k := range rev {
		points[k] = rev[len(rev)-1-k]
	}
	return item.NewCurve(name, points)
}

// interval is a parameter range on a free-space cell edge; lo > hi
// means empty.
type interval struct {
	lo float64
	hi float64
}

var emptyInterval = interval{lo: 1, hi: 0}

func (iv interval) empty() bool {
	return iv.lo > iv.hi
}

// freeInterval solves |a - (b + t*(c-b))| <= eps for t in [0, 1]: the
// part of segment b->c within eps of point a.
func freeInterval(a, b, c item.Point, eps float64) interval {
	dx, dy := c.X-b.X, c.Y-b.Y
	fx, fy := b.X-a.X, b.Y-a.Y
	qa := dx*dx + dy*dy
	qb := 2 * (fx*dx + fy*dy)
	qc := fx*fx + fy*fy - eps*eps
	if qa == 0 {
		if qc <= 0 {
			return interval{lo: 0, hi: 1}
		}
		return emptyInterval
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return emptyInterval
	}
	sq := math.Sqrt(disc)
	lo := (-qb - sq) / (2 * qa)
	hi := (-qb + sq) / (2 * qa)
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	if lo > hi {
		return emptyInterval
	}
	return interval{lo: lo, hi: hi}
}

// frechetDecide reports whether the curves admit a monotone traversal
// staying within eps: reachability over the free-space diagram. Both
// curves must have at least two vertices.
func frechetDecide(p, q []item.Point, eps float64) bool {
	m, n := len(p), len(q)
	if pointDist(p[0], q[0]) > eps || pointDist(p[m-1], q[n-1]) > eps {
		return false
	}

	// left[i][j] is the free part of edge {x=i, y in [j, j+1]},
	// bottom[i][j] of edge {y=j, x in [i, i+1]}
	left := make([][]interval, m)
	for i := range left {
		left[i] = make([]interval, n-1)
		for j := range left[i] {
			left[i][j] = freeInterval(p[i], q[j], q[j+1], eps)
		}
	}
	bottom := make([][]interval, m-1)
	for i := range bottom {
		bottom[i] = make([]interval, n)
		for j := range bottom[i] {
			bottom[i][j] = freeInterval(q[j], p[i], p[i+1], eps)
		}
	}

	leftReach := make([][]interval, m)
	for i := range leftReach {
		leftReach[i] = make([]interval, n-1)
		for j := range leftReach[i] {
			leftReach[i][j] = emptyInterval
		}
	}
	bottomReach := make([][]interval, m-1)
	for i := range bottomReach {
		bottomReach[i] = make([]interval, n)
		for j := range bottomReach[i] {
			bottomReach[i][j] = emptyInterval
		}
	}

	// the boundary is traversable only while contiguous from the origin
	for j := 0; j < n-1; j++ {
		iv := left[0][j]
		if iv.empty() || iv.lo > 0 {
			break
		}
		if j > 0 && leftReach[0][j-1].hi < 1 {
			break
		}
		leftReach[0][j] = iv
	}
	for i := 0; i < m-1; i++ {
		iv := bottom[i][0]
		if iv.empty() || iv.lo > 0 {
			break
		}
		if i > 0 && bottomReach[i-1][0].hi < 1 {
			break
		}
		bottomReach[i][0] = iv
	}

	for i := 0; i < m-1; i++ {
		for j := 0; j < n-1; j++ {
			lr := leftReach[i][j]
			br := bottomReach[i][j]
			// entering through the bottom, any free point of the right
			// edge is reachable within the convex cell; entering
			// through the left only points at or above the entry
			if !br.empty() {
				leftReach[i+1][j] = left[i+1][j]
			} else if !lr.empty() {
				iv := left[i+1][j]
				if lo := math.Max(iv.lo, lr.lo); lo <= iv.hi {
					leftReach[i+1][j] = interval{lo: lo, hi: iv.hi}
				}
			}
			if !lr.empty() {
				bottomReach[i][j+1] = bottom[i][j+1]
			} else if !br.empty() {
				iv := bottom[i][j+1]
				if lo := math.Max(iv.lo, br.lo); lo <= iv.hi {
					bottomReach[i][j+1] = interval{lo: lo, hi: iv.hi}
				}
			}
		}
	}
	return leftReach[m-1][n-2].hi >= 1 || bottomReach[m-2][n-1].hi >= 1
}

// ContinuousFrechet computes the continuous Fréchet distance by
// bisecting the free-space decision procedure between the endpoint
// lower bound and the discrete upper bound, to within continuousEps.
func ContinuousFrechet(a, b item.Item) (float64, error) {
	ac, bc, err := curvePair(a, b)
	if err != nil {
		return 0, err
	}
	p, q := ac.Points(), bc.Points()
	c := frechetTable(p, q)
	hi := c[len(p)-1][len(q)-1]
	if len(p) == 1 || len(q) == 1 {
		// a single point against a polyline peaks at a vertex, so the
		// discrete value is already exact
		return hi, nil
	}
	lo := math.Max(pointDist(p[0], q[0]), pointDist(p[len(p)-1], q[len(q)-1]))
	if frechetDecide(p, q, lo) {
		return lo, nil
	}
	for hi-lo > continuousEps {
		mid := (lo + hi) / 2
		if frechetDecide(p, q, mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, nil
}
