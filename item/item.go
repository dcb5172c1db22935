package item

// Item is an immutable, identified point of a dataset: either a
// d-dimensional vector or a polygonal curve. Identity is the name.
type Item interface {
	Name() string
	Equal(other Item) bool
}

// Point is a single curve vertex in the plane. One-dimensional series
// are lifted to curves with an implicit time axis before construction.
type Point struct {
	X float64
	Y float64
}

// Vector is a fixed-length euclidean point.
type Vector struct {
	name   string
	coords []float64
}

func NewVector(name string, coords []float64) *Vector {
	return &Vector{name: name, coords: coords}
}

func (v *Vector) Name() string {
	return v.name
}

func (v *Vector) Equal(other Item) bool {
	o, ok := other.(*Vector)
	if !ok {
		return false
	}
	return v.name == o.name
}

// Coords returns a shared view of the coordinates; callers must not
// mutate it.
func (v *Vector) Coords() []float64 {
	return v.coords
}

func (v *Vector) Dim() int {
	return len(v.coords)
}

// Curve is a polygonal curve with an ordered vertex sequence.
type Curve struct {
	name   string
	points []Point
}

func NewCurve(name string, points []Point) *Curve {
	return &Curve{name: name, points: points}
}

func (c *Curve) Name() string {
	return c.name
}

func (c *Curve) Equal(other Item) bool {
	o, ok := other.(*Curve)
	if !ok {
		return false
	}
	return c.name == o.name
}

// Points returns a shared view of the vertices; callers must not
// mutate it.
func (c *Curve) Points() []Point {
	return c.points
}

func (c *Curve) Len() int {
	return len(c.points)
}

// SeriesToCurve lifts a one-dimensional series to a curve with the
// implicit time axis 1..n.
func SeriesToCurve(name string, values []float64) *Curve {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{X: float64(i + 1), Y: v}
	}
	return NewCurve(name, points)
}
