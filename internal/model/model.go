package model

import (
	"math"
	"strconv"
)

// Point2D represents a 2D coordinate in document units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point2D) Vec() Vec { return Vec{X: p.X, Y: p.Y} }

// Outline is a sequence of 2D points.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area returns the signed shoelace area. Positive means the points run
// clockwise on screen (y down).
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return a / 2
}

// Path is a polyline. Closed paths implicitly connect the last point to the
// first; the first point is not repeated.
type Path struct {
	Points Outline `json:"points"`
	Closed bool    `json:"closed"`
}

// Start returns the first point, or the origin for an empty path.
func (p Path) Start() Point2D {
	if len(p.Points) == 0 {
		return Point2D{}
	}
	return p.Points[0]
}

// End returns the last point, or the origin for an empty path.
func (p Path) End() Point2D {
	if len(p.Points) == 0 {
		return Point2D{}
	}
	return p.Points[len(p.Points)-1]
}

// degenerateTol is the distance and area below which ring geometry is
// treated as collapsed.
const degenerateTol = 1e-9

// Degenerate reports whether the path, taken as a closed ring, encloses no
// area: it has fewer than three distinct points or they all lie on a line.
func (p Path) Degenerate() bool {
	var distinct Outline
	for _, pt := range p.Points {
		dup := false
		for _, q := range distinct {
			if math.Abs(pt.X-q.X) <= degenerateTol && math.Abs(pt.Y-q.Y) <= degenerateTol {
				dup = true
				break
			}
		}
		if !dup {
			distinct = append(distinct, pt)
		}
	}
	return len(distinct) < 3 || math.Abs(p.Points.Area()) <= degenerateTol
}

// Translate shifts the path by dx, dy.
func (p Path) Translate(dx, dy float64) Path {
	return Path{Points: p.Points.Translate(dx, dy), Closed: p.Closed}
}

// SVGData renders the path as an SVG "d" attribute using absolute commands.
func (p Path) SVGData() string {
	if len(p.Points) == 0 {
		return ""
	}
	buf := make([]byte, 0, 16*len(p.Points))
	for i, pt := range p.Points {
		if i == 0 {
			buf = append(buf, 'M', ' ')
		} else {
			buf = append(buf, ' ', 'L', ' ')
		}
		buf = append(buf, FormatFloat(pt.X)...)
		buf = append(buf, ' ')
		buf = append(buf, FormatFloat(pt.Y)...)
	}
	if p.Closed {
		buf = append(buf, ' ', 'Z')
	}
	return string(buf)
}

// Circle is a round hole, used for rack rail mounting points.
type Circle struct {
	Center Point2D `json:"center"`
	Radius float64 `json:"radius"`
}

// FormatFloat writes v with the fewest decimals that round-trip.
func FormatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
