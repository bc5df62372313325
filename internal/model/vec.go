package model

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector in document coordinates (y grows downward).
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(w Vec) Vec { return Vec(r2.Add(r2.Vec(v), r2.Vec(w))) }
func (v Vec) Sub(w Vec) Vec { return Vec(r2.Sub(r2.Vec(v), r2.Vec(w))) }
func (v Vec) Scale(f float64) Vec { return Vec(r2.Scale(f, r2.Vec(v))) }
func (v Vec) Equal(w Vec) bool { return v.X == w.X && v.Y == w.Y }
func (v Vec) Point() Point2D { return Point2D{X: v.X, Y: v.Y} }
func (v Vec) Len() float64 { return r2.Norm(r2.Vec(v)) }
func (v Vec) Dist(w Vec) float64 { return v.Sub(w).Len() }
func (v Vec) Near(w Vec, tol float64) bool { return v.Dist(w) <= tol }

// RotateCW rotates the vector by n quarter turns, mapping (x, y) to (-y, x)
// each step. Components stay exact so axis directions remain unit vectors.
func (v Vec) RotateCW(n int) Vec {
	n = ((n % 4) + 4) % 4
	for i := 0; i < n; i++ {
		v = Vec{X: 0 - v.Y, Y: v.X}
	}
	return v
}

// Round returns the vector with both components rounded to the given
// number of decimals.
func (v Vec) Round(decimals int) Vec {
	p := math.Pow(10, float64(decimals))
	return Vec{X: math.Round(v.X*p) / p, Y: math.Round(v.Y*p) / p}
}

// Bool2Vec builds a vector of 0/1 components.
func Bool2Vec(x, y bool) Vec {
	return Vec{X: b2f(x), Y: b2f(y)}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
