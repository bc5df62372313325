// Package pathops joins, cleans and clips the polylines generated for a
// piece so that each panel can be cut as one outline plus its holes.
package pathops

import (
	"math"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// Tolerance is the endpoint distance under which two paths are joined.
const Tolerance = 0.01

// closeTolerance is used when deciding whether a closed path repeats its
// first point.
const closeTolerance = 1e-9

// Attach appends open paths whose first point equals the last point of
// another open path. Paths are never reversed.
func Attach(paths []model.Path) []model.Path {
	return chainPaths(paths, 0, false)
}

// Stitch joins open paths whose endpoints lie within tol of each other,
// reversing a path when its end meets the chain. A chain that returns to
// its start is closed.
func Stitch(paths []model.Path, tol float64) []model.Path {
	return chainPaths(paths, tol, true)
}

// chainPaths extends each chain from its tail until no unused open path
// connects. Closed paths are passed through in place.
func chainPaths(paths []model.Path, tol float64, reverse bool) []model.Path {
	used := make([]bool, len(paths))
	var out []model.Path

	for start := range paths {
		if used[start] {
			continue
		}
		used[start] = true
		if paths[start].Closed || len(paths[start].Points) == 0 {
			out = append(out, paths[start])
			continue
		}

		chain := append(model.Outline(nil), paths[start].Points...)
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]
			for i, p := range paths {
				if used[i] || p.Closed || len(p.Points) == 0 {
					continue
				}
				if pointsClose(tail, p.Start(), tol) {
					chain = append(chain, p.Points[1:]...)
					used[i] = true
					changed = true
					break
				}
				if reverse && pointsClose(tail, p.End(), tol) {
					for j := len(p.Points) - 2; j >= 0; j-- {
						chain = append(chain, p.Points[j])
					}
					used[i] = true
					changed = true
					break
				}
			}
		}

		closed := false
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tol) {
			chain = chain[:len(chain)-1]
			closed = true
		}
		out = append(out, model.Path{Points: chain, Closed: closed})
	}
	return out
}

// Close marks every path as closed, dropping a last point that repeats the
// first.
func Close(paths []model.Path) []model.Path {
	out := make([]model.Path, len(paths))
	for i, p := range paths {
		pts := p.Points
		if n := len(pts); n > 1 && pointsClose(pts[0], pts[n-1], closeTolerance) {
			pts = pts[:n-1]
		}
		out[i] = model.Path{Points: pts, Closed: true}
	}
	return out
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	if tolerance == 0 {
		return a == b
	}
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}
