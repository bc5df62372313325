package pathops

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	polyclip "github.com/ctessum/polyclip-go"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// ErrDegenerate is returned when clipping leaves no usable outline.
var ErrDegenerate = errors.New("clipping produced no outline")

// Subtract cuts the union of holes out of the panel outline. The result is
// the outer ring first, running clockwise on screen, followed by the
// interior rings running the other way. Interior rings start at their
// lowest point and are sorted by that point.
func Subtract(panel model.Path, holes []model.Path) (out []model.Path, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("failed to clip panel: %v", r)
		}
	}()

	subject := polyclip.Polygon{toContour(panel.Points)}
	var clip polyclip.Polygon
	for _, h := range holes {
		if h.Degenerate() {
			continue
		}
		c := polyclip.Polygon{toContour(h.Points)}
		if len(clip) == 0 {
			clip = c
			continue
		}
		clip = clip.Construct(polyclip.UNION, c)
	}
	if len(clip) == 0 {
		return []model.Path{panel}, nil
	}

	result := subject.Construct(polyclip.DIFFERENCE, clip)
	var rings []model.Outline
	for _, c := range result {
		if r := fromContour(c); !(model.Path{Points: r}).Degenerate() {
			rings = append(rings, r)
		}
	}
	return classifyRings(rings)
}

// classifyRings separates the single outer ring from the holes using
// containment depth and normalises orientation and start points.
func classifyRings(rings []model.Outline) ([]model.Path, error) {
	var outer model.Outline
	var inner []model.Outline
	for i, r := range rings {
		depth := 0
		start := r[0]
		for j, other := range rings {
			if i != j && contains(other, start) {
				depth++
			}
		}
		if depth%2 == 0 {
			if outer != nil {
				return nil, fmt.Errorf("failed to clip panel: %w", errors.New("panel split into several outlines"))
			}
			outer = r
		} else {
			inner = append(inner, r)
		}
	}
	if outer == nil {
		return nil, ErrDegenerate
	}

	out := []model.Path{{Points: orient(outer, true), Closed: true}}
	for i := range inner {
		inner[i] = rotateToMin(orient(inner[i], false))
	}
	sort.SliceStable(inner, func(a, b int) bool {
		return pointKey(inner[a][0]) < pointKey(inner[b][0])
	})
	for _, r := range inner {
		out = append(out, model.Path{Points: r, Closed: true})
	}
	return out, nil
}

// contains tests a point against a ring using the winding number.
func contains(ring model.Outline, pt model.Point2D) bool {
	winding := 0
	n := len(ring)
	for i := 0; i < n; i++ {
		p0, p1 := ring[i], ring[(i+1)%n]
		if p0.Y <= pt.Y && p1.Y > pt.Y {
			if isLeft(p0, p1, pt) > 0 {
				winding++
			}
		} else if p0.Y > pt.Y && p1.Y <= pt.Y {
			if isLeft(p0, p1, pt) < 0 {
				winding--
			}
		}
	}
	return winding != 0
}

func isLeft(p0, p1, pt model.Point2D) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// orient returns the ring running clockwise on screen when cw is set,
// counter-clockwise otherwise.
func orient(r model.Outline, cw bool) model.Outline {
	if (r.Area() > 0) == cw {
		return r
	}
	out := make(model.Outline, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// rotateToMin rotates a ring so it starts at its smallest (x, y) point.
func rotateToMin(r model.Outline) model.Outline {
	best := 0
	for i, p := range r {
		b := r[best]
		if p.X < b.X || (p.X == b.X && p.Y < b.Y) {
			best = i
		}
	}
	return append(append(model.Outline(nil), r[best:]...), r[:best]...)
}

func pointKey(p model.Point2D) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

func toContour(pts model.Outline) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

// fromContour converts a clipped contour back, rounding away the noise
// the sweep line adds to axis-aligned coordinates.
func fromContour(c polyclip.Contour) model.Outline {
	out := make(model.Outline, 0, len(c))
	for _, p := range c {
		pt := model.Point2D{X: roundTo(p.X, 9), Y: roundTo(p.Y, 9)}
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	if n := len(out); n > 1 && out[0] == out[n-1] {
		out = out[:n-1]
	}
	return out
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
