package pathops

import (
	"math"

	"github.com/piwi3910/tabbedbox/internal/model"
)

const simplifyDecimals = 8

// Simplify removes zero-length segments and merges consecutive horizontal
// or vertical segments that continue in the same direction. Spikes that
// turn back on themselves are kept.
func Simplify(p model.Path) model.Path {
	pts := dedupe(p.Points, p.Closed)
	if len(pts) < 3 {
		return model.Path{Points: pts, Closed: p.Closed}
	}

	for {
		removed := false
		n := len(pts)
		for i := 0; i < n && n >= 3; i++ {
			if !p.Closed && (i == 0 || i == n-1) {
				continue
			}
			a := pts[(i-1+n)%n]
			b := pts[i]
			c := pts[(i+1)%n]
			if continuesStraight(a, b, c) {
				pts = append(pts[:i:i], pts[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return model.Path{Points: pts, Closed: p.Closed}
}

// dedupe drops points equal to their predecessor after rounding.
func dedupe(in model.Outline, closed bool) model.Outline {
	out := make(model.Outline, 0, len(in))
	for _, pt := range in {
		if len(out) > 0 && samePoint(out[len(out)-1], pt) {
			continue
		}
		out = append(out, pt)
	}
	if closed && len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func samePoint(a, b model.Point2D) bool {
	return round(a.X) == round(b.X) && round(a.Y) == round(b.Y)
}

func round(v float64) float64 {
	p := math.Pow(10, simplifyDecimals)
	return math.Round(v*p) / p
}

// continuesStraight reports whether b lies on an axis-aligned run from a
// to c with both segments pointing the same way.
func continuesStraight(a, b, c model.Point2D) bool {
	switch {
	case round(a.Y) == round(b.Y) && round(b.Y) == round(c.Y):
		return sign(b.X-a.X) == sign(c.X-b.X)
	case round(a.X) == round(b.X) && round(b.X) == round(c.X):
		return sign(b.Y-a.Y) == sign(c.Y-b.Y)
	}
	return false
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
