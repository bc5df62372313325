package gcode

import (
	"math"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// DefaultRapidRate is the traverse speed assumed for time estimates, mm/min.
const DefaultRapidRate = 5000.0

// Stats summarises a parsed GCode program.
type Stats struct {
	Moves         int           `json:"moves"`
	Plunges       int           `json:"plunges"`
	Arcs          int           `json:"arcs"`
	RapidDistance float64       `json:"rapid_distance"` // mm
	CutDistance   float64       `json:"cut_distance"`   // mm, feed and arc moves
	MaxDepth      float64       `json:"max_depth"`      // Deepest Z below zero, positive mm
	Min           model.Point2D `json:"min"`            // XY extent of cutting moves, arcs as full circles
	Max           model.Point2D `json:"max"`
	Minutes       float64       `json:"minutes"` // Estimated run time
}

// ComputeStats walks the moves and totals distances and machining time.
// Moves without a feed rate are timed at rapidRate.
func ComputeStats(moves []GCodeMove, rapidRate float64) Stats {
	if rapidRate <= 0 {
		rapidRate = DefaultRapidRate
	}
	var st Stats
	var cutPts model.Outline
	for _, m := range moves {
		st.Moves++
		d := moveLength(m)
		rate := m.FeedRate
		switch m.Type {
		case MoveRapid, MoveRetract:
			st.RapidDistance += d
			rate = rapidRate
		case MovePlunge:
			st.Plunges++
			st.CutDistance += d
		case MoveArc:
			st.Arcs++
			st.CutDistance += d
		default:
			st.CutDistance += d
		}
		if rate <= 0 {
			rate = rapidRate
		}
		st.Minutes += d / rate

		st.MaxDepth = math.Max(st.MaxDepth, -m.ToZ)
		if m.Type != MoveRapid && m.Type != MoveRetract && m.ToZ < 0 {
			cutPts = append(cutPts,
				model.Point2D{X: m.FromX, Y: m.FromY},
				model.Point2D{X: m.ToX, Y: m.ToY})
			if m.Type == MoveArc {
				cx, cy := m.FromX+m.I, m.FromY+m.J
				r := math.Hypot(m.I, m.J)
				cutPts = append(cutPts,
					model.Point2D{X: cx - r, Y: cy - r},
					model.Point2D{X: cx + r, Y: cy + r})
			}
		}
	}
	st.Min, st.Max = cutPts.BoundingBox()
	return st
}

// moveLength returns the tool travel of one move. Arcs whose end equals
// their start are full circles.
func moveLength(m GCodeMove) float64 {
	if m.Type != MoveArc {
		return math.Sqrt((m.ToX-m.FromX)*(m.ToX-m.FromX) +
			(m.ToY-m.FromY)*(m.ToY-m.FromY) +
			(m.ToZ-m.FromZ)*(m.ToZ-m.FromZ))
	}
	cx, cy := m.FromX+m.I, m.FromY+m.J
	r := math.Hypot(m.I, m.J)
	a0 := math.Atan2(m.FromY-cy, m.FromX-cx)
	a1 := math.Atan2(m.ToY-cy, m.ToX-cx)
	sweep := a1 - a0
	if m.Clockwise {
		sweep = -sweep
	}
	for sweep <= 1e-9 {
		sweep += 2 * math.Pi
	}
	return r * sweep
}
