package gcode

import (
	"fmt"
	"math"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// CheckClampCollisions reports pieces whose toolpath brings the cutter
// within ClampClearance of a clamp zone. Positions are sampled at every
// path vertex and segment midpoint, and around each mounting hole, in the
// same bed coordinates the generator writes.
func CheckClampCollisions(res model.BoxResult, settings model.MachineSettings) ([]model.ClampCollision, error) {
	if len(settings.ClampZones) == 0 || len(res.Pieces) == 0 {
		return nil, nil
	}
	g := New(settings)
	g.Settings.PassDepth = math.Max(g.Settings.PassDepth, 1)
	j, err := g.newJob(res)
	if err != nil {
		return nil, err
	}

	toolRadius := settings.ToolDiameter / 2
	reach := toolRadius + settings.ClampClearance

	var collisions []model.ClampCollision
	for idx, p := range res.Pieces {
		for _, pos := range pieceCutPositions(p, j) {
			for _, cz := range settings.ClampZones {
				d := distanceToClampZone(pos.X, pos.Y, cz)
				if d < reach {
					collisions = append(collisions, model.ClampCollision{
						Piece:      p.Name,
						PieceIndex: idx,
						ClampLabel: cz.Label,
						ToolX:      pos.X,
						ToolY:      pos.Y,
						Distance:   d - toolRadius,
					})
				}
			}
		}
	}
	return deduplicateCollisions(collisions), nil
}

// pieceCutPositions returns the tool centre positions visited while cutting
// a piece, in machine millimetres.
func pieceCutPositions(p model.PieceShape, j job) []model.Point2D {
	var positions []model.Point2D
	for _, path := range p.Paths {
		pts := path.Points
		for i, pt := range pts {
			positions = append(positions, j.machine(pt))
			if i > 0 {
				positions = append(positions, j.machine(lerp(pts[i-1], pt, 0.5)))
			}
		}
	}
	for _, c := range p.Circles {
		centre := j.machine(c.Center)
		r := c.Radius * j.scale
		positions = append(positions,
			model.Point2D{X: centre.X + r, Y: centre.Y},
			model.Point2D{X: centre.X - r, Y: centre.Y},
			model.Point2D{X: centre.X, Y: centre.Y + r},
			model.Point2D{X: centre.X, Y: centre.Y - r})
	}
	return positions
}

// distanceToClampZone computes the minimum distance from a point (px, py)
// to the boundary of a clamp zone rectangle. Returns 0 if the point is
// inside the zone, positive if outside.
func distanceToClampZone(px, py float64, cz model.ClampZone) float64 {
	nearestX := math.Max(cz.X, math.Min(px, cz.X+cz.Width))
	nearestY := math.Max(cz.Y, math.Min(py, cz.Y+cz.Height))
	return math.Hypot(px-nearestX, py-nearestY)
}

// deduplicateCollisions keeps the closest collision per (piece, clamp) pair.
func deduplicateCollisions(collisions []model.ClampCollision) []model.ClampCollision {
	type key struct {
		piece int
		clamp string
	}
	index := make(map[key]int)
	var result []model.ClampCollision

	for _, c := range collisions {
		k := key{c.PieceIndex, c.ClampLabel}
		if i, ok := index[k]; ok {
			if c.Distance < result[i].Distance {
				result[i] = c
			}
			continue
		}
		index[k] = len(result)
		result = append(result, c)
	}
	return result
}

// FormatCollisionWarnings produces human-readable warning messages from collision data.
func FormatCollisionWarnings(collisions []model.ClampCollision) []string {
	var warnings []string
	for _, c := range collisions {
		msg := fmt.Sprintf("Cutter may hit clamp %q while cutting %q at (%.0f, %.0f), clearance %.1f mm",
			c.ClampLabel, c.Piece, c.ToolX, c.ToolY, c.Distance)
		warnings = append(warnings, msg)
	}
	return warnings
}
