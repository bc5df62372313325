package model

import "fmt"

// PieceShape is one generated panel, positioned on the output sheet.
// Paths[0] is the outline when the piece was combined; the remaining
// closed paths are holes or divider slots.
type PieceShape struct {
	Type    PieceType `json:"type"`
	Index   int       `json:"index"` // Position among pieces of the same type
	Name    string    `json:"name"`
	Base    Point2D   `json:"base"`
	Width   float64   `json:"width"`  // Outside dx
	Height  float64   `json:"height"` // Outside dy
	Paths   []Path    `json:"paths"`
	Circles []Circle  `json:"circles,omitempty"`

	// Outlined is set when the side paths were joined into a single
	// closed outline at Paths[0].
	Outlined bool `json:"outlined"`
}

// PieceName builds a readable name such as "Front" or "DividerX 2".
func PieceName(t PieceType, index int) string {
	if t.IsDivider() {
		return fmt.Sprintf("%s %d", t, index+1)
	}
	return t.String()
}

// Bounds returns the bounding box of every path point and circle.
func (p PieceShape) Bounds() (min, max Point2D) {
	var pts Outline
	for _, path := range p.Paths {
		pts = append(pts, path.Points...)
	}
	for _, c := range p.Circles {
		pts = append(pts,
			Point2D{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
			Point2D{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius})
	}
	return pts.BoundingBox()
}

// HoleCount returns the number of closed paths other than the outline.
func (p PieceShape) HoleCount() int {
	n := 0
	for i, path := range p.Paths {
		if path.Closed && !(i == 0 && p.Outlined) {
			n++
		}
	}
	return n
}

// BoxResult is the full output of a generation run.
type BoxResult struct {
	Settings BoxSettings  `json:"settings"`
	Pieces   []PieceShape `json:"pieces"`
}

// Bounds returns the extent of all pieces on the sheet.
func (r BoxResult) Bounds() (min, max Point2D) {
	first := true
	for _, p := range r.Pieces {
		if len(p.Paths) == 0 && len(p.Circles) == 0 {
			continue
		}
		pmin, pmax := p.Bounds()
		if first {
			min, max = pmin, pmax
			first = false
			continue
		}
		min = Point2D{X: minf(min.X, pmin.X), Y: minf(min.Y, pmin.Y)}
		max = Point2D{X: maxf(max.X, pmax.X), Y: maxf(max.Y, pmax.Y)}
	}
	return min, max
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
