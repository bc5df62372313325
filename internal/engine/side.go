package engine

import (
	"math"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// Side is one edge of a piece together with its tab layout.
type Side struct {
	Name      model.SideName
	Direction model.Vec // Unit vector along the edge, clockwise around the piece
	IsMale    bool      // Tabs stick out of this edge
	HasTabs   bool      // Edge joins another panel

	Length       float64 // Outside length
	InsideLength float64

	Symmetry     model.TabSymmetry
	Thickness    float64
	BaseTabWidth float64
	EqualTabs    bool
	Dogbone      bool

	// Computed by recalc.
	Divisions int
	TabWidth  float64
	GapWidth  float64

	DividerSpacings []float64
	NumDividers     int

	// Computed when the side is placed in a piece.
	RootOffset  model.Vec
	StartOffset model.Vec
}

// NewSide creates a side and computes its tab layout from the outside length.
func NewSide(s model.BoxSettings, name model.SideName, isMale, hasTabs bool, length, insideLength float64) Side {
	sd := Side{
		Name:            name,
		Direction:       model.V(1, 0).RotateCW(int(name)),
		IsMale:          isMale,
		HasTabs:         hasTabs,
		Length:          length,
		InsideLength:    insideLength,
		Symmetry:        s.TabSymmetry,
		Thickness:       s.Thickness,
		BaseTabWidth:    s.TabWidth,
		TabWidth:        s.TabWidth,
		EqualTabs:       s.EqualTabs,
		Dogbone:         s.Dogbone,
		DividerSpacings: []float64{},
	}
	sd.recalc(-1)
	return sd
}

// EffectiveLength is the length tabs are spread over. Divider edges that
// key into a wall use the inside length plus both walls so their tabs line
// up with the matching holes.
func (sd *Side) EffectiveLength(pt model.PieceType) float64 {
	switch {
	case pt == model.PieceDividerY && (sd.Name == model.SideB || sd.Name == model.SideD):
		return sd.InsideLength + 2*sd.Thickness
	case pt == model.PieceDividerX && (sd.Name == model.SideA || sd.Name == model.SideC):
		return sd.InsideLength + 2*sd.Thickness
	}
	return sd.Length
}

// recalc computes divisions, tab width and gap width. Divisions are odd for
// XY and antisymmetric tabs and even for rotational symmetry.
func (sd *Side) recalc(pt model.PieceType) {
	length := sd.EffectiveLength(pt)
	t := sd.Thickness

	var tabs int
	if sd.Symmetry == model.SymmetryRotate {
		sd.Divisions = int(floorDiv(length-2*t, sd.BaseTabWidth))
		if sd.Divisions%2 != 0 {
			sd.Divisions++
		}
		if sd.Divisions < 2 {
			sd.Divisions = 2
		}
		tabs = sd.Divisions / 2
	} else {
		sd.Divisions = int(floorDiv(length, sd.BaseTabWidth))
		if sd.Divisions%2 == 0 {
			sd.Divisions--
		}
		if sd.Divisions < 1 {
			sd.Divisions = 1
		}
		tabs = (sd.Divisions - 1) / 2
	}

	switch {
	case sd.Symmetry == model.SymmetryRotate:
		sd.TabWidth = (length - 2*t) / float64(sd.Divisions)
		sd.GapWidth = sd.TabWidth
	case sd.EqualTabs:
		sd.TabWidth = length / float64(sd.Divisions)
		sd.GapWidth = sd.TabWidth
	default:
		sd.TabWidth = sd.BaseTabWidth
		sd.GapWidth = (length - float64(tabs)*sd.TabWidth) / float64(sd.Divisions-tabs)
	}
}

// Tabs returns the number of tab segments on the edge.
func (sd *Side) Tabs() int {
	if sd.Symmetry == model.SymmetryRotate {
		return sd.Divisions / 2
	}
	return (sd.Divisions - 1) / 2
}

// KerfWidths returns tab and gap widths corrected for kerf. Male edges grow
// their tabs; female edges grow their gaps.
func (sd *Side) KerfWidths(kerf float64) (tab, gap float64) {
	if sd.IsMale {
		return sd.TabWidth + kerf, sd.GapWidth - kerf
	}
	return sd.TabWidth - kerf, sd.GapWidth + kerf
}

// StartHole reports whether the edge starts one thickness inside the corner.
func (sd *Side) StartHole() bool {
	if sd.Symmetry == model.SymmetryRotate {
		return true
	}
	return sd.IsMale && sd.HasTabs
}

// EndHole reports whether the edge ends one thickness inside the corner.
func (sd *Side) EndHole() bool {
	if sd.Symmetry == model.SymmetryRotate {
		return !sd.HasTabs
	}
	return sd.IsMale && sd.HasTabs
}

// floorDiv floors a/b using the fmod remainder, so a quotient that rounds
// up to an integer in a/b is not counted as a whole division.
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return 0
	}
	fl := math.Floor(div)
	if div-fl > 0.5 {
		fl += 1
	}
	return fl
}
