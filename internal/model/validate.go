package model

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ValidUnits are the document units accepted for box dimensions.
var ValidUnits = []string{"mm", "cm", "in", "ft", "px", "pt", "pc"}

// ValidLineColors are the stroke colours accepted for output.
var ValidLineColors = []string{"black", "red", "blue", "green"}

// ValidationErrors collects every problem found in a set of box options.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "no errors"
	case 1:
		return v[0]
	}
	return fmt.Sprintf("%d problems: %s", len(v), strings.Join(v, "; "))
}

// Validate checks the resolved settings and returns one message per
// failed constraint, each including the offending values.
func (s BoxSettings) Validate() ValidationErrors {
	var errs ValidationErrors
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if !slices.Contains(ValidUnits, s.Unit) {
		add("invalid unit: %s", s.Unit)
	}

	finite := true
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"length", s.X}, {"width", s.Y}, {"height", s.Z},
		{"thickness", s.Thickness}, {"tab width", s.TabWidth},
		{"kerf", s.Kerf}, {"spacing", s.Spacing},
		{"dimple height", s.DimpleHeight}, {"dimple length", s.DimpleLength},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			add("%s must be a finite number: (%g)", f.name, f.v)
			finite = false
		}
	}
	if !finite {
		// Comparisons against NaN or Inf say nothing useful.
		return errs
	}

	minDim := math.Min(s.X, math.Min(s.Y, s.Z))
	maxDim := math.Max(s.X, math.Max(s.Y, s.Z))
	minInside := math.Min(s.InsideX, math.Min(s.InsideY, s.InsideZ))

	switch {
	case minDim <= 0:
		add("dimensions must be positive: (%g, %g, %g)", s.X, s.Y, s.Z)
	case minInside <= 0:
		add("inside dimensions must be positive: (%g, %g, %g)", s.InsideX, s.InsideY, s.InsideZ)
	}
	if s.TabWidth <= 0 {
		add("tab width must be positive: (%g)", s.TabWidth)
	} else if s.TabWidth < s.Thickness {
		add("tab size too small: (%g < %g)", s.TabWidth, s.Thickness)
	}
	// Size comparisons only mean something once the box has a real volume.
	sized := minDim > 0 && minInside > 0
	if sized && s.TabWidth > 0 && minDim < 3*s.TabWidth {
		add("tab size too large: (%g > %g)", 3*s.TabWidth, minDim)
	}
	switch {
	case s.Thickness == 0:
		add("thickness is zero")
	case s.Thickness < 0:
		add("thickness must be positive: (%g)", s.Thickness)
	case sized && s.Thickness > minDim/3:
		add("material too thick: (%g > %g)", s.Thickness, minDim/3)
	}
	if s.Kerf < 0 {
		add("kerf must not be negative: (%g)", s.Kerf)
	} else if sized && s.Kerf > minDim/3 {
		add("kerf too large: (%g > %g)", s.Kerf, minDim/3)
	}
	if s.Spacing > maxDim*10 {
		add("spacing too large: (%g > %g)", s.Spacing, maxDim*10)
	}
	if s.Spacing < s.Kerf {
		add("spacing too small: (%g < %g)", s.Spacing, s.Kerf)
	}
	if !slices.Contains(ValidLineColors, s.LineColor) {
		add("invalid line color: %s", s.LineColor)
	}
	if s.DivX < 0 || s.DivY < 0 {
		add("divider counts must not be negative: (%d, %d)", s.DivX, s.DivY)
	}
	if s.Layout < LayoutDiagrammatic || s.Layout > LayoutInlineCompact {
		add("invalid layout: %d", int(s.Layout))
	}
	if s.TabSymmetry < SymmetryXY || s.TabSymmetry > SymmetryAntisymmetric {
		add("invalid tab symmetry: %d", int(s.TabSymmetry))
	}
	if s.BoxType < BoxFullyEnclosed || s.BoxType > BoxTwoPanelsOnly {
		add("invalid box type: %d", int(s.BoxType))
	}
	return errs
}
