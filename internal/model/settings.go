package model

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// BoxSettings is the resolved, validated configuration consumed by the
// path engine. It is read-only once created.
type BoxSettings struct {
	X, Y, Z                   float64 // Outside dimensions
	InsideX, InsideY, InsideZ float64

	Unit         string
	Thickness    float64
	TabWidth     float64
	EqualTabs    bool
	TabSymmetry  TabSymmetry
	DimpleHeight float64
	DimpleLength float64
	Dogbone      bool
	Kerf         float64

	Layout     Layout
	Spacing    float64
	BoxType    BoxType
	PieceTypes []PieceType

	DivX        int
	DivY        int
	DivXSpacing []float64 // Section widths across Y, reversed
	DivYSpacing []float64 // Section widths across X, reversed
	KeyDivWalls bool
	KeyDivFloor bool

	LineThickness float64
	Hairline      bool
	LineColor     string

	Combine bool
	Cutout  bool

	Schroff *SchroffSettings
}

// SchroffSettings are the resolved rack rail parameters.
type SchroffSettings struct {
	Rows                  int
	RailHeight            float64
	RowCentreSpacing      float64
	RowSpacing            float64
	RailMountDepth        float64
	RailMountCentreOffset float64
	RailMountRadius       float64
}

// HasPiece reports whether the face is part of the box.
func (s BoxSettings) HasPiece(p PieceType) bool {
	return slices.Contains(s.PieceTypes, p)
}

// Resolve derives outside and inside dimensions, parses divider spacing
// and validates the result. Every problem found is reported together in a
// ValidationErrors.
func (o BoxOptions) Resolve() (BoxSettings, error) {
	s := BoxSettings{
		X:             o.Length,
		Y:             o.Width,
		Z:             o.Height,
		Unit:          strings.ToLower(o.Unit),
		Thickness:     o.Thickness,
		TabWidth:      o.TabWidth,
		EqualTabs:     o.EqualTabs,
		TabSymmetry:   o.TabSymmetry,
		DimpleHeight:  o.DimpleHeight,
		DimpleLength:  o.DimpleLength,
		Dogbone:       o.TabType == TabDogbone,
		Kerf:          o.Kerf,
		Layout:        o.Layout,
		Spacing:       o.Spacing,
		BoxType:       o.BoxType,
		PieceTypes:    o.BoxType.PieceTypes(),
		DivX:          o.DivX,
		DivY:          o.DivY,
		KeyDivWalls:   o.KeyDividers.Walls(),
		KeyDivFloor:   o.KeyDividers.Floor(),
		LineThickness: o.LineThickness,
		Hairline:      o.Hairline,
		LineColor:     strings.ToLower(o.LineColor),
		Combine:       o.Combine,
		Cutout:        o.Cutout,
	}
	if s.Unit == "" {
		s.Unit = "mm"
	}
	if s.LineColor == "" {
		s.LineColor = "black"
	}

	inside := o.Inside
	if sc := o.Schroff; sc != nil {
		s.Schroff = &SchroffSettings{
			Rows:                  sc.Rows,
			RailHeight:            sc.RailHeight,
			RowCentreSpacing:      SchroffRowCentreSpacing,
			RowSpacing:            sc.RowSpacing,
			RailMountDepth:        sc.RailMountDepth,
			RailMountCentreOffset: sc.RailMountCentreOffset,
			RailMountRadius:       SchroffRailMountRadius,
		}
		s.X = float64(sc.HP) * SchroffHPWidth
		s.Y = float64(sc.Rows)*(SchroffRowCentreSpacing+sc.RailHeight) + float64(sc.Rows-1)*sc.RowSpacing
		inside = false
	}

	t := s.Thickness
	nx := t * float64(s.count(PieceLeft, PieceRight))
	ny := t * float64(s.count(PieceFront, PieceBack))
	nz := t * float64(s.count(PieceTop, PieceBottom))
	if inside {
		s.InsideX, s.InsideY, s.InsideZ = s.X, s.Y, s.Z
		s.X += nx
		s.Y += ny
		s.Z += nz
	} else {
		s.InsideX = s.X - nx
		s.InsideY = s.Y - ny
		s.InsideZ = s.Z - nz
	}

	var errs ValidationErrors
	var err error
	if s.DivXSpacing, err = ParseDividerSpacing(o.DivXSpacing, s.InsideY, t, s.DivX, true); err != nil {
		errs = append(errs, "divider X spacing: "+err.Error())
	}
	if s.DivYSpacing, err = ParseDividerSpacing(o.DivYSpacing, s.InsideX, t, s.DivY, true); err != nil {
		errs = append(errs, "divider Y spacing: "+err.Error())
	}

	errs = append(errs, s.Validate()...)
	if len(errs) > 0 {
		return BoxSettings{}, errs
	}
	return s, nil
}

func (s BoxSettings) count(types ...PieceType) int {
	n := 0
	for _, p := range types {
		if s.HasPiece(p) {
			n++
		}
	}
	return n
}

// ParseDividerSpacing turns a semicolon separated list of section widths
// into n+1 widths filling available less the n divider thicknesses. Missing
// sections share the remaining width evenly, with the last one taking
// whatever rounding leaves over. The totals must match to within a relative
// tolerance of 1e-9.
func ParseDividerSpacing(spec string, available, thickness float64, n int, reverse bool) ([]float64, error) {
	if n <= 0 {
		return []float64{}, nil
	}
	available -= float64(n) * thickness
	tol := 1e-9 * math.Max(1, math.Abs(available))

	var values []float64
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid divider spacing %q", part)
		}
		values = append(values, v)
	}

	sections := n + 1
	if len(values) > sections {
		return nil, fmt.Errorf("too many divider spacing values (%d) for %d dividers (max %d sections)",
			len(values), n, sections)
	}

	var used float64
	for _, v := range values {
		used += v
	}
	if remaining := sections - len(values); remaining > 0 {
		left := available - used
		if left <= 0 {
			return nil, fmt.Errorf("specified section widths exceed available space (remaining width %.2f)", left)
		}
		auto := left / float64(remaining)
		for i := 1; i < remaining; i++ {
			values = append(values, auto)
		}
		values = append(values, left-auto*float64(remaining-1))
		used = available
	}

	if used > available+tol {
		return nil, fmt.Errorf("total section widths (%.2f) exceed available space (%.2f)", used, available)
	}
	if used < available-tol {
		return nil, fmt.Errorf("total section widths (%.2f) are less than available space (%.2f)", used, available)
	}

	if reverse {
		slices.Reverse(values)
	}
	return values, nil
}
