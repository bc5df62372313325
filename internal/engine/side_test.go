package engine

import (
	"testing"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/stretchr/testify/assert"
)

func sideSettings(sym model.TabSymmetry, thickness, tab float64) model.BoxSettings {
	return model.BoxSettings{
		Thickness:   thickness,
		TabWidth:    tab,
		TabSymmetry: sym,
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 3.0, floorDiv(7, 2))
	assert.Equal(t, 3.0, floorDiv(6, 2))
	assert.Equal(t, 2.0, floorDiv(0.3, 0.1))
	assert.Equal(t, 13.0, floorDiv(80, 6))
	assert.Equal(t, 0.0, floorDiv(2, 6))
}

func TestSide_DivisionParity(t *testing.T) {
	for _, length := range []float64{20, 37.5, 40, 80, 100, 123.4} {
		xy := NewSide(sideSettings(model.SymmetryXY, 3, 6), model.SideA, true, true, length, length-6)
		assert.Equal(t, 1, xy.Divisions%2, "XY divisions must be odd for length %g", length)

		anti := NewSide(sideSettings(model.SymmetryAntisymmetric, 3, 6), model.SideA, true, true, length, length-6)
		assert.Equal(t, 1, anti.Divisions%2, "antisymmetric divisions must be odd for length %g", length)

		rot := NewSide(sideSettings(model.SymmetryRotate, 3, 6), model.SideA, true, true, length, length-6)
		assert.Equal(t, 0, rot.Divisions%2, "rotate divisions must be even for length %g", length)
	}
}

func TestSide_WidthsFillLength(t *testing.T) {
	for _, equal := range []bool{false, true} {
		s := sideSettings(model.SymmetryXY, 3, 6)
		s.EqualTabs = equal
		sd := NewSide(s, model.SideB, false, true, 100, 94)
		tabs := float64(sd.Tabs())
		total := sd.TabWidth*tabs + sd.GapWidth*(float64(sd.Divisions)-tabs)
		assert.InDelta(t, 100, total, 1e-9)
	}

	rot := NewSide(sideSettings(model.SymmetryRotate, 3, 6), model.SideB, true, true, 100, 94)
	assert.InDelta(t, 94, rot.TabWidth*float64(rot.Divisions), 1e-9)
	assert.Equal(t, rot.TabWidth, rot.GapWidth)
}

func TestSide_ExampleValues(t *testing.T) {
	sd := NewSide(sideSettings(model.SymmetryXY, 3, 6), model.SideA, true, true, 80, 74)
	assert.Equal(t, 13, sd.Divisions)
	assert.Equal(t, 6, sd.Tabs())
	assert.Equal(t, 6.0, sd.TabWidth)
	assert.InDelta(t, 44.0/7, sd.GapWidth, 1e-12)

	short := NewSide(sideSettings(model.SymmetryXY, 3, 6), model.SideB, true, true, 40, 34)
	assert.Equal(t, 5, short.Divisions)
	assert.InDelta(t, 28.0/3, short.GapWidth, 1e-12)
}

func TestSide_DividerEdgesUseInsideLength(t *testing.T) {
	s := sideSettings(model.SymmetryXY, 3, 6)
	sd := NewSide(s, model.SideA, false, true, 80, 70)
	sd.recalc(model.PieceDividerX)
	assert.Equal(t, 76.0, sd.EffectiveLength(model.PieceDividerX))
	assert.Equal(t, 11, sd.Divisions)

	other := NewSide(s, model.SideB, false, true, 80, 70)
	assert.Equal(t, 80.0, other.EffectiveLength(model.PieceDividerX))
	assert.Equal(t, 76.0, other.EffectiveLength(model.PieceDividerY))
}

func TestSide_KerfWidths(t *testing.T) {
	s := sideSettings(model.SymmetryXY, 3, 6)
	male := NewSide(s, model.SideA, true, true, 80, 74)
	female := NewSide(s, model.SideA, false, true, 80, 74)

	tab, gap := male.KerfWidths(0.2)
	assert.InDelta(t, male.TabWidth+0.2, tab, 1e-12)
	assert.InDelta(t, male.GapWidth-0.2, gap, 1e-12)

	tab, gap = female.KerfWidths(0.2)
	assert.InDelta(t, female.TabWidth-0.2, tab, 1e-12)
	assert.InDelta(t, female.GapWidth+0.2, gap, 1e-12)
}

func TestSide_Holes(t *testing.T) {
	s := sideSettings(model.SymmetryXY, 3, 6)
	male := NewSide(s, model.SideA, true, true, 80, 74)
	assert.True(t, male.StartHole())
	assert.True(t, male.EndHole())

	plain := NewSide(s, model.SideA, true, false, 80, 74)
	assert.False(t, plain.StartHole())
	assert.False(t, plain.EndHole())

	rot := NewSide(sideSettings(model.SymmetryRotate, 3, 6), model.SideA, false, false, 80, 74)
	assert.True(t, rot.StartHole())
	assert.True(t, rot.EndHole())
}

func TestSide_Directions(t *testing.T) {
	s := sideSettings(model.SymmetryXY, 3, 6)
	want := []model.Vec{model.V(1, 0), model.V(0, 1), model.V(-1, 0), model.V(0, -1)}
	for i, w := range want {
		sd := NewSide(s, model.SideName(i), false, true, 50, 44)
		assert.Equal(t, w, sd.Direction, "side %s", model.SideName(i))
	}
}
