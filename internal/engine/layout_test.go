package engine

import (
	"testing"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutBases(t *testing.T, o model.BoxOptions) (map[string]model.Vec, []string) {
	t.Helper()
	g := New(resolve(t, o))
	bases := map[string]model.Vec{}
	var order []string
	for _, p := range g.Pieces() {
		bases[p.Name()] = p.Base
		order = append(order, p.Name())
	}
	return bases, order
}

func TestLayoutSpacing(t *testing.T) {
	s := model.BoxSettings{Spacing: 0.05, LineThickness: 0.1, Kerf: 0.2}
	assert.InDelta(t, 0.3, LayoutSpacing(s), 1e-12)
	s.Hairline = true
	assert.InDelta(t, 0.25, LayoutSpacing(s), 1e-12)
}

func TestApplyLayout_InlineCompact(t *testing.T) {
	o := exampleOptions()
	o.Layout = model.LayoutInlineCompact
	bases, order := layoutBases(t, o)

	assert.Equal(t, []string{"Back", "Left", "Top", "Bottom", "Right", "Front"}, order)
	assert.Equal(t, model.V(3, 3), bases["Top"])
	assert.Equal(t, model.V(86, 3), bases["Bottom"])
	assert.Equal(t, model.V(169, 3), bases["Left"])
	assert.Equal(t, model.V(212, 3), bases["Right"])
	assert.Equal(t, model.V(255, 3), bases["Back"])
	assert.Equal(t, model.V(338, 3), bases["Front"])
}

func TestApplyLayout_InlineCompactWithoutTop(t *testing.T) {
	o := exampleOptions()
	o.Layout = model.LayoutInlineCompact
	o.BoxType = model.BoxOneSideOpen
	bases, _ := layoutBases(t, o)

	require.NotContains(t, bases, "Top")
	assert.Equal(t, model.V(3, 3), bases["Bottom"])
	assert.Equal(t, model.V(86, 3), bases["Left"])
	assert.Equal(t, model.V(129, 3), bases["Right"])
	assert.Equal(t, model.V(172, 3), bases["Back"])
	assert.Equal(t, model.V(255, 3), bases["Front"])
}

func TestApplyLayout_ThreePiece(t *testing.T) {
	o := exampleOptions()
	o.Layout = model.LayoutThreePiece
	o.DivX, o.DivY = 2, 1
	bases, order := layoutBases(t, o)

	assert.Equal(t, []string{"Back", "DividerX 1", "DividerX 2", "Left", "DividerY 1", "Bottom"}, order)
	assert.Equal(t, model.V(46, 106), bases["Back"])
	assert.Equal(t, model.V(3, 3), bases["Left"])
	assert.Equal(t, model.V(46, 3), bases["Bottom"])
	assert.Equal(t, model.V(3, 192), bases["DividerX 1"])
	assert.Equal(t, model.V(86, 192), bases["DividerX 2"])
	assert.Equal(t, model.V(3, 235), bases["DividerY 1"])
}

func TestApplyLayout_DiagrammaticDividers(t *testing.T) {
	o := exampleOptions()
	o.DivX, o.DivY = 2, 2
	o.KeyDividers = model.KeyNone
	bases, order := layoutBases(t, o)

	assert.Equal(t, []string{
		"Back", "DividerX 1", "DividerX 2", "Left", "DividerY 1", "DividerY 2",
		"Bottom", "Right", "Top", "Front",
	}, order)
	// Below the back, shifted one thickness when not keyed into the walls.
	assert.Equal(t, model.V(49, 192), bases["DividerX 1"])
	assert.Equal(t, model.V(49, 235), bases["DividerX 2"])
	// Right of the top.
	assert.Equal(t, model.V(255, 49), bases["DividerY 1"])
	assert.Equal(t, model.V(298, 49), bases["DividerY 2"])
}

func TestApplyLayout_KerfShiftsOrigin(t *testing.T) {
	o := exampleOptions()
	o.Kerf = 0.2
	bases, _ := layoutBases(t, o)
	// spacing 3.2, origin shifted by half the kerf
	assert.InDelta(t, 3.1, bases["Left"].X, 1e-9)
	assert.InDelta(t, 3.1, bases["Front"].Y, 1e-9)
}
