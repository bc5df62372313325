package engine

import (
	"testing"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTabConfiguration_XYFullyEnclosed(t *testing.T) {
	s := model.BoxSettings{TabSymmetry: model.SymmetryXY, PieceTypes: model.BoxFullyEnclosed.PieceTypes()}
	c := TabConfigurationFor(s)

	assert.Equal(t, EdgeFlags{}, c.Top.Male)
	assert.Equal(t, EdgeFlags{}, c.Bottom.Male)
	assert.Equal(t, allEdges(), c.Left.Male)
	assert.Equal(t, EdgeFlags{Top: true, Bottom: true}, c.Front.Male)
	for _, f := range []FaceTabs{c.Top, c.Bottom, c.Left, c.Right, c.Front, c.Back} {
		assert.Equal(t, allEdges(), f.Tabbed)
	}
}

func TestTabConfiguration_MissingTop(t *testing.T) {
	s := model.BoxSettings{TabSymmetry: model.SymmetryXY, PieceTypes: model.BoxOneSideOpen.PieceTypes()}
	c := TabConfigurationFor(s)

	assert.False(t, c.Back.Tabbed.Bottom)
	assert.False(t, c.Back.Male.Bottom)
	assert.False(t, c.Front.Tabbed.Top)
	assert.False(t, c.Left.Tabbed.Left)
	assert.False(t, c.Right.Tabbed.Right)
	assert.Equal(t, EdgeFlags{}, c.Top.Tabbed)

	// Edges facing the bottom keep their tabs.
	assert.True(t, c.Front.Tabbed.Bottom)
	assert.True(t, c.Front.Male.Bottom)
}

func TestTabConfiguration_Antisymmetric(t *testing.T) {
	s := model.BoxSettings{TabSymmetry: model.SymmetryAntisymmetric, PieceTypes: model.BoxFullyEnclosed.PieceTypes()}
	c := TabConfigurationFor(s)

	assert.Equal(t, EdgeFlags{Right: true, Bottom: true}, c.Top.Male)
	assert.Equal(t, EdgeFlags{Top: true, Left: true}, c.Back.Male)
	assert.True(t, c.Back.Male.Get(model.SideD))
	assert.False(t, c.Back.Male.Get(model.SideB))
}

func TestTabConfiguration_DividersFollowFaces(t *testing.T) {
	s := model.BoxSettings{TabSymmetry: model.SymmetryXY, PieceTypes: model.BoxFullyEnclosed.PieceTypes()}
	c := TabConfigurationFor(s)
	assert.Equal(t, c.Front, c.For(model.PieceDividerX))
	assert.Equal(t, c.Left, c.For(model.PieceDividerY))
}

func TestCreatePieces_DividerKeying(t *testing.T) {
	o := exampleOptions()
	o.DivX, o.DivY = 1, 1
	o.KeyDividers = model.KeyWalls
	s := resolve(t, o)
	pieces := CreatePieces(s, TabConfigurationFor(s))

	var divX, divY *Piece
	for _, p := range pieces {
		switch p.Type {
		case model.PieceDividerX:
			divX = p
		case model.PieceDividerY:
			divY = p
		}
	}
	if assert.NotNil(t, divX) && assert.NotNil(t, divY) {
		// Keyed into the walls only: floor edges are plain.
		assert.False(t, divX.Sides[model.SideA].HasTabs)
		assert.False(t, divX.Sides[model.SideA].IsMale)
		assert.True(t, divX.Sides[model.SideB].HasTabs)
		assert.Equal(t, 1, divX.Sides[model.SideB].NumDividers)

		assert.True(t, divY.Sides[model.SideA].HasTabs)
		assert.False(t, divY.Sides[model.SideB].HasTabs)
		assert.Equal(t, 1, divY.Sides[model.SideA].NumDividers)
	}

	// Walls get holes, the floor does not.
	for _, p := range pieces {
		var holes int
		for _, sd := range p.Sides {
			holes += sd.NumDividers
		}
		switch p.Type {
		case model.PieceBottom, model.PieceTop:
			assert.Zero(t, holes, p.Name())
		case model.PieceLeft, model.PieceRight, model.PieceFront, model.PieceBack:
			assert.NotZero(t, holes, p.Name())
		}
	}
}

func TestNewPiece_Offsets(t *testing.T) {
	o := exampleOptions()
	s := resolve(t, o)
	for _, p := range CreatePieces(s, TabConfigurationFor(s)) {
		assert.Equal(t, model.V(0, 0), p.Sides[model.SideA].RootOffset)
		assert.Equal(t, model.V(p.Dx, 0), p.Sides[model.SideB].RootOffset)
		assert.Equal(t, model.V(p.Dx, p.Dy), p.Sides[model.SideC].RootOffset)
		assert.Equal(t, model.V(0, p.Dy), p.Sides[model.SideD].RootOffset)
	}
}
