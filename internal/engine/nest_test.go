package engine

import (
	"testing"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectPiece(name string, x, y, w, h float64) model.PieceShape {
	return model.PieceShape{
		Name: name, Base: model.Point2D{X: x, Y: y}, Width: w, Height: h,
		Paths: []model.Path{{
			Points: model.Outline{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}},
			Closed: true,
		}},
		Outlined: true,
	}
}

func TestNest_ExampleBoxOnOneSheet(t *testing.T) {
	res := generate(t, exampleOptions())
	stock := model.StockPreset{Name: "Ply", Width: 600, Height: 400}

	out := NewNester(0, 0).Nest(res.Pieces, []model.StockPreset{stock})
	require.Len(t, out.Sheets, 1)
	assert.Empty(t, out.Unplaced)
	assert.Len(t, out.Sheets[0].Placements, 6)
}

func TestNest_PrefersSmallerSheet(t *testing.T) {
	res := generate(t, exampleOptions())
	stocks := []model.StockPreset{
		{Name: "Large", Width: 2440, Height: 1220},
		{Name: "Small", Width: 300, Height: 300},
	}
	out := NewNester(0, 0).Nest(res.Pieces, stocks)
	require.Len(t, out.Sheets, 1)
	assert.Equal(t, "Small", out.Sheets[0].Stock.Name)
}

func TestNest_OnePiecePerSheet(t *testing.T) {
	var pieces []model.PieceShape
	for _, n := range []string{"a", "b", "c", "d"} {
		pieces = append(pieces, rectPiece(n, 0, 0, 60, 60))
	}
	out := NewNester(0, 0).Nest(pieces, []model.StockPreset{{Width: 100, Height: 100}})
	assert.Len(t, out.Sheets, 4)
	assert.Empty(t, out.Unplaced)
}

func TestNest_TooLargeIsUnplaced(t *testing.T) {
	pieces := []model.PieceShape{
		rectPiece("huge", 0, 0, 500, 500),
		rectPiece("small", 0, 0, 10, 10),
	}
	out := NewNester(0, 5).Nest(pieces, []model.StockPreset{{Width: 100, Height: 100}})
	assert.Equal(t, []string{"huge"}, out.Unplaced)
	require.Len(t, out.Sheets, 1)
	pl := out.Sheets[0].Placements[0]
	assert.Equal(t, 5.0, pl.X, "edge trim is kept clear")
	assert.Equal(t, 5.0, pl.Y)
}

func TestNest_RotatesToFit(t *testing.T) {
	pieces := []model.PieceShape{rectPiece("long", 10, 10, 90, 20)}
	out := NewNester(0, 0).Nest(pieces, []model.StockPreset{{Width: 30, Height: 100}})
	require.Len(t, out.Sheets, 1)
	pl := out.Sheets[0].Placements[0]
	assert.True(t, pl.Rotated)
	assert.Equal(t, 20.0, pl.Width)
	assert.Equal(t, 90.0, pl.Height)

	moved := ArrangeSheet(model.BoxResult{Pieces: pieces}, out.Sheets[0])
	require.Len(t, moved.Pieces, 1)
	min, max := moved.Pieces[0].Bounds()
	assert.Equal(t, model.Point2D{X: 0, Y: 0}, min)
	assert.Equal(t, model.Point2D{X: 20, Y: 90}, max)
	assert.Equal(t, model.Point2D{X: 0, Y: 0}, moved.Pieces[0].Base)
}

func TestNest_NoOverlap(t *testing.T) {
	o := exampleOptions()
	o.DivX, o.DivY = 2, 2
	res := generate(t, o)
	kerf := 0.2
	out := NewNester(kerf, 2).Nest(res.Pieces, []model.StockPreset{{Width: 250, Height: 200}})
	require.Empty(t, out.Unplaced)

	for _, sheet := range out.Sheets {
		pls := sheet.Placements
		for i, a := range pls {
			assert.GreaterOrEqual(t, a.X, 2.0)
			assert.GreaterOrEqual(t, a.Y, 2.0)
			assert.LessOrEqual(t, a.X+a.Width, 248.0+1e-6)
			assert.LessOrEqual(t, a.Y+a.Height, 198.0+1e-6)
			for _, b := range pls[i+1:] {
				overlap := a.X < b.X+b.Width && b.X < a.X+a.Width &&
					a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
				assert.False(t, overlap, "%s overlaps %s", a.Piece, b.Piece)
			}
		}
	}
}

func TestNestBox_MatchesThickness(t *testing.T) {
	res := generate(t, exampleOptions())
	stocks := []model.StockPreset{
		{Name: "6mm", Width: 600, Height: 400, Thickness: 6},
		{Name: "3mm", Width: 600, Height: 400, Thickness: 3},
	}
	out := NewNester(0, 0).NestBox(res, stocks)
	require.NotEmpty(t, out.Sheets)
	for _, s := range out.Sheets {
		assert.Equal(t, "3mm", s.Stock.Name)
	}

	out = NewNester(0, 0).NestBox(res, stocks[:1])
	assert.Empty(t, out.Sheets)
	assert.Len(t, out.Unplaced, 6)
}

func TestArrangeSheet_Translates(t *testing.T) {
	res := generate(t, exampleOptions())
	out := NewNester(0, 0).Nest(res.Pieces, []model.StockPreset{{Width: 600, Height: 400}})
	require.Len(t, out.Sheets, 1)

	arranged := ArrangeSheet(res, out.Sheets[0])
	require.Len(t, arranged.Pieces, 6)
	for i, p := range arranged.Pieces {
		pl := out.Sheets[0].Placements[i]
		min, max := p.Bounds()
		assert.InDelta(t, pl.X, min.X, 1e-9, p.Name)
		assert.InDelta(t, pl.Y, min.Y, 1e-9, p.Name)
		assert.InDelta(t, pl.X+pl.Width, max.X, 1e-9, p.Name)
		assert.InDelta(t, pl.Y+pl.Height, max.Y, 1e-9, p.Name)
	}
}
