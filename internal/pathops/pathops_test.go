package pathops

import (
	"log/slog"
	"testing"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...float64) model.Outline {
	out := make(model.Outline, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, model.Point2D{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func open(xy ...float64) model.Path   { return model.Path{Points: pts(xy...)} }
func closed(xy ...float64) model.Path { return model.Path{Points: pts(xy...), Closed: true} }

// squareEdges returns the four edges of a 10x10 square walked clockwise on
// screen.
func squareEdges() []model.Path {
	return []model.Path{
		open(0, 0, 5, 0, 10, 0),
		open(10, 0, 10, 10),
		open(10, 10, 0, 10),
		open(0, 10, 0, 0),
	}
}

func TestStitch_ClosesSquare(t *testing.T) {
	out := Stitch(squareEdges(), Tolerance)
	require.Len(t, out, 1)
	assert.True(t, out[0].Closed)
	assert.Equal(t, pts(0, 0, 5, 0, 10, 0, 10, 10, 0, 10), out[0].Points)
}

func TestStitch_ReversesAndTolerates(t *testing.T) {
	edges := []model.Path{
		open(0, 0, 10, 0),
		open(10, 10, 10.005, 0), // reversed, slightly off
		open(10, 10, 0, 10),
		open(0, 10, 0, 0),
	}
	out := Stitch(edges, Tolerance)
	require.Len(t, out, 1)
	assert.True(t, out[0].Closed)
	assert.Len(t, out[0].Points, 4)
}

func TestAttach_RequiresExactMatch(t *testing.T) {
	edges := []model.Path{
		open(0, 0, 10, 0),
		open(10.005, 0, 10, 10),
	}
	assert.Len(t, Attach(edges), 2)
	assert.Len(t, Attach(squareEdges()), 1)
}

func TestClose_DropsRepeatedStart(t *testing.T) {
	out := Close([]model.Path{open(0, 0, 1, 0, 1, 1, 0, 0)})
	require.Len(t, out, 1)
	assert.True(t, out[0].Closed)
	assert.Equal(t, pts(0, 0, 1, 0, 1, 1), out[0].Points)
}

func TestSimplify(t *testing.T) {
	p := closed(0, 0, 5, 0, 5, 0, 10, 0, 10, 10, 0, 10)
	assert.Equal(t, pts(0, 0, 10, 0, 10, 10, 0, 10), Simplify(p).Points)

	// A spike that turns back is kept.
	spike := open(0, 0, 10, 0, 5, 0)
	assert.Equal(t, pts(0, 0, 10, 0, 5, 0), Simplify(spike).Points)

	// Points closer than the rounding step collapse.
	tiny := open(0, 0, 0.000000001, 0, 5, 5)
	assert.Len(t, Simplify(tiny).Points, 2)
}

func TestSubtract_InteriorRings(t *testing.T) {
	panel := closed(0, 0, 100, 0, 100, 50, 0, 50)
	holes := []model.Path{
		closed(60, 10, 70, 10, 70, 20, 60, 20),
		closed(10, 10, 20, 10, 20, 20, 10, 20),
	}
	out, err := Subtract(panel, holes)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Greater(t, out[0].Points.Area(), 0.0, "outline runs clockwise on screen")
	assert.InDelta(t, 5000, out[0].Points.Area(), 1e-6)

	assert.Equal(t, model.Point2D{X: 10, Y: 10}, out[1].Points[0])
	assert.Equal(t, model.Point2D{X: 60, Y: 10}, out[2].Points[0])
	for _, h := range out[1:] {
		assert.True(t, h.Closed)
		assert.Less(t, h.Points.Area(), 0.0, "holes run counter-clockwise")
	}
}

func TestSubtract_OverlappingHolesMerge(t *testing.T) {
	panel := closed(0, 0, 100, 0, 100, 50, 0, 50)
	holes := []model.Path{
		closed(10, 10, 30, 10, 30, 20, 10, 20),
		closed(20, 15, 40, 15, 40, 25, 20, 25),
	}
	out, err := Subtract(panel, holes)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, -(200 + 200 - 50), out[1].Points.Area(), 1e-6)
}

func TestSubtract_NoHoles(t *testing.T) {
	panel := closed(0, 0, 10, 0, 10, 10, 0, 10)
	out, err := Subtract(panel, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Path{panel}, out)
}

func TestSubtract_IgnoresCollapsedHoles(t *testing.T) {
	panel := closed(0, 0, 100, 0, 100, 50, 0, 50)
	holes := []model.Path{
		closed(6, 10, 6, 10, 6, 40, 6, 40),
		closed(10, 10, 20, 10, 20, 20, 10, 20),
		closed(30, 30, 30, 30),
	}
	out, err := Subtract(panel, holes)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, -100, out[1].Points.Area(), 1e-6)
}

func TestMergeRects(t *testing.T) {
	rects := []model.Path{
		closed(0, 0, 10, 0, 10, 10, 0, 10),
		closed(5, 5, 15, 5, 15, 15, 5, 15),
		closed(50, 50, 60, 50, 60, 60, 50, 60),
	}
	out := MergeRects(rects)
	require.Len(t, out, 2)

	var areas []float64
	for _, p := range out {
		assert.True(t, p.Closed)
		areas = append(areas, p.Points.Area())
	}
	assert.ElementsMatch(t, []float64{175, 100}, areas)
}

func TestOptimize(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	hole := closed(2, 2, 4, 2, 4, 4, 2, 4)

	paths, outlined := Optimize(squareEdges(), []model.Path{hole}, Options{Combine: true, Cutout: true}, log)
	assert.True(t, outlined)
	require.Len(t, paths, 2)
	assert.Len(t, paths[0].Points, 4)

	paths, outlined = Optimize(squareEdges(), []model.Path{hole}, Options{}, log)
	assert.False(t, outlined)
	assert.Len(t, paths, 5)

	paths, outlined = Optimize(squareEdges(), []model.Path{hole}, Options{Combine: true}, log)
	assert.True(t, outlined)
	require.Len(t, paths, 2)
	assert.Equal(t, hole, paths[1])
}
