package importer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// segment is one loose LINE, or one flattened piece of an ARC.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// DXFResult holds the pieces read back from a drawing.
type DXFResult struct {
	Pieces   []model.PieceShape
	Errors   []string
	Warnings []string
}

// layerShapes collects the geometry found on one layer.
type layerShapes struct {
	name     string
	paths    []model.Path
	circles  []model.Circle
	segments []segment
}

// ImportDXF reads the pieces of a drawing, one piece per layer. Polylines
// become paths, circles stay circles, and loose LINEs and ARCs on a layer
// are chained into outlines. The y axis is flipped back to document
// orientation, so a drawing written by this tool reads back with its
// pieces where they were laid out.
func ImportDXF(path string) DXFResult {
	result := DXFResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	layers := map[string]*layerShapes{}
	var order []string
	layerFor := func(ent entity.Entity) *layerShapes {
		name := "0"
		if l := ent.Layer(); l != nil {
			name = l.Name()
		}
		ls, ok := layers[name]
		if !ok {
			ls = &layerShapes{name: strings.ReplaceAll(name, "_", " ")}
			layers[name] = ls
			order = append(order, name)
		}
		return ls
	}

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) < 2 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			ls := layerFor(ent)
			ls.paths = append(ls.paths, model.Path{Points: outline, Closed: e.Closed})

		case *entity.Circle:
			ls := layerFor(ent)
			ls.circles = append(ls.circles, model.Circle{
				Center: model.Point2D{X: e.Center[0], Y: e.Center[1]},
				Radius: e.Radius,
			})

		case *entity.Arc:
			pts := arcToPoints(e, arcSegments)
			if len(pts) >= 2 {
				ls := layerFor(ent)
				ls.segments = append(ls.segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			ls := layerFor(ent)
			ls.segments = append(ls.segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		}
	}

	for _, name := range order {
		ls := layers[name]
		for _, co := range chainSegments(ls.segments, 0.01) {
			ls.paths = append(ls.paths, model.Path{Points: co, Closed: true})
		}
	}

	var pieces []model.PieceShape
	for i, name := range order {
		ls := layers[name]
		if len(ls.paths) == 0 && len(ls.circles) == 0 {
			continue
		}
		p := buildPiece(ls)
		p.Index = i
		if p.Width < 0.01 || p.Height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape on layer %s (%.2f x %.2f)", ls.name, p.Width, p.Height))
			continue
		}
		pieces = append(pieces, p)
	}

	if len(pieces) == 0 {
		result.Errors = append(result.Errors, "No shapes found in DXF file")
		return result
	}

	result.Pieces = flipPieces(pieces)
	return result
}

// buildPiece orders a layer's paths largest first and marks the piece
// outlined when that path is closed and encloses everything else.
func buildPiece(ls *layerShapes) model.PieceShape {
	sort.SliceStable(ls.paths, func(i, j int) bool {
		return outlineArea(ls.paths[i].Points) > outlineArea(ls.paths[j].Points)
	})
	p := model.PieceShape{
		Name:    ls.name,
		Paths:   ls.paths,
		Circles: ls.circles,
	}
	min, max := p.Bounds()
	p.Base = min
	p.Width = max.X - min.X
	p.Height = max.Y - min.Y

	if len(p.Paths) > 0 && p.Paths[0].Closed {
		omin, omax := p.Paths[0].Points.BoundingBox()
		p.Outlined = omin == min && omax == max
	}
	return p
}

// flipPieces mirrors every piece about the drawing's extent so y grows
// downward again.
func flipPieces(pieces []model.PieceShape) []model.PieceShape {
	_, max := model.BoxResult{Pieces: pieces}.Bounds()
	flip := func(pt model.Point2D) model.Point2D { return model.Point2D{X: pt.X, Y: max.Y - pt.Y} }

	for i := range pieces {
		p := &pieces[i]
		for j := range p.Paths {
			pts := make(model.Outline, len(p.Paths[j].Points))
			for k, pt := range p.Paths[j].Points {
				pts[k] = flip(pt)
			}
			p.Paths[j].Points = pts
		}
		for j := range p.Circles {
			p.Circles[j].Center = flip(p.Circles[j].Center)
		}
		p.Base = model.Point2D{X: p.Base.X, Y: max.Y - p.Base.Y - p.Height}
	}
	return pieces
}

// lwPolylineToOutline flattens a polyline, replacing each bulged segment
// with arcSegments straight pieces.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	n := len(lw.Vertices)
	var out model.Outline
	for i, v := range lw.Vertices {
		p := model.Point2D{X: v[0], Y: v[1]}
		var bulge float64
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		last := i == n-1
		if math.Abs(bulge) < 1e-9 || (last && !lw.Closed) {
			out = append(out, p)
			continue
		}
		next := lw.Vertices[(i+1)%n]
		arc := bulgeArcPoints(p, model.Point2D{X: next[0], Y: next[1]}, bulge, arcSegments)
		out = append(out, arc[:len(arc)-1]...)
	}
	return out
}

// arcSegments is the number of straight pieces an arc is flattened into.
const arcSegments = 32

// bulgeArcPoints flattens the arc from p1 to p2 whose bulge is the tangent
// of a quarter of its sweep. Positive bulges run counter-clockwise.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, segments int) model.Outline {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return model.Outline{p1, p2}
	}
	sweep := 4 * math.Atan(bulge)
	radius := math.Abs(chord / (2 * math.Sin(sweep/2)))

	// The centre sits on the chord's perpendicular bisector, left of the
	// chord for counter-clockwise arcs.
	h := chord / 2 / math.Tan(sweep/2)
	cx := (p1.X+p2.X)/2 - dy/chord*h
	cy := (p1.Y+p2.Y)/2 + dx/chord*h

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	pts := make(model.Outline, segments+1)
	for i := range pts {
		a := start + sweep*float64(i)/float64(segments)
		pts[i] = model.Point2D{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	pts[segments] = p2
	return pts
}

// arcToPoints flattens an ARC entity, which always runs counter-clockwise
// from its start angle to its end angle in degrees.
func arcToPoints(a *entity.Arc, segments int) []model.Point2D {
	sweep := a.Angle[1] - a.Angle[0]
	if sweep <= 0 {
		sweep += 360
	}
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	pts := make([]model.Point2D, segments+1)
	for i := range pts {
		rad := (a.Angle[0] + sweep*float64(i)/float64(segments)) * math.Pi / 180
		pts[i] = model.Point2D{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
	}
	return pts
}

func pointsToSegments(pts []model.Point2D) []segment {
	segs := make([]segment, len(pts)-1)
	for i := range segs {
		segs[i] = segment{start: pts[i], end: pts[i+1]}
	}
	return segs
}

// chainSegments links segments end to end into closed outlines, largest
// first. Endpoints within tol count as shared. Chains that never return
// to their start are dropped.
func chainSegments(segs []segment, tol float64) []model.Outline {
	used := make([]bool, len(segs))
	var outlines []model.Outline

	for first := range segs {
		if used[first] {
			continue
		}
		used[first] = true
		chain := model.Outline{segs[first].start, segs[first].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, sg := range segs {
				if used[i] {
					continue
				}
				var next model.Point2D
				switch {
				case pointsClose(tail, sg.start, tol):
					next = sg.end
				case pointsClose(tail, sg.end, tol):
					next = sg.start
				default:
					continue
				}
				used[i] = true
				chain = append(chain, next)
				extended = true
				break
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tol) {
			continue
		}
		outlines = append(outlines, chain[:len(chain)-1])
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})
	return outlines
}

func pointsClose(a, b model.Point2D, tol float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tol
}

// outlineArea is the unsigned area of a polygon.
func outlineArea(o model.Outline) float64 {
	return math.Abs(o.Area())
}
