package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/piwi3910/tabbedbox/internal/model"
)

// DefaultSTLCells is the marching cubes resolution along each piece's
// longest side.
const DefaultSTLCells = 200

// PieceSolid extrudes a combined piece outline by the material thickness,
// with its holes, slots and rail mounting circles cut through. Pieces
// whose sides were never joined into an outline have no solid.
func PieceSolid(p model.PieceShape, thickness float64) (sdf.SDF3, error) {
	if !p.Outlined || len(p.Paths) == 0 {
		return nil, fmt.Errorf("%s has no closed outline", p.Name)
	}
	outline, err := polygon(p.Paths[0])
	if err != nil {
		return nil, fmt.Errorf("failed to build outline of %s: %w", p.Name, err)
	}

	var cuts []sdf.SDF2
	for _, path := range p.Paths[1:] {
		if !path.Closed || len(path.Points) < 3 {
			continue
		}
		hole, err := polygon(path)
		if err != nil {
			return nil, fmt.Errorf("failed to build hole in %s: %w", p.Name, err)
		}
		cuts = append(cuts, hole)
	}
	for _, c := range p.Circles {
		circle, err := sdf.Circle2D(c.Radius)
		if err != nil {
			return nil, fmt.Errorf("failed to build circle in %s: %w", p.Name, err)
		}
		cuts = append(cuts, sdf.Transform2D(circle, sdf.Translate2d(v2.Vec{X: c.Center.X, Y: c.Center.Y})))
	}

	shape := outline
	if len(cuts) > 0 {
		shape = sdf.Difference2D(outline, sdf.Union2D(cuts...))
	}
	return sdf.Extrude3D(shape, thickness), nil
}

func polygon(path model.Path) (sdf.SDF2, error) {
	pts := path.Points
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	verts := make([]v2.Vec, len(pts))
	for i, pt := range pts {
		verts[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	return sdf.Polygon2D(verts)
}

// ExportSTL writes an ASCII STL mesh of every outlined piece lying flat in
// its sheet position. Each piece is tessellated on its own so thin stock
// keeps its resolution on large sheets.
func ExportSTL(w io.Writer, res model.BoxResult, cells int) error {
	if cells <= 0 {
		cells = DefaultSTLCells
	}
	var solids []sdf.SDF3
	for _, p := range res.Pieces {
		if !p.Outlined {
			continue
		}
		s, err := PieceSolid(p, res.Settings.Thickness)
		if err != nil {
			return err
		}
		solids = append(solids, s)
	}
	if len(solids) == 0 {
		return fmt.Errorf("no outlined pieces to export, enable combine")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "solid tabbedbox")
	for _, s := range solids {
		for _, tri := range render.ToTriangles(s, render.NewMarchingCubesUniform(cells)) {
			n := tri.Normal()
			fmt.Fprintf(bw, "facet normal %g %g %g\n outer loop\n", n.X, n.Y, n.Z)
			for j := 0; j < 3; j++ {
				v := tri[j]
				fmt.Fprintf(bw, "  vertex %g %g %g\n", v.X, v.Y, v.Z)
			}
			fmt.Fprintln(bw, " endloop\nendfacet")
		}
	}
	fmt.Fprintln(bw, "endsolid tabbedbox")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}
