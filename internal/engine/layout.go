package engine

import "github.com/piwi3910/tabbedbox/internal/model"

// gridOffset expresses a layout coordinate as multiples of the spacing and
// of the X, Y and Z box dimensions.
type gridOffset struct{ s, x, y, z float64 }

var (
	row0  = gridOffset{1, 0, 0, 0}
	row1y = gridOffset{2, 0, 1, 0}
	row1z = gridOffset{2, 0, 0, 1}
	row2  = gridOffset{3, 0, 1, 1}

	col0    = gridOffset{1, 0, 0, 0}
	col1x   = gridOffset{2, 1, 0, 0}
	col1z   = gridOffset{2, 0, 0, 1}
	col2xx  = gridOffset{3, 2, 0, 0}
	col2xz  = gridOffset{3, 1, 0, 1}
	col3xzz = gridOffset{4, 1, 0, 2}
	col3xxz = gridOffset{4, 2, 0, 1}
	col4    = gridOffset{5, 2, 0, 2}
	col5    = gridOffset{6, 3, 0, 2}
)

// reduceOffsets pulls every entry after start back by one spacing and the
// given dimensions, closing the gap left by a missing face.
func reduceOffsets(aa []gridOffset, start int, dx, dy, dz float64) {
	for i := start + 1; i < len(aa); i++ {
		aa[i] = gridOffset{aa[i].s - 1, aa[i].x - dx, aa[i].y - dy, aa[i].z - dz}
	}
}

type sheet struct {
	s       model.BoxSettings
	spacing float64
	init    float64
}

func (sh sheet) value(g gridOffset) float64 {
	return g.s*sh.spacing + g.x*sh.s.X + g.y*sh.s.Y + g.z*sh.s.Z + sh.init
}

func (sh sheet) at(col, row gridOffset) model.Vec {
	return model.V(sh.value(col), sh.value(row))
}

// LayoutSpacing is the gap between pieces on the sheet: the requested
// spacing, at least one line width unless hairline, widened by the kerf.
func LayoutSpacing(s model.BoxSettings) float64 {
	lt := s.LineThickness
	if s.Hairline {
		lt = 0
	}
	return max(s.Spacing, lt) + s.Kerf
}

// ApplyLayout positions the pieces on the sheet and returns them in output
// order. The three piece layout only emits back, left, bottom and the
// dividers.
func ApplyLayout(pieces []*Piece, s model.BoxSettings) []*Piece {
	sh := sheet{s: s, spacing: LayoutSpacing(s), init: -s.Kerf / 2}
	sp := sh.spacing

	byType := func(pt model.PieceType) []*Piece {
		var out []*Piece
		for _, p := range pieces {
			if p.Type == pt {
				out = append(out, p)
			}
		}
		return out
	}

	var out []*Piece
	place := func(pt model.PieceType, pos model.Vec) {
		for _, p := range byType(pt) {
			p.Base = pos
			out = append(out, p)
		}
	}

	// Dividers stacked in a fixed band below the faces, used by the
	// compact layouts.
	bandX := func(xStart float64) {
		for i, p := range byType(model.PieceDividerX) {
			p.Base = model.V(float64(i)*(sp+s.X)+xStart, 4*sp+s.Y+2*s.Z)
			out = append(out, p)
		}
	}
	bandY := func(xStart float64) {
		for i, p := range byType(model.PieceDividerY) {
			p.Base = model.V(float64(i)*(sp+s.Z)+xStart, 5*sp+s.Y+3*s.Z)
			out = append(out, p)
		}
	}

	switch s.Layout {
	case model.LayoutThreePiece:
		rr := []gridOffset{row0, row1y, row2}
		cc := []gridOffset{col0, col1z}
		place(model.PieceBack, sh.at(cc[1], rr[1]))
		bandX(sp)
		place(model.PieceLeft, sh.at(cc[0], rr[0]))
		bandY(sp)
		place(model.PieceBottom, sh.at(cc[1], rr[0]))

	case model.LayoutInlineCompact:
		rr := []gridOffset{row0, row1y, row2}
		cc := []gridOffset{col0, col1x, col2xx, col3xxz, col4, col5}
		if !s.HasPiece(model.PieceTop) {
			reduceOffsets(cc, 0, 1, 0, 0)
		}
		if !s.HasPiece(model.PieceBottom) {
			reduceOffsets(cc, 1, 1, 0, 0)
		}
		if !s.HasPiece(model.PieceLeft) {
			reduceOffsets(cc, 2, 0, 0, 1)
		}
		if !s.HasPiece(model.PieceRight) {
			reduceOffsets(cc, 3, 0, 0, 1)
		}
		if !s.HasPiece(model.PieceBack) {
			reduceOffsets(cc, 4, 1, 0, 0)
		}
		place(model.PieceBack, sh.at(cc[4], rr[0]))
		bandX(sp)
		place(model.PieceLeft, sh.at(cc[2], rr[0]))
		bandY(0)
		place(model.PieceTop, sh.at(cc[0], rr[0]))
		place(model.PieceBottom, sh.at(cc[1], rr[0]))
		place(model.PieceRight, sh.at(cc[3], rr[0]))
		place(model.PieceFront, sh.at(cc[5], rr[0]))

	default:
		rr := []gridOffset{row0, row1z, row2}
		cc := []gridOffset{col0, col1z, col2xz, col3xzz}
		if !s.HasPiece(model.PieceFront) {
			reduceOffsets(rr, 0, 0, 0, 1)
		}
		if !s.HasPiece(model.PieceLeft) {
			reduceOffsets(cc, 0, 0, 0, 1)
		}
		if !s.HasPiece(model.PieceRight) {
			reduceOffsets(cc, 2, 0, 0, 1)
		}

		place(model.PieceBack, sh.at(cc[1], rr[2]))

		pos := sh.at(cc[1], rr[2])
		if s.HasPiece(model.PieceBack) {
			pos = pos.Add(model.V(0, s.Z+sp))
		}
		if !s.KeyDivWalls {
			pos = pos.Add(model.V(s.Thickness, 0))
		}
		for _, p := range byType(model.PieceDividerX) {
			p.Base = pos
			pos = pos.Add(model.V(0, sp+p.Dy))
			out = append(out, p)
		}

		place(model.PieceLeft, sh.at(cc[0], rr[1]))

		pos = sh.at(cc[3], rr[1])
		if s.HasPiece(model.PieceTop) {
			pos = pos.Add(model.V(s.X+sp, 0))
		}
		if !s.KeyDivWalls {
			pos = pos.Add(model.V(0, s.Thickness))
		}
		for _, p := range byType(model.PieceDividerY) {
			p.Base = pos
			pos = pos.Add(model.V(sp+p.Dx, 0))
			out = append(out, p)
		}

		place(model.PieceBottom, sh.at(cc[1], rr[1]))
		place(model.PieceRight, sh.at(cc[2], rr[1]))
		place(model.PieceTop, sh.at(cc[3], rr[1]))
		place(model.PieceFront, sh.at(cc[1], rr[0]))
	}
	return out
}
