package engine

import "github.com/piwi3910/tabbedbox/internal/model"

// pieceDimensions returns the outside and inside size of a piece type as
// (dx, dy, insideDx, insideDy).
func pieceDimensions(s model.BoxSettings, pt model.PieceType) (float64, float64, float64, float64) {
	switch pt {
	case model.PieceBack, model.PieceFront, model.PieceDividerX:
		return s.X, s.Z, s.InsideX, s.InsideZ
	case model.PieceLeft, model.PieceRight, model.PieceDividerY:
		return s.Z, s.Y, s.InsideZ, s.InsideY
	case model.PieceTop, model.PieceBottom:
		return s.X, s.Y, s.InsideX, s.InsideY
	}
	return 0, 0, 0, 0
}

// makeSides builds the four sides of a piece type and assigns divider
// spacings and divider counts to the edges that receive divider holes.
func makeSides(s model.BoxSettings, tabs TabConfiguration, pt model.PieceType) [4]Side {
	dx, dy, idx, idy := pieceDimensions(s, pt)
	face := tabs.For(pt)

	sides := [4]Side{
		NewSide(s, model.SideA, face.Male.Top, face.Tabbed.Top, dx, idx),
		NewSide(s, model.SideB, face.Male.Right, face.Tabbed.Right, dy, idy),
		NewSide(s, model.SideC, face.Male.Bottom, face.Tabbed.Bottom, dx, idx),
		NewSide(s, model.SideD, face.Male.Left, face.Tabbed.Left, dy, idy),
	}

	// Dividers along X are spaced across Y and vice versa.
	horizontal, vertical := []float64{}, []float64{}
	switch pt {
	case model.PieceTop, model.PieceBottom:
		horizontal, vertical = s.DivXSpacing, s.DivYSpacing
	case model.PieceFront, model.PieceBack, model.PieceDividerX:
		vertical = s.DivYSpacing
	case model.PieceLeft, model.PieceRight, model.PieceDividerY:
		horizontal = s.DivXSpacing
	}
	sides[model.SideA].DividerSpacings = horizontal
	sides[model.SideC].DividerSpacings = horizontal
	sides[model.SideB].DividerSpacings = vertical
	sides[model.SideD].DividerSpacings = vertical

	if pt.IsDivider() {
		return sides
	}

	floor := pt == model.PieceTop || pt == model.PieceBottom
	wall := !floor
	if !(s.KeyDivFloor || wall) || !(s.KeyDivWalls || floor) {
		return sides
	}
	if pt != model.PieceFront && pt != model.PieceBack {
		if sides[model.SideA].HasTabs {
			sides[model.SideA].NumDividers = s.DivX
		} else if sides[model.SideC].HasTabs {
			sides[model.SideC].NumDividers = s.DivX
		}
	}
	if pt != model.PieceLeft && pt != model.PieceRight {
		if sides[model.SideB].HasTabs {
			sides[model.SideB].NumDividers = s.DivY
		} else if sides[model.SideD].HasTabs {
			sides[model.SideD].NumDividers = s.DivY
		}
	}
	return sides
}

// untab turns a pair of opposite divider edges into plain edges.
func untab(sides *[4]Side, a, b model.SideName) {
	sides[a].HasTabs, sides[b].HasTabs = false, false
	sides[a].IsMale, sides[b].IsMale = false, false
}

// CreatePieces builds every face of the box type followed by the X and
// then Y dividers. Pieces are not positioned yet.
func CreatePieces(s model.BoxSettings, tabs TabConfiguration) []*Piece {
	var pieces []*Piece
	for _, pt := range []model.PieceType{
		model.PieceBack, model.PieceLeft, model.PieceBottom,
		model.PieceRight, model.PieceTop, model.PieceFront,
	} {
		if s.HasPiece(pt) {
			pieces = append(pieces, NewPiece(pt, 0, makeSides(s, tabs, pt)))
		}
	}

	for n := 0; n < s.DivX; n++ {
		sides := makeSides(s, tabs, model.PieceDividerX)
		if !s.KeyDivFloor {
			untab(&sides, model.SideA, model.SideC)
		}
		if !s.KeyDivWalls {
			untab(&sides, model.SideB, model.SideD)
		}
		sides[model.SideB].NumDividers = s.DivY
		sides[model.SideD].NumDividers = s.DivY
		pieces = append(pieces, NewPiece(model.PieceDividerX, n, sides))
	}

	for n := 0; n < s.DivY; n++ {
		sides := makeSides(s, tabs, model.PieceDividerY)
		if !s.KeyDivWalls {
			untab(&sides, model.SideA, model.SideC)
		}
		if !s.KeyDivFloor {
			untab(&sides, model.SideB, model.SideD)
		}
		sides[model.SideA].NumDividers = s.DivX
		sides[model.SideC].NumDividers = s.DivX
		pieces = append(pieces, NewPiece(model.PieceDividerY, n, sides))
	}

	Logger().Debug("created pieces", "count", len(pieces), "divx", s.DivX, "divy", s.DivY)
	return pieces
}
