package engine

import "github.com/piwi3910/tabbedbox/internal/model"

// EdgeFlags holds one flag per edge of a face.
type EdgeFlags struct {
	Top    bool // side A
	Right  bool // side B
	Bottom bool // side C
	Left   bool // side D
}

func allEdges() EdgeFlags { return EdgeFlags{true, true, true, true} }

// Get returns the flag for the named side.
func (e EdgeFlags) Get(n model.SideName) bool {
	switch n {
	case model.SideA:
		return e.Top
	case model.SideB:
		return e.Right
	case model.SideC:
		return e.Bottom
	default:
		return e.Left
	}
}

func (e *EdgeFlags) clear(n model.SideName) {
	switch n {
	case model.SideA:
		e.Top = false
	case model.SideB:
		e.Right = false
	case model.SideC:
		e.Bottom = false
	default:
		e.Left = false
	}
}

// FaceTabs says, per edge of a face, whether the edge carries tabs at all
// and whether those tabs are male.
type FaceTabs struct {
	Male   EdgeFlags
	Tabbed EdgeFlags
}

// clear turns an edge into a plain straight edge.
func (f *FaceTabs) clear(n model.SideName) {
	f.Male.clear(n)
	f.Tabbed.clear(n)
}

// TabConfiguration holds the joinery of all six faces.
type TabConfiguration struct {
	Top, Bottom, Left, Right, Front, Back FaceTabs
}

// For returns the face configuration used by a piece type. X dividers
// follow the front face and Y dividers follow the left face.
func (c TabConfiguration) For(pt model.PieceType) FaceTabs {
	switch pt {
	case model.PieceTop:
		return c.Top
	case model.PieceBottom:
		return c.Bottom
	case model.PieceLeft, model.PieceDividerY:
		return c.Left
	case model.PieceRight:
		return c.Right
	case model.PieceFront, model.PieceDividerX:
		return c.Front
	case model.PieceBack:
		return c.Back
	}
	return FaceTabs{}
}

// TabConfigurationFor derives which edges are male from the tab symmetry,
// then removes tabs from every edge that would join a missing face.
func TabConfigurationFor(s model.BoxSettings) TabConfiguration {
	var c TabConfiguration
	switch s.TabSymmetry {
	case model.SymmetryAntisymmetric:
		c.Top.Male = EdgeFlags{Right: true, Bottom: true}
		c.Bottom.Male = EdgeFlags{Top: true, Right: true}
		c.Left.Male = EdgeFlags{Top: true, Right: true}
		c.Right.Male = EdgeFlags{Right: true, Bottom: true}
		c.Front.Male = EdgeFlags{Top: true, Right: true}
		c.Back.Male = EdgeFlags{Top: true, Left: true}
	case model.SymmetryRotate:
		c.Top.Male = allEdges()
		c.Bottom.Male = allEdges()
		c.Left.Male = allEdges()
		c.Right.Male = allEdges()
		c.Front.Male = allEdges()
		c.Back.Male = allEdges()
	default:
		c.Left.Male = allEdges()
		c.Right.Male = allEdges()
		c.Front.Male = EdgeFlags{Top: true, Bottom: true}
		c.Back.Male = EdgeFlags{Top: true, Bottom: true}
	}
	for _, f := range []*FaceTabs{&c.Top, &c.Bottom, &c.Left, &c.Right, &c.Front, &c.Back} {
		f.Tabbed = allEdges()
	}

	if !s.HasPiece(model.PieceTop) {
		c.Back.clear(model.SideC)
		c.Front.clear(model.SideA)
		c.Left.clear(model.SideD)
		c.Right.clear(model.SideB)
		c.Top.Tabbed = EdgeFlags{}
	}
	if !s.HasPiece(model.PieceBottom) {
		c.Back.clear(model.SideA)
		c.Front.clear(model.SideC)
		c.Left.clear(model.SideB)
		c.Right.clear(model.SideD)
		c.Bottom.Tabbed = EdgeFlags{}
	}
	if !s.HasPiece(model.PieceFront) {
		c.Top.clear(model.SideA)
		c.Bottom.clear(model.SideA)
		c.Left.clear(model.SideA)
		c.Right.clear(model.SideA)
		c.Front.Tabbed = EdgeFlags{}
	}
	if !s.HasPiece(model.PieceBack) {
		c.Top.clear(model.SideC)
		c.Bottom.clear(model.SideC)
		c.Left.clear(model.SideC)
		c.Right.clear(model.SideC)
		c.Back.Tabbed = EdgeFlags{}
	}
	if !s.HasPiece(model.PieceLeft) {
		c.Top.clear(model.SideB)
		c.Bottom.clear(model.SideD)
		c.Back.clear(model.SideD)
		c.Front.clear(model.SideD)
		c.Left.Tabbed = EdgeFlags{}
	}
	if !s.HasPiece(model.PieceRight) {
		c.Top.clear(model.SideD)
		c.Bottom.clear(model.SideB)
		c.Back.clear(model.SideB)
		c.Front.clear(model.SideB)
		c.Right.Tabbed = EdgeFlags{}
	}
	return c
}
