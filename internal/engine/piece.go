package engine

import "github.com/piwi3910/tabbedbox/internal/model"

// Piece is one panel of the box. Its four sides form a ring walked
// clockwise from the top edge.
type Piece struct {
	Type     model.PieceType
	Index    int // Position among pieces of the same type
	Sides    [4]Side
	Dx, Dy   float64 // Outside dimensions
	Base     model.Vec
	InsideDx float64
	InsideDy float64
}

// NewPiece links the sides into a piece, recomputes their tab layout for
// the piece type and derives each side's root and start offsets.
func NewPiece(pt model.PieceType, index int, sides [4]Side) *Piece {
	p := &Piece{
		Type:     pt,
		Index:    index,
		Sides:    sides,
		Dx:       sides[model.SideA].Length,
		Dy:       sides[model.SideB].Length,
		InsideDx: sides[model.SideA].InsideLength,
		InsideDy: sides[model.SideB].InsideLength,
	}
	for i := range p.Sides {
		p.Sides[i].recalc(pt)
	}
	for i := range p.Sides {
		sd := &p.Sides[i]
		prev := p.Prev(i)
		switch sd.Name {
		case model.SideA:
			sd.RootOffset = model.V(0, 0)
		case model.SideB:
			sd.RootOffset = model.V(prev.Length, 0)
		case model.SideC:
			sd.RootOffset = model.V(sd.Length, prev.Length)
		case model.SideD:
			sd.RootOffset = model.V(0, sd.Length)
		}
		sd.StartOffset = model.Bool2Vec(prev.EndHole(), sd.StartHole()).RotateCW(int(sd.Name))
	}
	return p
}

// Prev returns the side before side i in clockwise order.
func (p *Piece) Prev(i int) *Side { return &p.Sides[(i+3)%4] }

// Next returns the side after side i in clockwise order.
func (p *Piece) Next(i int) *Side { return &p.Sides[(i+1)%4] }

// Name returns a readable piece name such as "Left" or "DividerY 1".
func (p *Piece) Name() string { return model.PieceName(p.Type, p.Index) }
