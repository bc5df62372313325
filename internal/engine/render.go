package engine

import "github.com/piwi3910/tabbedbox/internal/model"

// polyline collects points while an edge is traced.
type polyline []model.Vec

func (pl *polyline) to(v model.Vec) { *pl = append(*pl, v) }

// path converts the points to a model path shifted by offset. Closed paths
// drop a final point that returns to the start.
func (pl polyline) path(offset model.Vec, closed bool) model.Path {
	pts := pl
	if closed && len(pts) > 1 && pts[len(pts)-1].Near(pts[0], 1e-9) {
		pts = pts[:len(pts)-1]
	}
	out := make(model.Outline, len(pts))
	for i, v := range pts {
		out[i] = v.Add(offset).Point()
	}
	return model.Path{Points: out, Closed: closed}
}

// edgeContext carries the piece-wide values needed while tracing a side.
type edgeContext struct {
	s     model.BoxSettings
	piece *Piece
	idx   int
}

func (ec edgeContext) side() *Side { return &ec.piece.Sides[ec.idx] }
func (ec edgeContext) prev() *Side { return ec.piece.Prev(ec.idx) }
func (ec edgeContext) next() *Side { return ec.piece.Next(ec.idx) }

// sidePath traces one edge of a piece as an open polyline. Consecutive
// edges of the same piece meet end to start.
func (g *Generator) sidePath(p *Piece, i int) model.Path {
	ec := edgeContext{s: g.Settings, piece: p, idx: i}
	sd, prev, next := ec.side(), ec.prev(), ec.next()
	s := ec.s
	pt := ec.piece.Type

	dir := sd.Direction
	t := sd.Thickness
	kerf := s.Kerf
	hk := kerf / 2
	male := sd.IsMale
	dogbone := sd.Dogbone

	var tabVec float64
	if sd.HasTabs {
		tabVec = t
		if male {
			tabVec = -t
		}
	}

	tab, gap := sd.KerfWidths(kerf)
	var first float64
	if male {
		first = kerf
	}

	toInside := dir.RotateCW(1)
	so := sd.StartOffset
	vector := so.Scale(t)

	var pl polyline
	pl.to(vector)

	if sd.HasTabs || !(s.Combine || s.Cutout) {
		rotateCorner := sd.Symmetry == model.SymmetryRotate &&
			(pt == model.PieceBottom || pt == model.PieceTop)
		antiCorner := sd.Symmetry == model.SymmetryAntisymmetric &&
			pt == model.PieceTop && male && !prev.IsMale
		if sd.HasTabs && prev.HasTabs && (rotateCorner || antiCorner) {
			// Fill the corner left open between two tabbed edges.
			c := vector.Add(toInside.Scale(-(t + hk)))
			pl.to(c)
			c = c.Add(dir.Scale(t + kerf))
			pl.to(c)
			c = c.Sub(toInside.Scale(-(t + hk)))
			pl.to(c)
		}

		if sd.Symmetry == model.SymmetryRotate {
			vx, vy := so.X, so.Y
			if vx == 0 {
				vx = dir.X
			}
			if vy == 0 {
				vy = dir.Y
			}
			vector = model.V(vx, vy).Scale(t)
		} else {
			if toInside.X != 0 {
				vector = model.V(vector.X, 0)
			}
			if toInside.Y != 0 {
				vector = model.V(0, vector.Y)
			}
		}

		if !prev.HasTabs && dividerWallEdge(pt, sd.Name) {
			vector = vector.Sub(dir.Scale(t))
		}

		if !(male && dogbone) && first != 0 {
			vector = vector.Add(dir.Scale(first))
		}

		for div := 1; div < sd.Divisions; div++ {
			if div%2 == 1 {
				// gap, then the leading edge of a tab
				step := gap
				if dogbone && male {
					step += kerf
				}
				vector = vector.Add(dir.Scale(step))
				pl.to(vector)
				if dogbone && male {
					vector = vector.Sub(dir.Scale(hk))
					pl.to(vector)
				}
				pl = append(pl, dimple(tabVec, vector, dir, toInside, 1, male, s.DimpleLength, s.DimpleHeight)...)
				vector = vector.Add(toInside.Scale(tabVec))
				pl.to(vector)
				if dogbone && !male {
					vector = vector.Sub(dir.Scale(hk))
					pl.to(vector)
				}
			} else {
				// tab, then its trailing edge
				step := tab
				if dogbone && !male {
					step += kerf
				}
				vector = vector.Add(dir.Scale(step))
				pl.to(vector)
				if dogbone && !male {
					vector = vector.Sub(dir.Scale(hk))
					pl.to(vector)
				}
				pl = append(pl, dimple(tabVec, vector, dir, toInside, -1, male, s.DimpleLength, s.DimpleHeight)...)
				vector = vector.Add(toInside.Scale(tabVec))
				pl.to(vector)
				if dogbone && male {
					vector = vector.Sub(dir.Scale(hk))
					pl.to(vector)
				}
			}
			tabVec = -tabVec
		}
	}

	end := next.StartOffset.Scale(t).Add(dir.Scale(sd.Length + kerf))
	if sd.Symmetry == model.SymmetryAntisymmetric && pt == model.PieceBottom &&
		male && !next.IsMale && sd.HasTabs && next.HasTabs {
		c := end.Sub(dir.Scale(t + kerf))
		pl.to(c)
		c = c.Add(toInside.Scale(-(t + hk)))
		pl.to(c)
		c = c.Add(dir.Scale(t + kerf))
		pl.to(c)
	}
	pl.to(end)

	offset := ec.piece.Base.
		Add(sd.RootOffset).
		Add(dir.Scale(-hk)).
		Add(toInside.Scale(-hk))
	return pl.path(offset, false)
}

// dividerWallEdge reports whether the edge of a divider is the one keyed
// into the walls, whose tabs are spread over the inside length.
func dividerWallEdge(pt model.PieceType, n model.SideName) bool {
	switch pt {
	case model.PieceDividerY:
		return n == model.SideB || n == model.SideD
	case model.PieceDividerX:
		return n == model.SideA || n == model.SideC
	}
	return false
}

// dimple returns the points of a press-fit bump on a tab edge, or nothing
// when dimples are disabled or the edge has no tabs.
func dimple(tabVec float64, vector, dir, toInside model.Vec, ddir int, male bool, length, height float64) []model.Vec {
	if !male {
		ddir = -ddir
	}
	if height <= 0 || tabVec == 0 {
		return nil
	}
	var start, sign float64
	if tabVec > 0 {
		start = (tabVec-length)/2 - height
		sign = 1
	} else {
		start = (tabVec+length)/2 + height
		sign = -1
	}
	d := float64(ddir)
	vd := vector.Add(toInside.Scale(start))
	out := []model.Vec{vd}
	vd = vd.Add(toInside.Scale(sign * height)).Sub(dir.Scale(d * height))
	out = append(out, vd)
	vd = vd.Add(toInside.Scale(sign * length))
	out = append(out, vd)
	vd = vd.Add(toInside.Scale(sign * height)).Add(dir.Scale(d * height))
	out = append(out, vd)
	return out
}
