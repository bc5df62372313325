package engine

import (
	"slices"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// CumulativePosition returns the offset of divider k (1-based) from the
// start of the edge: the widths of the first k sections plus the k-1
// divider thicknesses between them. It is zero when no spacing is set.
func CumulativePosition(k int, spacings []float64, thickness float64) float64 {
	if len(spacings) == 0 || k <= 0 {
		return 0
	}
	var sum float64
	i := 0
	for ; i < k; i++ {
		if i >= len(spacings) {
			break
		}
		sum += spacings[i]
	}
	if i == k {
		i = k - 1
	}
	return sum + thickness*float64(i)
}

// sideSlots returns the half-depth slots cut into a divider where it
// crosses dividers of the other axis. Only the top and left edges carry
// slots.
func (g *Generator) sideSlots(p *Piece, i int) []model.Path {
	ec := edgeContext{s: g.Settings, piece: p, idx: i}
	sd, prev := ec.side(), ec.prev()
	if sd.NumDividers == 0 || (sd.Name != model.SideA && sd.Name != model.SideD) {
		return nil
	}

	spacings := slices.Clone(sd.DividerSpacings)
	if sd.Name >= model.SideC {
		slices.Reverse(spacings)
	}

	dir := sd.Direction
	t := sd.Thickness
	kerf := ec.s.Kerf
	hk := kerf / 2
	toInside := dir.RotateCW(1)

	vector := ec.piece.Base.Add(sd.RootOffset).Add(toInside.Scale(boolf(sd.HasTabs) * t))
	kerfOffset := toInside.Scale(hk)

	width := sd.InsideLength / 2
	if prev.HasTabs {
		width += t
	}

	var out []model.Path
	for k := 0; k < sd.NumDividers; k++ {
		cum := CumulativePosition(k+1, spacings, t)
		start := vector.Add(toInside.Scale(cum)).Add(kerfOffset).Sub(dir.Scale(hk))

		var pl polyline
		pl.to(start)
		pos := start.Add(dir.Scale(width))
		if sd.Dogbone {
			pl.to(pos.Add(dir.Scale(hk)))
		}
		pl.to(pos)
		pos = pos.Add(toInside.Scale(t - kerf))
		pl.to(pos)
		if sd.Dogbone {
			pl.to(pos.Add(dir.Scale(hk)))
		}
		pos = pos.Sub(dir.Scale(width))
		pl.to(pos)
		out = appendRing(out, pl)
	}
	return out
}

// sideHoles returns the holes a face needs where divider tabs key into it.
// Holes follow the tab pattern of the edge they sit behind.
func (g *Generator) sideHoles(p *Piece, i int) []model.Path {
	ec := edgeContext{s: g.Settings, piece: p, idx: i}
	sd, prev, next := ec.side(), ec.prev(), ec.next()
	if sd.NumDividers == 0 {
		return nil
	}

	dir := sd.Direction
	t := sd.Thickness
	kerf := ec.s.Kerf
	hk := kerf / 2
	male := sd.IsMale
	sym := sd.Symmetry
	endsTrimmed := sym == model.SymmetryXY || sym == model.SymmetryAntisymmetric

	first, corr := -hk, kerf
	if male {
		first, corr = hk, -kerf
	}
	gap := sd.GapWidth + corr
	tab := sd.TabWidth - corr

	toInside := dir.RotateCW(1)
	kerfOffset := model.V(boolf(toInside.X != 0), 0-boolf(toInside.Y != 0)).Scale(hk)

	hasTabs := boolf(sd.HasTabs)
	prevTabs := boolf(prev.HasTabs)

	vector := ec.piece.Base.Add(sd.RootOffset).Add(toInside.Scale(hasTabs*t + hk))
	if sym == model.SymmetryRotate {
		vector = vector.Add(dir.Scale(prevTabs*t - hk))
	}

	Logger().Debug("divider holes",
		"piece", ec.piece.Name(), "side", sd.Name.String(),
		"tab", tab, "gap", gap, "divisions", sd.Divisions,
		"male", male, "dividers", sd.NumDividers)

	thick := toInside.Scale(t - kerf)
	var out []model.Path
	for d := 0; d < sd.Divisions; d++ {
		if (d%2 == 0) != !male {
			w := tab
			if male {
				w = gap
			}
			ww := w
			if (d == 0 || d == sd.Divisions-1) && endsTrimmed {
				switch {
				case d == 0 && prev.HasTabs:
					w -= t - hk
				case d > 0 && ((next.HasTabs && sym == model.SymmetryXY) ||
					(sym == model.SymmetryAntisymmetric && ec.piece.Type == model.PieceBottom)):
					w -= t - kerf
				}
			}
			holeLen := dir.Scale(w + first)
			db := sd.Dogbone && ww == w

			for k := 0; k < sd.NumDividers; k++ {
				cum := CumulativePosition(k+1, sd.DividerSpacings, t)
				pos := vector.Add(toInside.Scale(cum + hk)).Add(kerfOffset)
				if d == 0 && (sym == model.SymmetryXY || (male && sym == model.SymmetryAntisymmetric)) {
					pos = pos.Add(dir.Scale(prevTabs*t - hk))
				}

				var pl polyline
				pl.to(pos)
				if db {
					pl.to(pos.Sub(dir.Scale(hk)))
				}
				pos = pos.Add(holeLen)
				if db {
					pl.to(pos.Add(dir.Scale(hk)))
				}
				pl.to(pos)
				pos = pos.Add(thick)
				pl.to(pos)
				if db {
					pl.to(pos.Add(dir.Scale(hk)))
				}
				pos = pos.Sub(holeLen)
				if db {
					pl.to(pos.Sub(dir.Scale(hk)))
				}
				pl.to(pos)
				pos = pos.Sub(thick)
				pl.to(pos)
				out = appendRing(out, pl)
			}
		}

		if d%2 == 0 {
			vector = vector.Add(dir.Scale(gap + first))
		} else {
			vector = vector.Add(dir.Scale(tab))
		}
		first = 0
	}
	return out
}

// appendRing closes pl and appends it unless it has collapsed to a line or
// a point, which happens when a division is exactly one thickness wide.
func appendRing(out []model.Path, pl polyline) []model.Path {
	ring := pl.path(model.Vec{}, true)
	if ring.Degenerate() {
		Logger().Debug("dropped degenerate ring", "points", len(ring.Points))
		return out
	}
	return append(out, ring)
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
