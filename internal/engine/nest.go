package engine

import (
	"sort"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// Nester packs generated pieces onto stock sheets. Each piece is treated as
// its bounding rectangle; sheets are drawn from the stock list as often as
// needed.
type Nester struct {
	Kerf     float64 // Gap kept between neighbouring pieces
	EdgeTrim float64 // Unusable border around each sheet
}

func NewNester(kerf, edgeTrim float64) *Nester {
	return &Nester{Kerf: kerf, EdgeTrim: edgeTrim}
}

type nestItem struct {
	name string
	w, h float64
}

// NestBox nests the pieces of a generated box onto the stock sheets whose
// thickness matches the box material. Sheets without a thickness match any
// box.
func (n *Nester) NestBox(res model.BoxResult, stocks []model.StockPreset) model.NestResult {
	var usable []model.StockPreset
	for _, s := range stocks {
		if s.Thickness == 0 || s.Thickness == res.Settings.Thickness {
			usable = append(usable, s)
		}
	}
	return n.Nest(res.Pieces, usable)
}

// Nest places every piece on the fewest, best-filled sheets it can.
func (n *Nester) Nest(pieces []model.PieceShape, stocks []model.StockPreset) model.NestResult {
	result := model.NestResult{}

	var items []nestItem
	for _, p := range pieces {
		it := nestItem{name: p.Name, w: p.Width, h: p.Height}
		if !n.fitsAny(it, stocks) {
			result.Unplaced = append(result.Unplaced, it.name)
			continue
		}
		items = append(items, it)
	}

	// Largest first packs better.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].w*items[i].h > items[j].w*items[j].h
	})

	remaining := items
	for len(remaining) > 0 {
		idx := n.selectBestStock(stocks, remaining)
		if idx < 0 {
			break
		}
		sheet, unplaced := n.packSheetBestStrategy(stocks[idx], remaining)
		if len(sheet.Placements) == 0 {
			break
		}
		result.Sheets = append(result.Sheets, sheet)
		remaining = unplaced
	}
	for _, it := range remaining {
		result.Unplaced = append(result.Unplaced, it.name)
	}

	Logger().Debug("nested pieces",
		"sheets", len(result.Sheets), "unplaced", len(result.Unplaced))
	return result
}

func (n *Nester) usable(s model.StockPreset) (float64, float64) {
	return s.Width - 2*n.EdgeTrim, s.Height - 2*n.EdgeTrim
}

func (n *Nester) fits(it nestItem, s model.StockPreset) bool {
	uw, uh := n.usable(s)
	k := n.Kerf
	return (it.w+k <= uw+0.001 && it.h+k <= uh+0.001) ||
		(it.h+k <= uw+0.001 && it.w+k <= uh+0.001)
}

func (n *Nester) fitsAny(it nestItem, stocks []model.StockPreset) bool {
	for _, s := range stocks {
		if n.fits(it, s) {
			return true
		}
	}
	return false
}

// selectBestStock trial-packs the remaining pieces on every distinct sheet
// size able to hold the largest of them and returns the sheet with the
// highest efficiency.
func (n *Nester) selectBestStock(stocks []model.StockPreset, items []nestItem) int {
	if len(stocks) == 0 || len(items) == 0 {
		return -1
	}
	largest := items[0]
	for _, it := range items[1:] {
		if it.w*it.h > largest.w*largest.h {
			largest = it
		}
	}

	var candidates []int
	for i, s := range stocks {
		if n.fits(largest, s) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) <= 1 {
		if len(candidates) == 0 {
			return -1
		}
		return candidates[0]
	}

	type stockKey struct{ w, h float64 }
	seen := make(map[stockKey]bool)
	bestIdx := -1
	bestScore := -1.0
	for _, idx := range candidates {
		s := stocks[idx]
		key := stockKey{s.Width, s.Height}
		if seen[key] {
			continue
		}
		seen[key] = true
		if s.Area() == 0 {
			continue
		}

		uw, uh := n.usable(s)
		packer := newGuillotinePacker(n.EdgeTrim, n.EdgeTrim, uw, uh, n.Kerf)
		placedArea := 0.0
		for _, it := range items {
			if ok, _, _ := packer.insert(it.w, it.h); ok {
				placedArea += it.w * it.h
			} else if ok, _, _ := packer.insert(it.h, it.w); ok {
				placedArea += it.w * it.h
			}
		}
		if eff := placedArea / s.Area(); eff > bestScore {
			bestScore = eff
			bestIdx = idx
		}
	}
	if bestIdx < 0 {
		return candidates[0]
	}
	return bestIdx
}

// rotationStrategy controls how pieces are turned during packing.
type rotationStrategy int

const (
	rotBestFit    rotationStrategy = iota // Compare both orientations, pick tighter fit
	rotAllNormal                          // Normal orientation, rotated as fallback
	rotAllRotated                         // Rotated orientation, normal as fallback
)

// packSheetBestStrategy tries every rotation strategy and keeps the one
// placing the most pieces, then the most efficient.
func (n *Nester) packSheetBestStrategy(stock model.StockPreset, items []nestItem) (model.SheetLayout, []nestItem) {
	var bestSheet model.SheetLayout
	var bestUnplaced []nestItem
	bestPlaced := -1

	for _, strat := range []rotationStrategy{rotBestFit, rotAllNormal, rotAllRotated} {
		sheet, unplaced := n.packSheet(stock, items, strat)
		placed := len(sheet.Placements)
		if placed > bestPlaced ||
			(placed == bestPlaced && placed > 0 && sheet.Efficiency() > bestSheet.Efficiency()) {
			bestPlaced = placed
			bestSheet = sheet
			bestUnplaced = unplaced
		}
	}
	return bestSheet, bestUnplaced
}

func (n *Nester) packSheet(stock model.StockPreset, items []nestItem, strategy rotationStrategy) (model.SheetLayout, []nestItem) {
	sheet := model.SheetLayout{Stock: stock}
	var unplaced []nestItem

	uw, uh := n.usable(stock)
	packer := newGuillotinePacker(n.EdgeTrim, n.EdgeTrim, uw, uh, n.Kerf)

	place := func(it nestItem, rotated bool) bool {
		w, h := it.w, it.h
		if rotated {
			w, h = h, w
		}
		ok, x, y := packer.insert(w, h)
		if ok {
			sheet.Placements = append(sheet.Placements, model.Placement{
				Piece: it.name, X: x, Y: y, Width: w, Height: h, Rotated: rotated,
			})
		}
		return ok
	}

	for _, it := range items {
		square := it.w == it.h
		var placed bool
		switch strategy {
		case rotAllRotated:
			placed = (!square && place(it, true)) || place(it, false)
		case rotBestFit:
			normalFit := packer.bestFit(it.w, it.h)
			rotatedFit := packer.bestFit(it.h, it.w)
			preferRotated := !square && rotatedFit >= 0 && (normalFit < 0 || rotatedFit < normalFit)
			if preferRotated {
				placed = place(it, true) || place(it, false)
			} else {
				placed = place(it, false) || (!square && place(it, true))
			}
		default:
			placed = place(it, false) || (!square && place(it, true))
		}
		if !placed {
			unplaced = append(unplaced, it)
		}
	}
	return sheet, unplaced
}

// ArrangeSheet returns the pieces placed on one nested sheet, moved and
// rotated into sheet coordinates. Pieces not on the sheet are left out.
func ArrangeSheet(res model.BoxResult, sheet model.SheetLayout) model.BoxResult {
	byName := make(map[string]model.PieceShape, len(res.Pieces))
	for _, p := range res.Pieces {
		byName[p.Name] = p
	}

	out := model.BoxResult{Settings: res.Settings}
	for _, pl := range sheet.Placements {
		p, ok := byName[pl.Piece]
		if !ok {
			continue
		}
		move := func(pt model.Point2D) model.Point2D {
			lx, ly := pt.X-p.Base.X, pt.Y-p.Base.Y
			if pl.Rotated {
				lx, ly = p.Height-ly, lx
			}
			return model.Point2D{X: pl.X + lx, Y: pl.Y + ly}
		}

		moved := p
		moved.Base = model.Point2D{X: pl.X, Y: pl.Y}
		moved.Width, moved.Height = pl.Width, pl.Height
		moved.Paths = make([]model.Path, len(p.Paths))
		for i, path := range p.Paths {
			pts := make(model.Outline, len(path.Points))
			for j, pt := range path.Points {
				pts[j] = move(pt)
			}
			moved.Paths[i] = model.Path{Points: pts, Closed: path.Closed}
		}
		if len(p.Circles) > 0 {
			moved.Circles = make([]model.Circle, len(p.Circles))
			for i, c := range p.Circles {
				moved.Circles[i] = model.Circle{Center: move(c.Center), Radius: c.Radius}
			}
		}
		out.Pieces = append(out.Pieces, moved)
	}
	return out
}

// guillotinePacker keeps a list of maximal free rectangles and splits every
// one that overlaps a placed piece.
type guillotinePacker struct {
	freeRects []rect
	kerf      float64
}

type rect struct {
	x, y, w, h float64
}

func newGuillotinePacker(x, y, width, height, kerf float64) *guillotinePacker {
	return &guillotinePacker{
		freeRects: []rect{{x, y, width, height}},
		kerf:      kerf,
	}
}

// insert places a w x h piece using best area fit. Returns success and the
// top-left position.
func (gp *guillotinePacker) insert(w, h float64) (bool, float64, float64) {
	bestIdx := -1
	bestAreaFit := float64(-1)
	wk := w + gp.kerf
	hk := h + gp.kerf

	for i, r := range gp.freeRects {
		if wk <= r.w+0.001 && hk <= r.h+0.001 {
			areaFit := (r.w * r.h) - (w * h)
			if bestIdx < 0 || areaFit < bestAreaFit {
				bestIdx = i
				bestAreaFit = areaFit
			}
		}
	}
	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := gp.freeRects[bestIdx]
	gp.splitAroundPlacement(rect{x: chosen.x, y: chosen.y, w: wk, h: hk})
	return true, chosen.x, chosen.y
}

// splitAroundPlacement replaces every free rect overlapping the placed rect
// with the up to four strips left around it.
func (gp *guillotinePacker) splitAroundPlacement(placed rect) {
	var newRects []rect
	for _, r := range gp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}
		if placed.x > r.x+0.001 {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		if placed.x+placed.w < r.x+r.w-0.001 {
			newRects = append(newRects, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		if placed.y > r.y+0.001 {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h-0.001 {
			newRects = append(newRects, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}
	gp.freeRects = pruneContained(newRects)
}

// bestFit returns the leftover area of the tightest free rect for a w x h
// piece, or -1 if it fits nowhere.
func (gp *guillotinePacker) bestFit(w, h float64) float64 {
	wk := w + gp.kerf
	hk := h + gp.kerf
	best := float64(-1)
	for _, r := range gp.freeRects {
		if wk <= r.w+0.001 && hk <= r.h+0.001 {
			areaFit := (r.w * r.h) - (w * h)
			if best < 0 || areaFit < best {
				best = areaFit
			}
		}
	}
	return best
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-0.001 && a.x+a.w > b.x+0.001 &&
		a.y < b.y+b.h-0.001 && a.y+a.h > b.y+0.001
}

func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			// Identical rects: keep only the first.
			if i != j && containsRect(b, a) && (!containsRect(a, b) || j < i) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+0.001 && outer.y <= inner.y+0.001 &&
		outer.x+outer.w >= inner.x+inner.w-0.001 &&
		outer.y+outer.h >= inner.y+inner.h-0.001
}
