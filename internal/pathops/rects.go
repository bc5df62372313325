package pathops

import (
	"sort"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// rect is an axis-aligned rectangle given by its min and max corners.
type rect struct {
	minX, minY, maxX, maxY float64
}

func boundsOf(p model.Path) (rect, bool) {
	if len(p.Points) < 3 {
		return rect{}, false
	}
	min, max := p.Points.BoundingBox()
	r := rect{min.X, min.Y, max.X, max.Y}
	// Only a rectangle if every vertex sits on the bounding box corners
	// or edges.
	for _, pt := range p.Points {
		onX := pt.X == r.minX || pt.X == r.maxX
		onY := pt.Y == r.minY || pt.Y == r.maxY
		if !onX && !onY {
			return rect{}, false
		}
	}
	return r, true
}

func rectsOverlap(a, b rect) bool {
	return a.minX <= b.maxX && b.minX <= a.maxX && a.minY <= b.maxY && b.minY <= a.maxY
}

// MergeRects unions overlapping axis-aligned rectangular paths into the
// outline of their union. Paths that are not rectangles, or that overlap
// nothing, are returned unchanged. The merged outline is traced on the
// grid of the rectangles' coordinates so no clipping library is needed.
func MergeRects(paths []model.Path) []model.Path {
	var rects []rect
	var rectIdx []int
	var out []model.Path
	for i, p := range paths {
		if r, ok := boundsOf(p); ok {
			rects = append(rects, r)
			rectIdx = append(rectIdx, i)
			continue
		}
		out = append(out, p)
	}

	// Group overlapping rectangles.
	group := make([]int, len(rects))
	for i := range group {
		group[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for group[i] != i {
			group[i] = group[group[i]]
			i = group[i]
		}
		return i
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rectsOverlap(rects[i], rects[j]) {
				group[find(i)] = find(j)
			}
		}
	}

	members := map[int][]int{}
	var roots []int
	for i := range rects {
		r := find(i)
		if _, ok := members[r]; !ok {
			roots = append(roots, r)
		}
		members[r] = append(members[r], i)
	}
	sort.Ints(roots)

	for _, root := range roots {
		m := members[root]
		if len(m) == 1 {
			out = append(out, paths[rectIdx[m[0]]])
			continue
		}
		var rs []rect
		for _, i := range m {
			rs = append(rs, rects[i])
		}
		out = append(out, traceUnion(rs)...)
	}
	return out
}

// traceUnion rasterises the rectangles onto the grid formed by their edges
// and walks the boundary of the covered cells.
func traceUnion(rs []rect) []model.Path {
	xs := uniqueSorted(func(yield func(float64)) {
		for _, r := range rs {
			yield(r.minX)
			yield(r.maxX)
		}
	})
	ys := uniqueSorted(func(yield func(float64)) {
		for _, r := range rs {
			yield(r.minY)
			yield(r.maxY)
		}
	})

	nx, ny := len(xs)-1, len(ys)-1
	filled := func(i, j int) bool {
		if i < 0 || j < 0 || i >= nx || j >= ny {
			return false
		}
		cx := (xs[i] + xs[i+1]) / 2
		cy := (ys[j] + ys[j+1]) / 2
		for _, r := range rs {
			if cx > r.minX && cx < r.maxX && cy > r.minY && cy < r.maxY {
				return true
			}
		}
		return false
	}

	// Directed boundary edges keyed by their start grid vertex; filled
	// cells are kept on the right so outer rings run clockwise on screen.
	type vtx struct{ i, j int }
	next := map[vtx][]vtx{}
	add := func(a, b vtx) { next[a] = append(next[a], b) }
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if !filled(i, j) {
				continue
			}
			if !filled(i, j-1) {
				add(vtx{i, j}, vtx{i + 1, j})
			}
			if !filled(i+1, j) {
				add(vtx{i + 1, j}, vtx{i + 1, j + 1})
			}
			if !filled(i, j+1) {
				add(vtx{i + 1, j + 1}, vtx{i, j + 1})
			}
			if !filled(i-1, j) {
				add(vtx{i, j + 1}, vtx{i, j})
			}
		}
	}

	var starts []vtx
	for v := range next {
		starts = append(starts, v)
	}
	sort.Slice(starts, func(a, b int) bool {
		if starts[a].j != starts[b].j {
			return starts[a].j < starts[b].j
		}
		return starts[a].i < starts[b].i
	})

	var out []model.Path
	for _, s := range starts {
		if len(next[s]) == 0 {
			continue
		}
		var ring model.Outline
		v := s
		for {
			ring = append(ring, model.Point2D{X: xs[v.i], Y: ys[v.j]})
			nb := next[v]
			if len(nb) == 0 {
				break
			}
			w := nb[0]
			next[v] = nb[1:]
			v = w
			if v == s {
				break
			}
		}
		p := Simplify(model.Path{Points: ring, Closed: true})
		if len(p.Points) >= 3 {
			out = append(out, p)
		}
	}
	return out
}

func uniqueSorted(seq func(yield func(float64))) []float64 {
	seen := map[float64]bool{}
	var out []float64
	seq(func(v float64) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	})
	sort.Float64s(out)
	return out
}
