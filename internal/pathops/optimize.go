package pathops

import (
	"log/slog"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// Options selects the post-processing steps applied to a piece.
type Options struct {
	Combine bool // Join and clean the edge paths
	Cutout  bool // Subtract holes from the outline
}

// Optimize turns the open edge paths and closed hole paths of one piece
// into cut-ready paths. outlined reports whether the edges closed into a
// single outline, which is then returned first.
func Optimize(edges, holes []model.Path, opts Options, log *slog.Logger) (paths []model.Path, outlined bool) {
	if !opts.Combine && !opts.Cutout {
		return append(append([]model.Path(nil), edges...), holes...), false
	}

	joined := Stitch(edges, Tolerance)
	if opts.Combine {
		for i := range joined {
			joined[i] = Simplify(joined[i])
		}
	}
	outlined = len(joined) == 1 && joined[0].Closed
	if !outlined {
		log.Debug("edges did not close", "paths", len(joined))
		return append(joined, holes...), false
	}
	joined = Close(joined)

	if !opts.Cutout || len(holes) == 0 {
		return append(joined, holes...), true
	}

	clipped, err := Subtract(joined[0], holes)
	if err == nil {
		return clipped, true
	}
	log.Debug("clipping failed, merging holes", "err", err)
	return append(joined, MergeRects(holes)...), true
}
