package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/piwi3910/tabbedbox/internal/pathops"
)

// Generator renders the panels of one box.
type Generator struct {
	Settings model.BoxSettings
}

func New(settings model.BoxSettings) *Generator {
	return &Generator{Settings: settings}
}

// Pieces builds and lays out the pieces without rendering them, exposing
// the computed side data.
func (g *Generator) Pieces() []*Piece {
	tabs := TabConfigurationFor(g.Settings)
	return ApplyLayout(CreatePieces(g.Settings, tabs), g.Settings)
}

// Generate renders every piece in layout order. The context is checked
// between pieces.
func (g *Generator) Generate(ctx context.Context) (model.BoxResult, error) {
	result := model.BoxResult{Settings: g.Settings}
	for _, p := range g.Pieces() {
		if err := ctx.Err(); err != nil {
			return model.BoxResult{}, fmt.Errorf("generation cancelled: %w", err)
		}
		result.Pieces = append(result.Pieces, g.renderPiece(p))
	}
	Logger().Info("generated box", "pieces", len(result.Pieces),
		"x", g.Settings.X, "y", g.Settings.Y, "z", g.Settings.Z)
	return result, nil
}

func (g *Generator) renderPiece(p *Piece) model.PieceShape {
	shape := model.PieceShape{
		Type:    p.Type,
		Index:   p.Index,
		Name:    p.Name(),
		Base:    p.Base.Point(),
		Width:   p.Dx,
		Height:  p.Dy,
		Circles: railMountHoles(g.Settings, p),
	}

	var edges, holes []model.Path
	for i := range p.Sides {
		edges = append(edges, g.sidePath(p, i))
		if p.Type.IsDivider() {
			holes = append(holes, g.sideSlots(p, i)...)
		} else {
			holes = append(holes, g.sideHoles(p, i)...)
		}
	}

	log := Logger().With("piece", shape.Name)
	shape.Paths, shape.Outlined = pathops.Optimize(edges, holes, pathops.Options{
		Combine: g.Settings.Combine,
		Cutout:  g.Settings.Cutout,
	}, log)
	log.Debug("rendered piece", "paths", len(shape.Paths), "holes", len(holes),
		"dx", p.Dx, "dy", p.Dy)
	return shape
}
