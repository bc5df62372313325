package engine

import "github.com/piwi3910/tabbedbox/internal/model"

// railMountHoles returns the rack rail mounting holes of a side wall, two
// per row. Only left and right pieces carry them.
func railMountHoles(s model.BoxSettings, p *Piece) []model.Circle {
	sc := s.Schroff
	if sc == nil || (p.Type != model.PieceLeft && p.Type != model.PieceRight) {
		return nil
	}

	inset := sc.RailMountDepth + s.Thickness
	x := p.Base.X + inset
	if p.Type == model.PieceRight {
		x = p.Base.X - inset + p.Dx
	}

	y := p.Base.Y + sc.RailHeight/2 + s.Thickness
	var holes []model.Circle
	for row := 0; row < sc.Rows; row++ {
		y1 := y + sc.RailMountCentreOffset
		y2 := y1 + sc.RowCentreSpacing - sc.RailMountCentreOffset
		holes = append(holes,
			model.Circle{Center: model.Point2D{X: x, Y: y1}, Radius: sc.RailMountRadius},
			model.Circle{Center: model.Point2D{X: x, Y: y2}, Radius: sc.RailMountRadius})
		y += sc.RowCentreSpacing + sc.RowSpacing + sc.RailHeight
	}

	Logger().Debug("rail mount holes", "piece", p.Name(), "x", x, "rows", sc.Rows)
	return holes
}
