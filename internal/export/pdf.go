// Package export writes generated box pieces to various file formats.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/tabbedbox/internal/model"
)

// pieceColor represents an RGB colour for a piece.
type pieceColor struct {
	R, G, B int
}

// pieceColors cycles through the colours used for pieces on the layout page.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 15.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a drawing sheet of the whole layout scaled to an A4
// landscape page, followed by a summary page listing every piece.
func ExportPDF(w io.Writer, res model.BoxResult) error {
	if len(res.Pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	// Layout drawing
	pdf.AddPage()
	renderLayoutPage(pdf, res)

	// Summary page
	pdf.AddPage()
	renderSummaryPage(pdf, res)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// layoutScale returns the factor fitting a w x h drawing in the page's
// drawing area. Drawings that already fit are kept at 1:1.
func layoutScale(w, h float64) float64 {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	if w <= 0 || h <= 0 {
		return 1
	}
	return math.Min(1, math.Min(drawWidth/w, drawHeight/h))
}

// renderLayoutPage draws every piece on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, res model.BoxResult) {
	s := res.Settings
	width, height := documentSize(res)
	scale := layoutScale(width, height)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Box %gx%gx%g %s, %g %s stock", s.X, s.Y, s.Z, s.Unit, s.Thickness, s.Unit)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	scaleText := "Scale 1:1"
	if scale < 1 {
		scaleText = fmt.Sprintf("Scale 1:%.2f (not for cutting)", 1/scale)
	}
	stats := fmt.Sprintf("Pieces: %d | Kerf: %g | Tab: %g | %s", len(res.Pieces), s.Kerf, s.TabWidth, scaleText)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Center the drawing horizontally
	drawWidth := pageWidth - marginLeft - marginRight
	offsetX := marginLeft + (drawWidth-width*scale)/2
	offsetY := drawAreaTop
	at := func(p model.Point2D) (float64, float64) {
		return offsetX + p.X*scale, offsetY + p.Y*scale
	}

	for i, p := range res.Pieces {
		col := pieceColors[i%len(pieceColors)]
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.3)

		// Closed paths as polygons, open edges as line runs
		for _, path := range p.Paths {
			if len(path.Points) < 2 {
				continue
			}
			if path.Closed {
				pts := make([]fpdf.PointType, len(path.Points))
				for j, pt := range path.Points {
					pts[j].X, pts[j].Y = at(pt)
				}
				pdf.Polygon(pts, "D")
				continue
			}
			for j := 1; j < len(path.Points); j++ {
				x1, y1 := at(path.Points[j-1])
				x2, y2 := at(path.Points[j])
				pdf.Line(x1, y1, x2, y2)
			}
		}
		for _, c := range p.Circles {
			x, y := at(c.Center)
			pdf.Circle(x, y, c.Radius*scale, "D")
		}

		// Piece label (only if the piece is large enough)
		pw, ph := p.Width*scale, p.Height*scale
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			x, y := at(p.Base)
			labelW := pdf.GetStringWidth(p.Name)
			if labelW < pw-2 {
				pdf.SetXY(x+(pw-labelW)/2, y+ph/2-2)
				pdf.CellFormat(labelW, 4, p.Name, "", 0, "C", false, 0, "")
			}
		}
	}

	// Pieces legend below the drawing
	drawLegend(pdf, res, offsetY+height*scale+5)
}

// drawLegend renders a compact legend of pieces below the drawing.
func drawLegend(pdf *fpdf.Fpdf, res model.BoxResult, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range res.Pieces {
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("%s (%gx%g)", p.Name, p.Width, p.Height)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

// renderSummaryPage lists each piece with its size, holes and cut length,
// followed by the box settings.
func renderSummaryPage(pdf *fpdf.Fpdf, res model.BoxResult) {
	s := res.Settings

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut List", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Table header
	colWidths := []float64{20, 50, 55, 35, 35, 45}
	headers := []string{"#", "Piece", "Size", "Holes", "Circles", "Cut Length"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	var total float64
	for i, p := range res.Pieces {
		cut := p.CutLength()
		total += cut
		row := []string{
			fmt.Sprintf("%d", i+1),
			p.Name,
			fmt.Sprintf("%g x %g %s", p.Width, p.Height, s.Unit),
			fmt.Sprintf("%d", p.HoleCount()),
			fmt.Sprintf("%d", len(p.Circles)),
			fmt.Sprintf("%.1f %s", cut, s.Unit),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		// Continue on a new page
		if y > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
	}

	// Settings block
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	items := []struct {
		label string
		value string
	}{
		{"Outside", fmt.Sprintf("%g x %g x %g %s", s.X, s.Y, s.Z, s.Unit)},
		{"Inside", fmt.Sprintf("%g x %g x %g %s", s.InsideX, s.InsideY, s.InsideZ, s.Unit)},
		{"Material Thickness", fmt.Sprintf("%g %s", s.Thickness, s.Unit)},
		{"Kerf", fmt.Sprintf("%g %s", s.Kerf, s.Unit)},
		{"Box Type", s.BoxType.String()},
		{"Dividers", fmt.Sprintf("%d x %d", s.DivX, s.DivY)},
		{"Total Cut Length", fmt.Sprintf("%.1f %s", total, s.Unit)},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by tabbedbox", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
