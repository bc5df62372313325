package model

import "math"

// MaterialEstimate summarises how much stock a generated box needs.
type MaterialEstimate struct {
	PieceCount        int     `json:"piece_count"`
	TotalPieceArea    float64 `json:"total_piece_area"`    // Piece bounding boxes incl. kerf allowance
	CutLength         float64 `json:"cut_length"`          // Sum of every path and circle perimeter
	SheetArea         float64 `json:"sheet_area"`          // Area of one stock sheet
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Ceiling of the exact count
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Including the waste factor
	WastePercent      float64 `json:"waste_percent"`
	EstimatedCost     float64 `json:"estimated_cost"`
}

// EstimateMaterial computes how many stock sheets a box needs, allowing
// one kerf around each piece plus a waste percentage, and how long the
// cutter travels while cutting.
func EstimateMaterial(res BoxResult, stock StockPreset, wastePercent float64) MaterialEstimate {
	kerf := res.Settings.Kerf
	est := MaterialEstimate{
		PieceCount:   len(res.Pieces),
		WastePercent: wastePercent,
	}
	for _, p := range res.Pieces {
		est.TotalPieceArea += (p.Width + kerf) * (p.Height + kerf)
		est.CutLength += p.CutLength()
	}

	est.SheetArea = stock.Area()
	if est.SheetArea <= 0 {
		return est
	}

	est.SheetsNeededExact = est.TotalPieceArea / est.SheetArea
	est.SheetsNeededMin = int(math.Ceil(est.SheetsNeededExact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.SheetsWithWaste = int(math.Ceil(est.SheetsNeededExact * wasteFactor))
	if est.SheetsWithWaste < est.SheetsNeededMin {
		est.SheetsWithWaste = est.SheetsNeededMin
	}
	est.EstimatedCost = float64(est.SheetsWithWaste) * stock.PricePerSheet
	return est
}

// Length returns the polyline length, including the closing segment for
// closed paths.
func (p Path) Length() float64 {
	n := len(p.Points)
	if n < 2 {
		return 0
	}
	var l float64
	for i := 1; i < n; i++ {
		l += p.Points[i].Vec().Dist(p.Points[i-1].Vec())
	}
	if p.Closed {
		l += p.Points[0].Vec().Dist(p.Points[n-1].Vec())
	}
	return l
}

// CutLength returns the total length of every path and circle on the piece.
func (p PieceShape) CutLength() float64 {
	var l float64
	for _, path := range p.Paths {
		l += path.Length()
	}
	for _, c := range p.Circles {
		l += 2 * math.Pi * c.Radius
	}
	return l
}
