package model

// Placement positions one generated piece on a stock sheet.
type Placement struct {
	Piece   string  `json:"piece"` // PieceShape name
	X       float64 `json:"x"`     // Top-left corner on the sheet
	Y       float64 `json:"y"`
	Width   float64 `json:"width"` // Size as placed, after rotation
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"` // Turned 90 degrees clockwise
}

// SheetLayout is one stock sheet with the pieces nested on it.
type SheetLayout struct {
	Stock      StockPreset `json:"stock"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the area covered by placed pieces.
func (s SheetLayout) UsedArea() float64 {
	var a float64
	for _, p := range s.Placements {
		a += p.Width * p.Height
	}
	return a
}

// Efficiency returns the used percentage of the sheet.
func (s SheetLayout) Efficiency() float64 {
	total := s.Stock.Area()
	if total == 0 {
		return 0
	}
	return s.UsedArea() / total * 100
}

// NestResult holds the sheets used and any pieces that fit on none of them.
type NestResult struct {
	Sheets   []SheetLayout `json:"sheets"`
	Unplaced []string      `json:"unplaced,omitempty"`
}

// TotalCost sums the price of every sheet used.
func (r NestResult) TotalCost() float64 {
	var c float64
	for _, s := range r.Sheets {
		c += s.Stock.PricePerSheet
	}
	return c
}
