package model

import (
	"math"
	"testing"
)

func TestStockPreset_ApplyToOptions(t *testing.T) {
	sp := NewStockPreset("Ply", 600, 400, 6, "Plywood")
	o := DefaultOptions()
	sp.ApplyToOptions(&o)
	if o.Thickness != 6 {
		t.Errorf("expected thickness 6, got %v", o.Thickness)
	}

	o.Thickness = 4
	StockPreset{Name: "unknown thickness"}.ApplyToOptions(&o)
	if o.Thickness != 4 {
		t.Errorf("zero thickness should not override, got %v", o.Thickness)
	}
}

func TestToolProfile_ApplyToMachine(t *testing.T) {
	m := DefaultMachineSettings()
	m.CutDepth = 3.2
	tp := NewToolProfile("2mm", 2, 600, 200, 24000, 8, 0.8)
	tp.ApplyToMachine(&m)

	if m.ToolDiameter != 2 || m.PassDepth != 0.8 || m.SafeZ != 8 {
		t.Errorf("tool not applied: %+v", m)
	}
	if m.CutDepth != 3.2 || m.GCodeProfile != "Generic" {
		t.Errorf("unrelated fields changed: %+v", m)
	}
}

func TestInventory_Find(t *testing.T) {
	inv := DefaultInventory()
	first := inv.Stocks[0]
	if got := inv.FindStock(first.ID); got == nil || got.Name != first.Name {
		t.Errorf("lookup by ID failed")
	}
	if got := inv.FindStock(first.Name); got == nil || got.ID != first.ID {
		t.Errorf("lookup by name failed")
	}
	if inv.FindStock("missing") != nil {
		t.Errorf("expected nil for unknown stock")
	}
	if inv.FindToolByName("6mm End Mill") == nil {
		t.Errorf("expected default tool")
	}
	if len(inv.StockNames()) != len(inv.Stocks) {
		t.Errorf("name count mismatch")
	}
}

func TestEstimateMaterial(t *testing.T) {
	res := BoxResult{
		Settings: BoxSettings{Kerf: 1},
		Pieces: []PieceShape{
			{Name: "A", Width: 99, Height: 49, Paths: []Path{{
				Points: Outline{{0, 0}, {99, 0}, {99, 49}, {0, 49}}, Closed: true,
			}}},
			{Name: "B", Width: 99, Height: 49, Circles: []Circle{{Radius: 1}}},
		},
	}
	stock := StockPreset{Width: 100, Height: 75, PricePerSheet: 10}

	est := EstimateMaterial(res, stock, 10)
	if est.TotalPieceArea != 10000 {
		t.Errorf("expected area 10000, got %v", est.TotalPieceArea)
	}
	if math.Abs(est.CutLength-(296+2*math.Pi)) > 1e-9 {
		t.Errorf("unexpected cut length %v", est.CutLength)
	}
	if est.SheetsNeededMin != 2 {
		t.Errorf("expected 2 sheets, got %d", est.SheetsNeededMin)
	}
	// 1.333 * 1.1 = 1.467 -> still 2
	if est.SheetsWithWaste != 2 || est.EstimatedCost != 20 {
		t.Errorf("unexpected waste estimate %+v", est)
	}
}

func TestEstimateMaterial_NoSheet(t *testing.T) {
	res := BoxResult{Pieces: []PieceShape{{Width: 10, Height: 10}}}
	est := EstimateMaterial(res, StockPreset{}, 0)
	if est.SheetsNeededMin != 0 || est.TotalPieceArea != 100 {
		t.Errorf("unexpected estimate %+v", est)
	}
}

func TestSheetLayout_Efficiency(t *testing.T) {
	s := SheetLayout{
		Stock:      StockPreset{Width: 100, Height: 100, PricePerSheet: 5},
		Placements: []Placement{{Width: 50, Height: 50}, {Width: 10, Height: 10}},
	}
	if got := s.Efficiency(); math.Abs(got-26) > 1e-9 {
		t.Errorf("expected 26%%, got %v", got)
	}
	r := NestResult{Sheets: []SheetLayout{s, s}}
	if r.TotalCost() != 10 {
		t.Errorf("expected cost 10, got %v", r.TotalCost())
	}
}
