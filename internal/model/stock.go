package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ToolProfile represents a reusable cutting tool configuration.
type ToolProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ToolDiameter float64 `json:"tool_diameter"`
	FeedRate     float64 `json:"feed_rate"`
	PlungeRate   float64 `json:"plunge_rate"`
	SpindleSpeed int     `json:"spindle_speed"`
	SafeZ        float64 `json:"safe_z"`
	PassDepth    float64 `json:"pass_depth"`
}

// NewToolProfile creates a new ToolProfile with a generated ID.
func NewToolProfile(name string, diameter, feedRate, plungeRate float64, spindleSpeed int, safeZ, passDepth float64) ToolProfile {
	return ToolProfile{
		ID:           uuid.New().String()[:8],
		Name:         name,
		ToolDiameter: diameter,
		FeedRate:     feedRate,
		PlungeRate:   plungeRate,
		SpindleSpeed: spindleSpeed,
		SafeZ:        safeZ,
		PassDepth:    passDepth,
	}
}

// ApplyToMachine copies the tool parameters into the machine settings.
// The profile and total cut depth are left alone.
func (tp ToolProfile) ApplyToMachine(m *MachineSettings) {
	m.ToolDiameter = tp.ToolDiameter
	m.FeedRate = tp.FeedRate
	m.PlungeRate = tp.PlungeRate
	m.SpindleSpeed = tp.SpindleSpeed
	m.SafeZ = tp.SafeZ
	m.PassDepth = tp.PassDepth
}

// StockPreset is a sheet of material boxes are cut from.
type StockPreset struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Thickness     float64 `json:"thickness"`
	Material      string  `json:"material"`
	PricePerSheet float64 `json:"price_per_sheet"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, width, height, thickness float64, material string) StockPreset {
	return StockPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     width,
		Height:    height,
		Thickness: thickness,
		Material:  material,
	}
}

// Area returns the sheet area in square document units.
func (sp StockPreset) Area() float64 { return sp.Width * sp.Height }

// ApplyToOptions sets the material thickness from the sheet.
func (sp StockPreset) ApplyToOptions(o *BoxOptions) {
	if sp.Thickness > 0 {
		o.Thickness = sp.Thickness
	}
}

func (sp StockPreset) String() string {
	return fmt.Sprintf("%s (%gx%gx%g)", sp.Name, sp.Width, sp.Height, sp.Thickness)
}

// Inventory holds the user's saved tool profiles and stock sheets.
type Inventory struct {
	Tools  []ToolProfile `json:"tools"`
	Stocks []StockPreset `json:"stocks"`
}

// DefaultInventory returns common laser and router stock with a few end mills.
func DefaultInventory() Inventory {
	return Inventory{
		Tools: []ToolProfile{
			NewToolProfile("3mm End Mill", 3.0, 1000, 300, 20000, 5.0, 1.5),
			NewToolProfile("1/8\" End Mill (3.175mm)", 3.175, 800, 250, 22000, 5.0, 1.5),
			NewToolProfile("6mm End Mill", 6.0, 1500, 500, 18000, 5.0, 3.0),
		},
		Stocks: []StockPreset{
			NewStockPreset("Plywood 600x400x3", 600, 400, 3, "Plywood"),
			NewStockPreset("Plywood 600x400x6", 600, 400, 6, "Plywood"),
			NewStockPreset("MDF 600x400x3", 600, 400, 3, "MDF"),
			NewStockPreset("Acrylic 600x400x3", 600, 400, 3, "Acrylic"),
			NewStockPreset("Plywood 1220x610x12", 1220, 610, 12, "Plywood"),
		},
	}
}

// FindToolByName returns a pointer to the first tool with the given name, or nil.
func (inv *Inventory) FindToolByName(name string) *ToolProfile {
	for i := range inv.Tools {
		if inv.Tools[i].Name == name {
			return &inv.Tools[i]
		}
	}
	return nil
}

// FindStock looks a stock sheet up by ID or name.
func (inv *Inventory) FindStock(key string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == key || inv.Stocks[i].Name == key {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the stock sheet names in inventory order.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}
