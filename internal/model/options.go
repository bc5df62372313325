package model

// BoxOptions holds the user-facing parameters of a box before they are
// resolved into outside/inside dimensions and validated.
type BoxOptions struct {
	Length float64 `json:"length"` // X dimension
	Width  float64 `json:"width"`  // Y dimension
	Height float64 `json:"height"` // Z dimension
	Inside bool    `json:"inside"` // Dimensions are measured inside the walls
	Unit   string  `json:"unit"`   // mm, cm, in, ft, px, pt, pc

	Thickness    float64     `json:"thickness"`     // Material thickness
	TabWidth     float64     `json:"tab_width"`     // Nominal tab width
	EqualTabs    bool        `json:"equal_tabs"`    // Tabs and gaps share one width
	TabSymmetry  TabSymmetry `json:"tab_symmetry"`  // XY, rotate or antisymmetric
	TabType      TabType     `json:"tab_type"`      // Regular or dogbone
	DimpleHeight float64     `json:"dimple_height"` // Press-fit dimple height, 0 = none
	DimpleLength float64     `json:"dimple_length"` // Press-fit dimple length
	Kerf         float64     `json:"kerf"`          // Cut width compensated on every edge

	Layout  Layout  `json:"layout"`
	Spacing float64 `json:"spacing"` // Gap between laid out pieces
	BoxType BoxType `json:"box_type"`

	// DivX dividers run along the length and are spaced across the width;
	// DivY dividers run along the width and are spaced across the length.
	DivX        int           `json:"div_x"`
	DivY        int           `json:"div_y"`
	DivXSpacing string        `json:"div_x_spacing"` // "a;b;c" section widths, blank = even
	DivYSpacing string        `json:"div_y_spacing"`
	KeyDividers DividerKeying `json:"key_dividers"`

	LineThickness float64 `json:"line_thickness"`
	Hairline      bool    `json:"hairline"`
	LineColor     string  `json:"line_color"` // black, red, blue, green

	Combine bool `json:"combine"` // Join side paths into one outline per piece
	Cutout  bool `json:"cutout"`  // Subtract divider holes from the outline

	Schroff *SchroffOptions `json:"schroff,omitempty"` // Rack enclosure mode
}

// SchroffOptions configures a Eurorack/Schroff style enclosure. Width and
// length are derived from the rack size instead of being given directly.
type SchroffOptions struct {
	HP                    int     `json:"hp"`                       // Horizontal pitch units (5.08mm)
	Rows                  int     `json:"rows"`                     // Number of 3U rows
	RailHeight            float64 `json:"rail_height"`              // Rail height
	RowSpacing            float64 `json:"row_spacing"`              // Gap between rows
	RailMountDepth        float64 `json:"rail_mount_depth"`         // Rail hole distance from the front edge
	RailMountCentreOffset float64 `json:"rail_mount_centre_offset"` // Hole offset toward the row centreline
}

// Rack constants for 3U Schroff rows.
const (
	SchroffHPWidth          = 5.08
	SchroffRowCentreSpacing = 122.5
	SchroffRailMountRadius  = 2.5
)

// DefaultOptions returns a 100mm cube in 5mm stock with 5mm tabs.
func DefaultOptions() BoxOptions {
	return BoxOptions{
		Length:        100,
		Width:         100,
		Height:        100,
		Unit:          "mm",
		Thickness:     5,
		TabWidth:      5,
		TabSymmetry:   SymmetryXY,
		TabType:       TabRegular,
		Kerf:          0,
		Layout:        LayoutDiagrammatic,
		Spacing:       3,
		BoxType:       BoxFullyEnclosed,
		KeyDividers:   KeyNone,
		LineThickness: 0.1,
		LineColor:     "black",
		Combine:       true,
		Cutout:        true,
	}
}

// DefaultSchroffOptions returns a single 84HP row.
func DefaultSchroffOptions() SchroffOptions {
	return SchroffOptions{
		HP:             84,
		Rows:           1,
		RailHeight:     10,
		RowSpacing:     10,
		RailMountDepth: 17.4,
	}
}
