package model

// MachineSettings holds the CNC parameters used when a box is exported as
// G-code instead of a vector drawing. Kerf is already compensated in the
// generated paths, so the tool follows them without offset.
type MachineSettings struct {
	ToolDiameter float64 `json:"tool_diameter"` // End mill diameter in mm, informational
	FeedRate     float64 `json:"feed_rate"`     // Cutting feed rate mm/min
	PlungeRate   float64 `json:"plunge_rate"`   // Plunge feed rate mm/min
	SpindleSpeed int     `json:"spindle_speed"` // RPM
	SafeZ        float64 `json:"safe_z"`        // Safe retract height mm
	CutDepth     float64 `json:"cut_depth"`     // Total depth; 0 = material thickness
	PassDepth    float64 `json:"pass_depth"`    // Depth per pass mm

	// Holding tabs left on the final pass of each outline
	HoldingTabs      int     `json:"holding_tabs"`       // Tabs per outline, 0 = none
	HoldingTabWidth  float64 `json:"holding_tab_width"`  // mm along the cut
	HoldingTabHeight float64 `json:"holding_tab_height"` // mm of material left

	// Fixtures the spindle must stay clear of, in machine coordinates
	ClampZones     []ClampZone `json:"clamp_zones,omitempty"`
	ClampClearance float64     `json:"clamp_clearance"` // Extra mm around the tool

	// GCode post-processor profile
	GCodeProfile string `json:"gcode_profile"`
}

// ClampZone is a rectangular fixture area on the machine bed.
type ClampZone struct {
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClampCollision reports a toolpath point that comes too close to a clamp.
type ClampCollision struct {
	Piece      string  `json:"piece"`
	PieceIndex int     `json:"piece_index"`
	ClampLabel string  `json:"clamp_label"`
	ToolX      float64 `json:"tool_x"`
	ToolY      float64 `json:"tool_y"`
	Distance   float64 `json:"distance"` // Gap between the tool edge and the clamp
}

// DefaultMachineSettings returns settings for a small hobby router.
func DefaultMachineSettings() MachineSettings {
	return MachineSettings{
		ToolDiameter: 3.175,
		FeedRate:     1200,
		PlungeRate:   300,
		SpindleSpeed: 18000,
		SafeZ:        5,
		CutDepth:     0,
		PassDepth:    2,

		HoldingTabs:      4,
		HoldingTabWidth:  4,
		HoldingTabHeight: 1,
		ClampClearance:   2,

		GCodeProfile: "Generic",
	}
}

// GCodeProfile defines a post-processor configuration for different CNC controllers.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsBuiltIn   bool   `json:"is_built_in"`
	Units       string `json:"units"` // "mm" or "inches"

	// Startup codes
	StartCode    []string `json:"start_code"`
	SpindleStart string   `json:"spindle_start"` // e.g. "M3 S%d"
	SpindleStop  string   `json:"spindle_stop"`

	// Motion
	RapidMove string `json:"rapid_move"`
	FeedMove  string `json:"feed_move"`

	// End codes; [SafeZ] is replaced with the retract height
	EndCode []string `json:"end_code"`

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration (Arduino CNC shields)",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1]
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}
