package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new boxes
	DefaultUnit      string        `json:"default_unit"`
	DefaultThickness float64       `json:"default_thickness"`
	DefaultTabWidth  float64       `json:"default_tab_width"`
	DefaultKerf      float64       `json:"default_kerf"`
	DefaultSpacing   float64       `json:"default_spacing"`
	DefaultLayout    Layout        `json:"default_layout"`
	DefaultKeying    DividerKeying `json:"default_keying"`

	// Output preferences
	DefaultFormat string          `json:"default_format"` // svg, dxf, pdf, gcode, xlsx, stl, json
	Machine       MachineSettings `json:"machine"`

	RecentOutputs []string `json:"recent_outputs"`
}

// maxRecentOutputs bounds the RecentOutputs list.
const maxRecentOutputs = 10

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultOptions().
func DefaultAppConfig() AppConfig {
	defaults := DefaultOptions()
	return AppConfig{
		DefaultUnit:      defaults.Unit,
		DefaultThickness: defaults.Thickness,
		DefaultTabWidth:  defaults.TabWidth,
		DefaultKerf:      defaults.Kerf,
		DefaultSpacing:   defaults.Spacing,
		DefaultLayout:    defaults.Layout,
		DefaultKeying:    defaults.KeyDividers,
		DefaultFormat:    "svg",
		Machine:          DefaultMachineSettings(),
		RecentOutputs:    []string{},
	}
}

// ApplyToOptions copies the saved defaults into a BoxOptions struct.
func (c AppConfig) ApplyToOptions(o *BoxOptions) {
	if c.DefaultUnit != "" {
		o.Unit = c.DefaultUnit
	}
	o.Thickness = c.DefaultThickness
	o.TabWidth = c.DefaultTabWidth
	o.Kerf = c.DefaultKerf
	o.Spacing = c.DefaultSpacing
	if c.DefaultLayout != 0 {
		o.Layout = c.DefaultLayout
	}
	o.KeyDividers = c.DefaultKeying
}

// AddRecentOutput records a written file, most recent first, without
// duplicates.
func (c *AppConfig) AddRecentOutput(path string) {
	recent := []string{path}
	for _, p := range c.RecentOutputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentOutputs {
		recent = recent[:maxRecentOutputs]
	}
	c.RecentOutputs = recent
}
