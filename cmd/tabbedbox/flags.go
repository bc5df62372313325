package main

import (
	"flag"
	"fmt"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/piwi3910/tabbedbox/internal/project"
)

// boxFlags binds the box options to a flag set. Enum flags are kept as
// strings and parsed after flag.Parse.
type boxFlags struct {
	opts     model.BoxOptions
	schroff  model.SchroffOptions
	rack     bool
	boxType  string
	symmetry string
	tabType  string
	layout   string
	keyDiv   string
}

func registerBoxFlags(fs *flag.FlagSet, base model.BoxOptions) *boxFlags {
	b := &boxFlags{opts: base, schroff: model.DefaultSchroffOptions()}
	if base.Schroff != nil {
		b.schroff = *base.Schroff
		b.rack = true
	}
	o := &b.opts

	fs.Float64Var(&o.Length, "length", o.Length, "box length (X)")
	fs.Float64Var(&o.Width, "width", o.Width, "box width (Y)")
	fs.Float64Var(&o.Height, "depth", o.Height, "box depth (Z)")
	fs.BoolVar(&o.Inside, "inside", o.Inside, "dimensions are inside measurements")
	fs.StringVar(&o.Unit, "unit", o.Unit, "unit: mm, cm, in, ft, px, pt, pc")
	fs.Float64Var(&o.Thickness, "thickness", o.Thickness, "material thickness")
	fs.Float64Var(&o.TabWidth, "tab", o.TabWidth, "nominal tab width")
	fs.BoolVar(&o.EqualTabs, "equal", o.EqualTabs, "tabs and gaps share one width")
	fs.Float64Var(&o.DimpleHeight, "dimpleheight", o.DimpleHeight, "press-fit dimple height")
	fs.Float64Var(&o.DimpleLength, "dimplelength", o.DimpleLength, "press-fit dimple length")
	fs.Float64Var(&o.Kerf, "kerf", o.Kerf, "kerf (cut width)")
	fs.Float64Var(&o.Spacing, "spacing", o.Spacing, "gap between laid out pieces")
	fs.IntVar(&o.DivX, "div-l", o.DivX, "dividers along the length")
	fs.IntVar(&o.DivY, "div-w", o.DivY, "dividers along the width")
	fs.StringVar(&o.DivXSpacing, "div-l-spacing", o.DivXSpacing, "section widths along the length, \"a;b;c\"")
	fs.StringVar(&o.DivYSpacing, "div-w-spacing", o.DivYSpacing, "section widths along the width, \"a;b;c\"")
	fs.BoolVar(&o.Hairline, "hairline", o.Hairline, "draw hairline strokes")
	fs.Float64Var(&o.LineThickness, "line-thickness", o.LineThickness, "stroke width")
	fs.StringVar(&o.LineColor, "line-color", o.LineColor, "stroke colour: black, red, blue, green")
	fs.BoolVar(&o.Combine, "combine", o.Combine, "join side paths into one outline per piece")
	fs.BoolVar(&o.Cutout, "cutout", o.Cutout, "subtract divider holes from the outline")

	fs.StringVar(&b.boxType, "boxtype", "", "box type, name or number (default from preset)")
	fs.StringVar(&b.symmetry, "tabsymmetry", "", "tab symmetry: xy_symmetric, rotate_symmetric, antisymmetric")
	fs.StringVar(&b.tabType, "tabtype", "", "tab type: regular, dogbone")
	fs.StringVar(&b.layout, "style", "", "layout: diagrammatic, three_piece, inline_compact")
	fs.StringVar(&b.keyDiv, "keydiv", "", "divider keying: all_sides, floor_ceiling, walls, none")

	fs.BoolVar(&b.rack, "schroff", b.rack, "build a Schroff rack enclosure")
	fs.IntVar(&b.schroff.HP, "hp", b.schroff.HP, "rack width in HP")
	fs.IntVar(&b.schroff.Rows, "rows", b.schroff.Rows, "number of 3U rows")
	fs.Float64Var(&b.schroff.RailHeight, "rail-height", b.schroff.RailHeight, "rail height")
	fs.Float64Var(&b.schroff.RowSpacing, "row-spacing", b.schroff.RowSpacing, "gap between rows")
	fs.Float64Var(&b.schroff.RailMountDepth, "rail-mount-depth", b.schroff.RailMountDepth, "rail hole distance from the front")
	fs.Float64Var(&b.schroff.RailMountCentreOffset, "rail-mount-centre-offset", b.schroff.RailMountCentreOffset, "rail hole offset toward the row centre")
	return b
}

// options returns the parsed box options.
func (b *boxFlags) options() (model.BoxOptions, error) {
	o := b.opts
	var errs model.ValidationErrors
	parse := func(s string, apply func(string) error) {
		if s == "" {
			return
		}
		if err := apply(s); err != nil {
			errs = append(errs, err.Error())
		}
	}
	parse(b.boxType, func(s string) (err error) { o.BoxType, err = model.ParseBoxType(s); return })
	parse(b.symmetry, func(s string) (err error) { o.TabSymmetry, err = model.ParseTabSymmetry(s); return })
	parse(b.tabType, func(s string) (err error) { o.TabType, err = model.ParseTabType(s); return })
	parse(b.layout, func(s string) (err error) { o.Layout, err = model.ParseLayout(s); return })
	parse(b.keyDiv, func(s string) (err error) { o.KeyDividers, err = model.ParseDividerKeying(s); return })
	if len(errs) > 0 {
		return o, errs
	}

	o.Schroff = nil
	if b.rack {
		sc := b.schroff
		o.Schroff = &sc
	}
	return o, nil
}

// baseOptions returns the defaults for new boxes: DefaultOptions with the
// saved config applied, or the named preset.
func baseOptions(cfg model.AppConfig, preset string) (model.BoxOptions, error) {
	if preset == "" {
		o := model.DefaultOptions()
		cfg.ApplyToOptions(&o)
		return o, nil
	}
	store, err := project.LoadDefaultPresets()
	if err != nil {
		return model.BoxOptions{}, fmt.Errorf("failed to load presets: %w", err)
	}
	p := store.FindByName(preset)
	if p == nil {
		p = store.FindByID(preset)
	}
	if p == nil {
		return model.BoxOptions{}, fmt.Errorf("preset %q not found", preset)
	}
	return p.ToOptions(), nil
}

// presetName finds a -preset value without parsing the other flags, so the
// preset can supply their defaults.
func presetName(args []string) string {
	for i, a := range args {
		switch {
		case a == "-preset" || a == "--preset":
			if i+1 < len(args) {
				return args[i+1]
			}
		case len(a) > 8 && a[:8] == "-preset=":
			return a[8:]
		case len(a) > 9 && a[:9] == "--preset=":
			return a[9:]
		}
	}
	return ""
}
