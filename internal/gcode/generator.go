package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// mmPerUnit converts document units to machine millimetres.
var mmPerUnit = map[string]float64{
	"mm": 1,
	"cm": 10,
	"in": 25.4,
	"ft": 304.8,
	"px": 25.4 / 96,
	"pt": 25.4 / 72,
	"pc": 25.4 / 6,
}

// Generator produces GCode from the pieces of a generated box.
type Generator struct {
	Settings model.MachineSettings
	profile  model.GCodeProfile
}

func New(settings model.MachineSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.GCodeProfile),
	}
}

// NewWithProfile uses the given post-processor profile instead of looking
// Settings.GCodeProfile up among the built-ins.
func NewWithProfile(settings model.MachineSettings, profile model.GCodeProfile) *Generator {
	return &Generator{Settings: settings, profile: profile}
}

// job holds the per-result values shared by every piece.
type job struct {
	scale float64 // mm per document unit
	maxY  float64 // document y flipped around this line
	depth float64 // total cut depth in mm
}

func (g *Generator) newJob(res model.BoxResult) (job, error) {
	scale, ok := mmPerUnit[res.Settings.Unit]
	if !ok {
		return job{}, fmt.Errorf("unsupported unit %q", res.Settings.Unit)
	}
	if g.Settings.PassDepth <= 0 {
		return job{}, fmt.Errorf("pass depth must be positive")
	}
	depth := g.Settings.CutDepth
	if depth <= 0 {
		depth = res.Settings.Thickness * scale
	}
	_, max := res.Bounds()
	return job{scale: scale, maxY: max.Y, depth: depth}, nil
}

// machine maps a document point to bed coordinates: millimetres with y up.
func (j job) machine(p model.Point2D) model.Point2D {
	return model.Point2D{X: p.X * j.scale, Y: (j.maxY - p.Y) * j.scale}
}

// Generate produces GCode for every piece of the result. Kerf is already
// compensated in the paths, so the tool centre follows them directly.
// Inner cuts come first so each piece stays attached to the sheet until
// its outline is cut.
func (g *Generator) Generate(res model.BoxResult) (string, error) {
	if len(res.Pieces) == 0 {
		return "", fmt.Errorf("no pieces to cut")
	}
	j, err := g.newJob(res)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	g.writeHeader(&b, res, j)
	for i, p := range res.Pieces {
		g.writePiece(&b, p, i+1, j)
	}
	g.writeFooter(&b)
	return b.String(), nil
}

// GenerateAll produces one GCode program per sheet.
func (g *Generator) GenerateAll(sheets []model.BoxResult) ([]string, error) {
	var codes []string
	for i, sheet := range sheets {
		code, err := g.Generate(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to generate sheet %d: %w", i+1, err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func (g *Generator) writeHeader(b *strings.Builder, res model.BoxResult, j job) {
	p := g.profile
	s := res.Settings

	b.WriteString(g.comment(fmt.Sprintf("tabbedbox GCode: box %gx%gx%g %s", s.X, s.Y, s.Z, s.Unit)))
	b.WriteString(g.comment(fmt.Sprintf("Pieces: %d, Stock: %.2f mm", len(res.Pieces), s.Thickness*j.scale)))
	b.WriteString(g.comment(fmt.Sprintf("Tool: %.3fmm, Feed: %.0f mm/min, Plunge: %.0f mm/min",
		g.Settings.ToolDiameter, g.Settings.FeedRate, g.Settings.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.2fmm in %.2fmm passes", j.depth, g.Settings.PassDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", g.Settings.SpindleSpeed))
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
}

func (g *Generator) writePiece(b *strings.Builder, p model.PieceShape, num int, j job) {
	b.WriteString(g.comment(fmt.Sprintf("--- Piece %d: %s (%g x %g) ---", num, p.Name, p.Width, p.Height)))

	paths := p.Paths
	if p.Outlined && len(paths) > 0 {
		paths = paths[1:]
	}

	for _, c := range p.Circles {
		g.writeCircle(b, c, j)
	}
	for _, path := range paths {
		if path.Closed {
			g.writePath(b, path, j, false)
		}
	}
	for _, path := range paths {
		if !path.Closed {
			g.writePath(b, path, j, false)
		}
	}
	if p.Outlined && len(p.Paths) > 0 {
		g.writePath(b, p.Paths[0], j, true)
	}
	b.WriteString("\n")
}

// writePath cuts a path in as many passes as the depth needs. Outlines
// keep their holding tabs on the final pass.
func (g *Generator) writePath(b *strings.Builder, path model.Path, j job, outline bool) {
	if len(path.Points) < 2 {
		return
	}
	pts := make([]model.Point2D, 0, len(path.Points)+1)
	for _, pt := range path.Points {
		pts = append(pts, j.machine(pt))
	}
	if path.Closed && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}

	numPasses := int(math.Ceil(j.depth / g.Settings.PassDepth))
	for pass := 1; pass <= numPasses; pass++ {
		depth := math.Min(float64(pass)*g.Settings.PassDepth, j.depth)
		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%.2fmm", pass, numPasses, depth)))

		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove, g.format(pts[0].X), g.format(pts[0].Y)))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", g.profile.FeedMove, g.format(-depth), g.format(g.Settings.PlungeRate)))

		if outline && pass == numPasses && g.Settings.HoldingTabs > 0 {
			g.writeLoopWithTabs(b, pts, depth)
		} else {
			for _, pt := range pts[1:] {
				b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
					g.format(pt.X), g.format(pt.Y), g.format(g.Settings.FeedRate)))
			}
		}

		b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.RapidMove, g.format(g.Settings.SafeZ)))
	}
}

// writeCircle cuts a full circle as one clockwise arc per pass, starting
// at its rightmost point.
func (g *Generator) writeCircle(b *strings.Builder, c model.Circle, j job) {
	centre := j.machine(c.Center)
	r := c.Radius * j.scale
	x, y := centre.X+r, centre.Y

	numPasses := int(math.Ceil(j.depth / g.Settings.PassDepth))
	b.WriteString(g.comment(fmt.Sprintf("Hole r=%.2fmm", r)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove, g.format(x), g.format(y)))
	for pass := 1; pass <= numPasses; pass++ {
		depth := math.Min(float64(pass)*g.Settings.PassDepth, j.depth)
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", g.profile.FeedMove, g.format(-depth), g.format(g.Settings.PlungeRate)))
		b.WriteString(fmt.Sprintf("G2 X%s Y%s I%s J%s F%s\n",
			g.format(x), g.format(y), g.format(-r), g.format(0), g.format(g.Settings.FeedRate)))
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.RapidMove, g.format(g.Settings.SafeZ)))
}

// interval is a stretch of a loop measured as distance from its start.
type interval struct {
	start, end float64
}

// holdingTabIntervals spreads n tabs of width w evenly around a loop of
// the given perimeter. Tabs are narrowed so neighbours never touch.
func holdingTabIntervals(perimeter float64, n int, w float64) []interval {
	if n <= 0 || w <= 0 || perimeter <= 0 {
		return nil
	}
	spacing := perimeter / float64(n)
	w = math.Min(w, spacing/2)
	tabs := make([]interval, n)
	for k := range tabs {
		centre := spacing * (float64(k) + 0.5)
		tabs[k] = interval{start: centre - w/2, end: centre + w/2}
	}
	return tabs
}

// writeLoopWithTabs follows a closed loop at cut depth, lifting to the
// holding tab height across each tab.
func (g *Generator) writeLoopWithTabs(b *strings.Builder, pts []model.Point2D, depth float64) {
	perimeter := 0.0
	for i := 1; i < len(pts); i++ {
		perimeter += dist(pts[i-1], pts[i])
	}
	tabs := holdingTabIntervals(perimeter, g.Settings.HoldingTabs, g.Settings.HoldingTabWidth)
	tabDepth := math.Max(depth-g.Settings.HoldingTabHeight, 0)

	feed := func(p model.Point2D) {
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
			g.format(p.X), g.format(p.Y), g.format(g.Settings.FeedRate)))
	}
	lift := func(z float64) {
		b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.FeedMove, g.format(-z)))
	}

	pos, ti := 0.0, 0
	for i := 1; i < len(pts); i++ {
		a, c := pts[i-1], pts[i]
		segLen := dist(a, c)
		segStart, segEnd := pos, pos+segLen
		for ti < len(tabs) && tabs[ti].start < segEnd {
			tab := tabs[ti]
			if tab.start >= segStart {
				feed(lerp(a, c, (tab.start-segStart)/segLen))
				lift(tabDepth)
			}
			if tab.end > segEnd {
				break
			}
			feed(lerp(a, c, (tab.end-segStart)/segLen))
			lift(depth)
			ti++
		}
		feed(c)
		pos = segEnd
	}
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	s := fmt.Sprintf(format, v)
	if strings.Trim(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

func dist(a, b model.Point2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func lerp(a, b model.Point2D, t float64) model.Point2D {
	return model.Point2D{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
