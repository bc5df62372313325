package export

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/google/uuid"
	"github.com/piwi3910/tabbedbox/internal/model"
)

// lineColors maps the accepted line colour names to stroke values.
var lineColors = map[string]string{
	"black": "#000000",
	"red":   "#FF0000",
	"green": "#00FF00",
	"blue":  "#0000FF",
}

// hairlineWidth is the stroke width written for hairline output, in user
// units. Viewers that honour non-scaling strokes draw it one pixel wide.
const hairlineWidth = 0.26458

// idSpace seeds the name-based UUIDs used for element ids, so the same box
// always produces the same document.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/piwi3910/tabbedbox"))

// ElementID returns a stable id for the n-th element of a piece.
func ElementID(piece string, n int) string {
	u := uuid.NewSHA1(idSpace, []byte(fmt.Sprintf("%s/%d", piece, n)))
	return strings.ReplaceAll(piece, " ", "") + "-" + u.String()[:8]
}

func strokeStyle(s model.BoxSettings) string {
	color, ok := lineColors[s.LineColor]
	if !ok {
		color = lineColors["black"]
	}
	if s.Hairline {
		return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;vector-effect:non-scaling-stroke;-inkscape-stroke:hairline",
			color, model.FormatFloat(hairlineWidth))
	}
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", color, model.FormatFloat(s.LineThickness))
}

// documentSize returns the sheet size: the extent of every piece plus the
// same margin on the far edges as the layout left on the near ones.
func documentSize(res model.BoxResult) (w, h float64) {
	min, max := res.Bounds()
	return max.X + min.X, max.Y + min.Y
}

// WriteSVG writes the pieces as one SVG document. Each piece is a group
// holding its paths and rail mounting circles; units are the box unit.
func WriteSVG(w io.Writer, res model.BoxResult) error {
	if len(res.Pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}
	unit := res.Settings.Unit
	if unit == "" {
		unit = "mm"
	}
	width, height := documentSize(res)
	style := strokeStyle(res.Settings)

	canvas := svg.New(w)
	canvas.Startraw(
		fmt.Sprintf(`width="%s%s"`, model.FormatFloat(width), unit),
		fmt.Sprintf(`height="%s%s"`, model.FormatFloat(height), unit),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, model.FormatFloat(width), model.FormatFloat(height)),
	)
	canvas.Title("Tabbed box")

	for _, p := range res.Pieces {
		canvas.Gid(ElementID(p.Name, 0))
		canvas.Desc(fmt.Sprintf("%s %sx%s", p.Name, model.FormatFloat(p.Width), model.FormatFloat(p.Height)))
		n := 1
		for _, path := range p.Paths {
			if len(path.Points) < 2 {
				continue
			}
			canvas.Path(path.SVGData(), fmt.Sprintf(`id="%s"`, ElementID(p.Name, n)), `style="`+style+`"`)
			n++
		}
		for _, c := range p.Circles {
			canvas.Path(circleData(c), fmt.Sprintf(`id="%s"`, ElementID(p.Name, n)), `style="`+style+`"`)
			n++
		}
		canvas.Gend()
	}
	canvas.End()
	return nil
}

// circleData draws a circle as two half arcs so coordinates keep full
// precision.
func circleData(c model.Circle) string {
	f := model.FormatFloat
	r := f(c.Radius)
	return fmt.Sprintf("M %s %s A %s %s 0 1 0 %s %s A %s %s 0 1 0 %s %s Z",
		f(c.Center.X-c.Radius), f(c.Center.Y),
		r, r, f(c.Center.X+c.Radius), f(c.Center.Y),
		r, r, f(c.Center.X-c.Radius), f(c.Center.Y))
}
