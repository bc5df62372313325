package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

var dxfColors = map[string]color.ColorNumber{
	"red":   color.Red,
	"green": color.Green,
	"blue":  color.Blue,
}

// dxfLayer turns a piece name into a layer name.
func dxfLayer(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// SaveDXF writes the pieces to a DXF file, one layer per piece. Closed
// paths become closed LWPOLYLINEs, open paths open ones and rail mounting
// holes CIRCLEs. The y axis is flipped so the drawing reads the same way
// up as the SVG.
func SaveDXF(path string, res model.BoxResult) error {
	if len(res.Pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}
	_, max := res.Bounds()
	flip := func(y float64) float64 { return max.Y - y }

	cl, ok := dxfColors[res.Settings.LineColor]
	if !ok {
		cl = dxf.DefaultColor
	}

	d := dxf.NewDrawing()
	for _, p := range res.Pieces {
		if _, err := d.AddLayer(dxfLayer(p.Name), cl, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer for %s: %w", p.Name, err)
		}
		for _, path := range p.Paths {
			if len(path.Points) < 2 {
				continue
			}
			verts := make([][]float64, len(path.Points))
			for i, pt := range path.Points {
				verts[i] = []float64{pt.X, flip(pt.Y)}
			}
			if _, err := d.LwPolyline(path.Closed, verts...); err != nil {
				return fmt.Errorf("failed to add path for %s: %w", p.Name, err)
			}
		}
		for _, c := range p.Circles {
			if _, err := d.Circle(c.Center.X, flip(c.Center.Y), 0, c.Radius); err != nil {
				return fmt.Errorf("failed to add circle for %s: %w", p.Name, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// WriteDXF renders the DXF through a temporary file, as the drawing
// library only saves to disk.
func WriteDXF(w io.Writer, res model.BoxResult) error {
	dir, err := os.MkdirTemp("", "tabbedbox-dxf")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "box.dxf")
	if err := SaveDXF(path, res); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to reopen DXF: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to copy DXF: %w", err)
	}
	return nil
}
