// Package export writes generated box pieces to drawing, document and
// spreadsheet formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// Format names an output file type.
type Format string

const (
	FormatSVG    Format = "svg"
	FormatDXF    Format = "dxf"
	FormatPDF    Format = "pdf"
	FormatLabels Format = "labels"
	FormatXLSX   Format = "xlsx"
	FormatSTL    Format = "stl"
	FormatJSON   Format = "json"
	FormatGCode  Format = "gcode"
)

var extFormats = map[string]Format{
	".svg":   FormatSVG,
	".dxf":   FormatDXF,
	".pdf":   FormatPDF,
	".xlsx":  FormatXLSX,
	".stl":   FormatSTL,
	".json":  FormatJSON,
	".nc":    FormatGCode,
	".gcode": FormatGCode,
	".ngc":   FormatGCode,
	".tap":   FormatGCode,
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := extFormats["."+strings.TrimPrefix(s, ".")]; ok {
		return f, nil
	}
	switch Format(s) {
	case FormatSVG, FormatDXF, FormatPDF, FormatLabels, FormatXLSX, FormatSTL, FormatJSON, FormatGCode:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("cannot infer output format from %q", path)
}

// Write renders the result in the given format. G-code is produced by the
// gcode package and is not handled here.
func Write(w io.Writer, f Format, res model.BoxResult) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, res)
	case FormatDXF:
		return WriteDXF(w, res)
	case FormatPDF:
		return ExportPDF(w, res)
	case FormatLabels:
		return ExportLabels(w, res)
	case FormatXLSX:
		return ExportCutList(w, res, nil)
	case FormatSTL:
		return ExportSTL(w, res, DefaultSTLCells)
	case FormatJSON:
		return WriteJSON(w, res)
	}
	return fmt.Errorf("format %q is not supported by the exporter", f)
}

// WriteFile creates path and writes the result to it.
func WriteFile(path string, f Format, res model.BoxResult) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(out, f, res); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, res model.BoxResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
