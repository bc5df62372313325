package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	cutListSheet  = "Cut List"
	settingsSheet = "Settings"
	estimateSheet = "Estimate"
)

var cutListHeaders = []string{"#", "Piece", "Type", "Width", "Height", "Thickness", "Holes", "Circles", "Cut Length"}

// ExportCutList writes an XLSX workbook with one row per piece, a sheet of
// the resolved settings and, when est is given, the material estimate.
func ExportCutList(w io.Writer, res model.BoxResult, est *model.MaterialEstimate) error {
	if len(res.Pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), cutListSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	rows := [][]any{toAny(cutListHeaders)}
	for i, p := range res.Pieces {
		rows = append(rows, []any{
			i + 1, p.Name, p.Type.String(), p.Width, p.Height, res.Settings.Thickness,
			p.HoleCount(), len(p.Circles), round3(p.CutLength()),
		})
	}
	if err := writeRows(f, cutListSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(cutListSheet, "A1", "I1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(cutListSheet, "B", "C", 14); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	s := res.Settings
	settings := [][]any{
		{"Setting", "Value"},
		{"Unit", s.Unit},
		{"Outside X", s.X}, {"Outside Y", s.Y}, {"Outside Z", s.Z},
		{"Inside X", s.InsideX}, {"Inside Y", s.InsideY}, {"Inside Z", s.InsideZ},
		{"Thickness", s.Thickness},
		{"Tab Width", s.TabWidth},
		{"Kerf", s.Kerf},
		{"Box Type", s.BoxType.String()},
		{"Tab Symmetry", s.TabSymmetry.String()},
		{"Layout", s.Layout.String()},
		{"Dividers X", s.DivX}, {"Dividers Y", s.DivY},
	}
	if _, err := f.NewSheet(settingsSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := writeRows(f, settingsSheet, settings); err != nil {
		return err
	}
	if err := f.SetCellStyle(settingsSheet, "A1", "B1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if est != nil {
		rows := [][]any{
			{"Item", "Value"},
			{"Pieces", est.PieceCount},
			{"Piece Area", round3(est.TotalPieceArea)},
			{"Cut Length", round3(est.CutLength)},
			{"Sheet Area", est.SheetArea},
			{"Sheets (exact)", round3(est.SheetsNeededExact)},
			{"Sheets (min)", est.SheetsNeededMin},
			{"Waste %", est.WastePercent},
			{"Sheets (with waste)", est.SheetsWithWaste},
			{"Estimated Cost", est.EstimatedCost},
		}
		if _, err := f.NewSheet(estimateSheet); err != nil {
			return fmt.Errorf("failed to add sheet: %w", err)
		}
		if err := writeRows(f, estimateSheet, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to create cell reference: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func round3(v float64) float64 {
	return model.V(v, 0).Round(3).X
}
