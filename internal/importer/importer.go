// Package importer reads box lists from CSV and Excel files and piece
// outlines back from DXF drawings. Column headers are matched
// case-insensitively against a set of aliases; files without a header are
// read positionally.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Jobs     []model.BatchJob
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Unmapped roles are -1.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Height    int
	Thickness int
	TabWidth  int
	Kerf      int
	Quantity  int
	Unit      int
	Inside    int
	BoxType   int
	DivX      int
	DivY      int
}

// headerAliases maps canonical column names to their accepted aliases
// (lowercase, with underscores and dashes read as spaces).
var headerAliases = map[string][]string{
	"name":      {"name", "label", "box", "box name", "description", "desc", "item", "job"},
	"length":    {"length", "len", "l", "x", "outside length"},
	"width":     {"width", "w", "y", "depth", "d"},
	"height":    {"height", "h", "z"},
	"thickness": {"thickness", "thick", "t", "material", "material thickness", "stock"},
	"tab":       {"tab", "tab width", "tabs", "finger", "finger width"},
	"kerf":      {"kerf", "kerf width"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "copies"},
	"unit":      {"unit", "units"},
	"inside":    {"inside", "inner", "internal", "inside dims", "inside dimensions"},
	"box type":  {"box type", "type", "style"},
	"div x":     {"div x", "dividers x", "x dividers", "divx"},
	"div y":     {"div y", "dividers y", "y dividers", "divy"},
}

// field returns the index slot for a canonical role.
func (m *ColumnMapping) field(role string) *int {
	switch role {
	case "name":
		return &m.Name
	case "length":
		return &m.Length
	case "width":
		return &m.Width
	case "height":
		return &m.Height
	case "thickness":
		return &m.Thickness
	case "tab":
		return &m.TabWidth
	case "kerf":
		return &m.Kerf
	case "quantity":
		return &m.Quantity
	case "unit":
		return &m.Unit
	case "inside":
		return &m.Inside
	case "box type":
		return &m.BoxType
	case "div x":
		return &m.DivX
	case "div y":
		return &m.DivY
	}
	return nil
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
}

// positionalMapping is used when the first row is not a header:
// Name, Length, Width, Height, Thickness, Quantity.
func positionalMapping() ColumnMapping {
	m := emptyMapping()
	m.Name, m.Length, m.Width, m.Height, m.Thickness, m.Quantity = 0, 1, 2, 3, 4, 5
	return m
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := emptyMapping()

	isHeader := false
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := mapping.field(role); *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "inside", "inner":
		return true, nil
	case "no", "n", "outside", "outer", "-":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// rowParser fills BoxOptions from one row, collecting the first error.
type rowParser struct {
	row      []string
	rowLabel string
	err      string
}

func (p *rowParser) number(idx int, what string, required bool, dst *float64) {
	if p.err != "" {
		return
	}
	s := getCell(p.row, idx)
	if s == "" {
		if required {
			p.err = fmt.Sprintf("%s: Missing %s value", p.rowLabel, what)
		}
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Sprintf("%s: Invalid %s '%s'", p.rowLabel, what, s)
		return
	}
	*dst = v
}

func (p *rowParser) count(idx int, what string, dst *int) {
	if p.err != "" {
		return
	}
	s := getCell(p.row, idx)
	if s == "" {
		return
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Sprintf("%s: Invalid %s '%s'", p.rowLabel, what, s)
		return
	}
	*dst = v
}

// parseRow builds a BatchJob from a row, starting from base options.
// Returns the job, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, jobCount int, base model.BoxOptions) (model.BatchJob, string, string) {
	opts := base
	p := &rowParser{row: row, rowLabel: rowLabel}

	p.number(mapping.Length, "length", true, &opts.Length)
	p.number(mapping.Width, "width", true, &opts.Width)
	p.number(mapping.Height, "height", true, &opts.Height)
	p.number(mapping.Thickness, "thickness", false, &opts.Thickness)
	p.number(mapping.TabWidth, "tab width", false, &opts.TabWidth)
	p.number(mapping.Kerf, "kerf", false, &opts.Kerf)
	p.count(mapping.DivX, "divider count", &opts.DivX)
	p.count(mapping.DivY, "divider count", &opts.DivY)

	qty := 1
	p.count(mapping.Quantity, "quantity", &qty)
	if p.err != "" {
		return model.BatchJob{}, p.err, ""
	}
	if qty <= 0 {
		return model.BatchJob{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
	}

	if s := getCell(row, mapping.Unit); s != "" {
		opts.Unit = strings.ToLower(s)
	}
	if s := getCell(row, mapping.Inside); s != "" {
		inside, err := parseBool(s)
		if err != nil {
			return model.BatchJob{}, fmt.Sprintf("%s: Invalid inside flag '%s'", rowLabel, s), ""
		}
		opts.Inside = inside
	}

	var warning string
	if s := getCell(row, mapping.BoxType); s != "" {
		bt, err := model.ParseBoxType(s)
		if err != nil {
			warning = fmt.Sprintf("%s: Unknown box type '%s', defaulting to %s", rowLabel, s, opts.BoxType)
		} else {
			opts.BoxType = bt
		}
	}

	if _, err := opts.Resolve(); err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			return model.BatchJob{}, fmt.Sprintf("%s: %s", rowLabel, strings.Join(verrs, "; ")), ""
		}
		return model.BatchJob{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Box %d", jobCount+1)
	}

	return model.BatchJob{Name: name, Quantity: qty, Options: opts}, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports box jobs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, base model.BoxOptions) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings, base)
}

// ImportCSVFromReader imports box jobs from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, base model.BoxOptions) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil, base)
}

// ImportExcel imports box jobs from the first sheet of an Excel file.
func ImportExcel(path string, base model.BoxOptions) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil, base)
}

// ImportFile picks the CSV or Excel reader from the file extension.
func ImportFile(path string, base model.BoxOptions) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, base)
	}
	return ImportCSV(path, base)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into jobs.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, base model.BoxOptions) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognised header: skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]int)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		job, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Jobs), base)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		seen[job.Name]++
		if n := seen[job.Name]; n > 1 {
			renamed := fmt.Sprintf("%s %d", job.Name, n)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Duplicate name '%s', renamed to '%s'", rowLabel, job.Name, renamed))
			job.Name = renamed
		}

		result.Jobs = append(result.Jobs, job)
	}

	return result
}
