package sheet

// decode.go turns an uploaded file into a Document.
//
// Two formats are supported:
//   - .xlsx via excelize, preserving cell types (text, number, boolean)
//   - .csv via encoding/csv, where every cell is text
//
// Both paths share buildSheet, which applies the same header and row
// rules: the first row is the header, rows whose cells are all empty
// are dropped, and cells beyond the header width get synthetic col_N
// names. Decode errors mean the file itself is unreadable; everything
// row-level is left to the conversion engine.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoHeaders is returned when no sheet has a non-empty first row.
var ErrNoHeaders = errors.New("the first row must contain column headers")

// Decode reads an uploaded spreadsheet into a Document. The format is
// chosen from the file extension (.xlsx or .csv).
func Decode(filename string, r io.Reader) (*Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return decodeWorkbook(r)
	case ".csv":
		return decodeCSV(sheetName(filename), r)
	default:
		return nil, fmt.Errorf("unsupported file type %q: only .xlsx and .csv are supported", filepath.Ext(filename))
	}
}

// decodeWorkbook reads every worksheet of an xlsx file. Sheets without
// a header row are skipped; at least one sheet must survive.
func decodeWorkbook(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read the Excel file: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("unable to read sheet %q: %w", name, err)
		}

		grid := make([][]Cell, len(rows))
		for i, row := range rows {
			cells := make([]Cell, len(row))
			for j, v := range row {
				cells[j] = typedCell(f, name, j+1, i+1, v)
			}
			grid[i] = cells
		}

		if sh, ok := buildSheet(name, grid); ok {
			sheets = append(sheets, sh)
		}
	}

	if len(sheets) == 0 {
		return nil, ErrNoHeaders
	}
	return &Document{Sheets: sheets}, nil
}

// typedCell classifies a cell using the stored cell type. Numeric cells
// in xlsx carry no explicit type attribute, so an unset type with a
// parseable value is treated as a number.
func typedCell(f *excelize.File, sheet string, col, row int, value string) Cell {
	if value == "" {
		return Cell{}
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return StringCell(value)
	}
	ct, err := f.GetCellType(sheet, axis)
	if err != nil {
		ct = excelize.CellTypeUnset
	}

	switch ct {
	case excelize.CellTypeBool:
		return BoolCell(strings.EqualFold(value, "true"))
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return NumberCell(n)
		}
		return StringCell(value)
	default:
		return StringCell(value)
	}
}

// decodeCSV reads a CSV file as a single sheet of text cells.
func decodeCSV(name string, r io.Reader) (*Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read the CSV file: %w", err)
	}

	grid := make([][]Cell, len(records))
	for i, rec := range records {
		cells := make([]Cell, len(rec))
		for j, v := range rec {
			if v != "" {
				cells[j] = StringCell(v)
			}
		}
		grid[i] = cells
	}

	sh, ok := buildSheet(name, grid)
	if !ok {
		return nil, ErrNoHeaders
	}
	return &Document{Sheets: []Sheet{sh}}, nil
}

// buildSheet assembles a Sheet from a cell grid. Returns false when the
// grid has no usable header row.
func buildSheet(name string, grid [][]Cell) (Sheet, bool) {
	if len(grid) == 0 {
		return Sheet{}, false
	}

	headers := make([]string, len(grid[0]))
	hasHeader := false
	for j, c := range grid[0] {
		headers[j] = strings.TrimSpace(c.String())
		if headers[j] != "" {
			hasHeader = true
		}
	}
	if !hasHeader {
		return Sheet{}, false
	}

	sh := Sheet{Name: name, Headers: headers}
	for i := 1; i < len(grid); i++ {
		row := RawRow{Number: i + 1, Cells: make(map[string]Cell, len(headers))}
		empty := true
		for j, c := range grid[i] {
			row.Cells[columnName(headers, j)] = c
			if !c.IsEmpty() {
				empty = false
			}
		}
		if empty {
			continue
		}
		// Pad short rows so every header column appears in the dump.
		for j, h := range headers {
			if j >= len(grid[i]) {
				row.Cells[h] = Cell{}
			}
		}
		sh.Rows = append(sh.Rows, row)
	}
	return sh, true
}

// columnName maps a cell position to its header name, falling back to
// a synthetic col_N name past the header width.
func columnName(headers []string, idx int) string {
	if idx < len(headers) {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// sheetName derives a sheet name from a CSV filename.
func sheetName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
