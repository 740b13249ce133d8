// Package sheet decodes uploaded spreadsheet files (.xlsx or .csv) into
// an in-memory document of named sheets. It is the row source for the
// conversion engine: it hands over ordered rows of typed cells and plays
// no part in validation.
package sheet

import "strconv"

// CellKind tags the decoded type of a cell value.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellBool
)

// Cell is a single decoded cell. Spreadsheet cells arrive as text,
// numbers, or booleans depending on how the source file was formatted,
// so the value is carried as a tagged union rather than a string.
// The zero value is an empty cell.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
}

// StringCell returns a cell holding a text value.
func StringCell(s string) Cell { return Cell{Kind: CellString, Str: s} }

// NumberCell returns a cell holding a numeric value.
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }

// BoolCell returns a cell holding a boolean value.
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// IsEmpty reports whether the cell carries no value. A text cell with
// an empty string counts as empty.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty || (c.Kind == CellString && c.Str == "")
}

// String returns the cell's text representation. Numbers render without
// a trailing ".0" for whole values, booleans as "true"/"false", and
// empty cells as "".
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}

// Value returns the cell's native Go value for JSON serialization:
// string, float64, bool, or nil for an empty cell.
func (c Cell) Value() any {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return c.Num
	case CellBool:
		return c.Bool
	default:
		return nil
	}
}

// RawRow is one data row: a mapping from header name to cell, plus the
// 1-based sheet row number it came from. The number counts the header
// row and survives blank-row skipping, so it is safe to quote in
// user-facing messages.
type RawRow struct {
	Number int
	Cells  map[string]Cell
}

// Get returns the cell for a column, or an empty cell when the column
// is absent from the row.
func (r RawRow) Get(col string) Cell {
	return r.Cells[col]
}

// Sheet is one decoded worksheet: its header names in source order and
// its non-blank data rows in source order.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []RawRow
}

// Document is a fully decoded upload. It always contains at least one
// sheet; Decode fails otherwise.
type Document struct {
	Sheets []Sheet
}
