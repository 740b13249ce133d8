package convert

// convert.go is the aggregator: it drives the validators over a
// document and assembles the final result. There is no partial commit
// or abort-on-first-error path; the result always holds everything
// that validated plus every message in row order.

import "sheet2json/internal/sheet"

// Result is the outcome of one conversion. Data is a map in CONFIG
// mode and a row list (or per-sheet map of row lists) in ROWS mode.
// Messages is always present, never null, and never reordered.
type Result struct {
	Data     any      `json:"data"`
	Messages []string `json:"messages"`
}

// Convert runs a document through the engine. The first sheet's
// headers pick the mode: CONFIG validates that sheet into a key/value
// map, ROWS dumps every sheet unchanged.
func Convert(doc *sheet.Document) Result {
	if Resolve(doc.Sheets[0].Headers) == ModeConfig {
		return ConvertConfig(doc.Sheets[0])
	}
	return ConvertRows(doc)
}

// ConvertConfig validates a sheet's rows into a configuration map.
// Rows are processed in source order, threading one seen-keys set
// through the whole pass so the first occurrence of a key wins.
func ConvertConfig(s sheet.Sheet) Result {
	data := make(map[string]any)
	messages := []string{}

	v := newRowValidator()
	for _, row := range s.Rows {
		e, errs := v.validateRow(row)
		for _, err := range errs {
			messages = append(messages, err.String())
		}
		if e != nil {
			data[e.key] = e.value
		}
	}

	return Result{Data: data, Messages: messages}
}

// ConvertRows dumps rows without validation. A single sheet serializes
// as a plain array; multiple sheets become an object keyed by sheet
// name.
func ConvertRows(doc *sheet.Document) Result {
	if len(doc.Sheets) == 1 {
		return Result{Data: rowMaps(doc.Sheets[0]), Messages: []string{}}
	}

	data := make(map[string][]map[string]any, len(doc.Sheets))
	for _, s := range doc.Sheets {
		data[s.Name] = rowMaps(s)
	}
	return Result{Data: data, Messages: []string{}}
}

// rowMaps converts a sheet's rows to JSON-ready maps of native values.
func rowMaps(s sheet.Sheet) []map[string]any {
	out := make([]map[string]any, 0, len(s.Rows))
	for _, row := range s.Rows {
		m := make(map[string]any, len(row.Cells))
		for name, c := range row.Cells {
			m[name] = c.Value()
		}
		out = append(out, m)
	}
	return out
}
