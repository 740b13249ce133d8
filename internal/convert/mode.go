// Package convert is the validation and coercion engine. It takes a
// decoded sheet document and produces either a key/value configuration
// map or a raw row dump, together with an ordered list of row-addressed
// messages for every malformed row. Processing is exhaustive: a bad row
// is reported and skipped, never aborts the pass.
package convert

// Mode selects how a document is converted.
type Mode int

const (
	// ModeRows dumps every row unchanged, with no validation.
	ModeRows Mode = iota
	// ModeConfig validates rows into a key/value configuration map.
	ModeConfig
)

// Recognized column names in CONFIG mode. Matching is exact and
// case-sensitive, as the names appear in the header row.
const (
	colKey      = "key"
	colValue    = "value"
	colRequired = "required"
	colType     = "type"
)

// Resolve picks the conversion mode from a sheet's header names:
// CONFIG when both the key and value columns are present, ROWS
// otherwise. The optional required and type columns play no part in
// mode selection; their absence simply means required=no, type=string
// for every row.
func Resolve(headers []string) Mode {
	hasKey, hasValue := false, false
	for _, h := range headers {
		switch h {
		case colKey:
			hasKey = true
		case colValue:
			hasValue = true
		}
	}
	if hasKey && hasValue {
		return ModeConfig
	}
	return ModeRows
}

// String returns the mode name used in logs and history records.
func (m Mode) String() string {
	if m == ModeConfig {
		return "config"
	}
	return "rows"
}
