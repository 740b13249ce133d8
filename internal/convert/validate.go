package convert

// validate.go applies the per-row CONFIG rules. Checks run in a fixed
// order because the order decides which single message a bad row gets:
// missing key, duplicate key, required-but-empty value, then type
// coercion. A key is claimed the moment it survives the duplicate
// check, so a later row can never supply a value for a key that
// already produced an error or an entry.

import (
	"strings"

	"sheet2json/internal/sheet"
)

// entry is one validated key/value pair bound for the output map.
type entry struct {
	key   string
	value any
}

// rowValidator validates successive rows of one sheet. The seen set is
// the only cross-row state; rows must be fed in source order because
// duplicate detection is order-sensitive.
type rowValidator struct {
	seen map[string]struct{}
}

func newRowValidator() *rowValidator {
	return &rowValidator{seen: make(map[string]struct{})}
}

// validateRow checks one row and returns its output entry, or the
// errors that disqualified it. A row yields at most one error; a row
// with an empty optional value yields neither entry nor error.
func (v *rowValidator) validateRow(row sheet.RawRow) (*entry, []ValidationError) {
	key := strings.TrimSpace(row.Get(colKey).String())
	if key == "" {
		return nil, []ValidationError{{Row: row.Number, Kind: KindMissingKey}}
	}

	if _, dup := v.seen[key]; dup {
		return nil, []ValidationError{{Row: row.Number, Kind: KindDuplicateKey, Key: key}}
	}
	v.seen[key] = struct{}{}

	required := strings.EqualFold(strings.TrimSpace(row.Get(colRequired).String()), "yes")

	value := row.Get(colValue)
	if value.IsEmpty() {
		if required {
			return nil, []ValidationError{{Row: row.Number, Kind: KindMissingRequiredValue, Key: key}}
		}
		return nil, nil // optional and absent: skipped silently
	}

	vt := ParseValueType(row.Get(colType).String())
	coerced, ok := Coerce(value, vt)
	if !ok {
		return nil, []ValidationError{{Row: row.Number, Kind: coercionKind(vt), Key: key}}
	}

	return &entry{key: key, value: coerced}, nil
}
