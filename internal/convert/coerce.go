package convert

// coerce.go converts raw cell values to typed values per a declared
// type tag. Coercion is pure: a cell plus a tag yields a value or a
// failure, nothing else. Empty cells never reach the coercer; the row
// validator handles emptiness first.

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"sheet2json/internal/sheet"
)

// ValueType is the declared type tag for a config value.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeBool
	TypeURL
)

// intRegex accepts an optional sign followed by digits only.
var intRegex = regexp.MustCompile(`^[+-]?\d+$`)

// ParseValueType maps a type column cell to a ValueType. Tags are
// trimmed and case-insensitive; anything unrecognized falls back to
// string, which accepts every value.
func ParseValueType(tag string) ValueType {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "int":
		return TypeInt
	case "bool":
		return TypeBool
	case "url":
		return TypeURL
	default:
		return TypeString
	}
}

// Coerce converts a non-empty cell to the declared type. The second
// return reports success; TypeString never fails.
func Coerce(c sheet.Cell, t ValueType) (any, bool) {
	switch t {
	case TypeInt:
		return coerceInt(c)
	case TypeBool:
		return coerceBool(c)
	case TypeURL:
		return coerceURL(c)
	default:
		return c.String(), true
	}
}

// coerceInt accepts numeric cells with a zero fractional part and
// strings that are an optional sign plus digits after trimming.
func coerceInt(c sheet.Cell) (any, bool) {
	switch c.Kind {
	case sheet.CellNumber:
		if c.Num != math.Trunc(c.Num) || math.IsInf(c.Num, 0) {
			return nil, false
		}
		return int64(c.Num), true
	case sheet.CellString:
		s := strings.TrimSpace(c.Str)
		if !intRegex.MatchString(s) {
			return nil, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		return nil, false
	}
}

// coerceBool accepts boolean cells, the numbers 1 and 0, and the
// strings true/false, yes/no, 1/0 (case-insensitive).
func coerceBool(c sheet.Cell) (any, bool) {
	switch c.Kind {
	case sheet.CellBool:
		return c.Bool, true
	case sheet.CellNumber:
		switch c.Num {
		case 1:
			return true, true
		case 0:
			return false, true
		}
		return nil, false
	case sheet.CellString:
		switch strings.ToLower(strings.TrimSpace(c.Str)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// coerceURL accepts strings with an http or https scheme followed by
// a non-empty remainder. Non-string cells always fail.
func coerceURL(c sheet.Cell) (any, bool) {
	if c.Kind != sheet.CellString {
		return nil, false
	}
	s := strings.TrimSpace(c.Str)
	for _, prefix := range []string{"http://", "https://"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok && rest != "" {
			return s, true
		}
	}
	return nil, false
}
