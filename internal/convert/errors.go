package convert

import "fmt"

// Kind classifies a row-level validation failure.
type Kind int

const (
	KindMissingKey Kind = iota
	KindDuplicateKey
	KindMissingRequiredValue
	KindNotAnInteger
	KindNotABoolean
	KindInvalidURL
)

// ValidationError is one row-scoped failure. Errors are data, not
// control flow: every failure becomes a message in the final result
// and processing moves on to the next row.
type ValidationError struct {
	Row  int
	Kind Kind
	Key  string
}

// String renders the user-facing message, embedding the sheet row
// number and the offending key.
func (e ValidationError) String() string {
	switch e.Kind {
	case KindMissingKey:
		return fmt.Sprintf("Row %d: missing key", e.Row)
	case KindDuplicateKey:
		return fmt.Sprintf("Row %d: duplicate key '%s'", e.Row, e.Key)
	case KindMissingRequiredValue:
		return fmt.Sprintf("Row %d: missing required value for '%s'", e.Row, e.Key)
	case KindNotAnInteger:
		return fmt.Sprintf("Row %d: '%s' must be an integer.", e.Row, e.Key)
	case KindNotABoolean:
		return fmt.Sprintf("Row %d: '%s' must be a boolean.", e.Row, e.Key)
	case KindInvalidURL:
		return fmt.Sprintf("Row %d: '%s' must be a valid URL.", e.Row, e.Key)
	default:
		return fmt.Sprintf("Row %d: invalid row", e.Row)
	}
}

// coercionKind maps a declared value type to the failure kind reported
// when coercion rejects the value.
func coercionKind(t ValueType) Kind {
	switch t {
	case TypeInt:
		return KindNotAnInteger
	case TypeBool:
		return KindNotABoolean
	default:
		return KindInvalidURL
	}
}
