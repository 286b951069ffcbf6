package validate

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Value helpers. Records typically come straight from encoding/json, so
// the interesting dynamic types are nil, string, bool, float64, []any
// and map[string]any; the integer types are handled as well for records
// built in Go code.

// isEmpty reports whether v is the absent sentinel (nil), an empty
// string, or an empty container.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// toFloat converts numeric values and numeric strings to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// isInteger reports whether v is an integer value, a float with no
// fractional part (JSON numbers decode as float64), or a string
// parseable as a base-10 integer.
func isInteger(v any) bool {
	switch t := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		return t == float64(int64(t))
	case float32:
		return float64(t) == float64(int64(t))
	case string:
		_, err := strconv.ParseInt(t, 10, 64)
		return err == nil
	default:
		return false
	}
}

// length returns the element or character count of v: runes for
// strings, elements for slices and maps.
func length(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case []any:
		return len(t), true
	case []string:
		return len(t), true
	case map[string]any:
		return len(t), true
	default:
		return 0, false
	}
}

// looseEquals compares v against a rule parameter the way the
// required-in rule needs: by stringified value, so 18, 18.0 and "18"
// all equal the parameter "18", and true equals "true".
func looseEquals(v any, param string) bool {
	if v == nil {
		return false
	}
	return fmt.Sprint(v) == param
}
