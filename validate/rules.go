package validate

import (
	"fmt"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
)

// builtins is the stock rule vocabulary installed by New.
var builtins = map[string]Func{
	"required":    ruleRequired,
	"excluded":    ruleExcluded,
	"email":       ruleEmail,
	"string":      ruleString,
	"integer":     ruleInteger,
	"float":       ruleFloat,
	"boolean":     ruleBoolean,
	"in":          ruleIn,
	"excluded_in": ruleExcludedIn,
	"unique-in":   ruleUniqueIn,
	"required-in": ruleRequiredIn,
	"dict":        ruleDict,
	"min":         ruleMin,
	"max":         ruleMax,
}

func ruleRequired(value any, field string, _ []string, _ map[string]any) string {
	if isEmpty(value) {
		return fmt.Sprintf("The %s field is required.", field)
	}
	return ""
}

func ruleExcluded(value any, field string, _ []string, _ map[string]any) string {
	if !isEmpty(value) {
		return fmt.Sprintf("The %s field is not allowed.", field)
	}
	return ""
}

func ruleEmail(value any, field string, _ []string, _ map[string]any) string {
	if isEmpty(value) {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	}
	return ""
}

func ruleString(value any, field string, _ []string, _ map[string]any) string {
	if value == nil {
		return ""
	}
	if _, ok := value.(string); !ok {
		return fmt.Sprintf("The %s field must be a string.", field)
	}
	return ""
}

func ruleInteger(value any, field string, _ []string, _ map[string]any) string {
	if isEmpty(value) {
		return ""
	}
	if !isInteger(value) {
		return fmt.Sprintf("The %s field must be an integer.", field)
	}
	return ""
}

func ruleFloat(value any, field string, _ []string, _ map[string]any) string {
	if isEmpty(value) {
		return ""
	}
	if _, ok := toFloat(value); !ok {
		return fmt.Sprintf("The %s field must be a number.", field)
	}
	return ""
}

// booleanLiterals is the canonical accepted set for the boolean rule:
// real booleans, 0/1, and their string forms.
func ruleBoolean(value any, field string, _ []string, _ map[string]any) string {
	switch t := value.(type) {
	case nil, bool:
		return ""
	case string:
		switch t {
		case "0", "1", "true", "false":
			return ""
		}
	case float64:
		if t == 0 || t == 1 {
			return ""
		}
	case int:
		if t == 0 || t == 1 {
			return ""
		}
	case int32:
		if t == 0 || t == 1 {
			return ""
		}
	case int64:
		if t == 0 || t == 1 {
			return ""
		}
	}
	return fmt.Sprintf("The %s field must be a boolean value.", field)
}

func ruleIn(value any, field string, params []string, _ map[string]any) string {
	if isEmpty(value) {
		return ""
	}
	for _, p := range params {
		if strictEquals(value, p) {
			return ""
		}
	}
	return fmt.Sprintf("The %s field must be one of: %s.", field, strings.Join(params, ", "))
}

func ruleExcludedIn(value any, field string, params []string, _ map[string]any) string {
	if isEmpty(value) {
		return ""
	}
	for _, p := range params {
		if strictEquals(value, p) {
			return fmt.Sprintf("The %s field must not be one of: %s.", field, strings.Join(params, ", "))
		}
	}
	return ""
}

// ruleUniqueIn fails when the value already appears in the array stored
// under the referenced field. A missing or non-array dependent field
// passes vacuously, self-reference included.
func ruleUniqueIn(value any, field string, params []string, record map[string]any) string {
	if len(params) == 0 || value == nil {
		return ""
	}
	other := record[params[0]]
	var items []any
	switch t := other.(type) {
	case []any:
		items = t
	case []string:
		items = make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
	default:
		return ""
	}
	for _, item := range items {
		if reflect.DeepEqual(item, value) {
			return fmt.Sprintf("The %s field must be unique within %s.", field, params[0])
		}
	}
	return ""
}

// ruleRequiredIn applies the required rule to this field only when the
// referenced field loosely equals the given literal. A missing
// dependent field never triggers the requirement.
func ruleRequiredIn(value any, field string, params []string, record map[string]any) string {
	if len(params) < 2 {
		return ""
	}
	if !looseEquals(record[params[0]], params[1]) {
		return ""
	}
	return ruleRequired(value, field, nil, record)
}

func ruleDict(value any, field string, _ []string, _ map[string]any) string {
	if value == nil {
		return ""
	}
	if _, ok := value.(map[string]any); !ok {
		return fmt.Sprintf("The %s field must be an object.", field)
	}
	return ""
}

func ruleMin(value any, field string, params []string, _ map[string]any) string {
	return boundCheck(value, field, params, false)
}

func ruleMax(value any, field string, params []string, _ map[string]any) string {
	return boundCheck(value, field, params, true)
}

// strictEquals compares a record value against a rule literal without
// coercion: only string values can equal a parameter token.
func strictEquals(value any, param string) bool {
	s, ok := value.(string)
	return ok && s == param
}

// boundCheck implements min (upper=false) and max (upper=true). Numeric
// values, numeric strings included, compare by magnitude; non-numeric
// strings by rune count; containers by element count. Anything else
// passes.
func boundCheck(value any, field string, params []string, upper bool) string {
	if len(params) == 0 || value == nil {
		return ""
	}
	bound, err := strconv.ParseFloat(params[0], 64)
	if err != nil {
		return ""
	}

	if f, ok := toFloat(value); ok {
		if (!upper && f < bound) || (upper && f > bound) {
			return fmt.Sprintf("The %s field must be %s %s.", field, boundWord(upper), params[0])
		}
		return ""
	}

	if s, ok := value.(string); ok {
		n, _ := length(s)
		if (!upper && float64(n) < bound) || (upper && float64(n) > bound) {
			return fmt.Sprintf("The %s field must be %s %s characters.", field, boundWord(upper), params[0])
		}
		return ""
	}

	if n, ok := length(value); ok {
		if (!upper && float64(n) < bound) || (upper && float64(n) > bound) {
			return fmt.Sprintf("The %s field must contain %s %s items.", field, boundWord(upper), params[0])
		}
	}
	return ""
}

func boundWord(upper bool) string {
	if upper {
		return "at most"
	}
	return "at least"
}
