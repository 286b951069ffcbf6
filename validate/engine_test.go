package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armature-dev/armature/validate"
)

func validateOne(t *testing.T, rs validate.RuleSet, record map[string]any) validate.Errors {
	t.Helper()
	errs, err := validate.New().Validate(rs, record)
	require.NoError(t, err)
	return errs
}

func TestValidate_MissingRequiredField(t *testing.T) {
	errs := validateOne(t,
		validate.RuleSet{validate.Rules("name", "required", "string")},
		map[string]any{},
	)
	require.Len(t, errs["name"], 1)
	assert.Contains(t, errs["name"][0], "required")
}

func TestValidate_NumericStringUnderMin(t *testing.T) {
	errs := validateOne(t,
		validate.RuleSet{validate.Rules("age", "integer", "min:18")},
		map[string]any{"age": "17"},
	)
	require.Len(t, errs["age"], 1)
	assert.Contains(t, errs["age"][0], "at least 18")
}

func TestValidate_IntegerStringPasses(t *testing.T) {
	errs := validateOne(t,
		validate.RuleSet{validate.Rules("age", "integer")},
		map[string]any{"age": "17"},
	)
	assert.Empty(t, errs)
}

func TestValidate_MessagesAccumulateInRuleOrder(t *testing.T) {
	errs := validateOne(t,
		validate.RuleSet{validate.Rules("email", "required", "email", "min:40")},
		map[string]any{"email": "nope"},
	)
	require.Len(t, errs["email"], 2)
	assert.Contains(t, errs["email"][0], "email address")
	assert.Contains(t, errs["email"][1], "at least 40")
}

func TestValidate_UnknownRuleSkippedByDefault(t *testing.T) {
	errs := validateOne(t,
		validate.RuleSet{validate.Rules("name", "requried", "string")}, // typo on purpose
		map[string]any{},
	)
	assert.Empty(t, errs)
}

func TestValidate_StrictModeRejectsUnknownRules(t *testing.T) {
	e := validate.New()
	e.Strict(true)

	_, err := e.Validate(
		validate.RuleSet{validate.Rules("name", "requried")},
		map[string]any{},
	)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "requried"))
}

func TestValidate_AddRuleRegistersAndOverrides(t *testing.T) {
	e := validate.New()
	e.AddRule("slug", func(value any, field string, params []string, record map[string]any) string {
		s, _ := value.(string)
		if strings.Contains(s, " ") {
			return "The " + field + " field must not contain spaces."
		}
		return ""
	})

	errs, err := e.Validate(
		validate.RuleSet{validate.Rules("slug", "required", "slug")},
		map[string]any{"slug": "has space"},
	)
	require.NoError(t, err)
	require.Len(t, errs["slug"], 1)

	// Overriding a built-in takes effect for subsequent calls.
	e.AddRule("required", func(any, string, []string, map[string]any) string { return "" })
	errs, err = e.Validate(
		validate.RuleSet{validate.Rules("name", "required")},
		map[string]any{},
	)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidate_EmptyRuleSetIsValid(t *testing.T) {
	errs := validateOne(t, validate.RuleSet{}, map[string]any{"anything": 1})
	assert.Empty(t, errs)
}
