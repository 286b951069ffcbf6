// Package validate implements armature's declarative field-validation
// engine. A rule set maps fields to ordered lists of rule strings
// ("required", "min:3", "in:draft:published"); evaluating it against an
// input record yields a field→messages error bag. The built-in rule
// vocabulary can be extended or overridden through AddRule.
package validate

import (
	"fmt"
	"strings"
)

// Func is a single validation rule. It receives the field's value (nil
// when the field is absent from the record), the field name, the rule's
// colon-separated parameters, and the full input record for rules that
// reference other fields. It returns an error message, or "" when the
// value passes.
type Func func(value any, field string, params []string, record map[string]any) string

// Field pairs a field name with its ordered rule strings.
type Field struct {
	Name  string
	Rules []string
}

// RuleSet is an ordered list of field rules. Evaluation order follows
// declaration order, both across fields and within a field's rules.
type RuleSet []Field

// Rules is a convenience constructor for a Field.
func Rules(name string, rules ...string) Field {
	return Field{Name: name, Rules: rules}
}

// Errors maps field names to their accumulated error messages. An empty
// map means the record is valid.
type Errors map[string][]string

// Engine evaluates rule sets. The zero value is not usable; construct
// with New, which installs the built-in rule vocabulary.
type Engine struct {
	rules  map[string]Func
	strict bool
}

// New returns an Engine with all built-in rules registered.
func New() *Engine {
	e := &Engine{rules: make(map[string]Func, len(builtins))}
	for name, fn := range builtins {
		e.rules[name] = fn
	}
	return e
}

// AddRule registers fn under name, overriding any existing rule with
// the same name.
func (e *Engine) AddRule(name string, fn Func) {
	e.rules[name] = fn
}

// Strict controls handling of rule names that resolve to no registered
// rule. By default they are skipped silently, matching data-driven rule
// sets that may name rules only some deployments register. With strict
// mode on, Validate fails with an error instead.
func (e *Engine) Strict(on bool) {
	e.strict = on
}

// Validate evaluates ruleSet against record. Each field's value is read
// from the record (absence yields nil, which is not an error by itself)
// and run through its rules in order; every message accumulates into
// the field's entry. The returned error is non-nil only in strict mode
// when a rule name is unregistered.
func (e *Engine) Validate(ruleSet RuleSet, record map[string]any) (Errors, error) {
	errs := Errors{}
	for _, f := range ruleSet {
		value := record[f.Name]
		for _, spec := range f.Rules {
			parts := strings.Split(spec, ":")
			name, params := parts[0], parts[1:]

			fn, ok := e.rules[name]
			if !ok {
				if e.strict {
					return nil, fmt.Errorf("validate: unknown rule %q on field %q", name, f.Name)
				}
				continue
			}
			if msg := fn(value, f.Name, params, record); msg != "" {
				errs[f.Name] = append(errs[f.Name], msg)
			}
		}
	}
	return errs, nil
}
