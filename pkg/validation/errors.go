package validation

import "fmt"

// Rule identifies the invariant a fatal validation error violated. Callers
// branch on rules rather than matching message text.
type Rule string

const (
	// RuleRequired covers missing or empty required fields.
	RuleRequired Rule = "required"
	// RuleType covers wrong value types and unknown variable type tags.
	RuleType Rule = "type"
	// RuleSchemaVersion covers unsupported schema_version values.
	RuleSchemaVersion Rule = "schema_version"
	// RuleIdentifier covers variable names that are not legal identifiers.
	RuleIdentifier Rule = "identifier"
	// RuleRepeated covers the repeated flag on kinds without array semantics.
	RuleRepeated Rule = "repeated"
	// RuleCategories covers malformed or duplicate category declarations.
	RuleCategories Rule = "categories"
	// RuleBounds covers inverted numeric bounds.
	RuleBounds Rule = "bounds"
	// RuleValueLabels covers non-numeric or out-of-bounds value-label keys.
	RuleValueLabels Rule = "value_labels"
	// RuleProperties covers record property violations: nested records and
	// group/model fields on properties.
	RuleProperties Rule = "properties"
	// RuleDuplicateName covers name collisions within a scope.
	RuleDuplicateName Rule = "duplicate_name"
	// RuleGroupRef covers group references that do not resolve against a
	// declared group table.
	RuleGroupRef Rule = "group_ref"
)

// Error is a fatal validation failure. It pins the offending field path, the
// violated rule, and the illegal value when it is safe to echo back.
type Error struct {
	Path    string
	Rule    Rule
	Message string
	Value   any
}

func (e *Error) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func fail(path string, rule Rule, format string, args ...any) *Error {
	return &Error{Path: path, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func failValue(path string, rule Rule, value any, format string, args ...any) *Error {
	err := fail(path, rule, format, args...)
	err.Value = value
	return err
}

// Advisory is a non-fatal finding collected during a successful validation
// pass. Advisories never halt processing.
type Advisory struct {
	Path    string
	Message string
}

func (a Advisory) String() string {
	return fmt.Sprintf("%s: %s", a.Path, a.Message)
}
