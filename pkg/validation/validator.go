// Package validation walks the untyped raw tree parsed from a codebook
// document and either accepts it or fails with a structured error pointing at
// the first violated invariant. Non-fatal findings are collected as
// advisories and returned alongside a successful result.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-codebook/pkg/document"
)

// Validate checks the raw codebook tree against every structural and
// cross-referential invariant, in a fixed order: top-level required fields,
// schema_version, per-variable rules in declaration order, duplicate names,
// then group references. The first violation aborts the pass; advisories from
// a successful pass are returned in walk order.
func Validate(raw map[string]any, opts ...Option) ([]Advisory, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	v := &validator{limit: cfg.softVariableLimit}
	if err := v.document(raw); err != nil {
		return nil, err
	}
	return v.advisories, nil
}

type validator struct {
	limit      int
	advisories []Advisory
}

func (v *validator) advise(path, format string, args ...any) {
	v.advisories = append(v.advisories, Advisory{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) document(raw map[string]any) *Error {
	if len(raw) == 0 {
		return fail("document", RuleRequired, "codebook document is empty")
	}

	if _, err := requireString(raw, "title", "title"); err != nil {
		return err
	}
	if err := v.schemaVersion(raw); err != nil {
		return err
	}
	if err := v.prompt(raw); err != nil {
		return err
	}
	for _, key := range []string{"version", "description", "author"} {
		if _, err := optionalString(raw, key, key); err != nil {
			return err
		}
	}

	groups, hasGroups, err := v.groups(raw)
	if err != nil {
		return err
	}

	rawVariables, err := requireList(raw, "variables", "variables")
	if err != nil {
		return err
	}

	if _, ok := raw["version"]; !ok {
		v.advise("version", "codebook declares no content version")
	}

	for i, entry := range rawVariables {
		path := fmt.Sprintf("variables[%d]", i)
		if err := v.variable(path, entry, false); err != nil {
			return err
		}
	}

	if err := v.duplicateNames(rawVariables); err != nil {
		return err
	}
	if hasGroups {
		if err := v.groupReferences(rawVariables, groups); err != nil {
			return err
		}
	}

	v.softCeiling(rawVariables)
	return nil
}

func (v *validator) schemaVersion(raw map[string]any) *Error {
	value, ok := raw["schema_version"]
	if !ok {
		return fail("schema_version", RuleRequired, "missing required field")
	}
	version, ok := intValue(value)
	if !ok {
		return failValue("schema_version", RuleType, value, "must be an integer")
	}
	if version != document.SchemaVersion {
		return failValue("schema_version", RuleSchemaVersion, version,
			"unsupported schema version, this release accepts %d", document.SchemaVersion)
	}
	return nil
}

func (v *validator) prompt(raw map[string]any) *Error {
	value, ok := raw["prompt"]
	if !ok {
		return fail("prompt.system", RuleRequired, "missing required field")
	}
	prompt, ok := asMap(value)
	if !ok {
		return failValue("prompt", RuleType, value, "must be a mapping")
	}
	if _, err := requireString(prompt, "system", "prompt.system"); err != nil {
		return err
	}
	if _, err := optionalString(prompt, "user", "prompt.user"); err != nil {
		return err
	}
	return nil
}

func (v *validator) groups(raw map[string]any) (map[string]any, bool, *Error) {
	value, ok := raw["groups"]
	if !ok || value == nil {
		return nil, false, nil
	}
	groups, ok := asMap(value)
	if !ok {
		return nil, false, failValue("groups", RuleType, value, "must be a mapping of group name to group metadata")
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := groups[name]
		if entry == nil {
			continue
		}
		path := "groups." + name
		group, ok := asMap(entry)
		if !ok {
			return nil, false, failValue(path, RuleType, entry, "must be a mapping")
		}
		for _, key := range []string{"label", "description", "model"} {
			if _, err := optionalString(group, key, path+"."+key); err != nil {
				return nil, false, err
			}
		}
	}
	return groups, true, nil
}

// variable validates one variable mapping. Record properties run through the
// same rules with nested=true, which additionally forbids the object kind and
// the group/model fields.
func (v *validator) variable(path string, entry any, nested bool) *Error {
	m, ok := asMap(entry)
	if !ok {
		return failValue(path, RuleType, entry, "variable must be a mapping")
	}

	name, err := requireString(m, "name", path+".name")
	if err != nil {
		return err
	}
	if !ValidName(name) {
		return failValue(path+".name", RuleIdentifier, name,
			"name must start with a letter and contain only letters, digits, or underscores")
	}

	kind, err := requireString(m, "type", path+".type")
	if err != nil {
		return err
	}
	if nested && kind == string(document.KindRecord) {
		return fail(path+".type", RuleProperties, "record properties may not be records themselves")
	}
	if !knownKind(kind) {
		return failValue(path+".type", RuleType, kind,
			"unknown variable type, expected categorical, numeric, text, boolean, or object")
	}

	if _, err := optionalString(m, "label", path+".label"); err != nil {
		return err
	}
	if _, err := requireString(m, "description", path+".description"); err != nil {
		return err
	}

	multiple, _, err := optionalBool(m, "multiple", path+".multiple")
	if err != nil {
		return err
	}
	if multiple && (kind == string(document.KindNumeric) || kind == string(document.KindBoolean)) {
		return fail(path+".multiple", RuleRepeated,
			"multiple is only valid for categorical, text, or object variables")
	}
	if _, _, err := optionalBool(m, "required", path+".required"); err != nil {
		return err
	}

	for _, key := range []string{"group", "model"} {
		if nested {
			if _, ok := m[key]; ok {
				return fail(path+"."+key, RuleProperties, "record properties may not set %q", key)
			}
			continue
		}
		if _, err := optionalString(m, key, path+"."+key); err != nil {
			return err
		}
	}

	switch document.Kind(kind) {
	case document.KindCategorical:
		return v.categorical(path, m)
	case document.KindNumeric:
		return v.numeric(path, m)
	case document.KindRecord:
		return v.record(path, m)
	default:
		return nil
	}
}

func (v *validator) categorical(path string, m map[string]any) *Error {
	entries, err := requireList(m, "categories", path+".categories")
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(entries))
	for j, entry := range entries {
		entryPath := fmt.Sprintf("%s.categories[%d]", path, j)
		value, definition, err := v.category(entryPath, entry)
		if err != nil {
			return err
		}
		if _, dup := seen[value]; dup {
			return failValue(entryPath+".value", RuleCategories, value, "duplicate category value")
		}
		seen[value] = struct{}{}
		if definition == "" {
			v.advise(entryPath, "category %q has no definition", value)
		}
	}
	return nil
}

// category accepts either a bare scalar (the value itself) or a mapping with
// a required value and optional label/definition.
func (v *validator) category(path string, entry any) (value, definition string, err *Error) {
	if m, ok := asMap(entry); ok {
		rawValue, ok := m["value"]
		if !ok {
			return "", "", fail(path+".value", RuleRequired, "missing required field")
		}
		value, ok = scalarString(rawValue)
		if !ok || strings.TrimSpace(value) == "" {
			return "", "", failValue(path+".value", RuleCategories, rawValue, "category value must be a non-empty scalar")
		}
		if _, err := optionalString(m, "label", path+".label"); err != nil {
			return "", "", err
		}
		definition, err = optionalString(m, "definition", path+".definition")
		if err != nil {
			return "", "", err
		}
		return value, definition, nil
	}

	value, ok := scalarString(entry)
	if !ok || strings.TrimSpace(value) == "" {
		return "", "", failValue(path, RuleCategories, entry, "category must be a scalar value or a mapping with a value field")
	}
	return value, "", nil
}

func (v *validator) numeric(path string, m map[string]any) *Error {
	min, err := optionalNumber(m, "min", path+".min")
	if err != nil {
		return err
	}
	max, err := optionalNumber(m, "max", path+".max")
	if err != nil {
		return err
	}
	if min != nil && max != nil && *min > *max {
		return failValue(path, RuleBounds, nil, "min %s exceeds max %s",
			document.FormatNumber(*min), document.FormatNumber(*max))
	}
	if _, _, err := optionalBool(m, "integer", path+".integer"); err != nil {
		return err
	}

	if rawLabels, ok := m["labels"]; ok && rawLabels != nil {
		labels, ok := asMap(rawLabels)
		if !ok {
			return failValue(path+".labels", RuleType, rawLabels, "must be a mapping of numeric value to label")
		}
		keys := make([]string, 0, len(labels))
		for key := range labels {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			labelPath := path + ".labels"
			value, ok := document.ParseNumber(key)
			if !ok {
				return failValue(labelPath, RuleValueLabels, key, "label key must be numeric")
			}
			if min != nil && value < *min {
				return failValue(labelPath, RuleValueLabels, key, "label key is below min %s", document.FormatNumber(*min))
			}
			if max != nil && value > *max {
				return failValue(labelPath, RuleValueLabels, key, "label key is above max %s", document.FormatNumber(*max))
			}
			if _, ok := scalarString(labels[key]); !ok {
				return failValue(labelPath, RuleValueLabels, labels[key], "label for %s must be a scalar", key)
			}
		}
	}

	if min == nil && max == nil {
		v.advise(path, "numeric variable declares neither min nor max")
	}
	return nil
}

func (v *validator) record(path string, m map[string]any) *Error {
	entries, err := requireList(m, "properties", path+".properties")
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(entries))
	for j, entry := range entries {
		propPath := fmt.Sprintf("%s.properties[%d]", path, j)
		if err := v.variable(propPath, entry, true); err != nil {
			return err
		}
		// Validated above, so the assertions cannot fail.
		prop, _ := asMap(entry)
		name, _ := prop["name"].(string)
		if _, dup := seen[name]; dup {
			return failValue(propPath+".name", RuleDuplicateName, name, "duplicate property name")
		}
		seen[name] = struct{}{}
	}
	return nil
}

func (v *validator) duplicateNames(rawVariables []any) *Error {
	seen := make(map[string]struct{}, len(rawVariables))
	for i, entry := range rawVariables {
		m, _ := asMap(entry)
		name, _ := m["name"].(string)
		if _, dup := seen[name]; dup {
			return failValue(fmt.Sprintf("variables[%d].name", i), RuleDuplicateName, name, "duplicate variable name")
		}
		seen[name] = struct{}{}
	}
	return nil
}

func (v *validator) groupReferences(rawVariables []any, groups map[string]any) *Error {
	defined := make([]string, 0, len(groups))
	for name := range groups {
		defined = append(defined, name)
	}
	sort.Strings(defined)

	for i, entry := range rawVariables {
		m, _ := asMap(entry)
		name, _ := m["group"].(string)
		if name == "" {
			continue
		}
		if _, ok := groups[name]; !ok {
			return failValue(fmt.Sprintf("variables[%d].group", i), RuleGroupRef, name,
				"undefined group %q (defined groups: %s)", name, strings.Join(defined, ", "))
		}
	}
	return nil
}

func (v *validator) softCeiling(rawVariables []any) {
	total := len(rawVariables)
	if total <= v.limit {
		return
	}
	ungrouped := 0
	for _, entry := range rawVariables {
		m, _ := asMap(entry)
		if name, _ := m["group"].(string); name == "" {
			ungrouped++
		}
	}
	if ungrouped == 0 {
		return
	}
	v.advise("variables",
		"%d variables declared and %d of them are ungrouped; the extraction backend caps fields per call, consider assigning groups",
		total, ungrouped)
}

func knownKind(kind string) bool {
	for _, known := range document.Kinds() {
		if kind == string(known) {
			return true
		}
	}
	return false
}
