package validation_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-codebook/pkg/validation"
)

func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	var tree map[string]any
	if err := yaml.Unmarshal([]byte(doc), &tree); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return tree
}

const validDocument = `
title: Clinical notes
schema_version: 1
version: "1.0"
prompt:
  system: Extract the requested codes from the note.
variables:
  - name: sentiment
    type: categorical
    description: Overall tone of the note.
    categories:
      - value: positive
        definition: The note reads optimistic.
      - value: negative
        definition: The note reads pessimistic.
  - name: pain_level
    type: numeric
    description: Reported pain.
    min: 0
    max: 10
`

func TestValidateAcceptsCompleteDocument(t *testing.T) {
	advisories, err := validation.Validate(decode(t, validDocument))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(advisories) != 0 {
		t.Fatalf("expected no advisories, got %v", advisories)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name     string
		document string
		wantPath string
		wantRule validation.Rule
	}{
		{
			name: "missing title",
			document: `
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: text, description: d}]
`,
			wantPath: "title",
			wantRule: validation.RuleRequired,
		},
		{
			name: "missing schema_version",
			document: `
title: T
prompt: {system: Extract.}
variables: [{name: a, type: text, description: d}]
`,
			wantPath: "schema_version",
			wantRule: validation.RuleRequired,
		},
		{
			name: "unsupported schema_version",
			document: `
title: T
schema_version: 2
prompt: {system: Extract.}
variables: [{name: a, type: text, description: d}]
`,
			wantPath: "schema_version",
			wantRule: validation.RuleSchemaVersion,
		},
		{
			name: "non-integer schema_version",
			document: `
title: T
schema_version: soon
prompt: {system: Extract.}
variables: [{name: a, type: text, description: d}]
`,
			wantPath: "schema_version",
			wantRule: validation.RuleType,
		},
		{
			name: "missing prompt",
			document: `
title: T
schema_version: 1
variables: [{name: a, type: text, description: d}]
`,
			wantPath: "prompt.system",
			wantRule: validation.RuleRequired,
		},
		{
			name: "prompt without system",
			document: `
title: T
schema_version: 1
prompt: {user: "{text}"}
variables: [{name: a, type: text, description: d}]
`,
			wantPath: "prompt.system",
			wantRule: validation.RuleRequired,
		},
		{
			name: "missing variables",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
`,
			wantPath: "variables",
			wantRule: validation.RuleRequired,
		},
		{
			name: "empty variables",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: []
`,
			wantPath: "variables",
			wantRule: validation.RuleRequired,
		},
		{
			name: "illegal variable name",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: 2fast, type: text, description: d}]
`,
			wantPath: "variables[0].name",
			wantRule: validation.RuleIdentifier,
		},
		{
			name: "unknown variable type",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: date, description: d}]
`,
			wantPath: "variables[0].type",
			wantRule: validation.RuleType,
		},
		{
			name: "variable without description",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: text}]
`,
			wantPath: "variables[0].description",
			wantRule: validation.RuleRequired,
		},
		{
			name: "multiple on numeric",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: numeric, description: d, multiple: true}]
`,
			wantPath: "variables[0].multiple",
			wantRule: validation.RuleRepeated,
		},
		{
			name: "multiple on boolean",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: boolean, description: d, multiple: true}]
`,
			wantPath: "variables[0].multiple",
			wantRule: validation.RuleRepeated,
		},
		{
			name: "categorical without categories",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: categorical, description: d}]
`,
			wantPath: "variables[0].categories",
			wantRule: validation.RuleRequired,
		},
		{
			name: "duplicate category value",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: a
    type: categorical
    description: d
    categories: [yes_, yes_]
`,
			wantPath: "variables[0].categories[1].value",
			wantRule: validation.RuleCategories,
		},
		{
			name: "category mapping without value",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: a
    type: categorical
    description: d
    categories: [{label: Something}]
`,
			wantPath: "variables[0].categories[0].value",
			wantRule: validation.RuleRequired,
		},
		{
			name: "inverted numeric bounds",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: numeric, description: d, min: 10, max: 1}]
`,
			wantPath: "variables[0]",
			wantRule: validation.RuleBounds,
		},
		{
			name: "non-numeric label key",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: a
    type: numeric
    description: d
    min: 1
    max: 5
    labels: {low: Low}
`,
			wantPath: "variables[0].labels",
			wantRule: validation.RuleValueLabels,
		},
		{
			name: "label key outside bounds",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: a
    type: numeric
    description: d
    min: 1
    max: 5
    labels: {9: Impossible}
`,
			wantPath: "variables[0].labels",
			wantRule: validation.RuleValueLabels,
		},
		{
			name: "record without properties",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables: [{name: a, type: object, description: d}]
`,
			wantPath: "variables[0].properties",
			wantRule: validation.RuleRequired,
		},
		{
			name: "record inside record",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: a
    type: object
    description: d
    properties:
      - name: inner
        type: object
        description: nested
        properties: [{name: leaf, type: text, description: leaf}]
`,
			wantPath: "variables[0].properties[0].type",
			wantRule: validation.RuleProperties,
		},
		{
			name: "record property with group",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: a
    type: object
    description: d
    properties:
      - name: inner
        type: text
        description: nested
        group: somewhere
`,
			wantPath: "variables[0].properties[0].group",
			wantRule: validation.RuleProperties,
		},
		{
			name: "duplicate property name",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: a
    type: object
    description: d
    properties:
      - {name: inner, type: text, description: one}
      - {name: inner, type: text, description: two}
`,
			wantPath: "variables[0].properties[1].name",
			wantRule: validation.RuleDuplicateName,
		},
		{
			name: "duplicate variable name",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - {name: a, type: text, description: one}
  - {name: a, type: text, description: two}
`,
			wantPath: "variables[1].name",
			wantRule: validation.RuleDuplicateName,
		},
		{
			name: "undefined group reference",
			document: `
title: T
schema_version: 1
prompt: {system: Extract.}
groups:
  clinical: {label: Clinical}
variables:
  - {name: a, type: text, description: d, group: administrative}
`,
			wantPath: "variables[0].group",
			wantRule: validation.RuleGroupRef,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := validation.Validate(decode(t, tc.document))
			if err == nil {
				t.Fatalf("expected validation failure")
			}
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *validation.Error, got %T: %v", err, err)
			}
			if verr.Path != tc.wantPath {
				t.Errorf("path = %q, want %q", verr.Path, tc.wantPath)
			}
			if verr.Rule != tc.wantRule {
				t.Errorf("rule = %q, want %q", verr.Rule, tc.wantRule)
			}
		})
	}
}

func TestValidateUndefinedGroupListsDefinedGroups(t *testing.T) {
	_, err := validation.Validate(decode(t, `
title: T
schema_version: 1
prompt: {system: Extract.}
groups:
  symptoms: {}
  treatments: {}
variables:
  - {name: a, type: text, description: d, group: outcomes}
`))
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	want := `undefined group "outcomes" (defined groups: symptoms, treatments)`
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not contain %q", err.Error(), want)
	}
}

func TestValidateFreeFormGroupsWithoutTable(t *testing.T) {
	// Without a groups table any group name on a variable is legal.
	_, err := validation.Validate(decode(t, `
title: T
schema_version: 1
version: "1"
prompt: {system: Extract.}
variables:
  - {name: a, type: text, description: d, group: anything_goes}
`))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidateAdvisories(t *testing.T) {
	advisories, err := validation.Validate(decode(t, `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: sentiment
    type: categorical
    description: d
    categories: [positive, negative]
  - name: score
    type: numeric
    description: d
`))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	want := []string{
		"version: codebook declares no content version",
		`variables[0].categories[0]: category "positive" has no definition`,
		`variables[0].categories[1]: category "negative" has no definition`,
		"variables[1]: numeric variable declares neither min nor max",
	}
	if len(advisories) != len(want) {
		t.Fatalf("got %d advisories %v, want %d", len(advisories), advisories, len(want))
	}
	for i, advisory := range advisories {
		if advisory.String() != want[i] {
			t.Errorf("advisory[%d] = %q, want %q", i, advisory.String(), want[i])
		}
	}
}

func TestValidateSoftVariableCeiling(t *testing.T) {
	var b strings.Builder
	b.WriteString("title: T\nschema_version: 1\nversion: \"1\"\nprompt: {system: Extract.}\nvariables:\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "  - {name: v%d, type: text, description: d}\n", i)
	}

	advisories, err := validation.Validate(decode(t, b.String()))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(advisories) != 1 {
		t.Fatalf("expected one advisory, got %v", advisories)
	}
	want := "25 variables declared and 25 of them are ungrouped"
	if !strings.Contains(advisories[0].Message, want) {
		t.Fatalf("advisory %q does not contain %q", advisories[0].Message, want)
	}

	// Raising the limit silences the advisory.
	advisories, err = validation.Validate(decode(t, b.String()), validation.WithSoftVariableLimit(50))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(advisories) != 0 {
		t.Fatalf("expected no advisories with raised limit, got %v", advisories)
	}
}

func TestValidateNumericLabelKeysDecodeAsNonStringKeys(t *testing.T) {
	// yaml.v3 decodes mappings with numeric keys to map[any]any; the walk has
	// to accept that form.
	advisories, err := validation.Validate(decode(t, `
title: T
schema_version: 1
version: "1"
prompt: {system: Extract.}
variables:
  - name: agreement
    type: numeric
    description: Agreement on a five point scale.
    min: 1
    max: 5
    labels:
      1: Strongly disagree
      5: Strongly agree
`))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(advisories) != 0 {
		t.Fatalf("expected no advisories, got %v", advisories)
	}
}

func TestValidNameTable(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"sentiment", true},
		{"pain_level_2", true},
		{"A", true},
		{"", false},
		{"2fast", false},
		{"_hidden", false},
		{"with-dash", false},
		{"with space", false},
	}
	for _, tc := range cases {
		if got := validation.ValidName(tc.name); got != tc.want {
			t.Errorf("ValidName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
