package build_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-codebook/internal/build"
	"github.com/goliatone/go-codebook/pkg/document"
)

func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	var tree map[string]any
	if err := yaml.Unmarshal([]byte(doc), &tree); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return tree
}

func float(v float64) *float64 { return &v }

func TestDocumentAppliesDefaults(t *testing.T) {
	doc := build.Document(decode(t, `
title: Survey responses
schema_version: 1
prompt:
  system: Extract codes.
variables:
  - name: sentiment
    type: categorical
    description: Overall tone.
    categories: [positive, negative]
  - name: score
    type: numeric
    description: Reported score.
    min: 1
    max: 5
`))

	if doc.Prompt.User != document.DefaultUserPrompt {
		t.Errorf("prompt.user = %q, want the default user prompt", doc.Prompt.User)
	}

	want := []document.Variable{
		document.Categorical{
			Common: document.Common{Name: "sentiment", Label: "sentiment", Description: "Overall tone."},
			Categories: []document.Category{
				{Value: "positive", Label: "positive"},
				{Value: "negative", Label: "negative"},
			},
		},
		document.Numeric{
			Common:  document.Common{Name: "score", Label: "score", Description: "Reported score."},
			Min:     float(1),
			Max:     float(5),
			Integer: true,
		},
	}
	if diff := cmp.Diff(want, doc.Variables); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentBuildsGroups(t *testing.T) {
	doc := build.Document(decode(t, `
title: T
schema_version: 1
prompt: {system: Extract.}
groups:
  clinical:
    description: Medical findings.
    model: gpt-4o
  admin: {label: Administrative}
variables:
  - {name: a, type: text, description: d, group: clinical}
`))

	want := map[string]document.Group{
		"clinical": {Label: "clinical", Description: "Medical findings.", Model: "gpt-4o"},
		"admin":    {Label: "Administrative"},
	}
	if diff := cmp.Diff(want, doc.Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if !doc.HasGroups() {
		t.Fatalf("HasGroups() = false, want true")
	}
}

func TestDocumentBuildsRecordProperties(t *testing.T) {
	doc := build.Document(decode(t, `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: medication
    type: object
    description: One prescribed medication.
    multiple: true
    required: true
    properties:
      - {name: drug, type: text, description: Drug name., required: true}
      - name: route
        type: categorical
        description: Administration route.
        categories: [oral, iv]
`))

	record, ok := doc.Variables[0].(document.Record)
	if !ok {
		t.Fatalf("variable is %T, want document.Record", doc.Variables[0])
	}
	if !record.Repeated || !record.Required {
		t.Errorf("record flags = repeated %v required %v, want both true", record.Repeated, record.Required)
	}

	want := []document.ScalarVariable{
		document.Text{Common: document.Common{Name: "drug", Label: "drug", Description: "Drug name.", Required: true}},
		document.Categorical{
			Common: document.Common{Name: "route", Label: "route", Description: "Administration route."},
			Categories: []document.Category{
				{Value: "oral", Label: "oral"},
				{Value: "iv", Label: "iv"},
			},
		},
	}
	if diff := cmp.Diff(want, record.Properties); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentCanonicalizesValueLabelKeys(t *testing.T) {
	doc := build.Document(decode(t, `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - name: agreement
    type: numeric
    description: d
    min: 1
    max: 5
    labels:
      1: Strongly disagree
      5.0: Strongly agree
`))

	numeric := doc.Variables[0].(document.Numeric)
	want := map[string]string{"1": "Strongly disagree", "5": "Strongly agree"}
	if diff := cmp.Diff(want, numeric.ValueLabels); diff != "" {
		t.Fatalf("value labels mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentDoesNotMutateInput(t *testing.T) {
	raw := decode(t, `
title: T
schema_version: 1
prompt: {system: Extract.}
variables:
  - {name: a, type: text, description: d}
`)

	build.Document(raw)

	prompt := raw["prompt"].(map[string]any)
	if _, ok := prompt["user"]; ok {
		t.Errorf("normalization leaked prompt.user into the input tree")
	}
	variable := raw["variables"].([]any)[0].(map[string]any)
	if _, ok := variable["label"]; ok {
		t.Errorf("normalization leaked label into the input tree")
	}
}
