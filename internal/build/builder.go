// Package build constructs the typed variable model from a raw tree that has
// already passed validation. It assumes validity throughout: construction is
// pure, repeats no checks, and has no side effects on the input tree.
package build

import (
	"github.com/goliatone/go-codebook/pkg/document"
)

// Document builds the immutable typed codebook from a validated raw tree,
// with all defaults applied by the normalize step.
func Document(raw map[string]any) *document.Document {
	m := normalize(raw)

	prompt := mapValue(m["prompt"])
	doc := &document.Document{
		Title:         stringValue(m["title"]),
		SchemaVersion: intOf(m["schema_version"]),
		Version:       stringValue(m["version"]),
		Description:   stringValue(m["description"]),
		Author:        stringValue(m["author"]),
		Prompt: document.Prompt{
			System: stringValue(prompt["system"]),
			User:   stringValue(prompt["user"]),
		},
	}

	if rawGroups, ok := m["groups"]; ok && rawGroups != nil {
		groups := mapValue(rawGroups)
		doc.Groups = make(map[string]document.Group, len(groups))
		for name, entry := range groups {
			group := document.Group{}
			if gm, ok := entry.(map[string]any); ok {
				group.Label = stringValue(gm["label"])
				group.Description = stringValue(gm["description"])
				group.Model = stringValue(gm["model"])
			}
			if group.Label == "" {
				group.Label = name
			}
			doc.Groups[name] = group
		}
	}

	variables := listValue(m["variables"])
	doc.Variables = make([]document.Variable, 0, len(variables))
	for _, entry := range variables {
		doc.Variables = append(doc.Variables, buildVariable(mapValue(entry), false))
	}
	return doc
}

func buildVariable(m map[string]any, nested bool) document.Variable {
	common := document.Common{
		Name:        stringValue(m["name"]),
		Label:       stringValue(m["label"]),
		Description: stringValue(m["description"]),
		Repeated:    boolValue(m["multiple"]),
		Required:    boolValue(m["required"]),
	}
	if !nested {
		common.Group = stringValue(m["group"])
		common.Model = stringValue(m["model"])
	}

	switch document.Kind(stringValue(m["type"])) {
	case document.KindCategorical:
		return document.Categorical{Common: common, Categories: buildCategories(listValue(m["categories"]))}
	case document.KindNumeric:
		variable := document.Numeric{Common: common, Integer: boolValue(m["integer"])}
		if value, ok := m["min"].(float64); ok {
			variable.Min = &value
		}
		if value, ok := m["max"].(float64); ok {
			variable.Max = &value
		}
		if rawLabels, ok := m["labels"]; ok && rawLabels != nil {
			labels := mapValue(rawLabels)
			variable.ValueLabels = make(map[string]string, len(labels))
			for key, label := range labels {
				variable.ValueLabels[key] = stringValue(label)
			}
		}
		return variable
	case document.KindText:
		return document.Text{Common: common}
	case document.KindBoolean:
		return document.Boolean{Common: common}
	case document.KindRecord:
		properties := listValue(m["properties"])
		record := document.Record{Common: common, Properties: make([]document.ScalarVariable, 0, len(properties))}
		for _, entry := range properties {
			property := buildVariable(mapValue(entry), true)
			record.Properties = append(record.Properties, property.(document.ScalarVariable))
		}
		return record
	default:
		// Unreachable on a validated tree.
		panic("build: unknown variable kind " + stringValue(m["type"]))
	}
}

func buildCategories(entries []any) []document.Category {
	categories := make([]document.Category, 0, len(entries))
	for _, entry := range entries {
		m := mapValue(entry)
		categories = append(categories, document.Category{
			Value:      stringValue(m["value"]),
			Label:      stringValue(m["label"]),
			Definition: stringValue(m["definition"]),
		})
	}
	return categories
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}

func boolValue(value any) bool {
	b, _ := value.(bool)
	return b
}

func intOf(value any) int {
	switch n := value.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
