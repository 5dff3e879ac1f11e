package build

import (
	"strings"

	"github.com/goliatone/go-codebook/pkg/document"
)

// normalize returns a deep copy of the raw tree with every defaultable field
// materialized: prompt.user, variable label/multiple/required, the numeric
// integer flag, canonical value-label keys, and category entries expanded to
// full mappings with label defaulted to value. Construction afterwards reads
// the tree without any fallback logic. The input is never mutated.
func normalize(raw map[string]any) map[string]any {
	out := cloneMap(raw)

	prompt := cloneMap(mapValue(out["prompt"]))
	if user, ok := prompt["user"].(string); !ok || strings.TrimSpace(user) == "" {
		prompt["user"] = document.DefaultUserPrompt
	}
	out["prompt"] = prompt

	variables := listValue(out["variables"])
	normalized := make([]any, len(variables))
	for i, entry := range variables {
		normalized[i] = normalizeVariable(mapValue(entry))
	}
	out["variables"] = normalized
	return out
}

// normalizeVariable never touches group or model: properties do not carry
// them and top-level variables have no default for either.
func normalizeVariable(m map[string]any) map[string]any {
	out := cloneMap(m)
	name, _ := out["name"].(string)
	if label, ok := out["label"].(string); !ok || strings.TrimSpace(label) == "" {
		out["label"] = name
	}
	if _, ok := out["multiple"].(bool); !ok {
		out["multiple"] = false
	}
	if _, ok := out["required"].(bool); !ok {
		out["required"] = false
	}

	kind, _ := out["type"].(string)
	switch document.Kind(kind) {
	case document.KindCategorical:
		out["categories"] = normalizeCategories(listValue(out["categories"]))
	case document.KindNumeric:
		normalizeNumeric(out)
	case document.KindRecord:
		properties := listValue(out["properties"])
		normalized := make([]any, len(properties))
		for i, entry := range properties {
			normalized[i] = normalizeVariable(mapValue(entry))
		}
		out["properties"] = normalized
	}
	return out
}

func normalizeCategories(entries []any) []any {
	out := make([]any, len(entries))
	for i, entry := range entries {
		category := make(map[string]any, 3)
		if m, ok := entry.(map[string]any); ok {
			value, _ := scalarString(m["value"])
			category["value"] = value
			if label, ok := m["label"].(string); ok && strings.TrimSpace(label) != "" {
				category["label"] = label
			} else {
				category["label"] = value
			}
			if definition, ok := m["definition"].(string); ok {
				category["definition"] = definition
			} else {
				category["definition"] = ""
			}
		} else {
			value, _ := scalarString(entry)
			category["value"] = value
			category["label"] = value
			category["definition"] = ""
		}
		out[i] = category
	}
	return out
}

func normalizeNumeric(out map[string]any) {
	if _, ok := out["integer"].(bool); !ok {
		out["integer"] = true
	}
	if n, ok := numberValue(out["min"]); ok {
		out["min"] = n
	} else {
		delete(out, "min")
	}
	if n, ok := numberValue(out["max"]); ok {
		out["max"] = n
	} else {
		delete(out, "max")
	}
	if rawLabels, ok := out["labels"]; ok && rawLabels != nil {
		labels := mapValue(rawLabels)
		canonical := make(map[string]any, len(labels))
		for key, label := range labels {
			value, ok := document.ParseNumber(key)
			if !ok {
				continue
			}
			text, _ := scalarString(label)
			canonical[document.FormatNumber(value)] = text
		}
		out["labels"] = canonical
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}

// mapValue accepts both string-keyed mappings and the map[any]any form
// yaml.v3 falls back to for non-string keys.
func mapValue(value any) map[string]any {
	switch m := value.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for key, entry := range m {
			if s, ok := scalarString(key); ok {
				out[s] = entry
			}
		}
		return out
	default:
		return map[string]any{}
	}
}

func listValue(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return nil
}

func numberValue(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func scalarString(value any) (string, bool) {
	switch s := value.(type) {
	case string:
		return s, true
	case bool:
		if s {
			return "true", true
		}
		return "false", true
	default:
		if n, ok := numberValue(value); ok {
			return document.FormatNumber(n), true
		}
		return "", false
	}
}
