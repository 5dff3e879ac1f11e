package validation

import (
	"strings"

	"github.com/goliatone/go-codebook/pkg/document"
)

// Helpers for reading the untyped tree yaml.v3 produces: mappings decode to
// map[string]any, sequences to []any, and numbers to int or float64.

// asMap accepts both string-keyed mappings and the map[any]any form yaml.v3
// falls back to when a key is not a string (numeric value-label keys).
func asMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for key, entry := range m {
			s, ok := scalarString(key)
			if !ok {
				return nil, false
			}
			out[s] = entry
		}
		return out, true
	default:
		return nil, false
	}
}

func asList(value any) ([]any, bool) {
	list, ok := value.([]any)
	return list, ok
}

func intValue(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
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

// scalarString renders a YAML scalar as a string. Numbers use the canonical
// number form so category values written as 1 or "1" compare equal.
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

func requireString(m map[string]any, key, path string) (string, *Error) {
	value, ok := m[key]
	if !ok {
		return "", fail(path, RuleRequired, "missing required field")
	}
	s, ok := value.(string)
	if !ok {
		return "", failValue(path, RuleType, value, "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", fail(path, RuleRequired, "must not be empty")
	}
	return s, nil
}

func optionalString(m map[string]any, key, path string) (string, *Error) {
	value, ok := m[key]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", failValue(path, RuleType, value, "must be a string")
	}
	return s, nil
}

func optionalBool(m map[string]any, key, path string) (value, present bool, err *Error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false, failValue(path, RuleType, raw, "must be a boolean")
	}
	return b, true, nil
}

func optionalNumber(m map[string]any, key, path string) (*float64, *Error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	n, ok := numberValue(raw)
	if !ok {
		return nil, failValue(path, RuleType, raw, "must be a number")
	}
	return &n, nil
}

func requireList(m map[string]any, key, path string) ([]any, *Error) {
	value, ok := m[key]
	if !ok {
		return nil, fail(path, RuleRequired, "missing required field")
	}
	list, ok := asList(value)
	if !ok {
		return nil, failValue(path, RuleType, value, "must be a list")
	}
	if len(list) == 0 {
		return nil, fail(path, RuleRequired, "must declare at least one entry")
	}
	return list, nil
}
