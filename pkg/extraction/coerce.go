package extraction

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/goliatone/go-codebook/pkg/document"
)

// Values type-coerces a raw extraction payload onto the document's variable
// tree: categorical and text values become strings, numerics become int64 or
// float64 per the integer flag, booleans become bool, records become nested
// maps, and repeated variables become slices. Variables absent from the
// payload are skipped unless declared required.
func Values(doc *document.Document, payload []byte) (map[string]any, error) {
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("extraction: decode payload: %w", err)
	}

	out := make(map[string]any, len(decoded))
	for _, variable := range doc.Variables {
		meta := variable.Meta()
		raw, ok := decoded[meta.Name]
		if !ok || raw == nil {
			if meta.Required {
				return nil, fmt.Errorf("extraction: %s: required value missing from payload", meta.Name)
			}
			continue
		}
		value, err := coerceVariable(variable, raw, meta.Name)
		if err != nil {
			return nil, err
		}
		out[meta.Name] = value
	}
	return out, nil
}

func coerceVariable(variable document.Variable, raw any, path string) (any, error) {
	if variable.Meta().Repeated {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("extraction: %s: expected an array, got %T", path, raw)
		}
		values := make([]any, 0, len(list))
		for i, entry := range list {
			value, err := coerceSingle(variable, entry, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil
	}
	return coerceSingle(variable, raw, path)
}

func coerceSingle(variable document.Variable, raw any, path string) (any, error) {
	switch v := variable.(type) {
	case document.Categorical:
		value, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("extraction: %s: expected a string, got %T", path, raw)
		}
		for _, category := range v.Categories {
			if category.Value == value {
				return value, nil
			}
		}
		return nil, fmt.Errorf("extraction: %s: %q is not a declared category value", path, value)
	case document.Numeric:
		number, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("extraction: %s: expected a number, got %T", path, raw)
		}
		if !v.Integer {
			return number, nil
		}
		if number != math.Trunc(number) {
			return nil, fmt.Errorf("extraction: %s: expected an integer, got %s", path, document.FormatNumber(number))
		}
		return int64(number), nil
	case document.Text:
		value, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("extraction: %s: expected a string, got %T", path, raw)
		}
		return value, nil
	case document.Boolean:
		value, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("extraction: %s: expected a boolean, got %T", path, raw)
		}
		return value, nil
	case document.Record:
		fields, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("extraction: %s: expected an object, got %T", path, raw)
		}
		out := make(map[string]any, len(fields))
		for _, property := range v.Properties {
			meta := property.Meta()
			rawField, ok := fields[meta.Name]
			if !ok || rawField == nil {
				if meta.Required {
					return nil, fmt.Errorf("extraction: %s.%s: required value missing from payload", path, meta.Name)
				}
				continue
			}
			value, err := coerceVariable(property, rawField, path+"."+meta.Name)
			if err != nil {
				return nil, err
			}
			out[meta.Name] = value
		}
		return out, nil
	default:
		panic(fmt.Sprintf("extraction: unhandled variable kind %T", variable))
	}
}
