package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidatePayload checks a raw structured-output payload against the compiled
// extraction schema before any coercion happens, so schema violations surface
// with the validator's precise pointers instead of as coercion failures.
func ValidatePayload(schema *openapi3.Schema, payload []byte) error {
	if schema == nil {
		return fmt.Errorf("extraction: schema is required")
	}
	if len(payload) == 0 {
		return fmt.Errorf("extraction: empty payload")
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("extraction: serialize schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("extraction: load schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("extraction: compile schema: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("extraction: decode payload: %w", err)
	}
	if err := compiled.Validate(decoded); err != nil {
		return fmt.Errorf("extraction: payload does not match schema: %w", err)
	}
	return nil
}
