// Package extraction is the boundary to the structured-output dispatch
// collaborator: it wraps a compiled schema in the response-format envelope
// chat backends accept, validates raw payloads against that schema, and
// type-coerces accepted payloads back onto the variable model. It never
// performs model calls itself.
package extraction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultSchemaName is used when the caller does not name the schema.
const DefaultSchemaName = "codebook_extraction"

// ResponseFormat is the request envelope for structured outputs:
// {"type":"json_schema","json_schema":{"name":...,"strict":true,"schema":{...}}}.
type ResponseFormat struct {
	Type       string          `json:"type"`
	JSONSchema json.RawMessage `json:"json_schema,omitempty"`
}

type jsonSchemaEnvelope struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

// Format wraps a compiled extraction schema in the response-format envelope.
func Format(name string, schema *openapi3.Schema) (*ResponseFormat, error) {
	if schema == nil {
		return nil, errors.New("extraction: schema is required")
	}
	if name == "" {
		name = DefaultSchemaName
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("extraction: serialize schema: %w", err)
	}
	payload, err := json.Marshal(jsonSchemaEnvelope{Name: name, Strict: true, Schema: raw})
	if err != nil {
		return nil, fmt.Errorf("extraction: serialize response format: %w", err)
	}

	return &ResponseFormat{Type: "json_schema", JSONSchema: payload}, nil
}
