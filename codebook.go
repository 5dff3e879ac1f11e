package codebook

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-codebook/pkg/compiler"
	"github.com/goliatone/go-codebook/pkg/document"
	"github.com/goliatone/go-codebook/pkg/parser"
	"github.com/goliatone/go-codebook/pkg/validation"
)

// Document aliases the validated codebook model exported via the root package
// for convenience.
type Document = document.Document

// Result pairs a parsed document with the advisories collected while
// validating it.
type Result = parser.Result

// Advisory is a non-fatal validation finding.
type Advisory = validation.Advisory

// Parse validates raw YAML and returns the typed document.
func Parse(data []byte, options ...parser.Option) (Result, error) {
	return parser.Parse(data, options...)
}

// ParseFile reads, validates, and builds a codebook from disk. It is the
// simplest entry point for callers that just want a typed document.
func ParseFile(path string, options ...parser.Option) (Result, error) {
	return parser.ParseFile(path, options...)
}

// Compile turns a validated document into a structured-output schema,
// bypassing the parse stage for callers that already hold a document.
func Compile(doc *document.Document, options ...compiler.Option) (*openapi3.Schema, error) {
	return compiler.Compile(doc, options...)
}

// CompileFile parses a codebook from disk and compiles the whole document in
// one step.
func CompileFile(path string, options ...compiler.Option) (*openapi3.Schema, error) {
	result, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(result.Document, options...)
}

// WithVariables restricts compilation to the named variables.
func WithVariables(names ...string) compiler.Option {
	return compiler.WithVariables(names...)
}

// WithGroup restricts compilation to the variables of a single group.
func WithGroup(name string) compiler.Option {
	return compiler.WithGroup(name)
}
