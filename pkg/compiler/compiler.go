// Package compiler translates the typed variable model into the external
// extraction schema: one node per variable, recursively for records and
// repeated wrappers, returned as a single composite object node. Constraints
// the target format cannot encode natively (category metadata, numeric
// bounds) are folded into node descriptions.
package compiler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-codebook/pkg/document"
)

var (
	// ErrSelectorConflict reports a variable name list combined with a group
	// selector: the two are mutually exclusive.
	ErrSelectorConflict = errors.New("compiler: variable and group selectors are mutually exclusive")
	// ErrUnknownVariable reports a selected variable name that does not exist.
	ErrUnknownVariable = errors.New("compiler: unknown variable")
	// ErrUnknownGroup reports a group selector that does not resolve.
	ErrUnknownGroup = errors.New("compiler: unknown group")
)

// Option narrows the variable subset a compilation covers. With no options
// every top-level variable is compiled.
type Option func(*options)

type options struct {
	names    []string
	group    string
	hasGroup bool
}

// WithVariables selects variables by name. Mutually exclusive with WithGroup.
func WithVariables(names ...string) Option {
	return func(opts *options) {
		opts.names = append(opts.names, names...)
	}
}

// WithGroup selects the variables referencing a group. Mutually exclusive
// with WithVariables.
func WithGroup(name string) Option {
	return func(opts *options) {
		opts.group = name
		opts.hasGroup = true
	}
}

// Compile produces the composite extraction schema for the selected subset of
// the document's variables. Properties are keyed by variable name (the JSON
// encoding orders them by name) and the required list names the selected
// variables declared required. Compilation only reads the document, so
// concurrent calls with different selectors need no coordination.
func Compile(doc *document.Document, opts ...Option) (*openapi3.Schema, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	selected, err := selectVariables(doc, cfg)
	if err != nil {
		return nil, err
	}

	properties := make(openapi3.Schemas, len(selected))
	var required []string
	for _, variable := range selected {
		meta := variable.Meta()
		properties[meta.Name] = openapi3.NewSchemaRef("", compileVariable(variable))
		if meta.Required {
			required = append(required, meta.Name)
		}
	}
	sort.Strings(required)

	return &openapi3.Schema{
		Type:                 &openapi3.Types{openapi3.TypeObject},
		Properties:           properties,
		Required:             required,
		AdditionalProperties: openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)},
	}, nil
}

func selectVariables(doc *document.Document, cfg options) ([]document.Variable, error) {
	if len(cfg.names) > 0 && cfg.hasGroup {
		return nil, ErrSelectorConflict
	}

	if cfg.hasGroup {
		if doc.HasGroups() {
			if _, ok := doc.Groups[cfg.group]; !ok {
				return nil, fmt.Errorf("%w %q", ErrUnknownGroup, cfg.group)
			}
			return doc.GroupVariables(cfg.group), nil
		}
		// Free-form grouping: the selector resolves against the group names
		// variables actually carry.
		selected := doc.GroupVariables(cfg.group)
		if len(selected) == 0 {
			return nil, fmt.Errorf("%w %q", ErrUnknownGroup, cfg.group)
		}
		return selected, nil
	}

	if len(cfg.names) > 0 {
		selected := make([]document.Variable, 0, len(cfg.names))
		for _, name := range cfg.names {
			variable, ok := doc.Variable(name)
			if !ok {
				return nil, fmt.Errorf("%w %q", ErrUnknownVariable, name)
			}
			selected = append(selected, variable)
		}
		return selected, nil
	}

	return doc.Variables, nil
}

// compileVariable maps one variable onto its schema node. The type switch is
// exhaustive over the closed variable union; an unhandled kind is a
// programming error.
func compileVariable(variable document.Variable) *openapi3.Schema {
	switch v := variable.(type) {
	case document.Categorical:
		node := &openapi3.Schema{
			Type: &openapi3.Types{openapi3.TypeString},
			Enum: enumValues(v),
		}
		return withDescription(node, v.Repeated, describeCategorical(v))
	case document.Numeric:
		kind := openapi3.TypeNumber
		if v.Integer {
			kind = openapi3.TypeInteger
		}
		return &openapi3.Schema{
			Type:        &openapi3.Types{kind},
			Description: describeNumeric(v),
		}
	case document.Text:
		node := &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}
		return withDescription(node, v.Repeated, v.Description)
	case document.Boolean:
		return &openapi3.Schema{
			Type:        &openapi3.Types{openapi3.TypeBoolean},
			Description: v.Description,
		}
	case document.Record:
		return withDescription(compileRecord(v), v.Repeated, v.Description)
	default:
		panic(fmt.Sprintf("compiler: unhandled variable kind %T", variable))
	}
}

func compileRecord(v document.Record) *openapi3.Schema {
	properties := make(openapi3.Schemas, len(v.Properties))
	var required []string
	for _, property := range v.Properties {
		meta := property.Meta()
		properties[meta.Name] = openapi3.NewSchemaRef("", compileVariable(property))
		if meta.Required {
			required = append(required, meta.Name)
		}
	}
	sort.Strings(required)

	return &openapi3.Schema{
		Type:                 &openapi3.Types{openapi3.TypeObject},
		Properties:           properties,
		Required:             required,
		AdditionalProperties: openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)},
	}
}

// withDescription attaches the synthesized description to the node the
// consumer reads: the array wrapper when the variable is repeated, the node
// itself otherwise.
func withDescription(node *openapi3.Schema, repeated bool, description string) *openapi3.Schema {
	if !repeated {
		node.Description = description
		return node
	}
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeArray},
		Items:       openapi3.NewSchemaRef("", node),
		Description: description,
	}
}

func enumValues(v document.Categorical) []any {
	values := make([]any, 0, len(v.Categories))
	for _, category := range v.Categories {
		values = append(values, category.Value)
	}
	return values
}
