// Package render produces human-readable Markdown and HTML documents from a
// codebook, for review by the domain experts who author them. It is a
// read-only collaborator: rendering never alters the document.
package render

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-codebook/pkg/document"
)

// Format selects the output flavor.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templates fs.FS
}

// WithTemplatesFS supplies an alternate template bundle. Templates are looked
// up as codebook.md.tpl and codebook.html.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// Renderer renders codebooks through a pongo2 template set.
type Renderer struct {
	set *pongo2.TemplateSet
}

// New constructs a Renderer, defaulting to the embedded templates.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templates: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	set := pongo2.NewSet("codebook", pongo2.NewFSLoader(cfg.templates))
	return &Renderer{set: set}, nil
}

// Render produces the document in the requested format. HTML output passes
// every free-text field through the sanitizer first.
func (r *Renderer) Render(doc *document.Document, format Format) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render: document is required")
	}

	var name string
	switch format {
	case FormatMarkdown:
		name = "codebook.md.tpl"
	case FormatHTML:
		name = "codebook.html.tpl"
	default:
		return nil, fmt.Errorf("render: unsupported format %q", format)
	}

	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %s: %w", name, err)
	}
	out, err := tmpl.Execute(buildContext(doc, format))
	if err != nil {
		return nil, fmt.Errorf("render: execute template %s: %w", name, err)
	}
	return []byte(out), nil
}

func buildContext(doc *document.Document, format Format) pongo2.Context {
	clean := func(s string) string { return s }
	if format == FormatHTML {
		clean = sanitizeDescription
	}

	variables := make([]map[string]any, 0, len(doc.Variables))
	for _, variable := range doc.Variables {
		variables = append(variables, variableView(variable, clean))
	}

	var groups []map[string]any
	for _, name := range doc.GroupNames() {
		group := doc.Groups[name]
		groups = append(groups, map[string]any{
			"name":        name,
			"label":       group.Label,
			"description": clean(group.Description),
			"model":       group.Model,
		})
	}

	return pongo2.Context{
		"title":         doc.Title,
		"version":       doc.Version,
		"description":   clean(doc.Description),
		"author":        doc.Author,
		"prompt_system": clean(doc.Prompt.System),
		"prompt_user":   clean(doc.Prompt.User),
		"has_groups":    doc.HasGroups(),
		"groups":        groups,
		"variables":     variables,
	}
}

func variableView(variable document.Variable, clean func(string) string) map[string]any {
	meta := variable.Meta()
	view := map[string]any{
		"name":        meta.Name,
		"label":       meta.Label,
		"description": clean(meta.Description),
		"kind":        string(variable.Kind()),
		"repeated":    meta.Repeated,
		"required":    meta.Required,
		"group":       meta.Group,
		"model":       meta.Model,
	}

	switch v := variable.(type) {
	case document.Categorical:
		categories := make([]map[string]any, 0, len(v.Categories))
		for _, category := range v.Categories {
			categories = append(categories, map[string]any{
				"value":      category.Value,
				"label":      category.Label,
				"definition": clean(category.Definition),
			})
		}
		view["categories"] = categories
	case document.Numeric:
		if v.Min != nil {
			view["min"] = document.FormatNumber(*v.Min)
		}
		if v.Max != nil {
			view["max"] = document.FormatNumber(*v.Max)
		}
		view["integer"] = v.Integer
		view["value_labels"] = valueLabelViews(v.ValueLabels)
	case document.Record:
		properties := make([]map[string]any, 0, len(v.Properties))
		for _, property := range v.Properties {
			properties = append(properties, variableView(property, clean))
		}
		view["properties"] = properties
	}
	return view
}

// valueLabelViews orders value labels numerically so a 1..5 scale renders in
// scale order rather than map order.
func valueLabelViews(labels map[string]string) []map[string]any {
	if len(labels) == 0 {
		return nil
	}
	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		iv, _ := document.ParseNumber(keys[i])
		jv, _ := document.ParseNumber(keys[j])
		return iv < jv
	})
	views := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		views = append(views, map[string]any{"value": key, "label": labels[key]})
	}
	return views
}
