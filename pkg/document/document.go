// Package document defines the immutable typed model built from a validated
// codebook: the top-level Document container and the closed Variable union
// consumed by the schema compiler and by rendering/extraction collaborators.
package document

import "sort"

// SchemaVersion is the single codebook schema revision this library accepts.
const SchemaVersion = 1

// DefaultUserPrompt is the built-in user message template applied when a
// codebook does not declare prompt.user. The dispatch collaborator substitutes
// {text} with the document under analysis.
const DefaultUserPrompt = "Read the text below and extract every requested code.\n\n{text}"

// Prompt holds the system and user prompt text for extraction calls.
type Prompt struct {
	System string
	User   string
}

// Group describes one named bucket of variables, optionally bound to a
// default model for extraction dispatch.
type Group struct {
	Label       string
	Description string
	Model       string
}

// Document is the validated top-level container. It is constructed once by
// the builder and never mutated afterwards, so it is safe to share across
// goroutines without synchronization.
type Document struct {
	Title         string
	SchemaVersion int
	Version       string
	Description   string
	Author        string
	Prompt        Prompt
	Variables     []Variable
	Groups        map[string]Group
}

// Variable returns the top-level variable with the given name.
func (d *Document) Variable(name string) (Variable, bool) {
	for _, variable := range d.Variables {
		if variable.Meta().Name == name {
			return variable, true
		}
	}
	return nil, false
}

// VariableNames returns top-level variable names in declaration order.
func (d *Document) VariableNames() []string {
	names := make([]string, 0, len(d.Variables))
	for _, variable := range d.Variables {
		names = append(names, variable.Meta().Name)
	}
	return names
}

// HasGroups reports whether the codebook declared a group table. When it did
// not, free-form group names on variables are legal and unresolved.
func (d *Document) HasGroups() bool {
	return d.Groups != nil
}

// GroupNames returns the declared group names sorted alphabetically.
func (d *Document) GroupNames() []string {
	if len(d.Groups) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Groups))
	for name := range d.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupVariables returns the variables referencing the given group, in
// declaration order.
func (d *Document) GroupVariables(name string) []Variable {
	var selected []Variable
	for _, variable := range d.Variables {
		if variable.Meta().Group == name {
			selected = append(selected, variable)
		}
	}
	return selected
}

// Ungrouped returns the variables that carry no group reference.
func (d *Document) Ungrouped() []Variable {
	var selected []Variable
	for _, variable := range d.Variables {
		if variable.Meta().Group == "" {
			selected = append(selected, variable)
		}
	}
	return selected
}
