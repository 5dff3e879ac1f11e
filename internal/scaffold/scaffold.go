// Package scaffold drives the interactive wizard behind `codebook init`,
// producing a starter codebook document that passes validation.
package scaffold

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-codebook/pkg/document"
	"github.com/goliatone/go-codebook/pkg/validation"
)

// Prompter abstracts the interactive driver so the wizard is testable with a
// scripted fake.
type Prompter interface {
	Input(message, help string) (string, error)
	Select(message string, options []string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type rawPrompt struct {
	System string `yaml:"system"`
}

type rawVariable struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Description string   `yaml:"description"`
	Categories  []string `yaml:"categories,omitempty"`
}

type rawCodebook struct {
	SchemaVersion int           `yaml:"schema_version"`
	Title         string        `yaml:"title"`
	Description   string        `yaml:"description,omitempty"`
	Prompt        rawPrompt     `yaml:"prompt"`
	Variables     []rawVariable `yaml:"variables"`
}

// Run walks the author through a minimal codebook and returns it as YAML.
func Run(p Prompter) ([]byte, error) {
	title, err := requireInput(p, "Codebook title:", "Shown at the top of rendered documents.")
	if err != nil {
		return nil, err
	}
	description, err := p.Input("Short description (optional):", "")
	if err != nil {
		return nil, err
	}
	system, err := requireInput(p, "System prompt:",
		"Instructions sent to the extraction model with every call.")
	if err != nil {
		return nil, err
	}

	book := rawCodebook{
		SchemaVersion: document.SchemaVersion,
		Title:         title,
		Description:   strings.TrimSpace(description),
		Prompt:        rawPrompt{System: system},
	}

	for {
		variable, err := promptVariable(p)
		if err != nil {
			return nil, err
		}
		book.Variables = append(book.Variables, variable)

		more, err := p.Confirm("Add another variable?", false)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	out, err := yaml.Marshal(book)
	if err != nil {
		return nil, fmt.Errorf("scaffold: encode codebook: %w", err)
	}
	return out, nil
}

func promptVariable(p Prompter) (rawVariable, error) {
	name, err := requireInput(p, "Variable name:",
		"Must start with a letter and contain only letters, digits, or underscores.")
	if err != nil {
		return rawVariable{}, err
	}
	if !validation.ValidName(name) {
		return rawVariable{}, fmt.Errorf("scaffold: %q is not a valid variable name", name)
	}

	kinds := []string{
		string(document.KindCategorical),
		string(document.KindNumeric),
		string(document.KindText),
		string(document.KindBoolean),
	}
	kind, err := p.Select("Variable type:", kinds)
	if err != nil {
		return rawVariable{}, err
	}

	description, err := requireInput(p, "Variable description:",
		"Tells the extraction model what to look for.")
	if err != nil {
		return rawVariable{}, err
	}

	variable := rawVariable{Name: name, Type: kind, Description: description}
	if kind == string(document.KindCategorical) {
		raw, err := requireInput(p, "Category values (comma separated):", "")
		if err != nil {
			return rawVariable{}, err
		}
		for _, value := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				variable.Categories = append(variable.Categories, trimmed)
			}
		}
		if len(variable.Categories) == 0 {
			return rawVariable{}, fmt.Errorf("scaffold: categorical variable %q needs at least one value", name)
		}
	}
	return variable, nil
}

func requireInput(p Prompter, message, help string) (string, error) {
	value, err := p.Input(message, help)
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("scaffold: %s must not be empty", strings.TrimSuffix(message, ":"))
	}
	return value, nil
}
