package compiler

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-codebook/pkg/document"
)

// Description synthesis folds constraints the target schema format cannot
// express into free text. The exact phrasing is a contract surface: the
// downstream consumer interprets these substrings, so changes here break it.

// describeCategorical appends the category listing to the base description.
// An entry renders as "value = label (definition)", dropping the label when
// it just repeats the value and the parenthetical when no definition exists.
func describeCategorical(v document.Categorical) string {
	entries := make([]string, 0, len(v.Categories))
	for _, category := range v.Categories {
		entry := category.Value
		if category.Label != "" && category.Label != category.Value {
			entry = category.Value + " = " + category.Label
		}
		if category.Definition != "" {
			entry += " (" + category.Definition + ")"
		}
		entries = append(entries, entry)
	}
	return strings.TrimSpace(v.Description) + " Categories: " + strings.Join(entries, "; ") + "."
}

// describeNumeric appends the bound constraints. When both bounds carry a
// value label the anchored "Scale:" form is used; otherwise the plain
// "Range:"/"Minimum:"/"Maximum:" forms. Without bounds the description passes
// through untouched.
func describeNumeric(v document.Numeric) string {
	switch {
	case v.Min != nil && v.Max != nil:
		minText := document.FormatNumber(*v.Min)
		maxText := document.FormatNumber(*v.Max)
		minLabel, okMin := v.ValueLabels[minText]
		maxLabel, okMax := v.ValueLabels[maxText]
		if okMin && okMax {
			return strings.TrimSpace(v.Description) +
				fmt.Sprintf(" Scale: %s (%s) to %s (%s).", minText, minLabel, maxText, maxLabel)
		}
		return strings.TrimSpace(v.Description) + fmt.Sprintf(" Range: %s to %s.", minText, maxText)
	case v.Min != nil:
		return strings.TrimSpace(v.Description) + fmt.Sprintf(" Minimum: %s.", document.FormatNumber(*v.Min))
	case v.Max != nil:
		return strings.TrimSpace(v.Description) + fmt.Sprintf(" Maximum: %s.", document.FormatNumber(*v.Max))
	default:
		return v.Description
	}
}
