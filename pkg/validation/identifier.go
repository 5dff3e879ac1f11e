package validation

import "regexp"

// Variable names double as schema property keys and as column names in
// downstream tabular output, so the legality rule is deliberately narrow: a
// leading ASCII letter followed by letters, digits, or underscores. No case
// normalization is applied and no words are reserved.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidName reports whether name is a legal variable identifier.
func ValidName(name string) bool {
	return identifierPattern.MatchString(name)
}
