package document

import "strconv"

// FormatNumber renders a numeric value the canonical way the model does
// everywhere: shortest decimal form, no exponent, so 1.0 becomes "1" and 0.5
// stays "0.5". Numeric value-label keys and synthesized descriptions both use
// this form, which is what makes label lookups by bound value exact.
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ParseNumber parses a stringified number, reporting whether it is one.
func ParseNumber(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
