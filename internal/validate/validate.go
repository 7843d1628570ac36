// Package validate holds the required-field presence check shared by both
// tiers. Each tier validates independently; neither trusts the other.
package validate

import "strings"

// Missing returns the required keys whose values are absent or empty in
// provided, preserving the order of required. A value is empty when the key
// is not present, the value is nil, the string is blank, or the number is not
// a positive id.
func Missing(required []string, provided map[string]any) []string {
	var missing []string
	for _, key := range required {
		value, ok := provided[key]
		if !ok || isEmpty(value) {
			missing = append(missing, key)
		}
	}
	return missing
}

// MissingError formats the standard error message naming the missing fields.
func MissingError(missing []string) string {
	return "Missing fields: " + strings.Join(missing, ", ")
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case int:
		return v <= 0
	case int64:
		return v <= 0
	case float64:
		// JSON numbers decode as float64; ids must be positive.
		return v <= 0
	}
	return false
}
