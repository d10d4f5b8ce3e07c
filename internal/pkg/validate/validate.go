// Package validate holds the small input checks shared by the services.
package validate

import "strings"

// Required reports whether a free-text field carries a non-blank value.
// Whitespace-only input counts as missing.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
