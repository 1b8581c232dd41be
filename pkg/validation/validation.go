package validation

import (
	"regexp"
	"strings"
)

var assetIDRegex = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// Normalize applies the uniform text normalization used across the registry:
// trimmed, null bytes stripped, upper-cased.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.ToUpper(input)
}

// ValidateAssetID validates a user-assigned asset identifier (already
// normalized).
func ValidateAssetID(id string) bool {
	if len(id) < 1 || len(id) > 64 {
		return false
	}
	return assetIDRegex.MatchString(id)
}
