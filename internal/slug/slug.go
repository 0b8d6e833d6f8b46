// Package slug provides URL-friendly slug generation from display names.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumeric matches every run of characters that is not a lowercase
// letter or digit. Each run collapses into a single hyphen.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string: lowercase,
// runs of non-alphanumeric characters replaced by single hyphens, leading
// and trailing hyphens stripped.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
