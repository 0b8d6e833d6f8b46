package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post and taxonomy form fields.
const (
	maxTitleLen       = 300
	maxSlugLen        = 300
	maxExcerptLen     = 1_000
	maxTaxonomyName   = 200
	maxDescriptionLen = 1_000
)

// validatePost checks post form inputs and returns the first error found.
// The payload size ceiling is enforced separately by the store.
func validatePost(title, slug string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}

// validateExcerpt checks the optional excerpt field.
func validateExcerpt(excerpt string) string {
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	return ""
}

// validateTaxonomy checks category/tag form inputs.
func validateTaxonomy(name, description string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxTaxonomyName {
		return "Name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}
