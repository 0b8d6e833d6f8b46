package models

import (
	"time"

	"github.com/google/uuid"
)

// TaxonomyKind distinguishes categories from tags in the unified
// taxonomies table.
type TaxonomyKind string

const (
	TaxonomyCategory TaxonomyKind = "category"
	TaxonomyTag      TaxonomyKind = "tag"
)

// Taxonomy is a named classification entity attachable to posts.
// Posts reference taxonomies by name, so renaming a taxonomy does not
// follow through to posts that use the old name.
type Taxonomy struct {
	ID          uuid.UUID    `json:"id"`
	Kind        TaxonomyKind `json:"kind"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// PostCount is derived at list time from post usage. Read-only.
	PostCount int `json:"post_count"`
}
