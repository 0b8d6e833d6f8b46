// Package models defines the data structures shared between the stores,
// handlers, and templates of the Hexphyre site.
package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BodyFormat indicates how a post body is stored and rendered.
type BodyFormat string

const (
	BodyFormatMarkdown BodyFormat = "markdown"
	BodyFormatHTML     BodyFormat = "html"
)

// Payload size limits for a serialized post document. The hard ceiling
// mirrors the per-document limit of the document database the content
// was originally migrated from; the soft threshold drives an early
// warning in the editor.
const (
	MaxPayloadBytes  = 1_000_000
	WarnPayloadBytes = 800_000
)

// Post is a blog post or project entry. Categories are held as a set of
// category names, not ids — membership is string-keyed.
type Post struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `json:"content"`
	Format     BodyFormat `json:"format"`
	CoverImage string     `json:"coverImage"`
	Categories []string   `json:"categories"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// postDocument is the shape used for payload size estimation. It matches
// the fields an editor submits, excluding server-assigned metadata.
type postDocument struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Categories []string `json:"categories"`
}

// PayloadSize returns the byte size of the serialized post document.
// Used to enforce MaxPayloadBytes before a write reaches the database.
func (p *Post) PayloadSize() int {
	doc := postDocument{
		Title:      p.Title,
		Slug:       p.Slug,
		Excerpt:    p.Excerpt,
		Content:    p.Content,
		CoverImage: p.CoverImage,
		Categories: p.Categories,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		// Marshal of a plain string struct cannot fail; keep the
		// conservative path anyway.
		return len(p.Title) + len(p.Slug) + len(p.Excerpt) + len(p.Content) + len(p.CoverImage)
	}
	return len(b)
}

// OversizedPayload reports whether the post exceeds the hard document ceiling.
func (p *Post) OversizedPayload() bool {
	return p.PayloadSize() > MaxPayloadBytes
}

// HasCategory reports whether the post is assigned the named category,
// compared case-insensitively.
func (p *Post) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
