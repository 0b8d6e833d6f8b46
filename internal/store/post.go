// Package store provides database access methods for all Hexphyre
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hexphyre/internal/models"
)

// ErrPayloadTooLarge is returned by Create and Update when the serialized
// post document exceeds models.MaxPayloadBytes. The check lives here so no
// caller can bypass it, not only in the editor form.
var ErrPayloadTooLarge = errors.New("post payload exceeds the 1,000,000-byte document limit")

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, excerpt, content, format, cover_image, categories, created_at, updated_at`

// scanPost scans a row into a Post, decoding the categories JSON array.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var categories []byte
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Format,
		&p.CoverImage, &categories, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(categories, &p.Categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return &p, nil
}

// List returns every post, newest first.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by its slug. Returns nil if not found.
// Used for public post pages.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated id and
// timestamps. Returns ErrPayloadTooLarge when the serialized document
// exceeds the ceiling.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	if p.OversizedPayload() {
		return nil, ErrPayloadTooLarge
	}

	categories, err := json.Marshal(nonNil(p.Categories))
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, content, format, cover_image, categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Format, p.CoverImage, categories,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post. Returns ErrPayloadTooLarge when the
// serialized document exceeds the ceiling.
func (s *PostStore) Update(p *models.Post) error {
	if p.OversizedPayload() {
		return ErrPayloadTooLarge
	}

	categories, err := json.Marshal(nonNil(p.Categories))
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, excerpt = $3, content = $4, format = $5,
			cover_image = $6, categories = $7, updated_at = NOW()
		WHERE id = $8
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.Format, p.CoverImage, categories, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by id.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Count returns the number of posts.
func (s *PostStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// nonNil normalizes a nil slice to an empty one so the stored JSON is
// always an array, never null.
func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
