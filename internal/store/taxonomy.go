package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"hexphyre/internal/models"
)

// TaxonomyStore manages categories and tags, which share the taxonomies
// table discriminated by kind.
type TaxonomyStore struct {
	db *sql.DB
}

// NewTaxonomyStore returns a new TaxonomyStore.
func NewTaxonomyStore(db *sql.DB) *TaxonomyStore {
	return &TaxonomyStore{db: db}
}

const taxonomyColumns = `id, kind, name, slug, description, created_at, updated_at`

// scanTaxonomy scans a row into a Taxonomy struct.
func scanTaxonomy(scanner interface{ Scan(...any) error }) (*models.Taxonomy, error) {
	var t models.Taxonomy
	err := scanner.Scan(
		&t.ID, &t.Kind, &t.Name, &t.Slug, &t.Description,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all taxonomies of the given kind ordered by name ascending
// (case-insensitive), each with its derived post-usage count. Posts hold
// category names, so the count matches on the exact stored name.
func (s *TaxonomyStore) List(kind models.TaxonomyKind) ([]models.Taxonomy, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.kind, t.name, t.slug, t.description,
		       t.created_at, t.updated_at,
		       COUNT(p.id) AS post_count
		FROM taxonomies t
		LEFT JOIN posts p ON t.kind = 'category' AND p.categories @> to_jsonb(t.name)
		WHERE t.kind = $1
		GROUP BY t.id
		ORDER BY lower(t.name), t.name
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("list taxonomies: %w", err)
	}
	defer rows.Close()

	var items []models.Taxonomy
	for rows.Next() {
		var t models.Taxonomy
		err := rows.Scan(
			&t.ID, &t.Kind, &t.Name, &t.Slug, &t.Description,
			&t.CreatedAt, &t.UpdatedAt, &t.PostCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan taxonomy: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// FindByID retrieves a taxonomy by id. Returns nil if not found.
func (s *TaxonomyStore) FindByID(id uuid.UUID) (*models.Taxonomy, error) {
	row := s.db.QueryRow(`SELECT `+taxonomyColumns+` FROM taxonomies WHERE id = $1`, id)
	t, err := scanTaxonomy(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find taxonomy by id: %w", err)
	}
	return t, nil
}

// Create inserts a new taxonomy and returns it with the generated id.
// Duplicate names and slugs are allowed — there is no uniqueness
// constraint at this level.
func (s *TaxonomyStore) Create(t *models.Taxonomy) (*models.Taxonomy, error) {
	row := s.db.QueryRow(`
		INSERT INTO taxonomies (kind, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING `+taxonomyColumns,
		t.Kind, t.Name, t.Slug, t.Description,
	)
	result, err := scanTaxonomy(row)
	if err != nil {
		return nil, fmt.Errorf("create taxonomy: %w", err)
	}
	return result, nil
}

// Update modifies an existing taxonomy. Posts referencing the old name
// keep it — renames do not cascade.
func (s *TaxonomyStore) Update(t *models.Taxonomy) error {
	_, err := s.db.Exec(`
		UPDATE taxonomies SET
			name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`, t.Name, t.Slug, t.Description, t.ID)
	if err != nil {
		return fmt.Errorf("update taxonomy: %w", err)
	}
	return nil
}

// Delete removes a taxonomy by id. Posts keep the deleted name in their
// category set.
func (s *TaxonomyStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM taxonomies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete taxonomy: %w", err)
	}
	return nil
}

// CountByKind returns the number of taxonomies of the given kind.
func (s *TaxonomyStore) CountByKind(kind models.TaxonomyKind) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM taxonomies WHERE kind = $1`, kind).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count taxonomies: %w", err)
	}
	return count, nil
}
