package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"hexphyre/internal/models"
)

// MediaStore tracks cover images uploaded to object storage. The files
// themselves live in the S3 bucket; only metadata is stored here.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, original_name, content_type, size_bytes, s3_key, uploader_id, created_at`

// Create inserts a media record and returns it with the generated id.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	result := &models.Media{}
	err := s.db.QueryRow(`
		INSERT INTO media (original_name, content_type, size_bytes, s3_key, uploader_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+mediaColumns,
		m.OriginalName, m.ContentType, m.SizeBytes, m.S3Key, m.UploaderID,
	).Scan(
		&result.ID, &result.OriginalName, &result.ContentType,
		&result.SizeBytes, &result.S3Key, &result.UploaderID, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return result, nil
}

// FindByID retrieves a media record by id. Returns nil if not found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	m := &models.Media{}
	err := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id).Scan(
		&m.ID, &m.OriginalName, &m.ContentType,
		&m.SizeBytes, &m.S3Key, &m.UploaderID, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns all media records, newest first.
func (s *MediaStore) List() ([]*models.Media, error) {
	rows, err := s.db.Query(`SELECT ` + mediaColumns + ` FROM media ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		m := &models.Media{}
		if err := rows.Scan(
			&m.ID, &m.OriginalName, &m.ContentType,
			&m.SizeBytes, &m.S3Key, &m.UploaderID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Delete removes a media record by id.
func (s *MediaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

// Count returns the number of media records.
func (s *MediaStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return count, nil
}
