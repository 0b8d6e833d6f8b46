package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"hexphyre/internal/models"
)

// settingsDocID is the primary key of the singleton settings row.
const settingsDocID = "global_settings"

// SettingsStore manages the singleton site settings document.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore returns a new SettingsStore backed by the given database.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the site settings. When the document has never been written,
// the hardcoded defaults are returned. Stored values decode on top of the
// defaults, so fields absent from an older document keep their default.
func (s *SettingsStore) Get() (models.SiteSettings, error) {
	settings := models.DefaultSettings()

	var data []byte
	err := s.db.QueryRow(`SELECT data FROM site_settings WHERE id = $1`, settingsDocID).Scan(&data)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("get settings: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// Update merges the patch into the current settings and writes the result
// back. The read-merge-write runs in a transaction with the row locked,
// so two concurrent saves serialize instead of silently dropping one
// editor's fields. Returns the merged settings.
func (s *SettingsStore) Update(patch models.SettingsPatch) (models.SiteSettings, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.SiteSettings{}, fmt.Errorf("settings update begin: %w", err)
	}
	defer tx.Rollback()

	settings := models.DefaultSettings()

	var data []byte
	err = tx.QueryRow(`SELECT data FROM site_settings WHERE id = $1 FOR UPDATE`, settingsDocID).Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		// First write — merge over defaults.
	case err != nil:
		return models.SiteSettings{}, fmt.Errorf("settings update read: %w", err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return models.SiteSettings{}, fmt.Errorf("decode settings: %w", err)
		}
	}

	settings.Merge(patch)

	merged, err := json.Marshal(settings)
	if err != nil {
		return models.SiteSettings{}, fmt.Errorf("encode settings: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO site_settings (id, data, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (id)
		DO UPDATE SET data = EXCLUDED.data,
		              version = site_settings.version + 1,
		              updated_at = NOW()`,
		settingsDocID, merged,
	)
	if err != nil {
		return models.SiteSettings{}, fmt.Errorf("settings update write: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.SiteSettings{}, fmt.Errorf("settings update commit: %w", err)
	}
	return settings, nil
}
