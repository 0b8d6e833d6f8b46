package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin account and the starter categories the site templates expect.
// It is a no-op when data already exists.
func Seed(db *sql.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}
	return seedCategories(db)
}

// seedAdminUser creates the default admin if no users exist. The admin
// will be prompted to set up 2FA on first login (totp_enabled = false).
func seedAdminUser(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)`,
		"admin@hexphyre.com", string(hash), "Admin",
	)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	slog.Warn("seeded default admin user, change the password",
		"email", "admin@hexphyre.com",
		"password", "admin",
	)
	return nil
}

// seedCategories inserts the starter categories if the table is empty.
// "Projects" is special: the public projects page filters posts by it.
func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM taxonomies WHERE kind = 'category'").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("categories already seeded, skipping")
		return nil
	}

	starter := []struct {
		name, slug, description string
	}{
		{"Projects", "projects", "Showcase work listed on the projects page."},
		{"Research", "research", "Research notes and publications."},
		{"News", "news", "Company announcements."},
	}

	for _, c := range starter {
		if _, err := db.Exec(`
			INSERT INTO taxonomies (kind, name, slug, description)
			VALUES ('category', $1, $2, $3)`,
			c.name, c.slug, c.description,
		); err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
	}

	slog.Info("seeded starter categories", "count", len(starter))
	return nil
}
