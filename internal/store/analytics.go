package store

import (
	"database/sql"
	"fmt"
	"time"

	"hexphyre/internal/models"
)

// visitThrottle suppresses repeat visits from the same visitor to the
// same page within this window, so refreshes don't inflate the numbers.
const visitThrottle = 30 * time.Minute

// AnalyticsStore records public page views and serves the aggregates
// shown on the admin dashboard.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore returns a new AnalyticsStore.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// RecordVisit inserts a visit event unless the same visitor already
// visited the same page inside the throttle window.
func (s *AnalyticsStore) RecordVisit(e *models.VisitEvent) error {
	cutoff := time.Now().Add(-visitThrottle)

	var recent int
	var err error
	if e.PostID != nil {
		err = s.db.QueryRow(`
			SELECT COUNT(*) FROM visit_events
			WHERE visitor_id = $1 AND post_id = $2 AND created_at > $3
		`, e.VisitorID, *e.PostID, cutoff).Scan(&recent)
	} else {
		err = s.db.QueryRow(`
			SELECT COUNT(*) FROM visit_events
			WHERE visitor_id = $1 AND post_id IS NULL AND created_at > $2
		`, e.VisitorID, cutoff).Scan(&recent)
	}
	if err != nil {
		return fmt.Errorf("visit throttle check: %w", err)
	}
	if recent > 0 {
		return nil
	}

	_, err = s.db.Exec(`
		INSERT INTO visit_events (post_id, visitor_id, country, browser)
		VALUES ($1, $2, $3, $4)
	`, e.PostID, e.VisitorID, e.Country, e.Browser)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// DailyStats returns visits per day for the last N days, oldest first.
// Days with no visits are absent from the result.
func (s *AnalyticsStore) DailyStats(days int) ([]models.DailyStat, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	rows, err := s.db.Query(`
		SELECT date_trunc('day', created_at) AS day, COUNT(*) AS visits
		FROM visit_events
		WHERE created_at > $1
		GROUP BY day
		ORDER BY day ASC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var st models.DailyStat
		if err := rows.Scan(&st.Day, &st.Visits); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// CountryStats returns the top visitor countries by visit count. Events
// without a resolved country are grouped under "Unknown".
func (s *AnalyticsStore) CountryStats(limit int) ([]models.CountryStat, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(country, 'Unknown') AS country, COUNT(*) AS visits
		FROM visit_events
		GROUP BY country
		ORDER BY visits DESC, country ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("country stats: %w", err)
	}
	defer rows.Close()

	var stats []models.CountryStat
	for rows.Next() {
		var st models.CountryStat
		if err := rows.Scan(&st.Country, &st.Visits); err != nil {
			return nil, fmt.Errorf("scan country stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// TopPosts returns the most-viewed posts with their titles. Posts that
// were deleted since the events were recorded are excluded.
func (s *AnalyticsStore) TopPosts(limit int) ([]models.PostViews, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, COUNT(v.id) AS views
		FROM visit_events v
		JOIN posts p ON p.id = v.post_id
		GROUP BY p.id, p.title
		ORDER BY views DESC, p.title ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	defer rows.Close()

	var stats []models.PostViews
	for rows.Next() {
		var st models.PostViews
		if err := rows.Scan(&st.PostID, &st.Title, &st.Views); err != nil {
			return nil, fmt.Errorf("scan top post: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
