package models

import (
	"time"

	"github.com/google/uuid"
)

// VisitEvent records a single page view on the public site. PostID is nil
// for visits to the home or projects pages.
type VisitEvent struct {
	ID        int64      `json:"id"`
	PostID    *uuid.UUID `json:"post_id"`
	VisitorID string     `json:"visitor_id"`
	Country   *string    `json:"country"`
	Browser   *string    `json:"browser"`
	CreatedAt time.Time  `json:"created_at"`
}

// DailyStat aggregates visits per day for the dashboard chart.
type DailyStat struct {
	Day    time.Time `json:"day"`
	Visits int       `json:"visits"`
}

// CountryStat aggregates visits per country.
type CountryStat struct {
	Country string `json:"country"`
	Visits  int    `json:"visits"`
}

// PostViews pairs a post with its accumulated view count.
type PostViews struct {
	PostID uuid.UUID `json:"post_id"`
	Title  string    `json:"title"`
	Views  int       `json:"views"`
}
