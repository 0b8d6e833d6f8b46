// Package listing implements the post list view state: search filtering
// and fixed-size pagination over an in-memory post slice. It is pure and
// synchronous — recomputation happens on every transition, with no
// database access.
package listing

import (
	"strings"

	"hexphyre/internal/models"
)

// DefaultPageSize is the number of posts shown per page.
const DefaultPageSize = 6

// State holds the list view state. Transitions are SetPosts, Search, and
// SetPage; the derived view is read through Page and TotalPages.
type State struct {
	all      []models.Post
	filtered []models.Post
	term     string
	page     int
	pageSize int
}

// New creates a list state over the given posts, showing page 1 unfiltered.
func New(posts []models.Post) *State {
	s := &State{pageSize: DefaultPageSize}
	s.SetPosts(posts)
	return s
}

// SetPosts replaces the backing post slice, re-applies the current search
// term, and resets to the first page. Used when the source data is
// refreshed.
func (s *State) SetPosts(posts []models.Post) {
	s.all = posts
	s.refilter()
}

// Search sets the search term, recomputes the filtered subsequence, and
// resets to the first page.
func (s *State) Search(term string) {
	s.term = term
	s.refilter()
}

// refilter recomputes filtered from all and the current term.
func (s *State) refilter() {
	s.filtered = Filter(s.all, s.term)
	s.page = 1
}

// SetPage moves to the requested page, clamped to the valid range.
func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if tp := s.TotalPages(); page > tp {
		page = tp
	}
	s.page = page
}

// CurrentPage returns the active page number (1-based).
func (s *State) CurrentPage() int {
	return s.page
}

// Term returns the active search term.
func (s *State) Term() string {
	return s.term
}

// Filtered returns the full filtered subsequence, ignoring pagination.
func (s *State) Filtered() []models.Post {
	return s.filtered
}

// TotalPages returns ceil(len(filtered) / pageSize), with a minimum of 1
// so an empty result still has a current page.
func (s *State) TotalPages() int {
	n := (len(s.filtered) + s.pageSize - 1) / s.pageSize
	if n < 1 {
		return 1
	}
	return n
}

// Page returns the slice window for the current page:
// [(page-1)*size, page*size).
func (s *State) Page() []models.Post {
	start := (s.page - 1) * s.pageSize
	if start >= len(s.filtered) {
		return nil
	}
	end := start + s.pageSize
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	return s.filtered[start:end]
}

// HasPrev reports whether a previous page exists.
func (s *State) HasPrev() bool {
	return s.page > 1
}

// HasNext reports whether a next page exists.
func (s *State) HasNext() bool {
	return s.page < s.TotalPages()
}

// Filter returns the subsequence of posts whose title or excerpt contains
// the term as a case-insensitive substring. An empty term returns all
// posts. Order is preserved.
func Filter(posts []models.Post, term string) []models.Post {
	if term == "" {
		out := make([]models.Post, len(posts))
		copy(out, posts)
		return out
	}

	needle := strings.ToLower(term)
	var out []models.Post
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Excerpt), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory returns the posts whose category set contains the named
// category, compared case-insensitively. Used by the projects page.
func FilterByCategory(posts []models.Post, category string) []models.Post {
	var out []models.Post
	for _, p := range posts {
		if p.HasCategory(category) {
			out = append(out, p)
		}
	}
	return out
}
