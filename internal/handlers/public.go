package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hexphyre/internal/cache"
	"hexphyre/internal/listing"
	"hexphyre/internal/markdown"
	"hexphyre/internal/models"
	"hexphyre/internal/render"
	"hexphyre/internal/store"
)

// visitorCookieName identifies a browser across visits for analytics.
const visitorCookieName = "hx_visitor"

// projectsCategory is the category name that marks a post as a project.
const projectsCategory = "Projects"

// Public groups handlers for the public-facing site. Pages check the
// Valkey page cache before rendering, and store rendered results on miss.
type Public struct {
	site           *render.SiteRenderer
	postStore      *store.PostStore
	settingsStore  *store.SettingsStore
	analyticsStore *store.AnalyticsStore
	pageCache      *cache.PageCache
	siteURL        string
}

// NewPublic creates a new Public handler group. siteURL is the canonical
// origin used for sitemap entries, without a trailing slash.
func NewPublic(site *render.SiteRenderer, postStore *store.PostStore, settingsStore *store.SettingsStore, analyticsStore *store.AnalyticsStore, pageCache *cache.PageCache, siteURL string) *Public {
	return &Public{
		site:           site,
		postStore:      postStore,
		settingsStore:  settingsStore,
		analyticsStore: analyticsStore,
		pageCache:      pageCache,
		siteURL:        strings.TrimRight(siteURL, "/"),
	}
}

// Home renders the homepage: hero, technology, the searchable paginated
// post list, and the about section. Only the unfiltered first page is
// cached; search results and later pages render fresh.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p.trackVisit(w, r, nil)

	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	cacheable := query == "" && page <= 1

	if cacheable {
		if cached, ok := p.pageCache.Get(ctx, cache.HomeKey()); ok {
			writeHTML(w, cached)
			return
		}
	}

	posts, err := p.postStore.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	state := listing.New(posts)
	state.Search(query)
	state.SetPage(page)

	html, err := p.site.Render("home", &render.SiteData{
		Title:    "Home",
		Settings: p.loadSettings(),
		Data: map[string]any{
			"Query":      state.Term(),
			"Posts":      state.Page(),
			"Page":       state.CurrentPage(),
			"TotalPages": state.TotalPages(),
			"HasPrev":    state.HasPrev(),
			"HasNext":    state.HasNext(),
			"PrevPage":   state.CurrentPage() - 1,
			"NextPage":   state.CurrentPage() + 1,
		},
	})
	if err != nil {
		slog.Error("render home failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheable {
		p.pageCache.Set(ctx, cache.HomeKey(), html)
	}
	writeHTML(w, html)
}

// Projects renders the projects page: every post carrying the Projects
// category, unpaginated.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p.trackVisit(w, r, nil)

	if cached, ok := p.pageCache.Get(ctx, cache.ProjectsKey()); ok {
		writeHTML(w, cached)
		return
	}

	posts, err := p.postStore.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := p.site.Render("projects", &render.SiteData{
		Title:    "Projects",
		Settings: p.loadSettings(),
		Data: map[string]any{
			"Posts": listing.FilterByCategory(posts, projectsCategory),
		},
	})
	if err != nil {
		slog.Error("render projects failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.ProjectsKey(), html)
	writeHTML(w, html)
}

// PostPage renders a single post by slug. Markdown posts are converted to
// HTML; posts stored as raw HTML pass through as-is. The post is looked
// up before the cache so the visit is attributed to its ID either way.
func (p *Public) PostPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	post, err := p.postStore.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find post by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		p.NotFound(w, r)
		return
	}

	p.trackVisit(w, r, &post.ID)

	if cached, ok := p.pageCache.Get(ctx, cache.PostKey(slugParam)); ok {
		writeHTML(w, cached)
		return
	}

	body := post.Content
	if post.Format == models.BodyFormatMarkdown {
		body, err = markdown.ToHTML(post.Content)
		if err != nil {
			slog.Error("markdown render failed", "error", err, "slug", slugParam)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	html, err := p.site.Render("post", &render.SiteData{
		Title:       post.Title,
		Description: post.Excerpt,
		Settings:    p.loadSettings(),
		Data: map[string]any{
			"Post":     post,
			"BodyHTML": body,
		},
	})
	if err != nil {
		slog.Error("render post failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.PostKey(slugParam), html)
	writeHTML(w, html)
}

// NotFound renders the site 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	html, err := p.site.Render("notfound", &render.SiteData{
		Title:    "Not Found",
		Settings: p.loadSettings(),
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(html)
}

// loadSettings fetches site settings, falling back to defaults when the
// store is unreachable so public pages never 500 on settings alone.
func (p *Public) loadSettings() models.SiteSettings {
	settings, err := p.settingsStore.Get()
	if err != nil {
		slog.Error("load settings failed", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// trackVisit records a page view. The visitor is identified by a
// long-lived cookie; repeat views inside the store's throttle window are
// suppressed there, not here. Tracking failures never affect the page.
func (p *Public) trackVisit(w http.ResponseWriter, r *http.Request, postID *uuid.UUID) {
	visitorID := p.visitorID(w, r)

	event := &models.VisitEvent{
		PostID:    postID,
		VisitorID: visitorID,
	}
	if country := r.Header.Get("CF-IPCountry"); country != "" && country != "XX" {
		event.Country = &country
	}
	if browser := browserFromUA(r.UserAgent()); browser != "" {
		event.Browser = &browser
	}

	if err := p.analyticsStore.RecordVisit(event); err != nil {
		slog.Warn("record visit failed", "error", err)
	}
}

// visitorID returns the visitor cookie value, setting a fresh one when
// the browser has none.
func (p *Public) visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(visitorCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// browserFromUA buckets a User-Agent string into a browser family name.
// Order matters: Chrome's UA contains "Safari", and Edge's contains both.
func browserFromUA(ua string) string {
	switch {
	case ua == "":
		return ""
	case strings.Contains(ua, "Edg/"):
		return "Edge"
	case strings.Contains(ua, "Firefox/"):
		return "Firefox"
	case strings.Contains(ua, "Chrome/"):
		return "Chrome"
	case strings.Contains(ua, "Safari/"):
		return "Safari"
	default:
		return "Other"
	}
}

func writeHTML(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}
