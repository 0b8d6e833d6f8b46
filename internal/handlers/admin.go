// Package handlers contains the HTTP handlers for the Hexphyre site and
// its admin panel. Handlers are grouped by concern (admin, public, auth)
// and receive their dependencies through the handler struct.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hexphyre/internal/cache"
	"hexphyre/internal/models"
	"hexphyre/internal/render"
	"hexphyre/internal/session"
	"hexphyre/internal/slug"
	"hexphyre/internal/storage"
	"hexphyre/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer       *render.Renderer
	sessions       *session.Store
	postStore      *store.PostStore
	taxonomyStore  *store.TaxonomyStore
	settingsStore  *store.SettingsStore
	userStore      *store.UserStore
	analyticsStore *store.AnalyticsStore
	mediaStore     *store.MediaStore
	storageClient  *storage.Client
	pageCache      *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient may be nil if S3 is not configured.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, postStore *store.PostStore, taxonomyStore *store.TaxonomyStore, settingsStore *store.SettingsStore, userStore *store.UserStore, analyticsStore *store.AnalyticsStore, mediaStore *store.MediaStore, storageClient *storage.Client, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:       renderer,
		sessions:       sessions,
		postStore:      postStore,
		taxonomyStore:  taxonomyStore,
		settingsStore:  settingsStore,
		userStore:      userStore,
		analyticsStore: analyticsStore,
		mediaStore:     mediaStore,
		storageClient:  storageClient,
		pageCache:      pageCache,
	}
}

// Dashboard renders the admin dashboard with content counts and the
// visitor analytics summaries.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	postCount, _ := a.postStore.Count()
	categoryCount, _ := a.taxonomyStore.CountByKind(models.TaxonomyCategory)
	tagCount, _ := a.taxonomyStore.CountByKind(models.TaxonomyTag)

	daily, err := a.analyticsStore.DailyStats(30)
	if err != nil {
		slog.Error("daily stats failed", "error", err)
	}
	countries, err := a.analyticsStore.CountryStats(10)
	if err != nil {
		slog.Error("country stats failed", "error", err)
	}
	topPosts, err := a.analyticsStore.TopPosts(10)
	if err != nil {
		slog.Error("top posts failed", "error", err)
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"PostCount":     postCount,
			"CategoryCount": categoryCount,
			"TagCount":      tagCount,
			"Daily":         daily,
			"Countries":     countries,
			"TopPosts":      topPosts,
		},
	})
}

// --- Posts CRUD ---

// PostsList renders the posts management page, newest first.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.postStore.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
	}

	a.renderer.Page(w, r, "posts", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Data:    map[string]any{"Posts": posts},
	})
}

// PostNew renders the new post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	categories, err := a.taxonomyStore.List(models.TaxonomyCategory)
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "New Post",
		Section: "posts",
		Data: map[string]any{
			"IsNew":      true,
			"Post":       &models.Post{Format: models.BodyFormatMarkdown},
			"Categories": categories,
		},
	})
}

// PostCreate handles the new post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	p, errMsg := a.postFromForm(r)
	if errMsg == "" {
		if _, err := a.postStore.Create(p); err != nil {
			errMsg = postSaveError(err)
			slog.Error("create post failed", "error", err)
		}
	}

	if errMsg != "" {
		a.renderPostForm(w, r, "New Post", p, true, errMsg)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostEdit renders the edit post form.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findPost(w, r)
	if !ok {
		return
	}
	a.renderPostForm(w, r, "Edit Post", p, false, "")
}

// PostUpdate handles the edit post form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	existing, ok := a.findPost(w, r)
	if !ok {
		return
	}

	p, errMsg := a.postFromForm(r)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if errMsg == "" {
		if err := a.postStore.Update(p); err != nil {
			errMsg = postSaveError(err)
			slog.Error("update post failed", "error", err, "id", p.ID)
		}
	}

	if errMsg != "" {
		a.renderPostForm(w, r, "Edit Post", p, false, errMsg)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete removes a post and refreshes the posts list.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.postStore.Delete(id); err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	a.PostsList(w, r)
}

// --- Post helpers ---

// findPost resolves the {id} URL parameter to a post, writing the error
// response itself when the post cannot be served.
func (a *Admin) findPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	p, err := a.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if p == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return p, true
}

// postFromForm builds a Post from the submitted form values. The slug is
// generated from the title when left empty. Returns a validation error
// message, or "" when the input is acceptable.
func (a *Admin) postFromForm(r *http.Request) (*models.Post, string) {
	p := &models.Post{
		Title:      r.FormValue("title"),
		Slug:       r.FormValue("slug"),
		Excerpt:    r.FormValue("excerpt"),
		Content:    r.FormValue("content"),
		CoverImage: r.FormValue("cover_image"),
		Categories: r.Form["categories"],
	}

	p.Format = models.BodyFormat(r.FormValue("format"))
	if p.Format != models.BodyFormatHTML {
		p.Format = models.BodyFormatMarkdown
	}

	if errMsg := validatePost(p.Title, p.Slug); errMsg != "" {
		return p, errMsg
	}
	if errMsg := validateExcerpt(p.Excerpt); errMsg != "" {
		return p, errMsg
	}

	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	} else {
		p.Slug = slug.Generate(p.Slug)
	}

	return p, ""
}

// renderPostForm renders the post editor, re-listing categories and
// flagging posts close to the payload ceiling.
func (a *Admin) renderPostForm(w http.ResponseWriter, r *http.Request, title string, p *models.Post, isNew bool, errMsg string) {
	categories, err := a.taxonomyStore.List(models.TaxonomyCategory)
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	var flashes []render.Flash
	if errMsg != "" {
		flashes = append(flashes, render.Flash{Type: "error", Message: errMsg})
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Flashes: flashes,
		Data: map[string]any{
			"IsNew":          isNew,
			"Post":           p,
			"Categories":     categories,
			"PayloadWarning": p.PayloadSize() > models.WarnPayloadBytes,
		},
	})
}

// postSaveError maps store errors to a user-facing message.
func postSaveError(err error) string {
	if errors.Is(err, store.ErrPayloadTooLarge) {
		return "This post exceeds the 1,000,000-byte document limit and was not saved."
	}
	return "Failed to save. The slug may already be in use."
}
