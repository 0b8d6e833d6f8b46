// Package router sets up all HTTP routes and middleware chains for the
// Hexphyre site. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hexphyre/internal/handlers"
	"hexphyre/internal/middleware"
	"hexphyre/internal/session"
	"hexphyre/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. secure controls the Secure flag on CSRF
// cookies and should be true outside development.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, secure bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets for the admin UI in production mode.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Login attempts are rate limited per client IP.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Admin routes. CSRF protection covers the whole group.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secure))

		// Auth pages, accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA requires a password session but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated, 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Get("/new", admin.PostNew)
				r.Post("/", admin.PostCreate)
				r.Get("/{id}", admin.PostEdit)
				r.Post("/{id}", admin.PostUpdate)
				r.Delete("/{id}", admin.PostDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesPage)
				r.Post("/", admin.CategoryCreate)
				r.Post("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", admin.TagsPage)
				r.Post("/", admin.TagCreate)
				r.Post("/{id}", admin.TagUpdate)
				r.Delete("/{id}", admin.TagDelete)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", admin.MediaPage)
				r.Post("/", admin.MediaUpload)
				r.Delete("/{id}", admin.MediaDelete)
			})

			r.Get("/settings", admin.SettingsPage)
			r.Post("/settings", admin.SettingsSave)
		})
	})

	// Public site.
	r.Get("/", public.Home)
	r.Get("/projects", public.Projects)
	r.Get("/blog/{slug}", public.PostPage)
	r.Get("/sitemap.xml", public.Sitemap)
	r.NotFound(public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
