// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"hexphyre/internal/cache"
	"hexphyre/internal/database"
	"hexphyre/internal/middleware"
	"hexphyre/internal/render"
	"hexphyre/internal/session"
	"hexphyre/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "hexphyre")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "hexphyre")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB             *sql.DB
	Valkey         *redis.Client
	Renderer       *render.Renderer
	Site           *render.SiteRenderer
	Sessions       *session.Store
	PostStore      *store.PostStore
	TaxonomyStore  *store.TaxonomyStore
	SettingsStore  *store.SettingsStore
	UserStore      *store.UserStore
	AnalyticsStore *store.AnalyticsStore
	MediaStore     *store.MediaStore
	PageCache      *cache.PageCache
	Admin          *Admin
	Auth           *Auth
	Public         *Public
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	site, err := render.NewSite(true)
	if err != nil {
		t.Fatalf("render.NewSite: %v", err)
	}

	sessions := session.NewStore(vk, false)
	postStore := store.NewPostStore(db)
	taxonomyStore := store.NewTaxonomyStore(db)
	settingsStore := store.NewSettingsStore(db)
	userStore := store.NewUserStore(db)
	analyticsStore := store.NewAnalyticsStore(db)
	mediaStore := store.NewMediaStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	admin := NewAdmin(renderer, sessions, postStore, taxonomyStore, settingsStore,
		userStore, analyticsStore, mediaStore, nil, pageCache)
	auth := NewAuth(renderer, sessions, userStore)
	public := NewPublic(site, postStore, settingsStore, analyticsStore, pageCache,
		"https://hexphyre.test")

	return &testEnv{
		DB:             db,
		Valkey:         vk,
		Renderer:       renderer,
		Site:           site,
		Sessions:       sessions,
		PostStore:      postStore,
		TaxonomyStore:  taxonomyStore,
		SettingsStore:  settingsStore,
		UserStore:      userStore,
		AnalyticsStore: analyticsStore,
		MediaStore:     mediaStore,
		PageCache:      pageCache,
		Admin:          admin,
		Auth:           auth,
		Public:         public,
	}
}

// seedUserID returns the id of any existing user, skipping when the
// database has not been seeded.
func (e *testEnv) seedUserID(t *testing.T) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := e.DB.QueryRow("SELECT id FROM users LIMIT 1").Scan(&id); err != nil {
		t.Skipf("skipping: no users in database, run seed first: %v", err)
	}
	return id
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanPosts removes test posts by slug.
func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM posts WHERE slug = $1", s)
	}
}

// cleanTaxonomies removes test taxonomies by name.
func cleanTaxonomies(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		db.Exec("DELETE FROM taxonomies WHERE name = $1", n)
	}
}

// cleanUsers removes test users by email.
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, e := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", e)
	}
}
