// Package main is the entry point for the Hexphyre server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hexphyre/internal/cache"
	"hexphyre/internal/config"
	"hexphyre/internal/database"
	"hexphyre/internal/handlers"
	"hexphyre/internal/render"
	"hexphyre/internal/router"
	"hexphyre/internal/session"
	"hexphyre/internal/storage"
	"hexphyre/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible sessions + page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store backed by Valkey. Outside development, session and
	// CSRF cookies are HTTPS-only.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Template renderers. In dev mode pages load assets from CDN; in
	// production they use compiled local files embedded in the binary.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize admin renderer", "error", err)
		os.Exit(1)
	}
	siteRenderer, err := render.NewSite(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize site renderer", "error", err)
		os.Exit(1)
	}

	// Data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	taxonomyStore := store.NewTaxonomyStore(db)
	settingsStore := store.NewSettingsStore(db)
	analyticsStore := store.NewAnalyticsStore(db)
	mediaStore := store.NewMediaStore(db)

	// S3-compatible object storage (optional; the app works without it).
	var storageClient *storage.Client
	if cfg.HasStorage() {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Full-page HTML cache in Valkey.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Handler groups.
	adminHandlers := handlers.NewAdmin(renderer, sessionStore, postStore, taxonomyStore,
		settingsStore, userStore, analyticsStore, mediaStore, storageClient, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	publicHandlers := handlers.NewPublic(siteRenderer, postStore, settingsStore,
		analyticsStore, pageCache, cfg.SiteURL)

	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, secureCookies)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
