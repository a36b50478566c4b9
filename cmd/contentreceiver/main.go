// Package main is the entry point for the content receiver server.
// It loads configuration, connects to services, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contentreceiver/internal/cache"
	"contentreceiver/internal/config"
	"contentreceiver/internal/database"
	"contentreceiver/internal/ingest"
	"contentreceiver/internal/middleware"
	"contentreceiver/internal/router"
	"contentreceiver/internal/storage"
	"contentreceiver/internal/store"
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
		"auth_enabled", cfg.APIKey != "",
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

	// Seed baseline data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the category lookup cache. Optional — the
	// resolver falls back to database lookups without it.
	var categoryCache *cache.CategoryCache
	if cfg.HasValkey() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		categoryCache = cache.NewCategoryCache(valkeyClient, cache.DefaultCategoryTTL)
		slog.Info("valkey connected", "host", cfg.ValkeyHost)
	} else {
		slog.Info("valkey not configured — category cache disabled")
	}

	// Initialize data stores.
	contentStore := store.NewContentStore(db, cfg.SiteBaseURL)
	categoryStore := store.NewCategoryStore(db)
	attachmentStore := store.NewAttachmentStore(db)

	// Connect to S3-compatible object storage. Optional — without it,
	// featured images are skipped and posts are created without covers.
	var media ingest.MediaFetcher
	if cfg.HasStorage() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", storageClient.Bucket(),
			)
			media = ingest.NewMediaAcquirer(storageClient, attachmentStore, cfg.ImageFetchTimeout)
		}
	} else {
		slog.Warn("s3 storage not configured — featured images disabled")
	}

	// Wire the ingestion pipeline.
	resolver := ingest.NewCategoryResolver(categoryStore, categoryCache)
	service := ingest.NewService(contentStore, resolver, media, cfg.DefaultAuthorID)
	webhook := ingest.NewHandler(ingest.NewAuthenticator(cfg.APIKey), service)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	r := router.New(webhook, limiter)

	// WriteTimeout must accommodate media sideloading, which downloads
	// the featured image inside the request.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.ImageFetchTimeout + 15*time.Second,
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
