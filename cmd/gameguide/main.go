// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the game guide server. It loads
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

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/DongDongii/cce-game-guide/internal/banner"
	"github.com/DongDongii/cce-game-guide/internal/cache"
	"github.com/DongDongii/cce-game-guide/internal/config"
	"github.com/DongDongii/cce-game-guide/internal/database"
	"github.com/DongDongii/cce-game-guide/internal/handlers"
	"github.com/DongDongii/cce-game-guide/internal/logbuf"
	"github.com/DongDongii/cce-game-guide/internal/metrics"
	"github.com/DongDongii/cce-game-guide/internal/middleware"
	"github.com/DongDongii/cce-game-guide/internal/render"
	"github.com/DongDongii/cce-game-guide/internal/router"
	"github.com/DongDongii/cce-game-guide/internal/session"
	"github.com/DongDongii/cce-game-guide/internal/store"
)

func main() {
	// Structured logger, teed into the in-memory buffer the admin logs
	// view reads from.
	logBuffer := logbuf.NewBuffer(logbuf.DefaultCapacity)
	logger := slog.New(logbuf.NewHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		logBuffer,
	))
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

	// Connect to PostgreSQL — the authoritative article store.
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

	// Connect to Valkey (page cache, sessions, banner, and the article
	// mirror the site falls back to when Postgres is unreachable).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Metrics registry and collector.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Article store: Postgres first, Valkey mirror on failure.
	articles := store.NewFallback(
		store.NewPostgresStore(db),
		store.NewMirrorStore(valkeyClient),
		collector,
		logger,
	)

	// Initialize session store backed by Valkey. In non-development
	// environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Hash the admin password once at startup; login compares against
	// the hash, never the plaintext.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash admin password", "error", err)
		os.Exit(1)
	}

	// Initialize the HTML template renderer for the public site.
	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Full-page HTML cache in Valkey.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Localized promo banner configuration, also in Valkey.
	bannerStore := banner.NewStore(valkeyClient)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(renderer, articles, bannerStore, pageCache, collector, cfg.BaseURL, cfg.SanitizeContent)
	authHandlers := handlers.NewAuth(sessionStore, passwordHash)
	adminHandlers := handlers.NewAdmin(articles, bannerStore, logBuffer, pageCache, collector)

	// Brute-force protection on the login endpoint.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, collector, registry, loginLimiter, publicHandlers, authHandlers, adminHandlers)

	// Create the HTTP server with sensible timeouts.
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

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
