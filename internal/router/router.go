// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// game guide site. It organizes routes into the public site and the
// admin JSON API with appropriate middleware stacks.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DongDongii/cce-game-guide/internal/handlers"
	"github.com/DongDongii/cce-game-guide/internal/metrics"
	"github.com/DongDongii/cce-game-guide/internal/middleware"
	"github.com/DongDongii/cce-game-guide/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The login limiter applies only to the
// login endpoint; callers own its lifecycle.
func New(
	sessionStore *session.Store,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
	loginLimiter *middleware.RateLimiter,
	public *handlers.Public,
	auth *handlers.Auth,
	admin *handlers.Admin,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Operational endpoints — no auth, no CSRF.
	r.Get("/health", public.Health)
	r.Get("/metrics", metrics.Handler(gatherer).ServeHTTP)

	// Admin JSON API — CSRF on everything, auth on everything except
	// login and the session probe.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.CSRF)

		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Get("/session", auth.Session)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/logout", auth.Logout)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", admin.ListArticles)
				r.Post("/", admin.SaveArticle)
				r.Post("/{id}/publish", admin.PublishDraft)
				r.Post("/{id}/toggle", admin.ToggleActive)
				r.Delete("/{id}", admin.DeleteArticle)
			})
			r.Get("/drafts", admin.ListDrafts)

			r.Get("/stats", admin.Stats)
			r.Get("/logs", admin.Logs)
			r.Delete("/logs", admin.ClearLogs)

			r.Get("/banner", admin.Banner)
			r.Put("/banner", admin.UpdateBanner)

			r.Get("/link-targets", admin.LinkTargets)
			r.Post("/link-targets/{key}/generate", admin.GenerateLinks)

			r.Get("/categories", admin.Categories)
		})
	})

	// Public site.
	r.Get("/", public.Homepage)
	r.Get("/article/{id}", public.Article)
	r.Get("/robots.txt", public.RobotsTxt)
	r.Get("/sitemap.xml", public.Sitemap)
	r.NotFound(public.NotFound)

	return r
}
