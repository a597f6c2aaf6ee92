// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DongDongii/cce-game-guide/internal/banner"
	"github.com/DongDongii/cce-game-guide/internal/cache"
	"github.com/DongDongii/cce-game-guide/internal/logbuf"
	"github.com/DongDongii/cce-game-guide/internal/metrics"
	"github.com/DongDongii/cce-game-guide/internal/models"
	"github.com/DongDongii/cce-game-guide/internal/seo"
	"github.com/DongDongii/cce-game-guide/internal/slug"
	"github.com/DongDongii/cce-game-guide/internal/store"
)

// Admin groups the JSON API handlers behind the admin gate. Every
// mutation invalidates the page cache: any edit can change the
// homepage listing and the article page at once.
type Admin struct {
	articles  store.ArticleStore
	banners   *banner.Store
	logs      *logbuf.Buffer
	pageCache *cache.PageCache
	collector *metrics.Collector
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(articles store.ArticleStore, banners *banner.Store, logs *logbuf.Buffer, pageCache *cache.PageCache, collector *metrics.Collector) *Admin {
	return &Admin{
		articles:  articles,
		banners:   banners,
		logs:      logs,
		pageCache: pageCache,
		collector: collector,
	}
}

// ListArticles returns all published articles.
func (h *Admin) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListPublished(r.Context())
	if err != nil {
		slog.Error("list published failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list articles")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

// ListDrafts returns all draft articles.
func (h *Admin) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.articles.ListDrafts(r.Context())
	if err != nil {
		slog.Error("list drafts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list drafts")
		return
	}
	if drafts == nil {
		drafts = []models.Article{}
	}
	writeJSON(w, http.StatusOK, drafts)
}

// SaveArticle creates or updates an article. Field values are not
// validated: the editor is trusted and its input is saved as given.
// Missing id, empty slug, out-of-range priority, and unknown status
// fall back to defaults rather than being rejected. Derived fields
// are filled in server-side: slug from the title, extracted keywords
// from title and content, and SEO metadata defaults.
func (h *Admin) SaveArticle(w http.ResponseWriter, r *http.Request) {
	var a models.Article
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid article body")
		return
	}

	if a.Slug == "" {
		a.Slug = slug.Generate(a.Title)
	}
	a.Priority = models.ClampPriority(a.Priority)
	a.ExtractedKeywords = seo.ExtractKeywords(a.Title, a.Content)
	h.fillSEODefaults(&a)

	saved, err := h.articles.Save(r.Context(), &a)
	if err != nil {
		slog.Error("save article failed", "error", err, "id", a.ID)
		writeError(w, http.StatusInternalServerError, "could not save article")
		return
	}

	h.collector.RecordArticleSaved()
	h.pageCache.InvalidateAll(r.Context())
	slog.Info("article saved", "id", saved.ID, "status", saved.Status, "title", saved.Title)
	writeJSON(w, http.StatusOK, saved)
}

// fillSEODefaults derives missing SEO metadata from the article itself.
func (h *Admin) fillSEODefaults(a *models.Article) {
	if a.SEOMetadata.Title == "" {
		a.SEOMetadata.Title = a.Title
	}
	if len(a.SEOMetadata.Keywords) == 0 {
		a.SEOMetadata.Keywords = a.ExtractedKeywords
	}
	if a.SEOMetadata.OGTitle == "" {
		a.SEOMetadata.OGTitle = a.SEOMetadata.Title
	}
	if a.SEOMetadata.OGDescription == "" {
		a.SEOMetadata.OGDescription = a.SEOMetadata.Description
	}
}

// PublishDraft transitions a draft to published.
func (h *Admin) PublishDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.articles.PublishDraft(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "draft not found")
			return
		}
		slog.Error("publish draft failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not publish draft")
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	slog.Info("draft published", "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"published": true})
}

// DeleteArticle removes an article permanently.
func (h *Admin) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.articles.Delete(r.Context(), id); err != nil {
		slog.Error("delete article failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not delete article")
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	slog.Info("article deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ToggleActive flips an article's visibility.
func (h *Admin) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.articles.ToggleActive(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		slog.Error("toggle active failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not toggle article")
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	slog.Info("article visibility toggled", "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"toggled": true})
}

// Stats returns dashboard aggregates.
func (h *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.articles.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Logs returns the retained log entries, newest first.
func (h *Admin) Logs(w http.ResponseWriter, r *http.Request) {
	entries := h.logs.Recent()
	if entries == nil {
		entries = []logbuf.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// ClearLogs drops the retained log entries.
func (h *Admin) ClearLogs(w http.ResponseWriter, r *http.Request) {
	h.logs.Clear()
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// Banner returns the saved banner set (or the defaults).
func (h *Admin) Banner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.banners.Get(r.Context()))
}

// UpdateBanner replaces the banner set.
func (h *Admin) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var configs banner.Configs
	if err := json.NewDecoder(r.Body).Decode(&configs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid banner body")
		return
	}
	if len(configs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "at least one locale is required")
		return
	}

	if err := h.banners.Set(r.Context(), configs); err != nil {
		slog.Error("save banner failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save banner")
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	slog.Info("banner updated", "locales", len(configs))
	writeJSON(w, http.StatusOK, configs)
}

// LinkTargets returns the affiliate destination catalog.
func (h *Admin) LinkTargets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seo.LinkTargets)
}

// GenerateLinks builds the standard anchor link pair for a catalog
// target and a keyword, for the admin editor to insert into articles.
func (h *Admin) GenerateLinks(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	target, ok := seo.LinkTargetByKey(key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown link target")
		return
	}

	var req struct {
		Keyword string `json:"keyword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.Keyword == "" {
		writeError(w, http.StatusUnprocessableEntity, "keyword is required")
		return
	}

	writeJSON(w, http.StatusOK, seo.GenerateAffiliateLinks(target, req.Keyword))
}

// Categories returns the fixed category catalog.
func (h *Admin) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories)
}
