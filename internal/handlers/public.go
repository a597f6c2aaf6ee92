// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DongDongii/cce-game-guide/internal/banner"
	"github.com/DongDongii/cce-game-guide/internal/cache"
	"github.com/DongDongii/cce-game-guide/internal/markdown"
	"github.com/DongDongii/cce-game-guide/internal/metrics"
	"github.com/DongDongii/cce-game-guide/internal/models"
	"github.com/DongDongii/cce-game-guide/internal/render"
	"github.com/DongDongii/cce-game-guide/internal/store"
)

// Public groups handlers for the public-facing site. It checks the
// Valkey page cache before querying the store and rendering, and
// stores rendered results on miss.
type Public struct {
	renderer  *render.Renderer
	articles  store.ArticleStore
	banners   *banner.Store
	pageCache *cache.PageCache
	collector *metrics.Collector
	baseURL   string
	sanitize  bool
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, articles store.ArticleStore, banners *banner.Store, pageCache *cache.PageCache, collector *metrics.Collector, baseURL string, sanitize bool) *Public {
	return &Public{
		renderer:  renderer,
		articles:  articles,
		banners:   banners,
		pageCache: pageCache,
		collector: collector,
		baseURL:   strings.TrimRight(baseURL, "/"),
		sanitize:  sanitize,
	}
}

// renderBody turns stored Markdown into display HTML, optionally
// passing it through the sanitizer.
func (p *Public) renderBody(source string) template.HTML {
	out := markdown.ToHTML(source)
	if p.sanitize {
		out = markdown.Sanitize(out)
	}
	return template.HTML(out)
}

// serveCached writes a cached page if one exists.
func (p *Public) serveCached(ctx context.Context, w http.ResponseWriter, key string) bool {
	cached, ok := p.pageCache.Get(ctx, key)
	if !ok {
		return false
	}
	p.collector.RecordPageCacheHit()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// Homepage renders the article listing, optionally filtered by a
// search query (?q=) and category (?category=).
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	locale := r.URL.Query().Get("locale")

	cacheKey := cache.HomepageKey(query, category)
	cacheable := locale == "" || locale == banner.DefaultLocale
	if cacheable && p.serveCached(ctx, w, cacheKey) {
		return
	}

	articles, err := p.articles.Search(ctx, query, category)
	if err != nil {
		slog.Error("search articles failed", "error", err, "query", query)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	views := make([]render.ArticleView, 0, len(articles))
	for _, a := range articles {
		// Listing cards show the SEO description, not the body.
		views = append(views, render.NewArticleView(a, ""))
	}

	data := &render.PageData{
		Title:       "Game Guide Hub - Guides, Currency & Item Tips",
		Description: "Professional gaming guides: currency farming, item trading, account safety and boosting tips.",
		Canonical:   p.baseURL + "/",
		Banner:      p.banners.ForLocale(ctx, locale),
		Articles:    views,
		Query:       query,
		Category:    category,
	}

	html, err := p.renderer.Page("home", data)
	if err != nil {
		slog.Error("render homepage failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheable {
		p.pageCache.Set(ctx, cacheKey, html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Article renders one article detail page by id. Unknown, hidden, and
// malformed ids all render the not-found page. View counting happens
// in the background so a slow store never delays the response.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	locale := r.URL.Query().Get("locale")

	cacheKey := cache.ArticleKey(id)
	cacheable := locale == "" || locale == banner.DefaultLocale
	if cacheable && p.serveCached(ctx, w, cacheKey) {
		p.countView(id)
		return
	}

	article, err := p.articles.GetByID(ctx, id)
	if err != nil {
		slog.Error("get article failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		p.notFound(w, r)
		return
	}

	view := render.NewArticleView(*article, p.renderBody(article.Content))

	title := article.SEOMetadata.Title
	if title == "" {
		title = article.Title
	}
	data := &render.PageData{
		Title:       title,
		Description: article.SEOMetadata.Description,
		Canonical:   p.canonicalFor(article),
		Banner:      p.banners.ForLocale(ctx, locale),
		Article:     &view,
	}

	html, err := p.renderer.Page("article", data)
	if err != nil {
		slog.Error("render article failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheable {
		p.pageCache.Set(ctx, cacheKey, html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)

	p.countView(article.ID)
}

// countView bumps the view counter in the background. Failures are
// logged and dropped; a page view is never worth an error response.
func (p *Public) countView(id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.articles.IncrementViewCount(ctx, id); err != nil {
			slog.Warn("view count increment failed", "error", err, "id", id)
			return
		}
		p.collector.RecordViewIncrement()
	}()
}

// canonicalFor prefers the article's explicit canonical URL.
func (p *Public) canonicalFor(a *models.Article) string {
	if a.SEOMetadata.Canonical != "" {
		return a.SEOMetadata.Canonical
	}
	return fmt.Sprintf("%s/article/%s", p.baseURL, a.ID)
}

// notFound renders the styled 404 page.
func (p *Public) notFound(w http.ResponseWriter, r *http.Request) {
	html, err := p.renderer.Page("notfound", &render.PageData{
		Title:  "Guide not found",
		Banner: p.banners.ForLocale(r.Context(), r.URL.Query().Get("locale")),
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(html)
}

// NotFound is the router's catch-all handler.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, r)
}

// RobotsTxt serves the crawler policy. The admin API is disallowed,
// everything public is open, and the sitemap is advertised.
func (p *Public) RobotsTxt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", p.baseURL)
}

// Sitemap serves an XML sitemap of the homepage and every active
// published article.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	articles, err := p.articles.Search(r.Context(), "", "")
	if err != nil {
		slog.Error("sitemap listing failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	fmt.Fprintf(&sb, "  <url><loc>%s/</loc></url>\n", p.baseURL)
	for _, a := range articles {
		fmt.Fprintf(&sb, "  <url><loc>%s/article/%s</loc><lastmod>%s</lastmod></url>\n",
			p.baseURL, a.ID, a.LastModified.Format("2006-01-02"))
	}
	sb.WriteString("</urlset>\n")

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(sb.String()))
}

// Health reports service liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
