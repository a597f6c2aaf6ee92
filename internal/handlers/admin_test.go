package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/DongDongii/cce-game-guide/internal/logbuf"
	"github.com/DongDongii/cce-game-guide/internal/models"
)

func adminRouter(h *Admin) http.Handler {
	r := chi.NewRouter()
	r.Get("/admin/api/articles", h.ListArticles)
	r.Get("/admin/api/drafts", h.ListDrafts)
	r.Post("/admin/api/articles", h.SaveArticle)
	r.Post("/admin/api/articles/{id}/publish", h.PublishDraft)
	r.Delete("/admin/api/articles/{id}", h.DeleteArticle)
	r.Post("/admin/api/articles/{id}/toggle", h.ToggleActive)
	r.Get("/admin/api/stats", h.Stats)
	r.Get("/admin/api/logs", h.Logs)
	r.Delete("/admin/api/logs", h.ClearLogs)
	r.Get("/admin/api/banner", h.Banner)
	r.Put("/admin/api/banner", h.UpdateBanner)
	r.Get("/admin/api/link-targets", h.LinkTargets)
	r.Post("/admin/api/link-targets/{key}/generate", h.GenerateLinks)
	r.Get("/admin/api/categories", h.Categories)
	return r
}

func TestSaveArticleDerivesFields(t *testing.T) {
	articles := newFakeArticles()
	h := testAdmin(t, articles, nil)

	body := `{"title":"Gold Farming Routes","content":"# Routes\nGold farming needs patience and gold farming routes.","category":"game-currency","status":"draft","priority":22}`
	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var saved models.Article
	if err := json.NewDecoder(w.Body).Decode(&saved); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected assigned id")
	}
	if saved.Slug != "gold-farming-routes" {
		t.Errorf("slug: got %q", saved.Slug)
	}
	if saved.Priority != models.MaxPriority {
		t.Errorf("priority: got %d, want clamped to %d", saved.Priority, models.MaxPriority)
	}
	if len(saved.ExtractedKeywords) == 0 || saved.ExtractedKeywords[0] != "gold" {
		t.Errorf("extractedKeywords: got %v", saved.ExtractedKeywords)
	}
	if saved.SEOMetadata.Title != "Gold Farming Routes" {
		t.Errorf("seo title default: got %q", saved.SEOMetadata.Title)
	}
}

func TestSaveArticleAcceptsAnyFieldValues(t *testing.T) {
	// The editor is trusted: empty titles, unknown categories, and the
	// like are saved as given, never rejected.
	articles := newFakeArticles()
	h := testAdmin(t, articles, nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty title", `{"title":"","content":"some body","category":"other"}`},
		{"empty content", `{"title":"Untitled Draft","content":""}`},
		{"unknown category", `{"title":"x","content":"y","category":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles", strings.NewReader(tt.body)))
			if w.Code != http.StatusOK {
				t.Errorf("got %d, want 200 (%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestSaveArticleDefaultsUnknownStatus(t *testing.T) {
	articles := newFakeArticles()
	h := testAdmin(t, articles, nil)

	body := `{"title":"Strange Status","content":"body","status":"pending"}`
	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 (%s)", w.Code, w.Body.String())
	}

	var saved models.Article
	if err := json.NewDecoder(w.Body).Decode(&saved); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if saved.Status != models.StatusDraft {
		t.Errorf("status: got %q, want fallback to %q", saved.Status, models.StatusDraft)
	}
}

func TestSaveArticleMalformedBody(t *testing.T) {
	h := testAdmin(t, newFakeArticles(), nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles", strings.NewReader("{broken")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed json: got %d, want 400", w.Code)
	}
}

func TestPublishDraftFlow(t *testing.T) {
	articles := newFakeArticles()
	draft := publishedArticle("d1", "Draft Guide")
	draft.Status = models.StatusDraft
	articles.put(draft)
	h := testAdmin(t, articles, nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles/d1/publish", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("publish: got %d", w.Code)
	}
	if articles.articles["d1"].Status != models.StatusPublished {
		t.Error("draft not transitioned to published")
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles/missing/publish", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown draft: got %d, want 404", w.Code)
	}
}

func TestDeleteAndToggle(t *testing.T) {
	articles := newFakeArticles()
	articles.put(publishedArticle("a1", "Guide"))
	h := testAdmin(t, articles, nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles/a1/toggle", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: got %d", w.Code)
	}
	if articles.articles["a1"].IsActive {
		t.Error("expected article toggled inactive")
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("DELETE", "/admin/api/articles/a1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d", w.Code)
	}
	if _, ok := articles.articles["a1"]; ok {
		t.Error("expected article deleted")
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/articles/a1/toggle", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("toggle deleted: got %d, want 404", w.Code)
	}
}

func TestListEndpoints(t *testing.T) {
	articles := newFakeArticles()
	articles.put(publishedArticle("a1", "Published"))
	draft := publishedArticle("d1", "Draft")
	draft.Status = models.StatusDraft
	articles.put(draft)
	h := testAdmin(t, articles, nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/articles", nil))
	var published []models.Article
	json.NewDecoder(w.Body).Decode(&published)
	if len(published) != 1 || published[0].Title != "Published" {
		t.Errorf("articles: got %+v", published)
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/drafts", nil))
	var drafts []models.Article
	json.NewDecoder(w.Body).Decode(&drafts)
	if len(drafts) != 1 || drafts[0].Title != "Draft" {
		t.Errorf("drafts: got %+v", drafts)
	}
}

func TestStatsEndpoint(t *testing.T) {
	articles := newFakeArticles()
	a := publishedArticle("a1", "Guide")
	a.Category = "game-items"
	a.AnchorLinks = []models.AnchorLink{{ID: "l1"}, {ID: "l2"}}
	articles.put(a)
	h := testAdmin(t, articles, nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/stats", nil))

	body := w.Body.String()
	for _, want := range []string{`"totalPublished":1`, `"totalAnchorLinks":2`, `"game-items":1`} {
		if !strings.Contains(body, want) {
			t.Errorf("stats body missing %s: %s", want, body)
		}
	}
}

func TestLogsEndpoints(t *testing.T) {
	logs := logbuf.NewBuffer(10)
	log := slog.New(logbuf.NewHandler(slog.NewTextHandler(io.Discard, nil), logs))
	log.Info("article saved", "id", "a1")

	h := testAdmin(t, newFakeArticles(), logs)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/logs", nil))
	if !strings.Contains(w.Body.String(), "article saved") {
		t.Errorf("logs body: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("DELETE", "/admin/api/logs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("clear logs: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/logs", nil))
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("logs after clear: %s", got)
	}
}

func TestBannerDefaults(t *testing.T) {
	h := testAdmin(t, newFakeArticles(), nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/banner", nil))
	if !strings.Contains(w.Body.String(), "GMYGM") {
		t.Errorf("banner body: %s", w.Body.String())
	}

	// Empty payloads are rejected before touching storage.
	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("PUT", "/admin/api/banner", strings.NewReader("{}")))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty banner: got %d, want 422", w.Code)
	}
}

func TestLinkTargetEndpoints(t *testing.T) {
	h := testAdmin(t, newFakeArticles(), nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/link-targets", nil))
	if !strings.Contains(w.Body.String(), `"gmygm-items"`) {
		t.Errorf("link targets: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/link-targets/gmygm/generate", strings.NewReader(`{"keyword":"POE Currency"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("generate: got %d", w.Code)
	}
	var links []models.AnchorLink
	json.NewDecoder(w.Body).Decode(&links)
	if len(links) != 2 {
		t.Fatalf("generated links: got %d, want 2", len(links))
	}
	if links[0].URL != "https://www.gmygm.com/poe-currency" {
		t.Errorf("link url: got %q", links[0].URL)
	}
	if links[0].Rel != "sponsored" {
		t.Errorf("link rel: got %q", links[0].Rel)
	}

	w = httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("POST", "/admin/api/link-targets/unknown/generate", strings.NewReader(`{"keyword":"x"}`)))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown target: got %d, want 404", w.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	h := testAdmin(t, newFakeArticles(), nil)

	w := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/categories", nil))
	for _, want := range []string{"gaming-guides", "game-currency", "#3B82F6"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("categories missing %s", want)
		}
	}
}
