// handler_test.go provides shared fakes and fixtures for handler tests.
// Handlers are exercised without Postgres or Valkey: the article store
// is an in-memory fake, and the Valkey-backed collaborators run against
// an unreachable client, exercising their fail-soft paths.
package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/DongDongii/cce-game-guide/internal/banner"
	"github.com/DongDongii/cce-game-guide/internal/cache"
	"github.com/DongDongii/cce-game-guide/internal/logbuf"
	"github.com/DongDongii/cce-game-guide/internal/metrics"
	"github.com/DongDongii/cce-game-guide/internal/models"
	"github.com/DongDongii/cce-game-guide/internal/render"
	"github.com/DongDongii/cce-game-guide/internal/seo"
	"github.com/DongDongii/cce-game-guide/internal/store"
)

// fakeArticles is an in-memory ArticleStore for handler tests. The
// views map gets its own lock: view increments run on a background
// goroutine while tests poll for them.
type fakeArticles struct {
	err      error
	articles map[string]*models.Article

	viewMu sync.Mutex
	views  map[string]int
}

func newFakeArticles() *fakeArticles {
	return &fakeArticles{
		articles: make(map[string]*models.Article),
		views:    make(map[string]int),
	}
}

func (f *fakeArticles) put(a *models.Article) {
	copied := *a
	f.articles[a.ID] = &copied
}

func (f *fakeArticles) list(status models.ArticleStatus) []models.Article {
	var out []models.Article
	for _, a := range f.articles {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out
}

func (f *fakeArticles) ListPublished(ctx context.Context) ([]models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list(models.StatusPublished), nil
}

func (f *fakeArticles) ListDrafts(ctx context.Context) ([]models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list(models.StatusDraft), nil
}

func (f *fakeArticles) Save(ctx context.Context, a *models.Article) (*models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a.ID == "" {
		a.ID = "generated-id"
	}
	a.Normalize()
	a.LastModified = time.Now()
	f.put(a)
	copied := *a
	return &copied, nil
}

func (f *fakeArticles) PublishDraft(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	a, ok := f.articles[id]
	if !ok || a.Status != models.StatusDraft {
		return store.ErrNotFound
	}
	a.Status = models.StatusPublished
	a.PublishDate = time.Now()
	return nil
}

func (f *fakeArticles) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeArticles) ToggleActive(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	a, ok := f.articles[id]
	if !ok {
		return store.ErrNotFound
	}
	a.IsActive = !a.IsActive
	return nil
}

func (f *fakeArticles) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.articles[id]
	if !ok || !a.IsActive {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeArticles) IncrementViewCount(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.viewMu.Lock()
	f.views[id]++
	f.viewMu.Unlock()
	return nil
}

func (f *fakeArticles) viewCount(id string) int {
	f.viewMu.Lock()
	defer f.viewMu.Unlock()
	return f.views[id]
}

func (f *fakeArticles) Search(ctx context.Context, query, category string) ([]models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	items := f.list(models.StatusPublished)
	active := items[:0:0]
	for _, a := range items {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return seo.FilterByQueryAndCategory(active, query, category), nil
}

func (f *fakeArticles) Stats(ctx context.Context) (store.Stats, error) {
	if f.err != nil {
		return store.ZeroStats(), f.err
	}
	stats := store.ZeroStats()
	for _, a := range f.articles {
		switch a.Status {
		case models.StatusPublished:
			stats.TotalPublished++
			stats.TotalAnchorLinks += len(a.AnchorLinks)
			stats.CategoryCounts[a.Category]++
		case models.StatusDraft:
			stats.TotalDrafts++
		}
	}
	return stats, nil
}

// deadValkey returns a client pointing nowhere, so Valkey-backed
// collaborators exercise their fail-soft paths.
func deadValkey() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func testCollector() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}

func testPublic(t *testing.T, articles store.ArticleStore) *Public {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	client := deadValkey()
	t.Cleanup(func() { client.Close() })
	return NewPublic(
		renderer,
		articles,
		banner.NewStore(client),
		cache.NewPageCache(client, time.Minute),
		testCollector(),
		"http://localhost:8080",
		true,
	)
}

func testAdmin(t *testing.T, articles store.ArticleStore, logs *logbuf.Buffer) *Admin {
	t.Helper()
	client := deadValkey()
	t.Cleanup(func() { client.Close() })
	if logs == nil {
		logs = logbuf.NewBuffer(10)
	}
	return NewAdmin(
		articles,
		banner.NewStore(client),
		logs,
		cache.NewPageCache(client, time.Minute),
		testCollector(),
	)
}

// publishedArticle returns a published, active article with an id.
func publishedArticle(id, title string) *models.Article {
	a := models.NewArticle()
	a.ID = id
	a.Title = title
	a.Slug = "slug-" + id
	a.Content = "# " + title + "\nSome body content."
	a.Status = models.StatusPublished
	return a
}
