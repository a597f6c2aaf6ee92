// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/DongDongii/cce-game-guide/internal/models"
)

// articleColumns is the canonical select list. The table keeps the
// historical all-lowercase column names while the domain model uses
// camelCase, so every read and write maps explicitly.
const articleColumns = `id, title, slug, content, anchorlinks, seometadata,
	publishdate, lastmodified, status, priority, category, tags,
	isrecommended, extractedkeywords, isactive, viewcount`

// pgMap provides sql.Scanner adapters for Postgres array columns.
var pgMap = pgtype.NewMap()

// PostgresStore is the authoritative article backend, one row per
// article in the articles table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore with the given connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// scanArticle maps one row onto the domain shape, defaulting null JSON
// and array columns to empty structures.
func scanArticle(row interface{ Scan(...any) error }) (*models.Article, error) {
	var (
		a           models.Article
		anchorLinks []byte
		seoMeta     []byte
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &anchorLinks, &seoMeta,
		&a.PublishDate, &a.LastModified, &a.Status, &a.Priority, &a.Category,
		pgMap.SQLScanner(&a.Tags),
		&a.IsRecommended,
		pgMap.SQLScanner(&a.ExtractedKeywords),
		&a.IsActive, &a.ViewCount,
	)
	if err != nil {
		return nil, err
	}

	if len(anchorLinks) > 0 {
		if err := json.Unmarshal(anchorLinks, &a.AnchorLinks); err != nil {
			return nil, fmt.Errorf("decode anchorlinks: %w", err)
		}
	}
	if len(seoMeta) > 0 {
		if err := json.Unmarshal(seoMeta, &a.SEOMetadata); err != nil {
			return nil, fmt.Errorf("decode seometadata: %w", err)
		}
	}
	a.Normalize()
	return &a, nil
}

// scanArticles drains a result set through scanArticle.
func scanArticles(rows *sql.Rows) ([]models.Article, error) {
	defer rows.Close()
	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// ListPublished returns published articles ordered by priority
// descending, then newest publish date first.
func (s *PostgresStore) ListPublished(ctx context.Context) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE status = 'published'
		ORDER BY priority DESC, publishdate DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}
	return scanArticles(rows)
}

// ListDrafts returns draft articles, most recently modified first.
func (s *PostgresStore) ListDrafts(ctx context.Context) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE status = 'draft'
		ORDER BY lastmodified DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return scanArticles(rows)
}

// Save upserts an article keyed by id, assigning an id if missing and
// stamping lastModified. The stored row is mapped back and returned.
func (s *PostgresStore) Save(ctx context.Context, a *models.Article) (*models.Article, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, err := uuid.Parse(a.ID); err != nil {
		return nil, fmt.Errorf("save article: invalid id %q", a.ID)
	}
	a.Normalize()
	a.LastModified = time.Now()
	if a.PublishDate.IsZero() {
		a.PublishDate = a.LastModified
	}

	anchorLinks, err := json.Marshal(a.AnchorLinks)
	if err != nil {
		return nil, fmt.Errorf("encode anchorlinks: %w", err)
	}
	seoMeta, err := json.Marshal(a.SEOMetadata)
	if err != nil {
		return nil, fmt.Errorf("encode seometadata: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			content = EXCLUDED.content,
			anchorlinks = EXCLUDED.anchorlinks,
			seometadata = EXCLUDED.seometadata,
			publishdate = EXCLUDED.publishdate,
			lastmodified = EXCLUDED.lastmodified,
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			isrecommended = EXCLUDED.isrecommended,
			extractedkeywords = EXCLUDED.extractedkeywords,
			isactive = EXCLUDED.isactive,
			viewcount = EXCLUDED.viewcount
		RETURNING `+articleColumns+`
	`, a.ID, a.Title, a.Slug, a.Content, string(anchorLinks), string(seoMeta),
		a.PublishDate, a.LastModified, a.Status, a.Priority, a.Category, a.Tags,
		a.IsRecommended, a.ExtractedKeywords, a.IsActive, a.ViewCount)

	saved, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	return saved, nil
}

// PublishDraft transitions an article to published, stamping
// publishDate and lastModified. Returns ErrNotFound for unknown ids.
func (s *PostgresStore) PublishDraft(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles
		SET status = 'published', publishdate = NOW(), lastmodified = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("publish draft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an article by id. Deleting an unknown id is not an error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// ToggleActive flips isActive in a single conditional update, so
// concurrent toggles cannot race a read-then-write window.
func (s *PostgresStore) ToggleActive(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles
		SET isactive = NOT isactive, lastmodified = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("toggle active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns an active article by id. Returns nil (not an error)
// when the id is unknown, malformed, or the article is hidden.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE id = $1 AND isactive = TRUE
	`, id)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article by id: %w", err)
	}
	return a, nil
}

// IncrementViewCount invokes the server-side counter procedure, which
// performs the increment atomically.
func (s *PostgresStore) IncrementViewCount(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	if _, err := s.db.ExecContext(ctx, `SELECT increment_view_count($1)`, id); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// Search filters active published articles server-side: ILIKE substring
// match across title, content, and SEO description; exact category
// match; publication-rank ordering.
func (s *PostgresStore) Search(ctx context.Context, query, category string) ([]models.Article, error) {
	q := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE isactive = TRUE AND status = 'published'`
	args := []any{}

	if query != "" {
		args = append(args, "%"+query+"%")
		n := fmt.Sprintf("$%d", len(args))
		q += ` AND (title ILIKE ` + n + ` OR content ILIKE ` + n + ` OR seometadata->>'description' ILIKE ` + n + `)`
	}
	if category != "" {
		args = append(args, category)
		q += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	q += ` ORDER BY isrecommended DESC, priority DESC, publishdate DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return scanArticles(rows)
}

// Stats runs two aggregate queries and combines them client-side.
func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	stats := ZeroStats()

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COALESCE(jsonb_array_length(anchorlinks), 0)
		FROM articles
		WHERE status = 'published'
	`)
	if err != nil {
		return ZeroStats(), fmt.Errorf("stats published: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var links int
		if err := rows.Scan(&category, &links); err != nil {
			return ZeroStats(), fmt.Errorf("stats scan: %w", err)
		}
		stats.TotalPublished++
		stats.TotalAnchorLinks += links
		stats.CategoryCounts[category]++
	}
	if err := rows.Err(); err != nil {
		return ZeroStats(), fmt.Errorf("stats published: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE status = 'draft'`,
	).Scan(&stats.TotalDrafts); err != nil {
		return ZeroStats(), fmt.Errorf("stats drafts: %w", err)
	}

	return stats, nil
}
