// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides article persistence. Two backends implement
// the ArticleStore interface: PostgresStore, the authoritative remote
// table, and MirrorStore, a Valkey-held copy used when the database is
// unreachable. Fallback composes the two with a remote-first policy so
// callers never deal with backend selection.
package store

import (
	"context"
	"errors"

	"github.com/DongDongii/cce-game-guide/internal/models"
)

// ErrNotFound is returned by id-keyed operations when no matching
// article exists.
var ErrNotFound = errors.New("article not found")

// Stats summarizes the article corpus for the admin dashboard.
type Stats struct {
	TotalPublished   int            `json:"totalPublished"`
	TotalDrafts      int            `json:"totalDrafts"`
	TotalAnchorLinks int            `json:"totalAnchorLinks"`
	CategoryCounts   map[string]int `json:"categoryCounts"`
}

// ZeroStats returns an empty but fully initialized Stats value, used
// when every backend fails.
func ZeroStats() Stats {
	return Stats{CategoryCounts: map[string]int{}}
}

// ArticleStore is the capability surface shared by every article
// backend. All business rules (sorting, stamping lastModified, slug
// handling) live in the domain packages; implementations only persist.
type ArticleStore interface {
	// ListPublished returns published articles ordered by priority
	// descending, then newest publish date first.
	ListPublished(ctx context.Context) ([]models.Article, error)

	// ListDrafts returns draft articles, most recently modified first.
	ListDrafts(ctx context.Context) ([]models.Article, error)

	// Save upserts an article keyed by id, assigning an id if missing
	// and stamping lastModified. Returns the stored article.
	Save(ctx context.Context, a *models.Article) (*models.Article, error)

	// PublishDraft transitions an article to published, stamping
	// publishDate and lastModified.
	PublishDraft(ctx context.Context, id string) error

	// Delete removes an article by id from every collection.
	Delete(ctx context.Context, id string) error

	// ToggleActive flips the isActive flag, re-stamping lastModified.
	ToggleActive(ctx context.Context, id string) error

	// GetByID returns an active article by id, or nil when the id is
	// unknown or the article is hidden.
	GetByID(ctx context.Context, id string) (*models.Article, error)

	// IncrementViewCount bumps the view counter for an article.
	IncrementViewCount(ctx context.Context, id string) error

	// Search returns active published articles matching the optional
	// query and category filters, in publication-rank order.
	Search(ctx context.Context, query, category string) ([]models.Article, error)

	// Stats aggregates corpus counts.
	Stats(ctx context.Context) (Stats, error)
}
