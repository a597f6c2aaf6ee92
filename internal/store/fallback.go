// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DongDongii/cce-game-guide/internal/models"
)

// MirrorBackend is the mirror side of the dual store: a full
// ArticleStore plus wholesale replacement for reconciliation.
type MirrorBackend interface {
	ArticleStore
	ReplaceAll(ctx context.Context, published bool, items []models.Article) error
}

// FallbackObserver receives a signal each time the remote backend
// fails and the mirror serves in its place.
type FallbackObserver interface {
	ObserveStoreFallback(op string)
}

// Fallback is the dual store. Every operation tries the remote backend
// first; when the remote fails the mirror answers instead, so a
// database outage degrades reads to the last mirrored copy rather than
// erroring pages. Successful remote reads refresh the mirror, and
// every successful write is echoed into it.
type Fallback struct {
	remote   ArticleStore
	mirror   MirrorBackend
	observer FallbackObserver
	log      *slog.Logger
}

// NewFallback wires the dual store. observer may be nil.
func NewFallback(remote ArticleStore, mirror MirrorBackend, observer FallbackObserver, log *slog.Logger) *Fallback {
	return &Fallback{remote: remote, mirror: mirror, observer: observer, log: log}
}

func (f *Fallback) failover(ctx context.Context, op string, err error) {
	f.log.WarnContext(ctx, "remote store failed, serving mirror", "op", op, "error", err)
	if f.observer != nil {
		f.observer.ObserveStoreFallback(op)
	}
}

// refresh mirrors a successful remote list. Mirror write failures are
// logged and swallowed: the remote answer is already in hand.
func (f *Fallback) refresh(ctx context.Context, published bool, items []models.Article) {
	if err := f.mirror.ReplaceAll(ctx, published, items); err != nil {
		f.log.WarnContext(ctx, "mirror refresh failed", "published", published, "error", err)
	}
}

// echo replays a successful remote write onto the mirror.
func (f *Fallback) echo(ctx context.Context, op string, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		f.log.WarnContext(ctx, "mirror echo failed", "op", op, "error", err)
	}
}

func (f *Fallback) ListPublished(ctx context.Context) ([]models.Article, error) {
	items, err := f.remote.ListPublished(ctx)
	if err != nil {
		f.failover(ctx, "list_published", err)
		return f.mirror.ListPublished(ctx)
	}
	f.refresh(ctx, true, items)
	return items, nil
}

func (f *Fallback) ListDrafts(ctx context.Context) ([]models.Article, error) {
	items, err := f.remote.ListDrafts(ctx)
	if err != nil {
		f.failover(ctx, "list_drafts", err)
		return f.mirror.ListDrafts(ctx)
	}
	f.refresh(ctx, false, items)
	return items, nil
}

// Save writes remote-first and echoes the stored row into the mirror.
// When the remote is down the mirror alone takes the write, so admin
// edits survive an outage locally.
func (f *Fallback) Save(ctx context.Context, a *models.Article) (*models.Article, error) {
	saved, err := f.remote.Save(ctx, a)
	if err != nil {
		f.failover(ctx, "save", err)
		return f.mirror.Save(ctx, a)
	}
	_, echoErr := f.mirror.Save(ctx, saved)
	f.echo(ctx, "save", echoErr)
	return saved, nil
}

func (f *Fallback) PublishDraft(ctx context.Context, id string) error {
	if err := f.remote.PublishDraft(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		f.failover(ctx, "publish_draft", err)
		return f.mirror.PublishDraft(ctx, id)
	}
	f.echo(ctx, "publish_draft", f.mirror.PublishDraft(ctx, id))
	return nil
}

func (f *Fallback) Delete(ctx context.Context, id string) error {
	if err := f.remote.Delete(ctx, id); err != nil {
		f.failover(ctx, "delete", err)
		return f.mirror.Delete(ctx, id)
	}
	f.echo(ctx, "delete", f.mirror.Delete(ctx, id))
	return nil
}

func (f *Fallback) ToggleActive(ctx context.Context, id string) error {
	if err := f.remote.ToggleActive(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		f.failover(ctx, "toggle_active", err)
		return f.mirror.ToggleActive(ctx, id)
	}
	f.echo(ctx, "toggle_active", f.mirror.ToggleActive(ctx, id))
	return nil
}

func (f *Fallback) GetByID(ctx context.Context, id string) (*models.Article, error) {
	a, err := f.remote.GetByID(ctx, id)
	if err != nil {
		f.failover(ctx, "get_by_id", err)
		return f.mirror.GetByID(ctx, id)
	}
	return a, nil
}

func (f *Fallback) IncrementViewCount(ctx context.Context, id string) error {
	if err := f.remote.IncrementViewCount(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		f.failover(ctx, "increment_view_count", err)
		return f.mirror.IncrementViewCount(ctx, id)
	}
	f.echo(ctx, "increment_view_count", f.mirror.IncrementViewCount(ctx, id))
	return nil
}

func (f *Fallback) Search(ctx context.Context, query, category string) ([]models.Article, error) {
	items, err := f.remote.Search(ctx, query, category)
	if err != nil {
		f.failover(ctx, "search", err)
		return f.mirror.Search(ctx, query, category)
	}
	return items, nil
}

func (f *Fallback) Stats(ctx context.Context) (Stats, error) {
	stats, err := f.remote.Stats(ctx)
	if err != nil {
		f.failover(ctx, "stats", err)
		return f.mirror.Stats(ctx)
	}
	return stats, nil
}
