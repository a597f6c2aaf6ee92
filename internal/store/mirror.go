// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/DongDongii/cce-game-guide/internal/models"
	"github.com/DongDongii/cce-game-guide/internal/seo"
)

// Mirror blob keys. Two JSON arrays, one per lifecycle bucket.
const (
	mirrorPublishedKey = "seo-articles"
	mirrorDraftsKey    = "seo-drafts"
)

// MirrorStore keeps a local copy of the article set in Valkey as two
// JSON blobs. It is the fail-soft side of the dual store: reads never
// fail the caller, a missing or unparsable blob reads as empty.
//
// Blob updates are whole read-modify-write cycles with no locking, so
// concurrent writers are last-write-wins. The mirror is a fallback
// copy, not the source of truth, and the remote store reconciles it on
// every successful list.
type MirrorStore struct {
	client *redis.Client
}

// NewMirrorStore creates a MirrorStore backed by the given client.
func NewMirrorStore(client *redis.Client) *MirrorStore {
	return &MirrorStore{client: client}
}

// readBlob decodes one bucket, treating absence and corruption alike
// as an empty list.
func (s *MirrorStore) readBlob(ctx context.Context, key string) []models.Article {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var items []models.Article
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	for i := range items {
		items[i].Normalize()
	}
	return items
}

// writeBlob encodes one bucket back. Blobs never expire.
func (s *MirrorStore) writeBlob(ctx context.Context, key string, items []models.Article) error {
	if items == nil {
		items = []models.Article{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode mirror blob %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write mirror blob %s: %w", key, err)
	}
	return nil
}

// ListPublished returns the mirrored published set in priority order.
func (s *MirrorStore) ListPublished(ctx context.Context) ([]models.Article, error) {
	items := s.readBlob(ctx, mirrorPublishedKey)
	seo.SortByPriority(items)
	return items, nil
}

// ListDrafts returns the mirrored draft set.
func (s *MirrorStore) ListDrafts(ctx context.Context) ([]models.Article, error) {
	return s.readBlob(ctx, mirrorDraftsKey), nil
}

// ReplaceAll overwrites one bucket wholesale. The fallback store uses
// it to refresh the mirror after a successful remote read.
func (s *MirrorStore) ReplaceAll(ctx context.Context, published bool, items []models.Article) error {
	key := mirrorDraftsKey
	if published {
		key = mirrorPublishedKey
	}
	return s.writeBlob(ctx, key, items)
}

// Save upserts the article into the bucket matching its status and
// removes any stale copy from the other bucket.
func (s *MirrorStore) Save(ctx context.Context, a *models.Article) (*models.Article, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Normalize()
	a.LastModified = time.Now()
	if a.PublishDate.IsZero() {
		a.PublishDate = a.LastModified
	}

	ownKey, otherKey := mirrorDraftsKey, mirrorPublishedKey
	if a.IsPublished() {
		ownKey, otherKey = mirrorPublishedKey, mirrorDraftsKey
	}

	items := upsertArticle(s.readBlob(ctx, ownKey), *a)
	if ownKey == mirrorPublishedKey {
		seo.SortByPriority(items)
	}
	if err := s.writeBlob(ctx, ownKey, items); err != nil {
		return nil, err
	}

	if other, removed := removeArticle(s.readBlob(ctx, otherKey), a.ID); removed {
		if err := s.writeBlob(ctx, otherKey, other); err != nil {
			return nil, err
		}
	}

	copied := *a
	return &copied, nil
}

// PublishDraft moves an article from the draft bucket to the published
// one, stamping publishDate.
func (s *MirrorStore) PublishDraft(ctx context.Context, id string) error {
	drafts := s.readBlob(ctx, mirrorDraftsKey)
	idx := indexOf(drafts, id)
	if idx < 0 {
		return ErrNotFound
	}
	a := drafts[idx]
	now := time.Now()
	a.Status = models.StatusPublished
	a.PublishDate = now
	a.LastModified = now

	drafts = append(drafts[:idx], drafts[idx+1:]...)
	if err := s.writeBlob(ctx, mirrorDraftsKey, drafts); err != nil {
		return err
	}

	published := upsertArticle(s.readBlob(ctx, mirrorPublishedKey), a)
	seo.SortByPriority(published)
	return s.writeBlob(ctx, mirrorPublishedKey, published)
}

// Delete removes the article from both buckets.
func (s *MirrorStore) Delete(ctx context.Context, id string) error {
	for _, key := range []string{mirrorPublishedKey, mirrorDraftsKey} {
		if items, removed := removeArticle(s.readBlob(ctx, key), id); removed {
			if err := s.writeBlob(ctx, key, items); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToggleActive flips isActive on the mirrored copy.
func (s *MirrorStore) ToggleActive(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(a *models.Article) {
		a.IsActive = !a.IsActive
	})
}

// GetByID returns the mirrored article when it exists and is active,
// nil otherwise.
func (s *MirrorStore) GetByID(ctx context.Context, id string) (*models.Article, error) {
	for _, key := range []string{mirrorPublishedKey, mirrorDraftsKey} {
		items := s.readBlob(ctx, key)
		if idx := indexOf(items, id); idx >= 0 {
			if !items[idx].IsActive {
				return nil, nil
			}
			a := items[idx]
			return &a, nil
		}
	}
	return nil, nil
}

// IncrementViewCount bumps the mirrored counter.
func (s *MirrorStore) IncrementViewCount(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(a *models.Article) {
		a.ViewCount++
	})
}

// Search filters the mirrored published set in memory.
func (s *MirrorStore) Search(ctx context.Context, query, category string) ([]models.Article, error) {
	items := s.readBlob(ctx, mirrorPublishedKey)
	active := items[:0:0]
	for _, a := range items {
		if a.IsActive {
			active = append(active, a)
		}
	}
	out := seo.FilterByQueryAndCategory(active, query, category)
	seo.SortByPublicationRank(out)
	return out, nil
}

// Stats aggregates over both mirrored buckets.
func (s *MirrorStore) Stats(ctx context.Context) (Stats, error) {
	stats := ZeroStats()
	for _, a := range s.readBlob(ctx, mirrorPublishedKey) {
		stats.TotalPublished++
		stats.TotalAnchorLinks += len(a.AnchorLinks)
		stats.CategoryCounts[a.Category]++
	}
	stats.TotalDrafts = len(s.readBlob(ctx, mirrorDraftsKey))
	return stats, nil
}

// mutate applies fn to the article in whichever bucket holds it and
// stamps lastModified. Plain read-modify-write, last-write-wins.
func (s *MirrorStore) mutate(ctx context.Context, id string, fn func(*models.Article)) error {
	for _, key := range []string{mirrorPublishedKey, mirrorDraftsKey} {
		items := s.readBlob(ctx, key)
		idx := indexOf(items, id)
		if idx < 0 {
			continue
		}
		fn(&items[idx])
		items[idx].LastModified = time.Now()
		return s.writeBlob(ctx, key, items)
	}
	return ErrNotFound
}

func indexOf(items []models.Article, id string) int {
	for i := range items {
		if strings.EqualFold(items[i].ID, id) {
			return i
		}
	}
	return -1
}

func upsertArticle(items []models.Article, a models.Article) []models.Article {
	if idx := indexOf(items, a.ID); idx >= 0 {
		items[idx] = a
		return items
	}
	return append(items, a)
}

func removeArticle(items []models.Article, id string) ([]models.Article, bool) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, false
	}
	return append(items[:idx], items[idx+1:]...), true
}
