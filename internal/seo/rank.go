// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"sort"
	"strings"

	"github.com/DongDongii/cce-game-guide/internal/models"
)

// SortByPublicationRank orders articles in place for public listings:
// recommended before non-recommended, then descending priority, then
// newest publish date first. The sort is stable, so equal articles keep
// their input order.
func SortByPublicationRank(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := &articles[i], &articles[j]
		if a.IsRecommended != b.IsRecommended {
			return a.IsRecommended
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.PublishDate.After(b.PublishDate)
	})
}

// SortByPriority orders articles in place by descending priority, then
// newest publish date first. This is the order the mirror store keeps
// its published collection in after every write.
func SortByPriority(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := &articles[i], &articles[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.PublishDate.After(b.PublishDate)
	})
}

// FilterByQueryAndCategory returns the subset of articles matching both
// filters. The query matches case-insensitively as a substring against
// title, body, SEO description, any tag, or any extracted keyword; the
// category must match exactly. Empty filters pass everything, so
// FilterByQueryAndCategory(a, "", "") returns the input unchanged in
// order.
func FilterByQueryAndCategory(articles []models.Article, query, category string) []models.Article {
	if query == "" && category == "" {
		return articles
	}

	q := strings.ToLower(query)
	var out []models.Article
	for _, a := range articles {
		if query != "" && !matchesQuery(&a, q) {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesQuery reports whether the lowercased query q appears in any
// searchable field of the article.
func matchesQuery(a *models.Article, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Content), q) ||
		strings.Contains(strings.ToLower(a.SEOMetadata.Description), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	for _, kw := range a.ExtractedKeywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}
