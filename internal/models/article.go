// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	// StatusArchived is part of the schema but no operation currently
	// transitions an article into it.
	StatusArchived ArticleStatus = "archived"
)

// Priority bounds for the descending sort key among same-status articles.
const (
	MinPriority     = 1
	MaxPriority     = 10
	DefaultPriority = 5
)

// AnchorLink is an outbound affiliate/reference link embedded in or
// alongside an article.
type AnchorLink struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	URL      string   `json:"url"`
	Target   string   `json:"target,omitempty"` // "_blank" or "_self"
	Rel      string   `json:"rel,omitempty"`    // "nofollow", "sponsored", "ugc", ""
	Title    string   `json:"title,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// SEOMetadata is denormalized presentation metadata, independent of the
// article body.
type SEOMetadata struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	Canonical     string   `json:"canonical,omitempty"`
	OGTitle       string   `json:"ogTitle,omitempty"`
	OGDescription string   `json:"ogDescription,omitempty"`
	OGImage       string   `json:"ogImage,omitempty"`
}

// Article is the central content entity: a Markdown body plus the SEO
// and affiliate-link data rendered around it.
type Article struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Slug              string        `json:"slug"`
	Content           string        `json:"content"`
	AnchorLinks       []AnchorLink  `json:"anchorLinks"`
	SEOMetadata       SEOMetadata   `json:"seoMetadata"`
	PublishDate       time.Time     `json:"publishDate"`
	LastModified      time.Time     `json:"lastModified"`
	Status            ArticleStatus `json:"status"`
	Priority          int           `json:"priority"` // 1-10, descending sort key
	Category          string        `json:"category"`
	Tags              []string      `json:"tags"`
	IsRecommended     bool          `json:"isRecommended"`
	ExtractedKeywords []string      `json:"extractedKeywords"` // derived, cached hint only
	IsActive          bool          `json:"isActive"`          // false hides a published article without deleting it
	ViewCount         int           `json:"viewCount"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// ClampPriority forces a priority value into the valid 1-10 range,
// substituting the default for zero values.
func ClampPriority(p int) int {
	if p == 0 {
		return DefaultPriority
	}
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// NewArticle returns a fresh draft with the defaults every article
// starts from: priority 5, gaming-guides category, active, zero views.
func NewArticle() *Article {
	now := time.Now()
	return &Article{
		ID:                uuid.NewString(),
		AnchorLinks:       []AnchorLink{},
		SEOMetadata:       SEOMetadata{Keywords: []string{}},
		PublishDate:       now,
		LastModified:      now,
		Status:            StatusDraft,
		Priority:          DefaultPriority,
		Category:          "gaming-guides",
		Tags:              []string{},
		ExtractedKeywords: []string{},
		IsActive:          true,
	}
}

// Normalize fills derived and defaulted fields so an article coming off
// the wire or out of a store is always in a usable state: nil slices
// become empty, priority is clamped, and an empty or unrecognized
// status defaults to draft.
func (a *Article) Normalize() {
	if a.AnchorLinks == nil {
		a.AnchorLinks = []AnchorLink{}
	}
	if a.SEOMetadata.Keywords == nil {
		a.SEOMetadata.Keywords = []string{}
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.ExtractedKeywords == nil {
		a.ExtractedKeywords = []string{}
	}
	switch a.Status {
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		a.Status = StatusDraft
	}
	a.Priority = ClampPriority(a.Priority)
}
