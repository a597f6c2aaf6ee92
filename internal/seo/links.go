// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"fmt"
	"time"

	"github.com/DongDongii/cce-game-guide/internal/models"
	"github.com/DongDongii/cce-game-guide/internal/slug"
)

// LinkTarget describes an affiliate destination site that anchor links
// are generated against.
type LinkTarget struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	BaseURL     string   `json:"baseUrl"`
	Description string   `json:"description"`
	Rel         string   `json:"rel"`
	Keywords    []string `json:"keywords"`
}

// LinkTargets is the fixed catalog of affiliate destination sites.
var LinkTargets = []LinkTarget{
	{
		Key:         "gmygm",
		Name:        "GMYGM",
		BaseURL:     "https://www.gmygm.com",
		Description: "Professional game currency trading platform",
		Rel:         "sponsored",
		Keywords:    []string{"game currency", "GMYGM", "game gold"},
	},
	{
		Key:         "gmygm-items",
		Name:        "GMYGM Items",
		BaseURL:     "https://www.gmygm.com/items",
		Description: "Global game item service provider",
		Rel:         "sponsored",
		Keywords:    []string{"game items", "GMYGM", "game gear"},
	},
	{
		Key:         "gmygm-accounts",
		Name:        "GMYGM Accounts",
		BaseURL:     "https://www.gmygm.com/accounts",
		Description: "Game account trading platform",
		Rel:         "sponsored",
		Keywords:    []string{"game accounts", "GMYGM", "account trading"},
	},
}

// LinkTargetByKey looks up a catalog entry by its key.
func LinkTargetByKey(key string) (LinkTarget, bool) {
	for _, t := range LinkTargets {
		if t.Key == key {
			return t, true
		}
	}
	return LinkTarget{}, false
}

// GenerateAffiliateLinks builds the standard pair of anchor links for a
// target site and keyword: a service link pointing at the keyword's
// slug under the target's base URL, and a safe-purchase link. Both
// carry the target's fixed rel attribute and merge the target's
// keywords with the supplied one.
func GenerateAffiliateLinks(target LinkTarget, keyword string) []models.AnchorLink {
	now := time.Now().UnixMilli()

	return []models.AnchorLink{
		{
			ID:       fmt.Sprintf("%s-%d-1", target.Key, now),
			Text:     fmt.Sprintf("%s - %s Professional Service", keyword, target.Name),
			URL:      fmt.Sprintf("%s/%s", target.BaseURL, slug.Generate(keyword)),
			Target:   "_blank",
			Rel:      target.Rel,
			Title:    fmt.Sprintf("Get %s at %s", keyword, target.Name),
			Keywords: append(append([]string{}, target.Keywords...), keyword),
		},
		{
			ID:       fmt.Sprintf("%s-%d-2", target.Key, now),
			Text:     fmt.Sprintf("Buy %s Safely", keyword),
			URL:      target.BaseURL + "/safe-purchase",
			Target:   "_blank",
			Rel:      target.Rel,
			Title:    fmt.Sprintf("%s - %s", target.Description, keyword),
			Keywords: append([]string{"safe purchase", keyword}, target.Keywords...),
		},
	}
}
