// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category describes one entry of the fixed article category set.
type Category struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Categories is the fixed category catalog. Keys are stored on
// articles; name and color are presentation hints for the listing page.
var Categories = []Category{
	{Key: "gaming-guides", Name: "Gaming Guides", Color: "#3B82F6"},
	{Key: "game-currency", Name: "Game Currency", Color: "#EF4444"},
	{Key: "game-items", Name: "Game Items", Color: "#10B981"},
	{Key: "game-accounts", Name: "Game Accounts", Color: "#F59E0B"},
	{Key: "game-boosting", Name: "Game Boosting", Color: "#8B5CF6"},
	{Key: "other", Name: "Other", Color: "#6B7280"},
}

// CategoryByKey looks up a catalog entry. The second return value is
// false for unknown keys.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// ValidCategory reports whether key names a known category.
func ValidCategory(key string) bool {
	_, ok := CategoryByKey(key)
	return ok
}
