// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package banner manages the localized promotional top banner shown on
// every public page. Configurations are stored as one JSON blob in
// Valkey keyed by locale, with built-in defaults when nothing has been
// saved yet.
package banner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// storeKey is the Valkey key holding the locale→config map.
const storeKey = "banner-configs"

// DefaultLocale is the fallback when a requested locale has no config.
const DefaultLocale = "en"

// Config is one locale's banner.
type Config struct {
	Text    string `json:"text"`
	URL     string `json:"url"`
	Enabled bool   `json:"isEnabled"`
}

// Configs maps locale code to banner config.
type Configs map[string]Config

// Defaults returns the built-in banner set for all supported locales.
func Defaults() Configs {
	return Configs{
		"en": {
			Text:    "🎮 Get the best game currency deals at GMYGM - Safe & Fast delivery!",
			URL:     "https://www.gmygm.com",
			Enabled: true,
		},
		"zh": {
			Text:    "🎮 在GMYGM获取最优惠的游戏货币 - 安全快速交付！",
			URL:     "https://www.gmygm.com",
			Enabled: true,
		},
		"nl": {
			Text:    "🎮 Krijg de beste game valuta deals bij GMYGM - Veilig & Snelle levering!",
			URL:     "https://www.gmygm.com",
			Enabled: true,
		},
		"de": {
			Text:    "🎮 Holen Sie sich die besten Spiele Währung Angebote bei GMYGM - Sicher & Schnelle Lieferung!",
			URL:     "https://www.gmygm.com",
			Enabled: true,
		},
	}
}

// Store persists banner configurations in Valkey.
type Store struct {
	client *redis.Client
}

// NewStore creates a banner store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns the saved banner set, or the defaults when nothing is
// saved or the stored blob is unparsable.
func (s *Store) Get(ctx context.Context) Configs {
	raw, err := s.client.Get(ctx, storeKey).Bytes()
	if err != nil {
		return Defaults()
	}
	var configs Configs
	if err := json.Unmarshal(raw, &configs); err != nil || len(configs) == 0 {
		return Defaults()
	}
	return configs
}

// ForLocale returns the banner for the given locale, falling back to
// English for unknown locales.
func (s *Store) ForLocale(ctx context.Context, locale string) Config {
	configs := s.Get(ctx)
	if c, ok := configs[locale]; ok {
		return c
	}
	return configs[DefaultLocale]
}

// Set replaces the full banner set.
func (s *Store) Set(ctx context.Context, configs Configs) error {
	raw, err := json.Marshal(configs)
	if err != nil {
		return fmt.Errorf("encode banner configs: %w", err)
	}
	if err := s.client.Set(ctx, storeKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("store banner configs: %w", err)
	}
	return nil
}
