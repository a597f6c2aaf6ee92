package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Seed populates the database with initial development data: a pair of
// published sample articles with affiliate anchor links, so the public
// listing is not empty on first boot. No-op when articles already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return fmt.Errorf("seed check articles: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	type sample struct {
		title, slug, content, category string
		priority                       int
		recommended                    bool
		anchorLinks                    string // JSON
		keywords                       string // Postgres array literal
	}

	samples := []sample{
		{
			title:       "Governor of Poker 3 Free Chips Guide 2024 - Get Unlimited Chips",
			slug:        "governor-of-poker-3-free-chips-guide-2024",
			category:    "game-currency",
			priority:    8,
			recommended: true,
			content: "# Governor of Poker 3 Free Chips Guide 2024\n\n" +
				"## Introduction\n\n" +
				"Governor of Poker 3 (GOP3) is one of the most popular online poker games. " +
				"Running out of chips can be frustrating, especially on a winning streak. " +
				"This guide covers the main ways to keep your stack topped up.\n\n" +
				"## Daily Bonuses\n\n" +
				"- Daily spin wheel with free spins every few hours\n" +
				"- Login bonuses for consecutive days\n" +
				"- Achievement and level-up rewards\n\n" +
				"## Professional Chip Services\n\n" +
				"For guaranteed amounts and instant delivery, many players use professional platforms:\n\n" +
				"[GOP3 Chips - GMYGM Professional Service](https://www.gmygm.com/gop3-chips)",
			anchorLinks: `[{"id":"seed-gmygm-1","text":"GOP3 Chips - GMYGM Professional Service","url":"https://www.gmygm.com/gop3-chips","target":"_blank","rel":"sponsored","keywords":["game currency","GMYGM","GOP3 chips"]}]`,
			keywords:    `{chips,poker,gop3,bonuses,free}`,
		},
		{
			title:    "Governor of Poker 3 Beginner Strategy - Win Your First Tables",
			slug:     "governor-of-poker-3-beginner-strategy",
			category: "gaming-guides",
			priority: 6,
			content: "# Governor of Poker 3 Beginner Strategy\n\n" +
				"## Starting Hands\n\n" +
				"Play tight early: premium pairs and high suited connectors. " +
				"Fold marginal hands from early position.\n\n" +
				"## Bankroll Management\n\n" +
				"1. Never sit with more than 5% of your chips at one table\n" +
				"2. Move down stakes after three losing sessions\n" +
				"3. Keep a reserve for tournament entries\n\n" +
				"---\n" +
				"*More guides are published every week.*",
			anchorLinks: `[]`,
			keywords:    `{poker,strategy,hands,bankroll,tables}`,
		},
	}

	for _, s := range samples {
		_, err := db.Exec(`
			INSERT INTO articles (id, title, slug, content, anchorlinks, seometadata,
			                      status, priority, category, tags, isrecommended,
			                      extractedkeywords, isactive, viewcount)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb,
			        'published', $7, $8, '{}', $9, $10::text[], TRUE, 0)
		`, uuid.NewString(), s.title, s.slug, s.content, s.anchorLinks,
			fmt.Sprintf(`{"title":%q,"description":%q,"keywords":[]}`, s.title, "Sample article: "+s.title),
			s.priority, s.category, s.recommended, s.keywords)
		if err != nil {
			return fmt.Errorf("seed insert article %q: %w", s.slug, err)
		}
	}

	slog.Info("database seeded with sample articles", "count", len(samples))
	return nil
}
