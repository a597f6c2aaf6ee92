// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo holds the pure article-domain operations: keyword
// extraction, publication ranking, query filtering, and affiliate link
// generation. Nothing in this package performs I/O.
package seo

import (
	"regexp"
	"sort"
	"strings"
)

// maxKeywords is how many extracted keywords an article carries.
const maxKeywords = 10

// stopWords are common English function words excluded from keyword
// extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

// nonWord matches any character that is not a word character or whitespace.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// ExtractKeywords returns up to ten keywords from the title and body,
// ordered by descending frequency. Tokens of length two or less and
// stop words are skipped. Ties keep first-encountered order, so the
// result is deterministic for a given input.
func ExtractKeywords(title, content string) []string {
	text := strings.ToLower(title + " " + content)
	text = nonWord.ReplaceAllString(text, " ")

	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(text) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
