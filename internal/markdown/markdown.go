// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts a constrained Markdown subset into HTML
// fragments for the article detail page. It is an ordered substitution
// pipeline, not a parser: each construct is rewritten by an independent
// regex pass, the whole result is wrapped in a paragraph container, and
// degenerate paragraphs around block elements are stripped afterwards.
// Raw HTML in the source passes through untouched; callers that do not
// trust authors should run the output through Sanitize.
package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// substitution is one ordered rewrite pass of the pipeline.
type substitution struct {
	pattern *regexp.Regexp
	repl    string
}

// pipeline holds the rewrite passes in application order. Order matters:
// h3 before h2 before h1 so longer marker runs win, bold before italic
// so ** is consumed before *.
var pipeline = []substitution{
	// Headings 1-3 at line start.
	{regexp.MustCompile(`(?m)^### (.*)$`), `<h3 class="text-lg font-semibold text-gray-900 mt-6 mb-3">$1</h3>`},
	{regexp.MustCompile(`(?m)^## (.*)$`), `<h2 class="text-xl font-bold text-gray-900 mt-8 mb-4">$1</h2>`},
	{regexp.MustCompile(`(?m)^# (.*)$`), `<h1 class="text-2xl font-bold text-gray-900 mt-8 mb-6">$1</h1>`},

	// Bold, then italic.
	{regexp.MustCompile(`\*\*(.*?)\*\*`), `<strong class="font-semibold">$1</strong>`},
	{regexp.MustCompile(`\*(.*?)\*`), `<em class="italic">$1</em>`},

	// Unordered and ordered list items.
	{regexp.MustCompile(`(?m)^- (.*)$`), `<li class="ml-4 list-disc">$1</li>`},
	{regexp.MustCompile(`(?m)^(\d+)\. (.*)$`), `<li class="ml-4 list-decimal">$1. $2</li>`},

	// Inline links open in a new tab with safe rel attributes.
	{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), `<a href="$2" class="text-blue-600 hover:text-blue-800 underline" target="_blank" rel="noopener noreferrer">$1</a>`},

	// Blank line is a paragraph boundary.
	{regexp.MustCompile(`\n\n`), `</p><p class="mb-4">`},

	// Horizontal rule alone on a line.
	{regexp.MustCompile(`(?m)^---$`), `<hr class="my-8 border-gray-300" />`},

	// Inline code spans.
	{regexp.MustCompile("`([^`]+)`"), `<code class="bg-gray-100 px-2 py-1 rounded text-sm">$1</code>`},
}

// cleanup passes strip the degenerate paragraphs the blind substitution
// produces around block elements.
var (
	emptyParagraph  = regexp.MustCompile(`<p class="mb-4"></p>`)
	paraBeforeHead  = regexp.MustCompile(`<p class="mb-4">(<h[1-6])`)
	paraAfterHead   = regexp.MustCompile(`(</h[1-6]>)</p>`)
	paraBeforeHRule = regexp.MustCompile(`<p class="mb-4">(<hr)`)
)

// ToHTML converts Markdown source into an HTML fragment. The output is
// not escaped or sanitized.
func ToHTML(source string) string {
	html := source
	for _, s := range pipeline {
		html = s.pattern.ReplaceAllString(html, s.repl)
	}

	html = `<p class="mb-4">` + html + `</p>`

	html = emptyParagraph.ReplaceAllString(html, "")
	html = paraBeforeHead.ReplaceAllString(html, "$1")
	html = paraAfterHead.ReplaceAllString(html, "$1")
	html = paraBeforeHRule.ReplaceAllString(html, "$1")

	return html
}

// policy allows exactly what the pipeline emits (plus common benign
// markup authors paste in) and drops everything else, notably script
// and event-handler attributes.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("target", "rel").OnElements("a")
	return p
}()

// Sanitize runs an HTML fragment through the bluemonday policy. Applied
// by callers when article authors are not fully trusted.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
