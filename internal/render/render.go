// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Pages render to bytes first so handlers can store the result in the
// page cache before writing it out.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/DongDongii/cce-game-guide/internal/banner"
	"github.com/DongDongii/cce-game-guide/internal/models"
)

//go:embed templates/public/*.html
var publicFS embed.FS

// PageData holds all data passed to public templates.
type PageData struct {
	Title       string            // Page title for the <title> tag
	Description string            // Meta description
	Canonical   string            // Canonical URL for the page
	Banner      banner.Config     // Localized top banner
	Articles    []ArticleView     // Listing entries (homepage)
	Article     *ArticleView      // Detail entry (article page)
	Query       string            // Active search query
	Category    string            // Active category filter
	Categories  []models.Category // Fixed catalog for the filter bar
}

// ArticleView is an article prepared for templates: rendered body,
// category label, and display dates.
type ArticleView struct {
	models.Article
	BodyHTML      template.HTML
	CategoryName  string
	CategoryColor string
}

// NewArticleView pairs an article with its rendered HTML body.
func NewArticleView(a models.Article, body template.HTML) ArticleView {
	view := ArticleView{Article: a, BodyHTML: body}
	if c, ok := models.CategoryByKey(a.Category); ok {
		view.CategoryName = c.Name
		view.CategoryColor = c.Color
	} else {
		view.CategoryName = a.Category
		view.CategoryColor = "#6B7280"
	}
	return view
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a Renderer by parsing all public templates from the
// embedded filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
	}

	r := &Renderer{templates: make(map[string]*template.Template)}

	entries, err := publicFS.ReadDir("templates/public")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			publicFS, "templates/public/base.html", "templates/public/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name[:len(name)-len(".html")]] = tmpl
	}

	return r, nil
}

// Page renders a named page to bytes.
func (rn *Renderer) Page(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	if data.Categories == nil {
		data.Categories = models.Categories
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
