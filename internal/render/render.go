// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the storefront and
// the admin panel. Pages are executed into a buffer first so a template
// error never leaves a half-written response.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"zebaish/internal/middleware"
	"zebaish/internal/models"
	"zebaish/internal/notice"
	"zebaish/internal/view"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

// CSRFPlaceholder stands in for the CSRF token inside fragments that are
// cached and shared between shoppers. Use Fragment.WithToken to fill it.
const CSRFPlaceholder = "__CSRF_TOKEN__"

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	Section   string          // Active navigation section ("shop", "cart", "admin")
	Status    int             // Response status, 200 when zero
	CSRFToken string          // CSRF token for forms
	CartCount int64           // Header cart badge
	Flashes   []notice.Notice // Notices shown as auto-dismissing toasts
	Data      map[string]any  // Page-specific data
}

// Fragment is cached partial HTML.
type Fragment []byte

// WithToken fills the CSRF placeholder and returns HTML ready to embed.
func (f Fragment) WithToken(token string) template.HTML {
	return template.HTML(strings.ReplaceAll(string(f), CSRFPlaceholder, template.HTMLEscapeString(token)))
}

// Renderer handles template parsing and execution.
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
	funcMap  template.FuncMap
}

// New parses every page template paired with the base layout and the
// shared partials.
func New() (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"price":        view.FormatPrice,
			"categoryName": models.CategoryName,
			"categories":   func() []models.Category { return models.Categories },
			"activeClass": func(current, target string) string {
				if current == target {
					return "active"
				}
				return ""
			},
			"dismissMillis": func() int64 { return notice.DisplayDuration.Milliseconds() },
		},
	}

	partials, err := template.New("partials").Funcs(r.funcMap).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.partials = partials

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}
	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/partials/*.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders a full page inside the base layout.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.pages[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		slog.Error("render page failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Status != 0 {
		w.WriteHeader(data.Status)
	}
	buf.WriteTo(w)
}

// Fragment renders a shared partial to bytes. CSRF fields inside it carry
// CSRFPlaceholder.
func (rn *Renderer) Fragment(name string, data any) (Fragment, error) {
	var buf bytes.Buffer
	if err := rn.partials.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render fragment %s: %w", name, err)
	}
	return Fragment(buf.Bytes()), nil
}
