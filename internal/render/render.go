// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render executes the blog HTML templates.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/seo"
	"github.com/olegiv/oblog/internal/util"
)

// Page directories; every file in them becomes a template named dir/file
// without the .html suffix, e.g. "blog/list".
var pageDirs = []string{"blog", "errors"}

const baseLayout = "layouts/base.html"

var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer = bluemonday.UGCPolicy()
)

// Renderer handles template rendering.
type Renderer struct {
	templates map[string]*template.Template
	loc       *time.Location
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	// Location is the zone dates are displayed in. Defaults to UTC.
	Location *time.Location
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		loc:       cfg.Location,
	}
	if r.loc == nil {
		r.loc = time.UTC
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, dir := range pageDirs {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}
		for _, page := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(page), ".html")

			files := append([]string{baseLayout}, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	return nil
}

// templateFiles returns the .html files of a directory. A missing
// directory yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a template is registered.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateFuncs returns the functions available in templates.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	loc := r.loc
	if loc == nil {
		loc = time.UTC
	}
	return template.FuncMap{
		"markdown":      Markdown,
		"truncatewords": func(n int, s string) string { return util.TruncateWords(s, n) },
		"formatDate": func(t time.Time) string {
			return t.In(loc).Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.In(loc).Format("Jan 2, 2006 15:04")
		},
		"isoTime": func(t time.Time) string {
			return t.In(loc).Format(time.RFC3339)
		},
		"pluralize": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"postListURL": model.PostListPath,
		"feedURL":     model.FeedPath,
		"searchURL":   model.SearchPath,
	}
}

// Markdown converts a post body to sanitized HTML.
func Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Meta        seo.Meta
	Data        any
	CurrentYear int
	Path        string
}

// Render renders a template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code. Nothing is
// written when execution fails.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().In(r.loc).Year()
	if req != nil {
		data.Path = req.URL.Path
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
