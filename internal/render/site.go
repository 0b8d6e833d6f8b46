package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"hexphyre/internal/models"
)

// SiteData holds data passed to public site templates. Settings is always
// populated so the layout can render the title, hero copy, and footer
// social links.
type SiteData struct {
	Title       string
	Description string
	Settings    models.SiteSettings
	Data        map[string]any
}

// SiteRenderer executes public site templates. Unlike the admin renderer
// it can render into a buffer so handlers can store the resulting HTML in
// the page cache.
type SiteRenderer struct {
	templates map[string]*template.Template
}

// NewSite parses the public site templates from the embedded filesystem,
// pairing each page with the site base layout.
func NewSite(devMode bool) (*SiteRenderer, error) {
	r := &SiteRenderer{templates: make(map[string]*template.Template)}
	funcs := funcMap(devMode)

	entries, err := templateFS.ReadDir("templates/site")
	if err != nil {
		return nil, fmt.Errorf("read embedded site templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(
			templateFS, "templates/site/base.html", "templates/site/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse site template %s: %w", name, err)
		}

		r.templates[name[:len(name)-len(".html")]] = tmpl
	}

	return r, nil
}

// Render executes a site page into a byte slice. Handlers write the
// result to the response and, for cacheable pages, to the page cache.
func (sr *SiteRenderer) Render(name string, data *SiteData) ([]byte, error) {
	tmpl, ok := sr.templates[name]
	if !ok {
		return nil, fmt.Errorf("site template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("render site template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a site page directly to the response, returning 500 on
// template errors.
func (sr *SiteRenderer) Page(w http.ResponseWriter, name string, data *SiteData) {
	html, err := sr.Render(name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}
