package handlers

import (
	"bytes"
	"encoding/xml"
	"log/slog"
	"net/http"
	"time"

	"hexphyre/internal/cache"
)

// urlSet is the root element of the sitemap protocol document.
type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap serves the XML sitemap: the homepage, the projects page, and
// every post. Post entries carry their last update time.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.SitemapKey()); ok {
		writeXML(w, cached)
		return
	}

	posts, err := p.postStore.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: p.siteURL + "/"},
			{Loc: p.siteURL + "/#technology"},
			{Loc: p.siteURL + "/#posts"},
			{Loc: p.siteURL + "/#about"},
			{Loc: p.siteURL + "/projects"},
		},
	}
	for _, post := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     p.siteURL + "/blog/" + post.Slug,
			LastMod: post.UpdatedAt.Format(time.RFC3339),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		slog.Error("encode sitemap failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.SitemapKey(), buf.Bytes())
	writeXML(w, buf.Bytes())
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}
