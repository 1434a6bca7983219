package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"senateur-site/internal/service"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	content *service.ContentService
	baseURL string
}

// NewSeoHandler creates a new SeoHandler. baseURL is the public origin of the
// site, without a trailing slash.
func NewSeoHandler(content *service.ContentService, baseURL string) *SeoHandler {
	return &SeoHandler{
		content: content,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// robotsHandler serves robots.txt. Crawlers are kept out of the back-office.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /admin")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Sitemap: "+h.baseURL+"/sitemap.xml")
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates and serves a dynamic sitemap.xml listing the fixed
// pages and every published article.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.content.Snapshot(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve content for sitemap", http.StatusInternalServerError)
		return
	}

	staticPaths := []string{"/", "/about", "/programs", "/activities", "/news", "/documents", "/media", "/contact"}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(staticPaths)+len(snap.News)),
	}
	for _, p := range staticPaths {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.baseURL + p})
	}
	for _, item := range snap.News {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/news/%d", h.baseURL, item.ID),
			LastMod: item.UpdatedAt.Format(sitemapDateFormat),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
