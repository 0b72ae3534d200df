package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ekoi-website/internal/config"
	"ekoi-website/internal/content"
	"ekoi-website/pkg/lang"

	"github.com/gin-gonic/gin"
)

type sitemapLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type sitemapURL struct {
	Loc        string        `xml:"loc"`
	LastMod    string        `xml:"lastmod,omitempty"`
	ChangeFreq string        `xml:"changefreq,omitempty"`
	Priority   string        `xml:"priority,omitempty"`
	Links      []sitemapLink `xml:"xhtml:link"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapPage struct {
	path       string
	lastMod    time.Time
	changeFreq string
	priority   string
}

// SEOHandler provides responses for SEO-focused endpoints like sitemap.xml and
// robots.txt.
type SEOHandler struct {
	site     *content.Site
	resolver *lang.Resolver
	config   *config.Config
}

// NewSEOHandler creates a new SEO handler with the required dependencies.
func NewSEOHandler(site *content.Site, resolver *lang.Resolver, cfg *config.Config) *SEOHandler {
	return &SEOHandler{site: site, resolver: resolver, config: cfg}
}

// Sitemap renders an XML sitemap listing every page once per supported
// locale, with hreflang alternates linking the translations.
func (h *SEOHandler) Sitemap(c *gin.Context) {
	baseURL := h.normalizedBaseURL()
	if baseURL == "" {
		c.String(http.StatusInternalServerError, "Unable to determine site URL")
		return
	}

	pages := []sitemapPage{
		{path: "/", changeFreq: "weekly", priority: "1.0"},
		{path: "/products", changeFreq: "monthly", priority: "0.9"},
		{path: "/solutions", changeFreq: "monthly", priority: "0.7"},
		{path: "/why-us", changeFreq: "monthly", priority: "0.6"},
		{path: "/news", changeFreq: "weekly", priority: "0.8"},
		{path: "/contact", changeFreq: "yearly", priority: "0.5"},
	}
	for _, product := range h.site.Products {
		pages = append(pages, sitemapPage{path: "/products/" + product.Slug, changeFreq: "monthly", priority: "0.8"})
	}
	for _, article := range h.site.News {
		pages = append(pages, sitemapPage{path: "/news/" + article.Slug, lastMod: article.Date, changeFreq: "yearly", priority: "0.6"})
	}
	for _, key := range []string{"privacy", "terms"} {
		if _, ok := h.site.Pages[key]; ok {
			pages = append(pages, sitemapPage{path: "/" + key, changeFreq: "yearly", priority: "0.3"})
		}
	}

	supported := h.resolver.Supported()
	urls := make([]sitemapURL, 0, len(pages)*len(supported))
	for _, page := range pages {
		links := make([]sitemapLink, 0, len(supported))
		for _, code := range supported {
			links = append(links, sitemapLink{
				Rel:      "alternate",
				HrefLang: string(code),
				Href:     h.joinURL(baseURL, lang.Localize(code, page.path)),
			})
		}
		for _, code := range supported {
			urls = append(urls, sitemapURL{
				Loc:        h.joinURL(baseURL, lang.Localize(code, page.path)),
				LastMod:    h.formatLastMod(page.lastMod),
				ChangeFreq: page.changeFreq,
				Priority:   page.priority,
				Links:      links,
			})
		}
	}

	response := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
		URLs:  urls,
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.XML(http.StatusOK, response)
}

// Robots renders a robots.txt file that guides crawlers and references the
// generated sitemap.
func (h *SEOHandler) Robots(c *gin.Context) {
	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /api/",
	}

	if baseURL := h.normalizedBaseURL(); baseURL != "" {
		lines = append(lines, fmt.Sprintf("Sitemap: %s", h.joinURL(baseURL, "/sitemap.xml")))
	}

	body := strings.Join(lines, "\n") + "\n"

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *SEOHandler) normalizedBaseURL() string {
	if h.config == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(h.config.SiteURL), "/")
}

func (h *SEOHandler) joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (h *SEOHandler) formatLastMod(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02")
}
