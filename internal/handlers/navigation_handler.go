package handlers

import (
	"net/http"
	"strings"

	"ekoi-website/internal/content"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/navigation"

	"github.com/gin-gonic/gin"
)

// NavigationHandler serves the navigation model and the locale resolver as
// JSON, for clients that render their own chrome.
type NavigationHandler struct {
	site     *content.Site
	resolver *lang.Resolver
	model    *navigation.Model
}

func NewNavigationHandler(site *content.Site, resolver *lang.Resolver, model *navigation.Model) *NavigationHandler {
	return &NavigationHandler{site: site, resolver: resolver, model: model}
}

type languageResponse struct {
	Locale lang.Locale `json:"locale"`
	Label  string      `json:"label"`
	Href   string      `json:"href"`
	Active bool        `json:"active"`
}

type navigationResponse struct {
	Locale    lang.Locale                   `json:"locale"`
	Items     []navigation.Link             `json:"items"`
	Footer    []navigation.LocalizedSection `json:"footer"`
	Legal     []navigation.Item             `json:"legal"`
	Languages []languageResponse            `json:"languages"`
}

// GetNavigation returns the navigation for ?locale= (default locale when
// absent). An optional ?path= marks the active entry and is used as the base
// of the language links.
func (h *NavigationHandler) GetNavigation(c *gin.Context) {
	locale := h.resolver.Default()
	if raw := strings.TrimSpace(c.Query("locale")); raw != "" {
		code := lang.Locale(raw)
		if !h.resolver.IsSupported(code) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "unsupported locale",
				"supported": h.resolver.Supported(),
			})
			return
		}
		locale = code
	}

	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		path = lang.Localize(locale, "/")
	}

	fallback := h.resolver.Default()
	supported := h.resolver.Supported()
	languages := make([]languageResponse, 0, len(supported))
	for _, code := range supported {
		languages = append(languages, languageResponse{
			Locale: code,
			Label:  code.Label(),
			Href:   h.resolver.Switch(path, code),
			Active: code == locale,
		})
	}

	c.JSON(http.StatusOK, navigationResponse{
		Locale:    locale,
		Items:     h.model.Links(locale, path),
		Footer:    navigation.LocalizeSections(h.site.Footer, locale, fallback),
		Legal:     navigation.LocalizeEntries(h.site.Legal, locale, fallback),
		Languages: languages,
	})
}

// ResolveLocale reports how the resolver treats ?path=.
func (h *NavigationHandler) ResolveLocale(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}
	if !strings.HasPrefix(path, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path must start with /"})
		return
	}

	locale, canonical := h.resolver.Resolve(path)
	c.JSON(http.StatusOK, gin.H{
		"path":           path,
		"locale":         locale,
		"canonical_path": canonical,
		"redirect":       canonical != path,
	})
}
