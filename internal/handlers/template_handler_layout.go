package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"ekoi-website/internal/middleware"
	"ekoi-website/pkg/cache"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/logger"
	"ekoi-website/pkg/navigation"
	"ekoi-website/pkg/utils"

	"github.com/gin-gonic/gin"
)

const menuQueryParam = "menu"

func (h *TemplateHandler) requestLocale(c *gin.Context) lang.Locale {
	return middleware.LocaleFromContext(c, h.resolver.Default())
}

// basePageData assembles the data every page shares: metadata, the
// navigation model for the request locale, the language switcher and the
// footer.
func (h *TemplateHandler) basePageData(c *gin.Context, title, description string, extra gin.H) gin.H {
	locale := h.requestLocale(c)
	fallback := h.resolver.Default()

	siteTitle := h.site.Title.In(locale, fallback)
	fullTitle := siteTitle
	if title = strings.TrimSpace(title); title != "" {
		fullTitle = title + " | " + h.siteName()
	}
	if strings.TrimSpace(description) == "" {
		description = h.site.Description.In(locale, fallback)
	}

	data := gin.H{
		"Title":       fullTitle,
		"Description": description,
		"Locale":      locale,
		"HomePath":    lang.Localize(locale, "/"),
		"T":           h.translator(locale),
		"Site": gin.H{
			"Name":    h.siteName(),
			"Title":   siteTitle,
			"Tagline": h.site.Tagline.In(locale, fallback),
			"URL":     h.config.SiteURL,
		},
		"Footer":      navigation.LocalizeSections(h.site.Footer, locale, fallback),
		"Legal":       navigation.LocalizeEntries(h.site.Legal, locale, fallback),
		"Year":        h.now().Year(),
		"Breadcrumbs": navigation.Trail(nil),
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

func (h *TemplateHandler) siteName() string {
	if h.site.Name != "" {
		return h.site.Name
	}
	return h.config.SiteName
}

// setNavigationState resolves the navigation model for the request. Header
// and mobile navigation are handed the same slice of links so they can never
// disagree on entries or order.
func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	locale := h.requestLocale(c)
	activePath := utils.NormalizePath(c.Request.URL.Path)
	data["ActivePath"] = activePath

	links := h.navigation.Links(locale, activePath)
	data["Nav"] = links

	state := navigation.ParseToggleState(c.Query(menuQueryParam))
	data["MobileNav"] = MobileNavState{
		Open:        state == navigation.Open,
		ToggleHref:  menuHref(c.Request.URL, navigation.Transition(state, navigation.Activate)),
		DismissHref: menuHref(c.Request.URL, navigation.Transition(state, navigation.Dismiss)),
		Links:       links,
	}

	data["Languages"] = h.languageOptions(c.Request.URL, locale)
}

// menuHref links the current page with the mobile panel in state.
func menuHref(current *url.URL, state navigation.ToggleState) string {
	query := current.Query()
	if state == navigation.Open {
		query.Set(menuQueryParam, state.String())
	} else {
		query.Del(menuQueryParam)
	}

	href := current.Path
	if encoded := query.Encode(); encoded != "" {
		href += "?" + encoded
	}
	return href
}

// languageOptions builds the language switcher. Each option keeps the current
// page and query string; the menu parameter is dropped so the new page mounts
// with the panel closed.
func (h *TemplateHandler) languageOptions(current *url.URL, locale lang.Locale) []LanguageOption {
	query := current.Query()
	query.Del(menuQueryParam)
	suffix := ""
	if encoded := query.Encode(); encoded != "" {
		suffix = "?" + encoded
	}

	supported := h.resolver.Supported()
	options := make([]LanguageOption, 0, len(supported))
	for _, code := range supported {
		options = append(options, LanguageOption{
			Locale: code,
			Label:  code.Label(),
			Href:   h.resolver.Switch(current.Path, code) + suffix,
			Active: code == locale,
		})
	}
	return options
}

func (h *TemplateHandler) applySEOMetadata(c *gin.Context, data gin.H) {
	base := h.baseURL(c.Request)
	path := utils.NormalizePath(c.Request.URL.Path)

	data["Canonical"] = base + path

	supported := h.resolver.Supported()
	alternates := make([]Alternate, 0, len(supported)+1)
	for _, code := range supported {
		alternates = append(alternates, Alternate{Locale: code, Href: base + h.resolver.Switch(path, code)})
	}
	alternates = append(alternates, Alternate{
		Locale: "x-default",
		Href:   base + h.resolver.Switch(path, h.resolver.Default()),
	})
	data["Alternates"] = alternates
}

// baseURL prefers the configured site URL and falls back to the request host.
func (h *TemplateHandler) baseURL(r *http.Request) string {
	if base := strings.TrimSuffix(strings.TrimSpace(h.config.SiteURL), "/"); base != "" {
		return base
	}
	return requestScheme(r) + "://" + requestHost(r)
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return ""
	}

	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		if value := strings.ToLower(strings.TrimSpace(parts[0])); value != "" {
			return value
		}
	}

	if r.TLS != nil {
		return "https"
	}

	return "http"
}

func requestHost(r *http.Request) string {
	if r == nil {
		return ""
	}

	if forwardedHost := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); forwardedHost != "" {
		parts := strings.Split(forwardedHost, ",")
		if host := strings.TrimSpace(parts[0]); host != "" {
			return host
		}
	}

	return r.Host
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, templateName, title, description string, extra gin.H) {
	data := h.basePageData(c, title, description, extra)
	h.renderWithLayout(c, http.StatusOK, "base.html", templateName+".html", data)
}

// renderWithLayout renders content into data["Content"] and then the layout
// around it. Successful plain GET responses are stored in the page cache.
func (h *TemplateHandler) renderWithLayout(c *gin.Context, status int, layout, content string, data gin.H) {
	h.applySEOMetadata(c, data)
	h.setNavigationState(c, data)

	if noIndex, ok := data["NoIndex"].(bool); ok && noIndex {
		middleware.NoIndex(c)
	}

	contentTmpl := h.templates.Lookup(content)
	if contentTmpl == nil {
		logger.FromContext(c.Request.Context()).WithField("template", content).Error("Content template not found")
		h.renderPlainError(c, http.StatusInternalServerError)
		return
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).WithField("template", content).Error("Failed to render content")
		h.renderPlainError(c, http.StatusInternalServerError)
		return
	}

	data["Content"] = template.HTML(buf)

	layoutTmpl := h.templates.Lookup(layout)
	if layoutTmpl == nil {
		logger.FromContext(c.Request.Context()).WithField("template", layout).Error("Layout template not found")
		h.renderPlainError(c, http.StatusInternalServerError)
		return
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).WithField("template", layout).Error("Failed to render layout")
		h.renderPlainError(c, http.StatusInternalServerError)
		return
	}

	if status == http.StatusOK && h.cacheable(c) {
		if err := h.cache.CacheRenderedPage(c.Request.URL.Path, output, h.pageTTL); err != nil {
			logger.FromContext(c.Request.Context()).WithError(err).Warn("Failed to cache rendered page")
		}
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

// cacheable reports whether the response may be shared through the page
// cache. Without a configured site URL the absolute links in a page come from
// request headers, so such pages are never shared.
func (h *TemplateHandler) cacheable(c *gin.Context) bool {
	return h.cache.Enabled() && h.pageTTL > 0 &&
		strings.TrimSpace(h.config.SiteURL) != "" &&
		c.Request.Method == http.MethodGet && c.Request.URL.RawQuery == ""
}

// serveCached writes a cached copy of the requested page and reports whether
// it did.
func (h *TemplateHandler) serveCached(c *gin.Context) bool {
	if !h.cacheable(c) {
		return false
	}

	page, err := h.cache.GetCachedRenderedPage(c.Request.URL.Path)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.FromContext(c.Request.Context()).WithError(err).Warn("Failed to read page cache")
		}
		return false
	}

	c.Header("X-Cache", "HIT")
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	return true
}

// renderError renders a localized error page inside the site layout.
func (h *TemplateHandler) renderError(c *gin.Context, status int, titleKey, messageKey string) {
	t := h.translator(h.requestLocale(c))
	data := h.basePageData(c, t.Get(titleKey), "", gin.H{
		"StatusCode": status,
		"Heading":    t.Get(titleKey),
		"Message":    t.Get(messageKey),
		"NoIndex":    true,
	})
	h.renderWithLayout(c, status, "base.html", "error.html", data)
}

// renderPlainError is the last resort when templates themselves fail.
func (h *TemplateHandler) renderPlainError(c *gin.Context, status int) {
	c.Data(status, "text/plain; charset=utf-8", []byte(http.StatusText(status)))
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
