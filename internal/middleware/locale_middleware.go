package middleware

import (
	"net/http"
	"strings"

	"ekoi-website/internal/config"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleContextKey holds the lang.Locale of a canonical request.
	LocaleContextKey = "locale"
	// SupportedLocalesContextKey holds the []lang.Locale the site serves.
	SupportedLocalesContextKey = "supported_locales"
)

// localeExemptPrefixes are served without a locale prefix: assets, the JSON
// API and operational endpoints.
var localeExemptPrefixes = []string{
	"/static/",
	"/api/",
}

var localeExemptPaths = map[string]struct{}{
	"/health":      {},
	"/metrics":     {},
	"/favicon.ico": {},
	"/robots.txt":  {},
	"/sitemap.xml": {},
	"/api":         {},
	"/static":      {},
}

// IsLocaleExempt reports whether path bypasses locale routing.
func IsLocaleExempt(path string) bool {
	if _, ok := localeExemptPaths[path]; ok {
		return true
	}
	for _, prefix := range localeExemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// LocaleRoutingMiddleware makes the locale of every page request visible in
// its path. Requests without a supported locale prefix are redirected to the
// canonical path before anything renders; canonical requests have their
// locale stored in the context under LocaleContextKey.
//
// With locale detection enabled the redirect target uses the locale negotiated
// from Accept-Language instead of the default.
func LocaleRoutingMiddleware(cfg *config.Config, resolver *lang.Resolver) gin.HandlerFunc {
	detect := cfg != nil && cfg.LocaleDetection
	supported := resolver.Supported()

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if IsLocaleExempt(path) {
			c.Next()
			return
		}

		locale, canonical := resolver.Resolve(path)
		if canonical == path {
			c.Set(LocaleContextKey, locale)
			c.Set(SupportedLocalesContextKey, supported)
			c.Writer.Header().Set("Content-Language", string(locale))
			c.Next()
			return
		}

		if detect {
			locale = lang.Negotiate(c.GetHeader("Accept-Language"), supported, resolver.Default())
			canonical = lang.Localize(locale, path)
		}

		target := canonical
		if raw := c.Request.URL.RawQuery; raw != "" {
			target += "?" + raw
		}

		recordLocaleRedirect(locale)
		logger.FromContext(c.Request.Context()).WithFields(map[string]interface{}{
			"from":   path,
			"to":     canonical,
			"locale": locale,
		}).Debug("Redirecting to canonical locale path")

		if detect {
			c.Header("Vary", "Accept-Language")
		}
		c.Redirect(http.StatusTemporaryRedirect, target)
		c.Abort()
	}
}

// LocaleFromContext returns the locale stored by LocaleRoutingMiddleware, or
// fallback when the request bypassed locale routing.
func LocaleFromContext(c *gin.Context, fallback lang.Locale) lang.Locale {
	if value, ok := c.Get(LocaleContextKey); ok {
		if locale, ok := value.(lang.Locale); ok && locale != "" {
			return locale
		}
	}
	return fallback
}
