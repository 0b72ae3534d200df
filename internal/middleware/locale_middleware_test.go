package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ekoi-website/internal/config"
	"ekoi-website/pkg/lang"

	"github.com/gin-gonic/gin"
)

func newLocaleRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := lang.NewResolver(lang.English, []lang.Locale{lang.English, lang.Japanese})

	router := gin.New()
	router.Use(LocaleRoutingMiddleware(cfg, resolver))
	router.GET("/:locale", func(c *gin.Context) {
		c.String(http.StatusOK, string(LocaleFromContext(c, "")))
	})
	router.GET("/:locale/products", func(c *gin.Context) {
		c.String(http.StatusOK, string(LocaleFromContext(c, ""))+" products")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok:"+string(LocaleFromContext(c, "none")))
	})
	router.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	return router
}

func TestLocaleRoutingRedirectsToCanonicalPath(t *testing.T) {
	router := newLocaleRouter(&config.Config{})

	tests := []struct {
		name     string
		path     string
		location string
	}{
		{name: "root", path: "/", location: "/en"},
		{name: "unprefixed page", path: "/products", location: "/en/products"},
		{name: "query preserved", path: "/products?x=1&menu=open", location: "/en/products?x=1&menu=open"},
		{name: "unsupported prefix", path: "/fr/products", location: "/en/fr/products"},
		{name: "prefix is segment bounded", path: "/english", location: "/en/english"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusTemporaryRedirect {
				t.Fatalf("expected 307, got %d", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Fatalf("expected Location %q, got %q", tt.location, got)
			}
			if rec.Header().Get("Vary") != "" {
				t.Fatalf("did not expect Vary header without detection")
			}
		})
	}
}

func TestLocaleRoutingPassesCanonicalPaths(t *testing.T) {
	router := newLocaleRouter(&config.Config{})

	tests := []struct {
		path string
		body string
	}{
		{path: "/en", body: "en"},
		{path: "/ja", body: "ja"},
		{path: "/ja/products", body: "ja products"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.path, rec.Code)
		}
		if rec.Body.String() != tt.body {
			t.Fatalf("%s: expected body %q, got %q", tt.path, tt.body, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Language"); got != tt.body[:2] {
			t.Fatalf("%s: expected Content-Language %q, got %q", tt.path, tt.body[:2], got)
		}
	}
}

func TestLocaleRoutingSkipsExemptPaths(t *testing.T) {
	router := newLocaleRouter(&config.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok:none" {
		t.Fatalf("expected no locale on exempt path, got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected static miss to 404 without redirect, got %d", rec.Code)
	}
}

func TestLocaleRoutingDetection(t *testing.T) {
	router := newLocaleRouter(&config.Config{LocaleDetection: true})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/ja/products" {
		t.Fatalf("expected negotiated redirect, got %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Accept-Language" {
		t.Fatalf("expected Vary: Accept-Language, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-DE")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Location"); got != "/en" {
		t.Fatalf("expected default locale for unmatched language, got %q", got)
	}
}

func TestIsLocaleExempt(t *testing.T) {
	tests := map[string]bool{
		"/static/css/site.css": true,
		"/api/v1/navigation":   true,
		"/health":              true,
		"/metrics":             true,
		"/robots.txt":          true,
		"/sitemap.xml":         true,
		"/favicon.ico":         true,
		"/":                    false,
		"/products":            false,
		"/apiary":              false,
		"/en/static/css/x.css": false,
	}

	for path, want := range tests {
		if got := IsLocaleExempt(path); got != want {
			t.Errorf("IsLocaleExempt(%q) = %v, want %v", path, got, want)
		}
	}
}
