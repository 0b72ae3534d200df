package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ekoi-website/internal/content"
	"ekoi-website/pkg/lang"
	"ekoi-website/pkg/navigation"

	"github.com/gin-gonic/gin"
)

func newNavigationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	site, err := content.Load("")
	if err != nil {
		t.Fatalf("failed to load site content: %v", err)
	}
	resolver := lang.NewResolver(lang.English, []lang.Locale{lang.English, lang.Japanese})
	handler := NewNavigationHandler(site, resolver, navigation.NewModel(resolver.Default(), site.Navigation))

	router := gin.New()
	router.GET("/api/v1/navigation", handler.GetNavigation)
	router.GET("/api/v1/locale/resolve", handler.ResolveLocale)
	return router
}

func TestGetNavigation(t *testing.T) {
	router := newNavigationRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/navigation?locale=ja&path=/ja/news", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var response navigationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Locale != lang.Japanese {
		t.Fatalf("expected ja, got %s", response.Locale)
	}
	wantPaths := []string{"/ja", "/ja/products", "/ja/solutions", "/ja/why-us", "/ja/news", "/ja/contact"}
	if len(response.Items) != len(wantPaths) {
		t.Fatalf("expected %d items, got %d", len(wantPaths), len(response.Items))
	}
	for i, path := range wantPaths {
		if response.Items[i].Path != path {
			t.Fatalf("item %d: expected %s, got %s", i, path, response.Items[i].Path)
		}
		if active := path == "/ja/news"; response.Items[i].Active != active {
			t.Fatalf("item %s: expected active=%v", path, active)
		}
	}
	if response.Items[0].Label != "ホーム" {
		t.Fatalf("expected localized label, got %q", response.Items[0].Label)
	}
	if len(response.Languages) != 2 || response.Languages[0].Href != "/en/news" || !response.Languages[1].Active {
		t.Fatalf("unexpected languages %+v", response.Languages)
	}
	if len(response.Footer) == 0 || len(response.Legal) != 2 {
		t.Fatalf("expected footer and legal links, got %+v / %+v", response.Footer, response.Legal)
	}
}

func TestGetNavigationRejectsUnsupportedLocale(t *testing.T) {
	router := newNavigationRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/navigation?locale=fr", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestResolveLocaleEndpoint(t *testing.T) {
	router := newNavigationRouter(t)

	tests := []struct {
		path      string
		status    int
		locale    string
		canonical string
		redirect  bool
	}{
		{path: "/", status: http.StatusOK, locale: "en", canonical: "/en", redirect: true},
		{path: "/products", status: http.StatusOK, locale: "en", canonical: "/en/products", redirect: true},
		{path: "/ja/news", status: http.StatusOK, locale: "ja", canonical: "/ja/news", redirect: false},
		{path: "", status: http.StatusBadRequest},
		{path: "products", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/locale/resolve", nil)
		if tt.path != "" {
			query := req.URL.Query()
			query.Set("path", tt.path)
			req.URL.RawQuery = query.Encode()
		}
		router.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Fatalf("%q: expected %d, got %d", tt.path, tt.status, rec.Code)
		}
		if tt.status != http.StatusOK {
			continue
		}

		var body struct {
			Locale        string `json:"locale"`
			CanonicalPath string `json:"canonical_path"`
			Redirect      bool   `json:"redirect"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Locale != tt.locale || body.CanonicalPath != tt.canonical || body.Redirect != tt.redirect {
			t.Fatalf("%q: unexpected response %+v", tt.path, body)
		}
	}
}
