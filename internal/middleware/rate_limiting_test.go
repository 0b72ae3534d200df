package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ekoi-website/internal/config"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddlewareRejectsExcessRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	cfg := &config.Config{RateLimitRequests: 2, RateLimitWindow: 3600, RateLimitBurst: 2}
	router := gin.New()
	router.Use(RateLimitMiddleware(cfg, manager))
	router.GET("/en", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/static/site.css", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected static assets to bypass the limiter, got %d", rec.Code)
	}
}

func TestContactRateLimitOnlyCountsPosts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	cfg := &config.Config{ContactRateLimitRequests: 1, ContactRateLimitWindow: 600}
	router := gin.New()
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/en/contact", ContactRateLimitMiddleware(cfg, manager), handler)
	router.POST("/en/contact", ContactRateLimitMiddleware(cfg, manager), handler)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en/contact", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %d: expected 200, got %d", i, rec.Code)
		}
	}

	post := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/en/contact", strings.NewReader("name=a"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := post(); rec.Code != http.StatusOK {
		t.Fatalf("first POST: expected 200, got %d", rec.Code)
	}
	rec := post()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "600" {
		t.Fatalf("expected Retry-After header, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimitManagerCleanupDropsIdleVisitors(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	manager.GetVisitor("10.0.0.1", 10, 60, 10)
	manager.GetContactLimiter("10.0.0.1", 5, 600)

	manager.cleanup(time.Now().Add(5 * time.Minute))

	manager.visitorsMu.RLock()
	visitors := len(manager.visitors)
	manager.visitorsMu.RUnlock()
	manager.contactLimitersMu.RLock()
	contacts := len(manager.contactLimiters)
	manager.contactLimitersMu.RUnlock()

	if visitors != 0 {
		t.Fatalf("expected idle visitor to be removed, have %d", visitors)
	}
	if contacts != 1 {
		t.Fatalf("expected contact limiter to outlive visitor timeout, have %d", contacts)
	}

	if limiter := manager.GetVisitor("10.0.0.2", 0, 60, 0); limiter != nil {
		t.Fatalf("expected nil limiter when limiting is disabled")
	}
}
