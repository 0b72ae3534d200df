package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ekoi-website/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware limits request rate per client IP. Static assets are
// never limited.
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)

		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ContactRateLimitMiddleware limits contact form submissions per client IP.
// Only POST requests count against the limit.
// Default: 5 requests per 600 seconds
func ContactRateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	requestsPerWindow := cfg.ContactRateLimitRequests
	if requestsPerWindow <= 0 {
		requestsPerWindow = 5
	}
	windowSeconds := cfg.ContactRateLimitWindow
	if windowSeconds <= 0 {
		windowSeconds = 600
	}

	return func(c *gin.Context) {
		if manager == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		limiter := manager.GetContactLimiter(c.ClientIP(), requestsPerWindow, windowSeconds)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.Header("Retry-After", strconv.Itoa(windowSeconds))
			c.String(http.StatusTooManyRequests, "Too many contact requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	if path == "" {
		return false
	}

	if strings.HasPrefix(path, "/static/") {
		return true
	}

	switch path {
	case "/favicon.ico", "/health":
		return true
	}

	return false
}
