package middleware

import (
	"strconv"
	"sync"
	"time"

	"ekoi-website/pkg/lang"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce sync.Once

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	localeRedirects     *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ekoi",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status",
		}, []string{"method", "route", "status"})

		httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ekoi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})

		localeRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ekoi",
			Subsystem: "locale",
			Name:      "redirects_total",
			Help:      "Requests redirected to a locale-prefixed path, by target locale",
		}, []string{"locale"})
	})
}

// MetricsMiddleware records request counts and latencies per matched route.
// Unmatched requests are grouped under a single label to bound cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	initMetrics()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func recordLocaleRedirect(locale lang.Locale) {
	initMetrics()
	localeRedirects.WithLabelValues(string(locale)).Inc()
}
