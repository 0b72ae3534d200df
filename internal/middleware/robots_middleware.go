package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// NoIndexDirectives keeps a response out of search results.
const NoIndexDirectives = "noindex, nofollow"

const robotsHeader = "X-Robots-Tag"

// RobotsDirectives joins the non-empty directives into an X-Robots-Tag value,
// falling back to NoIndexDirectives.
func RobotsDirectives(directives ...string) string {
	cleaned := make([]string, 0, len(directives))
	for _, directive := range directives {
		if directive = strings.TrimSpace(directive); directive != "" {
			cleaned = append(cleaned, directive)
		}
	}
	if len(cleaned) == 0 {
		return NoIndexDirectives
	}
	return strings.Join(cleaned, ", ")
}

// NoIndex marks the current response as not indexable.
func NoIndex(c *gin.Context) {
	c.Header(robotsHeader, NoIndexDirectives)
}

// NoIndexMiddleware tags every response of a route group, such as the JSON API
// or metrics, so crawlers skip it.
func NoIndexMiddleware(directives ...string) gin.HandlerFunc {
	value := RobotsDirectives(directives...)

	return func(c *gin.Context) {
		c.Header(robotsHeader, value)
		c.Next()
	}
}
