package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/strive-cao-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics records request count and latency per route template, so
// /students/:id/profile is one series regardless of the student.
// Requests that match no route share a single label.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(c.Request.Method, routeLabel(c), c.Writer.Status(), time.Since(start))
	}
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}
