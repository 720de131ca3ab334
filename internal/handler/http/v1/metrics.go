package v1

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/crowd_alert_system/internal/metrics"
)

// PrometheusMiddleware считает запросы и их длительность по шаблону маршрута
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		// шаблон маршрута, чтобы id не раздували кардинальность
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
