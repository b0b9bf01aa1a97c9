package router

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "Number of requests served, by status code, method and route.",
	},
	[]string{"code", "method", "path"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "Time spent serving requests, by status code, method and route.",
	},
	[]string{"code", "method", "path"},
)

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

func registerPrometheusMetrics() error {
	for _, collector := range metrics {
		if err := prometheus.Register(collector); err != nil {
			return fmt.Errorf("could not register %s with Prometheus", collector)
		}
	}

	return nil
}

// UnregisterPrometheusMetrics removes the collectors from the default
// registry again. Tests that set up more than one router need this
// between setups since a collector can only be registered once.
func UnregisterPrometheusMetrics() bool {
	for _, collector := range metrics {
		if ok := prometheus.Unregister(collector); !ok {
			return false
		}
	}

	return true
}

// MetricsMiddleware observes every request for the /metrics endpoint.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		code := strconv.Itoa(c.Writer.Status())

		// Record the route pattern, not the concrete URL: every expense
		// ID as its own label value would blow up the metric cardinality
		path := c.Request.URL.Path
		for _, p := range c.Params {
			path = strings.Replace(path, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(code, c.Request.Method, path).Observe(time.Since(start).Seconds())
		requestCount.WithLabelValues(code, c.Request.Method, path).Inc()
	}
}
