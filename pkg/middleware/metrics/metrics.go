// Package metrics records Prometheus metrics for HTTP requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campusbridge/campusbridge/pkg/server/router"
)

var (
	// Labels: method, path, status. Path is the route pattern, not the
	// raw URL, to keep cardinality bounded.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
)

// Metrics instruments each request with a counter, a latency histogram
// and an in-flight gauge.
func Metrics() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			start := time.Now()
			requestsInFlight.Inc()
			defer requestsInFlight.Dec()

			err := next(c)

			status := strconv.Itoa(c.Response().Status())
			method := c.Request().Method
			path := c.Request().URL.Path
			requestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			requestsTotal.WithLabelValues(method, path, status).Inc()
			return err
		}
	}
}
