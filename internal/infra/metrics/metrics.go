// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { registerServer(httpRequestsTotal, httpLatencyMs) }

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		},
		[]string{"method", "code"},
	)

	httpLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_latency_ms",
			Help:    "HTTP request latency distribution in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method"},
	)
)

func ObserveHTTPRequest(method string, code int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(norm(method), strconv.Itoa(code)).Inc()
	httpLatencyMs.WithLabelValues(norm(method)).Observe(float64(elapsed.Milliseconds()))
}
