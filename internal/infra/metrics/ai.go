package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(generationsTotal, generationLatencyMs) }

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_generations_total",
			Help: "Generation calls per provider and outcome.",
		},
		[]string{"provider", "success"},
	)

	generationLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_generation_latency_ms",
			Help:    "Generation latency distribution in milliseconds.",
			Buckets: []float64{1, 10, 50, 100, 400, 1600, 5000, 10000},
		},
		[]string{"provider"},
	)
)

func ObserveGeneration(provider string, elapsed time.Duration, success bool) {
	generationsTotal.WithLabelValues(norm(provider), strconv.FormatBool(success)).Inc()
	generationLatencyMs.WithLabelValues(norm(provider)).Observe(float64(elapsed.Milliseconds()))
}
