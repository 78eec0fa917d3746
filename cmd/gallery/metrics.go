package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"prompt-gallery/internal/infra/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// metricsRoutes exposes the gallery process collectors: submissions by
// outcome and calls to the generation endpoint.
func metricsRoutes() http.Handler {
	metrics.MustRegisterGallery()
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// startMetrics serves metricsRoutes on addr in the background and returns
// the matching shutdown.
func startMetrics(addr string, logger *zerolog.Logger) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
