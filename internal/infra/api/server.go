package api

import (
	"net/http"
	"time"

	"prompt-gallery/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server wires the generation endpoint and ops routes to GenerateUseCase.
type Server struct {
	genUC          usecase.GenerateUseCase
	log            *zerolog.Logger
	requestTimeout time.Duration
	maxBodyBytes   int64
}

// NewServer constructs the HTTP layer. Zero timeout / body limit fall back
// to 10s and 1 MiB.
func NewServer(genUC usecase.GenerateUseCase, logger *zerolog.Logger, requestTimeout time.Duration, maxBodyBytes int64) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	l := logger.With().Str("component", "HTTPServer").Logger()
	return &Server{genUC: genUC, log: &l, requestTimeout: requestTimeout, maxBodyBytes: maxBodyBytes}
}

// Routes returns the router. Every path other than GET /health and
// GET /metrics reaches the generation endpoint, for all methods.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log), Timeout(s.requestTimeout))
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.HandleFunc("/", s.handleGenerate)
	r.HandleFunc("/*", s.handleGenerate)
	return r
}
