// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"prompt-gallery/internal/config"
	aiAdapters "prompt-gallery/internal/infra/adapters/ai"
	"prompt-gallery/internal/infra/api"
	"prompt-gallery/internal/infra/logging"
	"prompt-gallery/internal/infra/metrics"
	"prompt-gallery/internal/usecase"

	"golang.org/x/sync/errgroup"
)

// set via -ldflags at build time
var (
	version = "dev"
	commit  = "none"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "", "path to YAML config file (defaults only when empty)")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted prompts)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Generator (mock) ----
	mock, err := aiAdapters.NewMockImageGenerator(cfg.Generator.ImageURL, 0)
	if err != nil {
		logger.Fatal().Err(err).Msg("generator")
	}
	gen := aiAdapters.NewInstrumented(mock, "mock")
	genUC := usecase.NewGenerateUseCase(gen, logger, cfg.Runtime.Dev)

	// ---- HTTP ----
	srv := api.NewServer(genUC, logger, cfg.Server.RequestTimeout, cfg.Server.MaxBodyBytes)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Str("version", version).Msg("generation endpoint listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// ---- Graceful shutdown ----
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutdown requested")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("http server error")
	}
	logger.Info().Msg("bye")
}
