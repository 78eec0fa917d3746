// File: cmd/gallery/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prompt-gallery/internal/config"
	"prompt-gallery/internal/domain/model"
	"prompt-gallery/internal/domain/ports/adapter"
	aiAdapters "prompt-gallery/internal/infra/adapters/ai"
	"prompt-gallery/internal/infra/logging"
	"prompt-gallery/internal/infra/memory"
	"prompt-gallery/internal/infra/notify"
	"prompt-gallery/internal/infra/worker"
	"prompt-gallery/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file (defaults only when empty)")
	endpoint := flag.String("endpoint", "", "generation endpoint URL (overrides client.endpoint)")
	mediaType := flag.String("type", "image", "initial media type: image | video")
	metricsAddr := flag.String("metrics-addr", "", "serve /metrics on this address (overrides gallery.metrics_addr)")
	devMode := flag.Bool("dev", false, "enable developer mode (debug logs, unredacted prompts)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *endpoint != "" {
		cfg.Client.Endpoint = *endpoint
	}
	if *metricsAddr != "" {
		cfg.Gallery.MetricsAddr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	typ, err := model.ParseMediaType(*mediaType)
	if err != nil {
		log.Fatalf("-type: %v", err)
	}

	// stdout belongs to the gallery; logs go to stderr
	logger := logging.NewWithWriter(os.Stderr, cfg.Log, cfg.Runtime.Dev)

	client, err := aiAdapters.NewEndpointAdapter(cfg.Client.Endpoint, cfg.Client.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("endpoint adapter")
	}
	images := aiAdapters.NewInstrumented(client, "endpoint")
	if cfg.Gallery.MetricsAddr != "" {
		stopMetrics := startMetrics(cfg.Gallery.MetricsAddr, logger)
		defer stopMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := worker.NewPool(cfg.Gallery.Workers, logger)
	pool.Start(ctx)
	defer pool.Stop()

	notifier := notify.NewConsole(os.Stdout, logger)
	gallery := usecase.NewGalleryUseCase(memory.NewMediaItemRepo(), images, notifier, pool, usecase.GalleryOptions{
		VideoDelay:       cfg.Gallery.VideoDelay,
		VideoPlaceholder: cfg.Gallery.VideoPlaceholder,
		Dev:              cfg.Runtime.Dev,
	}, logger)
	defer gallery.Close()

	if cfg.Gallery.SeedExamples {
		gallery.Seed(usecase.DemoItems(time.Now(), cfg.Gallery.VideoPlaceholder)...)
	}

	r := newREPL(gallery, os.Stdout, cfg.Gallery.PromptWidth, typ)
	notifier.OnNotify = func(adapter.Notification) { r.Render() }

	fmt.Fprintf(os.Stdout, "prompt gallery, endpoint %s (type /help)\n", cfg.Client.Endpoint)
	r.Render()

	// stdin reads cannot be interrupted, so a signal just stops waiting on them
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, os.Stdin) }()
	select {
	case err = <-done:
	case <-ctx.Done():
		logger.Info().Msg("interrupted")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("gallery stopped")
	}
}
