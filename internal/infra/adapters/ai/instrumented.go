package ai

import (
	"context"
	"time"

	"prompt-gallery/internal/domain/ports/adapter"
	"prompt-gallery/internal/infra/metrics"
)

// Compile-time check
var _ adapter.ImageGenerator = (*instrumented)(nil)

type instrumented struct {
	inner    adapter.ImageGenerator
	provider string
}

// NewInstrumented wraps a generator so every call is recorded in the
// media_generations_total / latency metrics under provider.
func NewInstrumented(inner adapter.ImageGenerator, provider string) adapter.ImageGenerator {
	return &instrumented{inner: inner, provider: provider}
}

func (i *instrumented) GenerateImage(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	url, err := i.inner.GenerateImage(ctx, prompt)
	metrics.ObserveGeneration(i.provider, time.Since(start), err == nil)
	return url, err
}
