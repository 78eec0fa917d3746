package usecase

import (
	"context"
	"errors"
	"fmt"

	"prompt-gallery/internal/domain"
	"prompt-gallery/internal/domain/ports/adapter"
	"prompt-gallery/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ GenerateUseCase = (*generateUC)(nil)

// GenerateUseCase serves the generation endpoint.
type GenerateUseCase interface {
	// Generate returns the URL of the media generated for prompt.
	// An empty prompt yields domain.ErrPromptRequired.
	Generate(ctx context.Context, prompt string) (string, error)
}

var errEmptyURL = errors.New("generator returned empty url")

type generateUC struct {
	gen adapter.ImageGenerator
	log *zerolog.Logger
	dev bool
}

func NewGenerateUseCase(gen adapter.ImageGenerator, logger *zerolog.Logger, dev bool) *generateUC {
	l := logger.With().Str("component", "GenerateUC").Logger()
	return &generateUC{gen: gen, log: &l, dev: dev}
}

func (u *generateUC) Generate(ctx context.Context, prompt string) (string, error) {
	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "GenerateUC.Generate")()

	// whitespace-only prompts are accepted here; only the client trims.
	if prompt == "" {
		return "", domain.ErrPromptRequired
	}

	url, err := u.gen.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if url == "" {
		return "", errEmptyURL
	}
	log.Debug().Str("prompt", logging.Redact(prompt, u.dev)).Str("url", url).Msg("image generated")
	return url, nil
}
