package ai

import (
	"context"
	"errors"
	"time"

	"prompt-gallery/internal/domain/ports/adapter"
)

var _ adapter.ImageGenerator = (*MockImageGenerator)(nil)

// MockImageGenerator implements adapter.ImageGenerator without any model.
// Every prompt resolves to the same configured URL.
type MockImageGenerator struct {
	url   string
	delay time.Duration
}

// NewMockImageGenerator constructs the mock. delay simulates processing time
// and may be zero.
func NewMockImageGenerator(url string, delay time.Duration) (*MockImageGenerator, error) {
	if url == "" {
		return nil, errors.New("mock generator: empty image url")
	}
	return &MockImageGenerator{url: url, delay: delay}, nil
}

// GenerateImage ignores the prompt and returns the fixed URL, respecting ctx.
func (g *MockImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if g.delay > 0 {
		t := time.NewTimer(g.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.url, nil
}
