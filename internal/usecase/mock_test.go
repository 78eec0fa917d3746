package usecase

import (
	"context"
	"io"
	"sync"

	"prompt-gallery/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// ---- Mock ImageGenerator (adapter) ----

type MockImageGenerator struct {
	mu sync.Mutex

	// configurable behavior
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// tracing of invocations
	Calls []string
}

var _ adapter.ImageGenerator = (*MockImageGenerator)(nil)

func (m *MockImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "https://cdn.example.com/fixed.jpg", nil
}

func (m *MockImageGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ---- Mock Notifier (adapter) ----

type MockNotifier struct {
	mu   sync.Mutex
	sent []adapter.Notification
}

var _ adapter.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, n adapter.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
}

func (m *MockNotifier) Sent() []adapter.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.Notification(nil), m.sent...)
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
// It writes to io.Discard to prevent logs from cluttering test output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
