package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"prompt-gallery/internal/domain/ports/adapter"
	"prompt-gallery/internal/infra/logging"

	"github.com/rs/zerolog"
)

var _ adapter.Notifier = (*Console)(nil)

// Console prints notifications as one-line toasts and mirrors them to the log.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	log *zerolog.Logger
	// OnNotify, when set, runs after each toast is printed (the CLI re-renders
	// the gallery from here).
	OnNotify func(n adapter.Notification)
}

func NewConsole(out io.Writer, logger *zerolog.Logger) *Console {
	l := logger.With().Str("component", "Notifier").Logger()
	return &Console{out: out, log: &l}
}

func (c *Console) Notify(ctx context.Context, n adapter.Notification) {
	mark := "✔"
	ev := logging.With(ctx, c.log).Info()
	if n.Level == adapter.NotifyError {
		mark = "✖"
		ev = logging.With(ctx, c.log).Warn()
	}
	ev.Str("notify_level", string(n.Level)).Str("title", n.Title).Msg("notification")

	c.mu.Lock()
	if n.Message != "" {
		fmt.Fprintf(c.out, "%s %s: %s\n", mark, n.Title, n.Message)
	} else {
		fmt.Fprintf(c.out, "%s %s\n", mark, n.Title)
	}
	hook := c.OnNotify
	c.mu.Unlock()

	if hook != nil {
		hook(n)
	}
}
