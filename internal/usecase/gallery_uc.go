package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"prompt-gallery/internal/domain"
	"prompt-gallery/internal/domain/model"
	"prompt-gallery/internal/domain/ports/adapter"
	"prompt-gallery/internal/domain/ports/repository"
	"prompt-gallery/internal/infra/logging"
	"prompt-gallery/internal/infra/metrics"
	"prompt-gallery/internal/infra/worker"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ GalleryUseCase = (*galleryUC)(nil)

// GalleryUseCase is the client side: it owns the item list and resolves
// submissions in the background.
type GalleryUseCase interface {
	// Submit adds a generating item and starts resolving it. Blank prompts
	// return domain.ErrPromptRequired and leave the list untouched.
	Submit(ctx context.Context, prompt string, typ model.MediaType) (*model.MediaItem, error)
	// Seed inserts already completed items; items[0] ends up first.
	Seed(items ...*model.MediaItem)
	List() []*model.MediaItem
	Busy() bool
	// Wait blocks until every in-flight submission settled.
	Wait()
	// Close cancels pending work. Results arriving afterwards are dropped.
	Close()
}

type GalleryOptions struct {
	VideoDelay       time.Duration
	VideoPlaceholder string
	Dev              bool
	Now              func() time.Time
}

type galleryUC struct {
	items    repository.MediaItemRepository
	images   adapter.ImageGenerator
	notifier adapter.Notifier
	pool     *worker.Pool
	opts     GalleryOptions
	log      *zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	inFlight int
	closed   bool
	wg       sync.WaitGroup
}

func NewGalleryUseCase(
	items repository.MediaItemRepository,
	images adapter.ImageGenerator,
	notifier adapter.Notifier,
	pool *worker.Pool,
	opts GalleryOptions,
	logger *zerolog.Logger,
) *galleryUC {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	l := logger.With().Str("component", "GalleryUC").Logger()
	ctx, cancel := context.WithCancel(context.Background())
	return &galleryUC{
		items:    items,
		images:   images,
		notifier: notifier,
		pool:     pool,
		opts:     opts,
		log:      &l,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (g *galleryUC) Submit(ctx context.Context, prompt string, typ model.MediaType) (*model.MediaItem, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, domain.ErrPromptRequired
	}

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil, domain.ErrClosed
	}
	if g.inFlight > 0 {
		g.mu.Unlock()
		metrics.IncGallerySubmission(string(typ), "rejected")
		return nil, domain.ErrGenerationInProgress
	}
	item, err := model.NewMediaItem(prompt, typ, g.opts.Now())
	if err != nil {
		g.mu.Unlock()
		return nil, err
	}
	g.items.Prepend(item)
	g.inFlight++
	g.wg.Add(1)
	g.mu.Unlock()

	log := logging.With(logging.WithItemID(ctx, item.ID), g.log)
	log.Info().
		Str("type", string(item.Type)).
		Str("prompt", logging.Redact(item.Prompt, g.opts.Dev)).
		Int("gallery_size", g.items.Len()).
		Msg("submission started")

	snapshot := *item
	task := func(poolCtx context.Context) error {
		defer g.settle()
		if err := poolCtx.Err(); err != nil {
			// the pool shut down before this task got a worker
			metrics.IncGallerySubmission(string(snapshot.Type), "dropped")
			log.Debug().Msg("worker pool stopped, submission dropped")
			return err
		}
		return g.resolve(log, &snapshot)
	}
	if err := g.pool.Submit(task); err != nil {
		g.items.Remove(item.ID)
		g.settle()
		metrics.IncGallerySubmission(string(typ), "failed")
		g.notifier.Notify(ctx, adapter.Notification{
			Level:   adapter.NotifyError,
			Title:   "Generation failed",
			Message: err.Error(),
		})
		return nil, fmt.Errorf("schedule generation: %w", err)
	}
	return item, nil
}

func (g *galleryUC) settle() {
	g.mu.Lock()
	g.inFlight--
	g.mu.Unlock()
	g.wg.Done()
}

// resolve runs under the gallery context, tagged with the item id as trace
// id so the endpoint logs the same id.
func (g *galleryUC) resolve(log *zerolog.Logger, item *model.MediaItem) error {
	ctx := logging.WithTraceID(logging.WithItemID(g.ctx, item.ID), item.ID)
	var (
		url string
		err error
	)
	switch item.Type {
	case model.MediaTypeVideo:
		url, err = g.simulateVideo(ctx)
	default:
		url, err = g.images.GenerateImage(ctx, item.Prompt)
		if err == nil && url == "" {
			err = errEmptyURL
		}
	}

	if g.ctx.Err() != nil {
		metrics.IncGallerySubmission(string(item.Type), "dropped")
		log.Debug().Msg("gallery closed, result dropped")
		return g.ctx.Err()
	}

	if err != nil {
		g.items.Remove(item.ID)
		metrics.IncGallerySubmission(string(item.Type), "failed")
		log.Warn().Err(err).Msg("submission failed, item removed")
		g.notifier.Notify(ctx, adapter.Notification{
			Level:   adapter.NotifyError,
			Title:   "Generation failed",
			Message: err.Error(),
		})
		return err
	}

	done, err := g.items.Complete(item.ID, url)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Debug().Msg("item vanished before completion")
		}
		return err
	}
	metrics.IncGallerySubmission(string(item.Type), "completed")
	log.Info().Str("url", done.URL).Msg("submission completed")

	title := "Image ready"
	if done.Type == model.MediaTypeVideo {
		title = "Video ready"
	}
	g.notifier.Notify(ctx, adapter.Notification{
		Level:   adapter.NotifySuccess,
		Title:   title,
		Message: done.Prompt,
	})
	return nil
}

// simulateVideo stands in for a video backend that does not exist: wait a
// fixed delay, then hand back the placeholder.
func (g *galleryUC) simulateVideo(ctx context.Context) (string, error) {
	t := time.NewTimer(g.opts.VideoDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return g.opts.VideoPlaceholder, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *galleryUC) Seed(items ...*model.MediaItem) {
	for i := len(items) - 1; i >= 0; i-- {
		g.items.Prepend(items[i])
	}
}

func (g *galleryUC) List() []*model.MediaItem { return g.items.List() }

func (g *galleryUC) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight > 0
}

func (g *galleryUC) Wait() { g.wg.Wait() }

func (g *galleryUC) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	g.cancel()
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, adapter.Notification) {}

// DemoItems returns the two completed examples the gallery can start with.
func DemoItems(now time.Time, url string) []*model.MediaItem {
	return []*model.MediaItem{
		{
			ID:        "demo-1",
			Prompt:    "A spaceship flying through a starry sky",
			URL:       url,
			Type:      model.MediaTypeVideo,
			Status:    model.MediaStatusCompleted,
			Timestamp: now.Add(-time.Hour),
		},
		{
			ID:        "demo-2",
			Prompt:    "Abstract shapes transforming in 3D space",
			URL:       url,
			Type:      model.MediaTypeVideo,
			Status:    model.MediaStatusCompleted,
			Timestamp: now.Add(-2 * time.Hour),
		},
	}
}
