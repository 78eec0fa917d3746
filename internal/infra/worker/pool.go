// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrNilTask   = errors.New("nil task")
	ErrQueueFull = errors.New("worker queue full")
	ErrStopped   = errors.New("worker pool stopped")
)

// Task is a unit of background work. Errors are logged, not propagated.
type Task func(ctx context.Context) error

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan Task
	quit chan struct{}
	n    int
	log  *zerolog.Logger

	mu       sync.RWMutex
	stopped  bool
	quitOnce sync.Once
}

func NewPool(workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	l := logger.With().Str("component", "WorkerPool").Logger()
	return &Pool{jobs: make(chan Task, workers*4), quit: make(chan struct{}), n: workers, log: &l}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					p.shutdown()
					p.drain()
					return
				case <-p.quit:
					p.drain()
					return
				case task := <-p.jobs:
					p.run(ctx, id, task)
				}
			}
		}(i)
	}
}

func (p *Pool) run(ctx context.Context, id int, task Task) {
	if err := task(ctx); err != nil {
		p.log.Debug().Err(err).Int("worker", id).Msg("task error")
	}
}

// Stop signals workers to exit and waits for running tasks. Tasks still
// queued run with an already cancelled context, so each one gets to release
// whatever it holds.
func (p *Pool) Stop() {
	p.shutdown()
	p.wg.Wait()
	p.drain()
}

// shutdown rejects further submissions. Once it returns, every task that was
// accepted is in p.jobs.
func (p *Pool) shutdown() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.quitOnce.Do(func() { close(p.quit) })
}

func (p *Pool) drain() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for {
		select {
		case task := <-p.jobs:
			p.run(ctx, -1, task)
		default:
			return
		}
	}
}

func (p *Pool) Submit(task Task) error {
	if task == nil {
		return ErrNilTask
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- task:
		return nil
	default:
		// drop when saturated instead of blocking the caller
		return ErrQueueFull
	}
}
