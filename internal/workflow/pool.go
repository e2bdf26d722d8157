package workflow

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jslate/intake/pkg/lifecycle"
)

// Pool runs a fixed number of workers draining the queue. Workers stop
// when the lifecycle context is cancelled; shutdown waits for in-flight
// jobs to finish their current pass.
type Pool struct {
	workers int
	queue   *Queue
	engine  *Engine
	logger  *slog.Logger
}

// NewPool creates a Pool with the given worker count.
func NewPool(workers int, queue *Queue, engine *Engine, logger *slog.Logger) *Pool {
	return &Pool{
		workers: workers,
		queue:   queue,
		engine:  engine,
		logger:  logger.With("system", "workers"),
	}
}

// Start launches the workers and registers drain-on-shutdown with the
// lifecycle coordinator.
func (p *Pool) Start(lc *lifecycle.Coordinator) error {
	ctx := lc.Context()

	group := &errgroup.Group{}
	for i := 0; i < p.workers; i++ {
		worker := i
		group.Go(func() error {
			p.run(ctx, worker)
			return nil
		})
	}

	lc.OnShutdown(func() {
		<-ctx.Done()
		group.Wait()
		p.logger.Info("worker pool drained")
	})

	p.logger.Info("worker pool started", "workers", p.workers)
	return nil
}

func (p *Pool) run(ctx context.Context, worker int) {
	logger := p.logger.With("worker", worker)
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-p.queue.Dequeue():
			if err := p.engine.Process(ctx, id); err != nil {
				logger.Warn("processing pass ended early", "job_id", id, "error", err)
			}
		}
	}
}
