package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller runs a task on a fixed interval until its context is cancelled. The
// task runs synchronously in the poll loop, so runs never overlap: ticks that
// fire while a run is in flight coalesce into at most one pending tick. A
// failed run is logged and the next tick tries again; there is no retry or
// backoff.
type Poller struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
	logger   *zap.Logger
}

func NewPoller(name string, interval time.Duration, task func(ctx context.Context) error, logger *zap.Logger) *Poller {
	return &Poller{name: name, interval: interval, task: task, logger: logger}
}

// Run executes the task once immediately and then on every tick. It returns
// when ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	if err := p.task(ctx); err != nil {
		p.logger.Error("Poll failed", zap.String("task", p.name), zap.Error(err))
	}
}
