package worker

import (
	"context"
	"time"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs onTick repeatedly, waiting Delay after a successful tick
// and ErrDelay after a failed one
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick blocks until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err != nil {
				dur = w.errDelay()
			} else {
				dur = w.delay()
			}
		}
	}
}

func (w *TickWorker) delay() time.Duration {
	if w.Delay <= 0 {
		return time.Second
	}
	return w.Delay
}

func (w *TickWorker) errDelay() time.Duration {
	if w.ErrDelay <= 0 {
		return w.delay()
	}
	return w.ErrDelay
}
