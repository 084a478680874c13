package task

import (
	"context"
	"sync"
	"time"
)

// PeriodicTask invokes fn once per tick. Ticks are fire-and-forget: a slow
// invocation does not delay the next tick, and no mutual exclusion is imposed
// between overlapping invocations — the invoked component owns correctness
// under overlap.
type PeriodicTask struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)

	ticks <-chan time.Time // injected tick source; nil means a real ticker

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewPeriodicTask creates a ticker-driven task with the given interval.
func NewPeriodicTask(name string, interval time.Duration, fn func(ctx context.Context)) *PeriodicTask {
	return &PeriodicTask{name: name, interval: interval, fn: fn}
}

// WithTicks replaces the internal ticker with an external tick source,
// making timing deterministic in tests.
func (t *PeriodicTask) WithTicks(ticks <-chan time.Time) *PeriodicTask {
	t.ticks = ticks
	return t
}

func (t *PeriodicTask) Name() string { return t.name }

// Start launches the tick loop.
func (t *PeriodicTask) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return nil
	}
	t.running = true
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	ticks := t.ticks
	var ticker *time.Ticker
	if ticks == nil {
		ticker = time.NewTicker(t.interval)
		ticks = ticker.C
	}

	go func() {
		defer close(t.done)
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.stop:
				return
			case <-ticks:
				go t.fn(ctx)
			}
		}
	}()
	return nil
}

// Stop ends the tick loop; in-flight invocations are not interrupted.
func (t *PeriodicTask) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return nil
	}
	close(t.stop)
	<-t.done
	t.running = false
	return nil
}
