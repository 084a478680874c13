package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPeriodicTaskFiresOncePerTick(t *testing.T) {
	ticks := make(chan time.Time)
	var calls int64
	p := NewPeriodicTask("test", time.Hour, func(ctx context.Context) {
		atomic.AddInt64(&calls, 1)
	}).WithTicks(ticks)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer p.Stop()

	for i := 0; i < 3; i++ {
		ticks <- time.Now()
	}

	deadline := time.After(time.Second)
	for atomic.LoadInt64(&calls) < 3 {
		select {
		case <-deadline:
			t.Fatalf("got %d invocations, want 3", atomic.LoadInt64(&calls))
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestPeriodicTaskDoesNotWaitForSlowInvocations(t *testing.T) {
	ticks := make(chan time.Time)
	block := make(chan struct{})
	var started int64
	p := NewPeriodicTask("slow", time.Hour, func(ctx context.Context) {
		atomic.AddInt64(&started, 1)
		<-block
	}).WithTicks(ticks)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		close(block)
		p.Stop()
	}()

	// Every tick must be accepted even though no invocation ever returns.
	for i := 0; i < 3; i++ {
		select {
		case ticks <- time.Now():
		case <-time.After(time.Second):
			t.Fatalf("tick %d blocked behind a slow invocation", i)
		}
	}

	deadline := time.After(time.Second)
	for atomic.LoadInt64(&started) < 3 {
		select {
		case <-deadline:
			t.Fatalf("got %d overlapping invocations, want 3", atomic.LoadInt64(&started))
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestPeriodicTaskStopIsIdempotent(t *testing.T) {
	p := NewPeriodicTask("idle", time.Hour, func(ctx context.Context) {})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
