package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerRunsImmediatelyAndRepeats(t *testing.T) {
	var calls int32
	p := NewPoller(10*time.Millisecond, func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&calls) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d calls", atomic.LoadInt32(&calls))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPollerNeverOverlaps(t *testing.T) {
	var inFlight, maxInFlight, calls int32
	p := NewPoller(time.Millisecond, func(ctx context.Context) error {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		atomic.AddInt32(&calls, 1)
		time.Sleep(15 * time.Millisecond)
		return nil
	})
	p.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	p.Stop()

	if got := atomic.LoadInt32(&maxInFlight); got != 1 {
		t.Fatalf("max in flight = %d, want 1", got)
	}
	// 1ms ticks over ~100ms would be ~100 calls if missed ticks queued up
	if got := atomic.LoadInt32(&calls); got > 10 {
		t.Fatalf("calls = %d, slow fetches should skip ticks", got)
	}
}

func TestPollerStopCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	var sawCancel int32
	p := NewPoller(time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		atomic.StoreInt32(&sawCancel, 1)
		return ctx.Err()
	})
	p.Start(context.Background())
	<-started

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	if atomic.LoadInt32(&sawCancel) != 1 {
		t.Fatal("Stop returned before the fetch saw cancellation")
	}
	if p.Running() {
		t.Fatal("poller still running")
	}
	if !errors.Is(p.Err(), context.Canceled) {
		t.Fatalf("Err = %v", p.Err())
	}
}

func TestPollerStartTwiceAndStopIdle(t *testing.T) {
	var calls int32
	p := NewPoller(time.Hour, func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	p.Stop()

	p.Start(context.Background())
	p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	p.Stop()
	p.Stop()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}
