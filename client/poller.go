package client

import (
	"context"
	"sync"
	"time"
)

// Poller runs fn immediately and then every interval until stopped.
// A tick that fires while fn is still running is skipped, so at most one
// fetch is ever in flight.
type Poller struct {
	interval time.Duration
	fn       func(context.Context) error

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
	lastErr error
}

func NewPoller(interval time.Duration, fn func(context.Context) error) *Poller {
	return &Poller{interval: interval, fn: fn}
}

// Start begins polling under ctx. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	go p.loop(ctx, p.done)
}

// Stop cancels the in-flight fetch and waits for it to return
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel, done := p.cancel, p.done
	p.running = false
	p.mu.Unlock()

	cancel()
	<-done
}

// Running reports whether Start was called without a matching Stop
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Err is the result of the last completed fetch
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch(ctx)
	skipMissed(ticker)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
			skipMissed(ticker)
		}
	}
}

// skipMissed drops the tick the ticker buffered while a fetch was running
func skipMissed(t *time.Ticker) {
	select {
	case <-t.C:
	default:
	}
}

func (p *Poller) fetch(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	err := p.fn(ctx)
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}
