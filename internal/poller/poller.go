// Package poller keeps the lines-of-code counter fresh. It fetches once on
// start and then on every tick until stopped. Failures are logged and
// swallowed; the last good value is kept.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/spigell/ghosthire/internal/ghosthire"

	"go.uber.org/zap"
)

const DefaultInterval = 10 * time.Second

// Fetcher is the part of the request client the poller uses.
type Fetcher interface {
	Loc(ctx context.Context) (*ghosthire.LocCounter, error)
}

// Ticker abstracts time.Ticker so tests can drive the interval.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

type Option func(*Poller)

// WithTicker replaces the ticker constructor.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(p *Poller) {
		p.newTicker = fn
	}
}

// WithOnUpdate registers a callback for every successful fetch.
func WithOnUpdate(fn func(ghosthire.LocCounter)) Option {
	return func(p *Poller) {
		p.onUpdate = fn
	}
}

type Poller struct {
	fetcher   Fetcher
	interval  time.Duration
	logger    *zap.Logger
	newTicker func(time.Duration) Ticker
	onUpdate  func(ghosthire.LocCounter)

	mu      sync.RWMutex
	last    ghosthire.LocCounter
	hasLast bool

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

func New(fetcher Fetcher, interval time.Duration, logger *zap.Logger, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Poller{
		fetcher:   fetcher,
		interval:  interval,
		logger:    logger,
		newTicker: newTimeTicker,
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start launches the polling loop. Calling it more than once has no effect.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)

		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()

		go p.loop(ctx)
	})
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once, and before Start.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.RLock()
		cancel := p.cancel
		p.mu.RUnlock()

		if cancel == nil {
			// never started: make a later Start a no-op
			p.startOnce.Do(func() { close(p.done) })
			return
		}

		cancel()
		<-p.done
	})
}

// Last returns the most recent counter and whether any fetch has succeeded.
func (p *Poller) Last() (ghosthire.LocCounter, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.hasLast
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	p.fetch(ctx)

	ticker := p.newTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			p.fetch(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	counter, err := p.fetcher.Loc(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Debug("fetching loc counter failed", zap.Error(err))
		}
		return
	}

	p.mu.Lock()
	p.last = *counter
	p.hasLast = true
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(*counter)
	}
}
