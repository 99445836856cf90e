package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spigell/ghosthire/internal/ghosthire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	c     chan time.Time
	mu    sync.Mutex
	stops int
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stops++
}

func (t *fakeTicker) stopCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stops
}

// fakeClock hands out tickers and fires them as virtual time advances.
type fakeClock struct {
	mu       sync.Mutex
	tickers  []*fakeTicker
	interval time.Duration
	created  chan struct{}
}

func newFakeClock() *fakeClock {
	return &fakeClock{created: make(chan struct{}, 4)}
}

func (c *fakeClock) newTicker(d time.Duration) Ticker {
	t := &fakeTicker{c: make(chan time.Time)}
	c.mu.Lock()
	c.tickers = append(c.tickers, t)
	c.interval = d
	c.mu.Unlock()
	c.created <- struct{}{}
	return t
}

// advance fires the ticker once per full interval contained in d.
func (c *fakeClock) advance(t *testing.T, d time.Duration, fetched <-chan struct{}) {
	t.Helper()

	c.mu.Lock()
	ticker := c.tickers[0]
	interval := c.interval
	c.mu.Unlock()

	for elapsed := interval; elapsed <= d; elapsed += interval {
		ticker.c <- time.Time{}
		waitFetch(t, fetched)
	}
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   int
	values  []*ghosthire.LocCounter
	errs    []error
	fetched chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{fetched: make(chan struct{}, 16)}
}

func (f *fakeFetcher) Loc(context.Context) (*ghosthire.LocCounter, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	var value *ghosthire.LocCounter
	var err error
	if i < len(f.values) {
		value = f.values[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	f.mu.Unlock()

	defer func() { f.fetched <- struct{}{} }()
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = &ghosthire.LocCounter{TotalLoc: i}
	}
	return value, nil
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitFetch(t *testing.T, fetched <-chan struct{}) {
	t.Helper()
	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
	}
}

func TestPollerFetchesImmediatelyThenEveryInterval(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fetcher := newFakeFetcher()
	p := New(fetcher, 10*time.Millisecond, nil, WithTicker(clock.newTicker))

	p.Start(context.Background())
	p.Start(context.Background())
	waitFetch(t, fetcher.fetched)
	<-clock.created

	clock.advance(t, 35*time.Millisecond, fetcher.fetched)
	p.Stop()
	p.Stop()

	assert.Equal(t, 4, fetcher.count())
	require.Len(t, clock.tickers, 1, "a second Start must not create another interval")
	assert.Equal(t, 1, clock.tickers[0].stopCount())
	assert.Equal(t, 10*time.Millisecond, clock.interval)
}

func TestPollerKeepsLastValueOnFailure(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fetcher := newFakeFetcher()
	fetcher.values = []*ghosthire.LocCounter{{BackendLoc: 400, FrontendLoc: 300, TotalLoc: 700}}
	fetcher.errs = []error{nil, ghosthire.ErrNetwork, errors.New("boom")}

	var updates []ghosthire.LocCounter
	var mu sync.Mutex
	p := New(fetcher, time.Second, nil,
		WithTicker(clock.newTicker),
		WithOnUpdate(func(c ghosthire.LocCounter) {
			mu.Lock()
			updates = append(updates, c)
			mu.Unlock()
		}),
	)

	_, ok := p.Last()
	assert.False(t, ok)

	p.Start(context.Background())
	waitFetch(t, fetcher.fetched)
	<-clock.created
	clock.advance(t, 2*time.Second, fetcher.fetched)
	p.Stop()

	last, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, 700, last.TotalLoc)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, updates, 1)
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fetcher := newFakeFetcher()
	p := New(fetcher, time.Second, nil, WithTicker(clock.newTicker))

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	waitFetch(t, fetcher.fetched)
	<-clock.created

	cancel()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not exit after cancel")
	}
	p.Stop()

	assert.Equal(t, 1, clock.tickers[0].stopCount())
}

func TestPollerStopBeforeStart(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	p := New(fetcher, 0, nil)
	p.Stop()
	p.Start(context.Background())

	assert.Equal(t, DefaultInterval, p.interval)
	assert.Equal(t, 0, fetcher.count())
}
