package session

import (
	"context"
	"errors"
	"sync"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/logger"

	"go.uber.org/zap"
)

var errNoAnalyzer = errors.New("session has no analyzer")

// Analyzer is the part of the request client the session needs.
type Analyzer interface {
	AnalyzeRequest(ctx context.Context, req ghosthire.AnalysisRequest) (*ghosthire.AnalysisResult, error)
}

type Machine struct {
	// ctx is used only for requests started by Submit
	ctx      context.Context
	analyzer Analyzer
	logger   *zap.Logger

	mu       sync.Mutex
	state    State
	inflight sync.WaitGroup
	onChange func(State)
}

func NewMachine(ctx context.Context, analyzer Analyzer, log *zap.Logger) *Machine {
	return &Machine{
		ctx:      ctx,
		analyzer: analyzer,
		logger:   logger.OrNop(log),
	}
}

// OnChange registers a callback invoked after every transition that changed
// the state. It runs with the machine unlocked.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Dispatch applies ev and returns the effect the caller is responsible for.
func (m *Machine) Dispatch(ev Event) Effect {
	m.mu.Lock()
	prev := m.state
	next, eff := Reduce(prev, ev)
	m.state = next
	notify := m.onChange
	m.mu.Unlock()

	if r, ok := ev.(Resolved); ok && IsStale(prev, r) {
		m.logger.Debug("discarding stale resolution",
			zap.Uint64("resolved_generation", r.Generation),
			zap.Uint64("current_generation", prev.Generation),
		)
		return eff
	}

	if changed(prev, next) {
		m.logger.Debug("session transition", logger.SessionFields(
			string(next.Mode), prev.Phase.String(), next.Phase.String(), next.Generation)...,
		)
		if notify != nil {
			notify(next)
		}
	}

	return eff
}

// Run sends the request described by eff and returns the matching Resolved
// event without dispatching it.
func (m *Machine) Run(ctx context.Context, eff Effect) Resolved {
	if eff.None() {
		return Resolved{Generation: eff.Generation, Err: ghosthire.ErrValidation}
	}
	if m.analyzer == nil {
		return Resolved{Generation: eff.Generation, Err: errNoAnalyzer}
	}

	result, err := m.analyzer.AnalyzeRequest(ctx, *eff.Request)
	if err != nil {
		m.logger.Debug("analysis failed", zap.Uint64("generation", eff.Generation), zap.Error(err))
	}

	return Resolved{Generation: eff.Generation, Result: result, Err: err}
}

// Submit hands a candidate payload to the session. A valid payload starts a
// request on its own goroutine; its outcome is dispatched when it completes.
func (m *Machine) Submit(payload map[string]any) {
	eff := m.Dispatch(Submitted{Payload: payload})
	if eff.None() {
		return
	}

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		m.Dispatch(m.Run(m.ctx, eff))
	}()
}

// Wait blocks until every request started by Submit has been dispatched.
func (m *Machine) Wait() {
	m.inflight.Wait()
}

func changed(a, b State) bool {
	return a.Phase != b.Phase ||
		a.Mode != b.Mode ||
		a.Generation != b.Generation ||
		a.Notice != b.Notice
}
