package session

import (
	"errors"
	"testing"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/risk"
)

func score(f float64) *float64 { return &f }

func TestReduceLandingSelectsMode(t *testing.T) {
	t.Parallel()

	s, eff := Reduce(State{}, ModeSelected{Mode: ModeURL})
	if s.Phase != AwaitingInput || s.Mode != ModeURL {
		t.Fatalf("expected awaiting url input, got %+v", s)
	}
	if !eff.None() {
		t.Fatalf("mode selection must not start a request")
	}

	again, _ := Reduce(s, ModeSelected{Mode: ModeText})
	if again.Mode != ModeURL {
		t.Fatalf("mode must not change without a reset, got %s", again.Mode)
	}

	unknown, _ := Reduce(State{}, ModeSelected{Mode: "pdf"})
	if unknown.Phase != NoModeSelected {
		t.Fatalf("unknown mode must be ignored, got %s", unknown.Phase)
	}
}

func TestReduceInvalidSubmitStaysAwaiting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    Mode
		payload map[string]any
		notice  string
	}{
		{mode: ModeText, payload: map[string]any{"job_text": "   "}, notice: MessageEnterText},
		{mode: ModeURL, payload: map[string]any{"job_url": ""}, notice: MessageEnterURL},
		{mode: ModeText, payload: nil, notice: MessageEnterText},
	}

	for _, tt := range tests {
		s := State{Phase: AwaitingInput, Mode: tt.mode, Generation: 2}
		next, eff := Reduce(s, Submitted{Payload: tt.payload})

		if !eff.None() {
			t.Fatalf("invalid payload must not issue a request")
		}
		if next.Phase != AwaitingInput || next.Mode != tt.mode || next.Generation != 2 {
			t.Fatalf("unexpected state after invalid submit: %+v", next)
		}
		if next.Message() != tt.notice {
			t.Fatalf("expected notice %q, got %q", tt.notice, next.Message())
		}
	}
}

func TestReduceSubmitStartsRequest(t *testing.T) {
	t.Parallel()

	s := State{Phase: AwaitingInput, Mode: ModeText, Generation: 4, Notice: MessageEnterText}
	next, eff := Reduce(s, Submitted{Payload: map[string]any{"text": "Data engineer wanted"}})

	if next.Phase != Submitting || !next.Loading() {
		t.Fatalf("expected submitting, got %s", next.Phase)
	}
	if next.Notice != "" {
		t.Fatalf("notice must be cleared on a valid submit, got %q", next.Notice)
	}
	if eff.None() || eff.Generation != 5 || next.Generation != 5 {
		t.Fatalf("expected effect for generation 5, got %+v (state %d)", eff, next.Generation)
	}
	if eff.Request.JobText != "Data engineer wanted" {
		t.Fatalf("unexpected request: %+v", eff.Request)
	}

	ignored, eff := Reduce(next, Submitted{Payload: map[string]any{"text": "second"}})
	if !eff.None() || ignored.Generation != next.Generation {
		t.Fatalf("submit while submitting must be a no-op")
	}

	landing, eff := Reduce(State{}, Submitted{Payload: map[string]any{"text": "x"}})
	if !eff.None() || landing.Phase != NoModeSelected {
		t.Fatalf("submit without a mode must be a no-op")
	}
}

func TestReduceResolution(t *testing.T) {
	t.Parallel()

	submitting := State{Phase: Submitting, Mode: ModeText, Generation: 1}

	ok, _ := Reduce(submitting, Resolved{Generation: 1, Result: &ghosthire.AnalysisResult{RuleScore: score(0.55)}})
	if !ok.HasResult() || ok.Tier() != risk.Medium {
		t.Fatalf("expected medium result, got %+v", ok)
	}

	empty, _ := Reduce(submitting, Resolved{Generation: 1})
	if !empty.HasResult() || empty.Tier() != risk.Low {
		t.Fatalf("missing result must settle as an empty low result, got %+v", empty)
	}

	failed, _ := Reduce(submitting, Resolved{Generation: 1, Err: &ghosthire.ServiceError{Status: 500, Message: "rate limited"}})
	if failed.Phase != Settled || failed.HasResult() || failed.Message() != "rate limited" {
		t.Fatalf("expected settled error, got %+v", failed)
	}

	stale, _ := Reduce(submitting, Resolved{Generation: 0, Err: errors.New("late")})
	if stale.Phase != Submitting {
		t.Fatalf("stale resolution must be ignored, got %s", stale.Phase)
	}
	if !IsStale(submitting, Resolved{Generation: 0}) {
		t.Fatalf("expected generation 0 to be stale")
	}

	again, _ := Reduce(ok, Resolved{Generation: 1})
	if again.Result != ok.Result {
		t.Fatalf("resolution after settle must be ignored")
	}
}

func TestReduceResubmitFromSettled(t *testing.T) {
	t.Parallel()

	settled := State{Phase: Settled, Mode: ModeURL, Generation: 3, Err: ghosthire.ErrNetwork}
	next, eff := Reduce(settled, Submitted{Payload: map[string]any{"job_url": "https://jobs.example.com/9"}})

	if next.Phase != Submitting || next.Err != nil || eff.Generation != 4 {
		t.Fatalf("expected a fresh request, got %+v / %+v", next, eff)
	}
}

func TestReduceModeResetFromAnyState(t *testing.T) {
	t.Parallel()

	states := []State{
		{},
		{Phase: AwaitingInput, Mode: ModeText, Notice: MessageEnterText},
		{Phase: Submitting, Mode: ModeURL, Generation: 7},
		{Phase: Settled, Mode: ModeText, Generation: 2, Result: &ghosthire.AnalysisResult{}},
		{Phase: Settled, Mode: ModeText, Generation: 2, Err: ghosthire.ErrNetwork},
	}

	for _, s := range states {
		next, eff := Reduce(s, ModeReset{})
		if next.Phase != NoModeSelected || next.Mode != ModeNone {
			t.Fatalf("expected landing state, got %+v", next)
		}
		if next.Result != nil || next.Err != nil || next.Message() != "" {
			t.Fatalf("reset must clear outcome, got %+v", next)
		}
		if next.Generation != s.Generation+1 {
			t.Fatalf("reset must advance generation, got %d from %d", next.Generation, s.Generation)
		}
		if !eff.None() {
			t.Fatalf("reset must not start a request")
		}
	}
}
