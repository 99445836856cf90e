// Package session holds the analysis session state machine. Transitions are
// computed by Reduce, a pure function over events; Machine wraps it for
// callers that run requests on goroutines.
package session

import (
	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/risk"
)

type Phase int

const (
	NoModeSelected Phase = iota
	AwaitingInput
	Submitting
	Settled
)

func (p Phase) String() string {
	switch p {
	case AwaitingInput:
		return "awaiting_input"
	case Submitting:
		return "submitting"
	case Settled:
		return "settled"
	default:
		return "no_mode_selected"
	}
}

type Mode string

const (
	ModeNone Mode = ""
	ModeText Mode = "text"
	ModeURL  Mode = "url"
)

func (m Mode) Valid() bool {
	return m == ModeText || m == ModeURL
}

const (
	MessageEnterText = "Please enter job description"
	MessageEnterURL  = "Please enter job URL"
)

// State is a snapshot of the session. Result and Err are only set in Settled;
// Notice carries a local validation message while awaiting input.
type State struct {
	Phase      Phase
	Mode       Mode
	Generation uint64

	Result *ghosthire.AnalysisResult
	Err    error
	Notice string
}

// Loading reports whether the submit affordance must be disabled.
func (s State) Loading() bool {
	return s.Phase == Submitting
}

// HasResult reports a successful settled outcome.
func (s State) HasResult() bool {
	return s.Phase == Settled && s.Err == nil && s.Result != nil
}

// Tier is recomputed from the result on every call.
func (s State) Tier() risk.Tier {
	if s.Result == nil {
		return risk.Low
	}
	return risk.Classify(s.Result.RuleScore)
}

// Message is the error or validation text shown to the user, if any.
func (s State) Message() string {
	if s.Phase == Settled && s.Err != nil {
		return ghosthire.UserMessage(s.Err)
	}
	return s.Notice
}

func validationMessage(mode Mode) string {
	switch mode {
	case ModeText:
		return MessageEnterText
	case ModeURL:
		return MessageEnterURL
	default:
		return ghosthire.MessageValidation
	}
}
