package session

import "github.com/spigell/ghosthire/internal/ghosthire"

type Event interface {
	isEvent()
}

// ModeSelected is the user picking an input method on the landing screen.
type ModeSelected struct {
	Mode Mode
}

// Submitted carries the candidate payload handed up by an input view.
type Submitted struct {
	Payload map[string]any
}

// Resolved is the completion of the request started for Generation.
type Resolved struct {
	Generation uint64
	Result     *ghosthire.AnalysisResult
	Err        error
}

// ModeReset is "change input method".
type ModeReset struct{}

func (ModeSelected) isEvent() {}
func (Submitted) isEvent()    {}
func (Resolved) isEvent()     {}
func (ModeReset) isEvent()    {}

// Effect asks the caller to send Request and report back with a Resolved
// event tagged with Generation. A zero Effect means nothing to do.
type Effect struct {
	Generation uint64
	Request    *ghosthire.AnalysisRequest
}

func (e Effect) None() bool {
	return e.Request == nil
}

// Reduce returns the state following ev. It never performs I/O.
func Reduce(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case ModeSelected:
		if s.Phase != NoModeSelected || !ev.Mode.Valid() {
			return s, Effect{}
		}
		return State{Phase: AwaitingInput, Mode: ev.Mode, Generation: s.Generation}, Effect{}

	case Submitted:
		if s.Phase != AwaitingInput && s.Phase != Settled {
			return s, Effect{}
		}

		req, err := ghosthire.Normalize(ev.Payload)
		if err != nil {
			return State{
				Phase:      AwaitingInput,
				Mode:       s.Mode,
				Generation: s.Generation,
				Notice:     validationMessage(s.Mode),
			}, Effect{}
		}

		next := State{Phase: Submitting, Mode: s.Mode, Generation: s.Generation + 1}
		return next, Effect{Generation: next.Generation, Request: &req}

	case Resolved:
		if s.Phase != Submitting || ev.Generation != s.Generation {
			return s, Effect{}
		}

		next := State{Phase: Settled, Mode: s.Mode, Generation: s.Generation}
		if ev.Err != nil {
			next.Err = ev.Err
			return next, Effect{}
		}

		next.Result = ev.Result
		if next.Result == nil {
			next.Result = &ghosthire.AnalysisResult{}
		}
		return next, Effect{}

	case ModeReset:
		return State{Phase: NoModeSelected, Generation: s.Generation + 1}, Effect{}
	}

	return s, Effect{}
}

// IsStale reports whether a resolution no longer belongs to the session.
func IsStale(s State, ev Resolved) bool {
	return s.Phase != Submitting || ev.Generation != s.Generation
}
