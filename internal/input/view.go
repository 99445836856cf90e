// Package input holds the two ways of entering a job posting. A view only
// owns its text buffer; it hands a payload to whatever Submitter it is given
// and never talks to the scoring service itself.
package input

import (
	"fmt"
	"unicode/utf8"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/session"
)

const (
	// MinTextLength is the advisory length below which a description is
	// probably too short. It never blocks submission.
	MinTextLength = 50

	LabelAnalyze   = "Analyze"
	LabelAnalyzing = "Analyzing..."
)

// Submitter receives candidate payloads from a view.
type Submitter interface {
	Submit(payload map[string]any)
}

// SubmitFunc adapts a function to the Submitter interface.
type SubmitFunc func(payload map[string]any)

func (f SubmitFunc) Submit(payload map[string]any) {
	f(payload)
}

type View interface {
	Mode() session.Mode
	Placeholder() string
	SetValue(string)
	Value() string
	// Payload is the candidate payload built from the current buffer.
	Payload() map[string]any
	// Advisory is informational text shown under the input, may be empty.
	Advisory() string
	Submit(Submitter)
}

// NewView returns the view for mode.
func NewView(mode session.Mode) (View, error) {
	switch mode {
	case session.ModeText:
		return &TextView{}, nil
	case session.ModeURL:
		return &URLView{}, nil
	default:
		return nil, fmt.Errorf("unknown input mode: %q", mode)
	}
}

// SubmitLabel is the caption of the submit button.
func SubmitLabel(loading bool) string {
	if loading {
		return LabelAnalyzing
	}
	return LabelAnalyze
}

type TextView struct {
	value string
}

func (v *TextView) Mode() session.Mode    { return session.ModeText }
func (v *TextView) Placeholder() string   { return "Paste job description here..." }
func (v *TextView) SetValue(value string) { v.value = value }
func (v *TextView) Value() string         { return v.value }

func (v *TextView) Payload() map[string]any {
	return map[string]any{ghosthire.KeyJobText: v.value}
}

// Length counts characters, not bytes.
func (v *TextView) Length() int {
	return utf8.RuneCountInString(v.value)
}

func (v *TextView) TooShort() bool {
	return v.Length() < MinTextLength
}

func (v *TextView) Advisory() string {
	if v.TooShort() {
		return fmt.Sprintf("%d characters (too short to analyze properly)", v.Length())
	}
	return fmt.Sprintf("%d characters", v.Length())
}

func (v *TextView) Submit(s Submitter) {
	s.Submit(v.Payload())
}

type URLView struct {
	value string
}

func (v *URLView) Mode() session.Mode    { return session.ModeURL }
func (v *URLView) Placeholder() string   { return "Paste job posting URL here..." }
func (v *URLView) SetValue(value string) { v.value = value }
func (v *URLView) Value() string         { return v.value }
func (v *URLView) Advisory() string      { return "" }

func (v *URLView) Payload() map[string]any {
	return map[string]any{ghosthire.KeyJobURL: v.value}
}

func (v *URLView) Submit(s Submitter) {
	s.Submit(v.Payload())
}
