package input

import "github.com/spigell/ghosthire/internal/session"

const LandingQuestion = "How would you like to analyze the job?"

type Option struct {
	Mode  session.Mode
	Label string
}

// Options lists the landing choices in display order.
func Options() []Option {
	return []Option{
		{Mode: session.ModeURL, Label: "Paste Job URL"},
		{Mode: session.ModeText, Label: "Continue with Job Description"},
	}
}

// ModeForLabel maps a landing label back to its mode.
func ModeForLabel(label string) (session.Mode, bool) {
	for _, o := range Options() {
		if o.Label == label {
			return o.Mode, true
		}
	}
	return session.ModeNone, false
}
