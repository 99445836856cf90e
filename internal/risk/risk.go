// Package risk maps a rule score returned by the scoring service to a
// discrete risk tier.
package risk

import "math"

const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

type Tier int

const (
	Low Tier = iota
	Medium
	High
)

// Classify returns the tier for the provided score. A missing or NaN score is
// reported as Low.
func Classify(score *float64) Tier {
	if score == nil {
		return Low
	}
	return ClassifyValue(*score)
}

// ClassifyValue returns the tier for a known score. Values outside [0,1] are
// classified as-is.
func ClassifyValue(score float64) Tier {
	switch {
	case math.IsNaN(score):
		return Low
	case score > highThreshold:
		return High
	case score > mediumThreshold:
		return Medium
	default:
		return Low
	}
}

func (t Tier) String() string {
	switch t {
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Label is the human readable name shown next to the score.
func (t Tier) Label() string {
	switch t {
	case High:
		return "High Risk"
	case Medium:
		return "Medium Risk"
	default:
		return "Low Risk"
	}
}
