package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/risk"
	"github.com/spigell/ghosthire/internal/session"

	"github.com/charmbracelet/lipgloss"
)

// RenderOutcome renders the settled part of a session: either the result
// block or the error line. Other phases render the validation notice, if any.
func RenderOutcome(s session.State, st *Styles) string {
	if st == nil {
		st = NewStyles()
	}

	if s.HasResult() {
		return RenderResult(s.Result, st)
	}

	if msg := s.Message(); msg != "" {
		return st.Error.Render(msg)
	}

	return ""
}

func RenderResult(r *ghosthire.AnalysisResult, st *Styles) string {
	if st == nil {
		st = NewStyles()
	}

	var b strings.Builder
	tier := risk.Classify(r.RuleScore)

	b.WriteString(st.Title.Render("Result"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Risk Score: %s  %s\n", formatScore(r.RuleScore), tierStyle(tier, st).Render(tier.Label()))

	reasons := r.ReasonsList()
	if len(reasons) > 0 {
		b.WriteString("\nReasons:\n")
		for _, reason := range reasons {
			fmt.Fprintf(&b, "  • %s\n", reason)
		}
	}

	skills := r.Skills()
	if len(skills) > 0 {
		chips := make([]string, 0, len(skills))
		for _, skill := range skills {
			chips = append(chips, st.Chip.Render("["+skill+"]"))
		}
		b.WriteString("\nSkills: ")
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatScore(score *float64) string {
	if score == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*score, 'f', 2, 64)
}

func tierStyle(t risk.Tier, st *Styles) lipgloss.Style {
	switch t {
	case risk.High:
		return st.High
	case risk.Medium:
		return st.Medium
	default:
		return st.Low
	}
}
