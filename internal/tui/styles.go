package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Low      lipgloss.Style
	Medium   lipgloss.Style
	High     lipgloss.Style
	Chip     lipgloss.Style
	Counter  lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Low:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Medium:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		High:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Chip:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Counter:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
