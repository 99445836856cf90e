// Package tui is the interactive terminal front end. Key presses and request
// completions are turned into session events and reduced synchronously in
// Update; requests run as commands and report back tagged with the session
// generation they were started for.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/input"
	"github.com/spigell/ghosthire/internal/odometer"
	"github.com/spigell/ghosthire/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const title = "GhostHire Detector"

// Runner executes the request described by a session effect.
type Runner interface {
	Run(ctx context.Context, eff session.Effect) session.Resolved
}

// LocMsg delivers a fresh counter value from the poller.
type LocMsg ghosthire.LocCounter

type resolvedMsg session.Resolved

type Model struct {
	ctx    context.Context
	runner Runner
	styles *Styles

	state  session.State
	cursor int
	view   input.View

	textarea textarea.Model
	urlInput textinput.Model
	spinner  spinner.Model

	loc    ghosthire.LocCounter
	hasLoc bool

	width int
}

func NewModel(ctx context.Context, runner Runner) Model {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.ShowLineNumbers = false

	ti := textinput.New()
	ti.Width = 80

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Millisecond * 100,
	}

	return Model{
		ctx:      ctx,
		runner:   runner,
		styles:   NewStyles(),
		textarea: ta,
		urlInput: ti,
		spinner:  s,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State exposes the current session snapshot.
func (m Model) State() session.State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := max(msg.Width-4, 20)
		m.textarea.SetWidth(w)
		m.urlInput.Width = w
		return m, nil

	case LocMsg:
		m.loc = ghosthire.LocCounter(msg)
		m.hasLoc = true
		return m, nil

	case resolvedMsg:
		return m.dispatch(session.Resolved(msg))

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.state.Phase == session.NoModeSelected {
		return m.handleLandingKey(msg)
	}

	switch {
	case msg.Type == tea.KeyEsc:
		return m.changeInputMethod()
	case msg.Type == tea.KeyCtrlS,
		msg.Type == tea.KeyEnter && m.view != nil && m.view.Mode() == session.ModeURL:
		return m.submit()
	}

	if m.state.Loading() {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view.(type) {
	case *input.TextView:
		m.textarea, cmd = m.textarea.Update(msg)
		m.view.SetValue(m.textarea.Value())
	case *input.URLView:
		m.urlInput, cmd = m.urlInput.Update(msg)
		m.view.SetValue(m.urlInput.Value())
	}
	return m, cmd
}

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := input.Options()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case "enter":
		return m.selectMode(options[m.cursor].Mode)
	}

	return m, nil
}

func (m Model) selectMode(mode session.Mode) (tea.Model, tea.Cmd) {
	view, err := input.NewView(mode)
	if err != nil {
		return m, nil
	}

	next, cmd := m.dispatch(session.ModeSelected{Mode: mode})
	nm := next.(Model)
	nm.view = view

	switch mode {
	case session.ModeText:
		nm.textarea.Placeholder = view.Placeholder()
		return nm, tea.Batch(cmd, nm.textarea.Focus())
	default:
		nm.urlInput.Placeholder = view.Placeholder()
		return nm, tea.Batch(cmd, nm.urlInput.Focus())
	}
}

// changeInputMethod drops the view and its buffer; any request still in
// flight is left to finish and is discarded on arrival.
func (m Model) changeInputMethod() (tea.Model, tea.Cmd) {
	m.view = nil
	m.cursor = 0
	m.textarea.Reset()
	m.textarea.Blur()
	m.urlInput.Reset()
	m.urlInput.Blur()
	return m.dispatch(session.ModeReset{})
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.view == nil || m.state.Loading() {
		return m, nil
	}

	var ev session.Event
	m.view.Submit(input.SubmitFunc(func(payload map[string]any) {
		ev = session.Submitted{Payload: payload}
	}))
	if ev == nil {
		return m, nil
	}

	return m.dispatch(ev)
}

func (m Model) dispatch(ev session.Event) (tea.Model, tea.Cmd) {
	next, eff := session.Reduce(m.state, ev)
	m.state = next
	if eff.None() {
		return m, nil
	}

	return m, tea.Batch(run(m.ctx, m.runner, eff), m.spinner.Tick)
}

func run(ctx context.Context, runner Runner, eff session.Effect) tea.Cmd {
	return func() tea.Msg {
		return resolvedMsg(runner.Run(ctx, eff))
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(title))
	if m.hasLoc {
		b.WriteString("  ")
		b.WriteString(m.styles.Counter.Render(odometer.String(m.loc.TotalLoc)))
		b.WriteString(m.styles.Dim.Render(" lines of code"))
	}
	b.WriteString("\n\n")

	if m.state.Phase == session.NoModeSelected {
		b.WriteString(input.LandingQuestion)
		b.WriteString("\n\n")
		for i, o := range input.Options() {
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render("> " + o.Label))
			} else {
				b.WriteString("  " + o.Label)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render("↑/↓: choose • enter: select • ctrl+c: quit"))
		return b.String()
	}

	switch m.view.(type) {
	case *input.TextView:
		b.WriteString(m.textarea.View())
	case *input.URLView:
		b.WriteString(m.urlInput.View())
	}
	b.WriteString("\n")

	if m.view == nil {
		return b.String()
	}

	if advisory := m.view.Advisory(); advisory != "" {
		style := m.styles.Dim
		if tv, ok := m.view.(*input.TextView); ok && tv.TooShort() {
			style = m.styles.Warning
		}
		b.WriteString(style.Render(advisory))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state.Loading() {
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), input.SubmitLabel(true)))
	} else {
		b.WriteString(fmt.Sprintf("[ %s ]", input.SubmitLabel(false)))
	}
	b.WriteString("\n")

	if outcome := RenderOutcome(m.state, m.styles); outcome != "" {
		b.WriteString("\n")
		b.WriteString(outcome)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render(m.help()))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) help() string {
	submitKey := "enter"
	if m.view != nil && m.view.Mode() == session.ModeText {
		submitKey = "ctrl+s"
	}
	return submitKey + ": analyze • esc: change input method • ctrl+c: quit"
}
