// Package tui implements the terminal front end of the DreamQL playground:
// an editor pane, a live output pane and a mode tab bar.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/view"
)

// Backend is the part of backend.Manager the model needs.
type Backend interface {
	Compiler() (backend.Compiler, bool)
	OnComplete(func(backend.Event))
}

// BackendEventMsg delivers the backend completion event to the model.
type BackendEventMsg backend.Event

const (
	headerHeight = 1
	footerHeight = 1
	// paneChrome is the border width/height added around each pane.
	paneChrome = 2
)

// Model is the bubbletea model of the terminal playground.
type Model struct {
	session *session.Session
	backend Backend
	styles  Styles

	input  textarea.Model
	output viewport.Model

	width  int
	height int
	ready  bool

	// last rendered output, kept for tests and resize
	rendered view.Output
	quitting bool
}

// New creates a Model editing sess.
func New(sess *session.Session, b Backend, styles Styles) Model {
	input := textarea.New()
	input.Placeholder = "Type DreamQL..."
	input.ShowLineNumbers = true
	input.CharLimit = 0
	input.SetValue(sess.Source())
	input.Focus()

	m := Model{
		session: sess,
		backend: b,
		styles:  styles,
		input:   input,
		output:  viewport.New(40, 10),
	}
	m.refresh()
	return m
}

// Init waits for the backend and starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForBackend(m.backend))
}

// waitForBackend blocks until the backend reports completion. A backend
// that never completes leaves the command pending, which is harmless.
func waitForBackend(b Backend) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan backend.Event, 1)
		b.OnComplete(func(ev backend.Event) { ch <- ev })
		return BackendEventMsg(<-ch)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refresh()
		return m, nil

	case BackendEventMsg:
		m.session.ApplyBackendEvent(backend.Event(msg))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.session.SetMode(m.session.Mode().Next())
			m.refresh()
			return m, nil
		case "shift+tab":
			m.session.SetMode(m.session.Mode().Prev())
			m.refresh()
			return m, nil
		case "pgdown", "ctrl+d":
			m.output.HalfViewDown()
			return m, nil
		case "pgup", "ctrl+u":
			m.output.HalfViewUp()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.session.SetSource(m.input.Value()) {
		m.refresh()
	}

	return m, tea.Batch(cmds...)
}

// refresh recomputes the output from the current session state.
func (m *Model) refresh() {
	c, _ := m.backend.Compiler()
	m.rendered = view.Render(m.session.Snapshot(), c)
	m.output.SetContent(m.styles.RenderOutput(m.rendered))
}

func (m *Model) layout() {
	paneWidth := m.width/2 - paneChrome
	paneHeight := m.height - headerHeight - footerHeight - paneChrome
	if paneWidth < 10 {
		paneWidth = 10
	}
	if paneHeight < 3 {
		paneHeight = 3
	}

	m.input.SetWidth(paneWidth)
	m.input.SetHeight(paneHeight)
	m.output.Width = paneWidth
	m.output.Height = paneHeight
}

// Output returns the most recently rendered output.
func (m Model) Output() view.Output {
	return m.rendered
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading...\n"
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.FocusedPane.Render(m.input.View()),
		m.styles.Pane.Render(m.output.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		panes,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("DreamQL"))

	current := m.session.Mode()
	for _, mode := range session.AllModes() {
		style := m.styles.Tab
		if mode == current {
			style = m.styles.ActiveTab
		}
		b.WriteString(style.Render(view.ModeLabel(mode)))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	snap := m.session.Snapshot()

	status := "compiler " + snap.Readiness.String()
	switch snap.Readiness {
	case backend.Ready:
		status = m.styles.Ready.Render(status)
	case backend.Failed:
		status = m.styles.Failed.Render(status)
	default:
		status = m.styles.Status.Render(status)
	}

	help := m.styles.Help.Render("  tab/shift+tab: mode • pgup/pgdn: scroll • esc: quit")
	return status + help
}
