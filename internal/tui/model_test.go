package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/view"
	"github.com/leapstack-labs/dreamql/pkg/dreamql"
)

// fakeBackend is a Backend with a fixed outcome.
type fakeBackend struct {
	compiler backend.Compiler
	event    *backend.Event
}

func (f *fakeBackend) Compiler() (backend.Compiler, bool) {
	return f.compiler, f.compiler != nil
}

func (f *fakeBackend) OnComplete(fn func(backend.Event)) {
	if f.event != nil {
		fn(*f.event)
	}
}

func readyBackend(t *testing.T) *fakeBackend {
	t.Helper()
	c, err := dreamql.Load(context.Background(), dreamql.Options{})
	require.NoError(t, err)
	return &fakeBackend{compiler: c, event: &backend.Event{Readiness: backend.Ready}}
}

func newModel(t *testing.T, b Backend) Model {
	t.Helper()
	m := New(session.New(session.Options{}, nil), b, PlainStyles(io.Discard))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_NotReadyPlaceholder(t *testing.T) {
	m := newModel(t, &fakeBackend{})

	assert.Equal(t, view.KindPlaceholder, m.Output().Kind)
	assert.Equal(t, view.NotReadyText, m.Output().Text)
	assert.Contains(t, m.View(), "compiler not ready")
}

func TestModel_BackendReady(t *testing.T) {
	b := readyBackend(t)
	m := newModel(t, b)

	m = update(t, m, BackendEventMsg{Readiness: backend.Ready})
	assert.Equal(t, view.KindRendered, m.Output().Kind)
	assert.Equal(t, "select * from TABLE", m.Output().Text)
	assert.Contains(t, m.View(), "compiler ready")
}

func TestModel_BackendFailed(t *testing.T) {
	m := newModel(t, &fakeBackend{})

	m = update(t, m, BackendEventMsg{Readiness: backend.Failed, Err: errors.New("no runtime")})
	assert.Equal(t, "compiler failed to initialize: no runtime", m.Output().Text)
	assert.Contains(t, m.View(), "compiler failed")
}

func TestModel_TypingUpdatesOutput(t *testing.T) {
	m := newModel(t, readyBackend(t))
	m = update(t, m, BackendEventMsg{Readiness: backend.Ready})

	for _, r := range " | limit 5" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "table | limit 5", m.session.Source())
	assert.Equal(t, "select * from TABLE limit 5", m.Output().Text)
}

func TestModel_TabCyclesModes(t *testing.T) {
	m := newModel(t, readyBackend(t))
	m = update(t, m, BackendEventMsg{Readiness: backend.Ready})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, session.ModeTokens, m.session.Mode())
	assert.Equal(t, session.ModeTokens, m.Output().Mode)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, session.ModeAST, m.session.Mode())
	assert.Contains(t, m.Output().Text, "parts: [table]")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, session.ModeSQL, m.session.Mode())

	// Mode changes never touch the document.
	assert.Equal(t, "table", m.session.Source())
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, &fakeBackend{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModel_ViewShowsTabs(t *testing.T) {
	m := newModel(t, &fakeBackend{})

	v := m.View()
	for _, label := range []string{"DreamQL", "SQL", "Tokens", "AST", "Grammar"} {
		assert.Contains(t, v, label)
	}
}

func TestModel_ViewPlacesPanesSideBySide(t *testing.T) {
	m := newModel(t, readyBackend(t))
	m = update(t, m, BackendEventMsg{Readiness: backend.Ready})

	var sameRow bool
	for _, line := range strings.Split(m.View(), "\n") {
		editor := strings.Index(line, "table")
		output := strings.Index(line, "select * from TABLE")
		if editor >= 0 && output > editor {
			sameRow = true
			break
		}
	}
	assert.True(t, sameRow, "editor text and output should share a row, editor first")
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(session.New(session.Options{}, nil), &fakeBackend{}, PlainStyles(io.Discard))
	assert.True(t, strings.HasPrefix(m.View(), "Loading"))
}

func TestWaitForBackend(t *testing.T) {
	b := &fakeBackend{event: &backend.Event{Readiness: backend.Ready}}

	msg := waitForBackend(b)()
	assert.Equal(t, BackendEventMsg{Readiness: backend.Ready}, msg)
}

func TestStyles_RenderOutputPlain(t *testing.T) {
	s := PlainStyles(io.Discard)
	out := view.Output{
		Kind: view.KindRendered,
		Text: "select *\nfrom T",
	}
	assert.Equal(t, "select *\nfrom T", s.RenderOutput(out))
}
