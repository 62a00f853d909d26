// Package session holds the playground's single editable document, the
// selected output mode and the observed backend readiness.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/leapstack-labs/dreamql/internal/backend"
)

// DefaultSource is the initial document when none is configured.
const DefaultSource = "table"

// Broadcaster is notified after every state change.
type Broadcaster interface {
	Broadcast()
}

// Options configures a new Session.
type Options struct {
	DefaultSource string
	DefaultMode   OutputMode
}

// Snapshot is an immutable copy of session state.
type Snapshot struct {
	SessionID string
	Source    string
	Author    string
	Version   int
	Mode      OutputMode
	Readiness backend.Readiness
	InitError string
}

// Session is the document state store. Its setters are the only way to
// mutate state, and each field has a single logical writer.
type Session struct {
	id     string
	notify Broadcaster

	mu        sync.RWMutex
	source    string
	author    string
	version   int
	mode      OutputMode
	readiness backend.Readiness
	initErr   string
}

// New creates a Session. An empty DefaultSource falls back to
// DefaultSource; notify may be nil.
func New(opts Options, notify Broadcaster) *Session {
	src := opts.DefaultSource
	if src == "" {
		src = DefaultSource
	}
	mode := opts.DefaultMode
	if !mode.Valid() {
		mode = ModeSQL
	}
	return &Session{
		id:     uuid.NewString(),
		notify: notify,
		source: src,
		mode:   mode,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Source returns the current document text.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetSource replaces the document text. Any string is accepted,
// including the empty string. It reports whether the text changed.
func (s *Session) SetSource(text string) bool {
	return s.SetSourceBy(text, "")
}

// SetSourceBy is SetSource recording which editor made the change, so
// that front ends can avoid echoing an edit back to its author.
func (s *Session) SetSourceBy(text, author string) bool {
	s.mu.Lock()
	if s.source == text {
		s.mu.Unlock()
		return false
	}
	s.source = text
	s.author = author
	s.version++
	s.mu.Unlock()

	s.broadcast()
	return true
}

// Mode returns the selected output mode.
func (s *Session) Mode() OutputMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode selects the output mode. It reports whether the mode changed.
// Invalid modes are ignored.
func (s *Session) SetMode(mode OutputMode) bool {
	if !mode.Valid() {
		return false
	}
	s.mu.Lock()
	if s.mode == mode {
		s.mu.Unlock()
		return false
	}
	s.mode = mode
	s.mu.Unlock()

	s.broadcast()
	return true
}

// Readiness returns the backend readiness observed by the session.
func (s *Session) Readiness() backend.Readiness {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readiness
}

// ApplyBackendEvent records the backend's completion. Once a terminal
// state is recorded further events are ignored. It reports whether the
// state changed.
func (s *Session) ApplyBackendEvent(ev backend.Event) bool {
	if !ev.Readiness.Terminal() {
		return false
	}

	s.mu.Lock()
	if s.readiness.Terminal() {
		s.mu.Unlock()
		return false
	}
	s.readiness = ev.Readiness
	if ev.Readiness == backend.Failed {
		s.initErr = "unknown error"
		if ev.Err != nil {
			s.initErr = ev.Err.Error()
		}
	}
	s.mu.Unlock()

	s.broadcast()
	return true
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		SessionID: s.id,
		Source:    s.source,
		Author:    s.author,
		Version:   s.version,
		Mode:      s.mode,
		Readiness: s.readiness,
		InitError: s.initErr,
	}
}

func (s *Session) broadcast() {
	if s.notify != nil {
		s.notify.Broadcast()
	}
}
