// Package backend manages the one-time asynchronous initialization of the
// DreamQL compiler and reports its readiness.
package backend

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/dreamql/pkg/dreamql"
	"github.com/leapstack-labs/dreamql/pkg/token"
)

// Compiler is the capability produced by a successful load.
// *dreamql.Compiler implements it.
type Compiler interface {
	Translate(source string) (string, error)
	Tokenize(source string) ([]token.Token, error)
	Parse(source string) (*dreamql.Query, error)
	Grammar() string
}

// Loader initializes a Compiler. It may block; it should honour ctx.
type Loader func(ctx context.Context) (Compiler, error)

// DreamQLLoader returns a Loader backed by dreamql.Load.
func DreamQLLoader(opts dreamql.Options) Loader {
	return func(ctx context.Context) (Compiler, error) {
		c, err := dreamql.Load(ctx, opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Readiness is the lifecycle state of the backend.
type Readiness int

// Readiness states. NotReady transitions exactly once to Ready or Failed.
const (
	NotReady Readiness = iota
	Ready
	Failed
)

func (r Readiness) String() string {
	switch r {
	case NotReady:
		return "not ready"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether r is a final state.
func (r Readiness) Terminal() bool {
	return r == Ready || r == Failed
}

// Event is the single completion notification of a Manager.
type Event struct {
	Readiness Readiness
	Err       error
}

// ErrNotStarted is returned by Wait when Start was never called.
var ErrNotStarted = errors.New("backend not started")

// Manager runs a Loader once in the background.
type Manager struct {
	loader Loader
	logger *slog.Logger

	once    sync.Once
	started chan struct{}
	done    chan struct{}

	mu        sync.Mutex
	readiness Readiness
	compiler  Compiler
	err       error
	listeners []func(Event)
}

// NewManager creates a Manager for loader. A nil logger discards output.
func NewManager(loader Loader, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		loader:  loader,
		logger:  logger,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches initialization. Only the first call has an effect and
// it never blocks. Cancelling ctx before the loader returns leaves the
// manager NotReady and suppresses the completion event.
func (m *Manager) Start(ctx context.Context) {
	m.once.Do(func() {
		close(m.started)
		go m.run(ctx)
	})
}

func (m *Manager) run(ctx context.Context) {
	start := time.Now()
	m.logger.Debug("initializing compiler")

	c, err := m.load(ctx)
	if ctx.Err() != nil {
		m.logger.Debug("compiler initialization cancelled", "error", ctx.Err())
		return
	}

	ev := Event{Readiness: Ready}
	if err != nil {
		ev = Event{Readiness: Failed, Err: err}
		m.logger.Error("compiler initialization failed", "error", err)
	} else {
		m.logger.Info("compiler ready", "duration", time.Since(start))
	}

	m.mu.Lock()
	m.readiness = ev.Readiness
	m.compiler = c
	m.err = err
	listeners := m.listeners
	m.listeners = nil
	close(m.done)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// load runs the loader, turning a panic into an error.
func (m *Manager) load(ctx context.Context) (c Compiler, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = panicError{value: r}
		}
	}()
	c, err = m.loader(ctx)
	if err == nil && c == nil {
		err = errors.New("loader returned no compiler")
	}
	return c, err
}

// OnComplete registers fn to receive the completion event. If the
// manager has already completed, fn is called immediately.
func (m *Manager) OnComplete(fn func(Event)) {
	m.mu.Lock()
	if !m.readiness.Terminal() {
		m.listeners = append(m.listeners, fn)
		m.mu.Unlock()
		return
	}
	ev := Event{Readiness: m.readiness, Err: m.err}
	m.mu.Unlock()
	fn(ev)
}

// Readiness returns the current state.
func (m *Manager) Readiness() Readiness {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readiness
}

// Compiler returns the loaded compiler once Ready.
func (m *Manager) Compiler() (Compiler, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compiler, m.readiness == Ready
}

// Err returns the initialization error once Failed.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Done is closed when initialization completes (Ready or Failed).
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Wait blocks until initialization completes or ctx is done.
func (m *Manager) Wait(ctx context.Context) (Compiler, error) {
	select {
	case <-m.started:
	default:
		return nil, ErrNotStarted
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.compiler, nil
}
