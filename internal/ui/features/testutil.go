// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/testutil"
	"github.com/leapstack-labs/dreamql/internal/ui/notifier"
	"github.com/leapstack-labs/dreamql/pkg/dreamql"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Session      *session.Session
	Backend      *backend.Manager
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// FixtureOptions configures SetupTestFixture.
type FixtureOptions struct {
	Session session.Options
	// Loader overrides the DreamQL loader.
	Loader backend.Loader
	// NoStart leaves the backend NotReady.
	NoStart bool
}

// SetupTestFixture creates a session wired to a backend and notifier.
// Unless NoStart is set, the backend is started and the fixture waits for
// the session to observe completion.
func SetupTestFixture(t *testing.T, opts FixtureOptions) *TestFixture {
	t.Helper()

	loader := opts.Loader
	if loader == nil {
		loader = backend.DreamQLLoader(dreamql.Options{})
	}

	notify := notifier.New()
	sess := session.New(opts.Session, notify)
	mgr := backend.NewManager(loader, testutil.NewTestLogger(t))
	mgr.OnComplete(func(ev backend.Event) { sess.ApplyBackendEvent(ev) })

	if !opts.NoStart {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		mgr.Start(ctx)

		select {
		case <-mgr.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("backend did not complete")
		}
		// Completion is applied to the session and broadcast once.
		require.Eventually(t, func() bool {
			return sess.Readiness().Terminal() && notify.Revision() > 0
		}, time.Second, 5*time.Millisecond)
	}

	return &TestFixture{
		Session:      sess,
		Backend:      mgr,
		Notifier:     notify,
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
	}
}
