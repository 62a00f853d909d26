package ui

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/testutil"
	"github.com/leapstack-labs/dreamql/pkg/dreamql"
)

func startServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	cfg.Backend = backend.NewManager(backend.DreamQLLoader(dreamql.Options{}), testutil.NewTestLogger(t))
	cfg.Logger = testutil.NewTestLogger(t)
	cfg.SessionSecret = "test-secret-key-32-bytes-long!!"
	srv := NewServer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not shut down")
		}
	})

	select {
	case <-srv.Ready():
	case err := <-errCh:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	return srv
}

func TestServer_ServesPlayground(t *testing.T) {
	srv := startServer(t, Config{})

	require.Eventually(t, func() bool {
		return srv.Session().Readiness() == backend.Ready
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL() + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "TABLE")
}

func TestServer_ServesStaticAssets(t *testing.T) {
	srv := startServer(t, Config{})

	resp, err := http.Get(srv.URL() + "/static/playground.css")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
}

func TestServer_WatchFileFeedsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.dql")
	require.NoError(t, os.WriteFile(path, []byte("orders"), 0o600))

	srv := startServer(t, Config{WatchFile: path})
	assert.Equal(t, "orders", srv.Session().Source())

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("orders | limit 3"), 0o600))

	assert.Eventually(t, func() bool {
		return srv.Session().Source() == "orders | limit 3"
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, "file", srv.Session().Snapshot().Author)
}

func TestServer_MissingWatchFile(t *testing.T) {
	srv := NewServer(Config{
		Backend:   backend.NewManager(backend.DreamQLLoader(dreamql.Options{}), nil),
		WatchFile: filepath.Join(t.TempDir(), "missing.dql"),
	})

	err := srv.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read watched file")
}
