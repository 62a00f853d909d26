// Package ui provides the web front end of the DreamQL playground.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/ui/notifier"
	"github.com/leapstack-labs/dreamql/internal/ui/resources"
	"github.com/leapstack-labs/dreamql/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

// Server is the playground web server.
type Server struct {
	session      *session.Session
	backend      *backend.Manager
	sessionStore *sessions.CookieStore
	addr         string
	watchFile    string
	logger       *slog.Logger
	notifier     *notifier.Notifier

	// ready is closed once the listener is bound.
	ready    chan struct{}
	listener net.Listener
}

// Config holds configuration for the playground server.
type Config struct {
	Backend       *backend.Manager
	SessionOpts   session.Options
	Host          string
	Port          int
	WatchFile     string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a server with a fresh session wired to the backend.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	notify := notifier.New()
	sess := session.New(cfg.SessionOpts, notify)
	cfg.Backend.OnComplete(func(ev backend.Event) {
		sess.ApplyBackendEvent(ev)
	})

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	return &Server{
		session:      sess,
		backend:      cfg.Backend,
		sessionStore: sessionStore,
		addr:         net.JoinHostPort(host, fmt.Sprint(cfg.Port)),
		watchFile:    cfg.WatchFile,
		logger:       logger,
		notifier:     notify,
		ready:        make(chan struct{}),
	}
}

// Handler builds the HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.session, s.backend, s.sessionStore, s.notifier, s.logger, resources.IsDev); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the backend and the HTTP server, and blocks until ctx is
// cancelled or a component fails.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	if s.watchFile != "" {
		if err := s.loadWatchedFile(); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	close(s.ready)

	s.logger.Info("starting playground server", "addr", s.URL())

	eg, egctx := errgroup.WithContext(ctx)

	s.backend.Start(egctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watchFile != "" {
		eg.Go(func() error {
			return s.watchSource(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down playground server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Ready is closed once the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// URL returns the server's base URL. It is only meaningful after Ready.
func (s *Server) URL() string {
	if s.listener != nil {
		host, port, err := net.SplitHostPort(s.listener.Addr().String())
		if err == nil {
			if host == "::" || host == "0.0.0.0" || host == "" {
				host = "localhost"
			}
			return "http://" + net.JoinHostPort(host, port)
		}
	}
	return "http://" + s.addr
}

// Session returns the server's document session.
func (s *Server) Session() *session.Session {
	return s.session
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

func (s *Server) loadWatchedFile() error {
	data, err := os.ReadFile(s.watchFile)
	if err != nil {
		return fmt.Errorf("read watched file: %w", err)
	}
	s.session.SetSourceBy(string(data), watchAuthor)
	return nil
}

const watchAuthor = "file"

// watchSource feeds writes to the watched file into the session.
// Editors often replace files instead of writing them, so the parent
// directory is watched and events are filtered by name.
func (s *Server) watchSource(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	target, err := filepath.Abs(s.watchFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch source file", "file", target, "error", err)
		<-ctx.Done()
		return nil
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				if err := s.loadWatchedFile(); err != nil {
					s.logger.Error("reload source failed", "error", err)
					return
				}
				s.logger.Debug("source file changed", "file", target)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
