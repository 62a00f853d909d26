// Package router sets up HTTP routes for the playground server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/dreamql/internal/session"
	playgroundFeature "github.com/leapstack-labs/dreamql/internal/ui/features/playground"
	"github.com/leapstack-labs/dreamql/internal/ui/notifier"
	"github.com/leapstack-labs/dreamql/internal/ui/resources"
	"github.com/starfederation/datastar-go/datastar"
)

// SetupRoutes configures all routes for the playground server.
func SetupRoutes(
	router chi.Router,
	sess *session.Session,
	compilers playgroundFeature.CompilerSource,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	if isDev {
		setupReload(router)
	}

	router.Handle("/static/*", resources.Handler())

	return playgroundFeature.SetupRoutes(router, sess, compilers, sessionStore, notify, logger, isDev)
}

// setupReload lets a dev watcher (templ/air) trigger a browser reload by
// hitting /hotreload; pages listen on /reload.
func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
