package playground

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/ui/notifier"
)

// SetupRoutes configures routes for the playground feature.
func SetupRoutes(
	router chi.Router,
	sess *session.Session,
	compilers CompilerSource,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(sess, compilers, sessionStore, notify, logger, isDev)

	router.Get("/", handlers.PlaygroundPage)
	router.Get("/updates", handlers.PlaygroundUpdates)
	router.Post("/source", handlers.UpdateSource)
	router.Post("/mode/{mode}", handlers.SelectMode)
	router.Post("/api/translate", handlers.Translate)

	return nil
}
