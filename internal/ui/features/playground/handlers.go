// Package playground provides the DreamQL playground page and its live
// update endpoints.
package playground

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/ui/features/playground/components"
	"github.com/leapstack-labs/dreamql/internal/ui/notifier"
	"github.com/leapstack-labs/dreamql/internal/ui/resources"
	"github.com/leapstack-labs/dreamql/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	cookieName  = "dreamql"
	clientIDKey = "client_id"

	maxSourceBytes = 1 << 20
)

// Handlers provides HTTP handlers for the playground.
type Handlers struct {
	session      *session.Session
	compilers    CompilerSource
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	sess *session.Session,
	compilers CompilerSource,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		session:      sess,
		compilers:    compilers,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
		isDev:        isDev,
	}
}

// render derives the output for snap with the current compiler.
func (h *Handlers) render(snap session.Snapshot) view.Output {
	c, _ := h.compilers.Compiler()
	return view.Render(snap, c)
}

// PlaygroundPage renders the full page with the current output.
func (h *Handlers) PlaygroundPage(w http.ResponseWriter, r *http.Request) {
	clientID := h.ensureClientID(w, r)

	rev := h.notifier.Revision()
	snap := h.session.Snapshot()
	data := components.PageData{
		Title:      "Playground",
		Stylesheet: resources.StaticPath(resources.Stylesheet),
		Snapshot:   snap,
		Output:     h.render(snap),
		Revision:   rev,
		IsDev:      h.isDev,
	}

	h.logger.Debug("render playground", "client", clientID, "version", snap.Version)
	if err := components.Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// PlaygroundUpdates is the long-lived SSE endpoint. The page is already
// server-rendered; patches are sent on each change, plus once up front if
// something changed after the page was rendered.
func (h *Handlers) PlaygroundUpdates(w http.ResponseWriter, r *http.Request) {
	clientID := h.clientID(r)

	updates, cancel := h.notifier.Subscribe()
	defer cancel()

	sse := datastar.NewSSE(w, r)

	if rev, err := strconv.ParseUint(r.URL.Query().Get("rev"), 10, 64); err == nil && rev != h.notifier.Revision() {
		if err := h.sendUpdate(sse, clientID); err != nil {
			_ = sse.ConsoleError(err)
		}
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := h.sendUpdate(sse, clientID); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// sendUpdate patches the status, mode bar, highlighted source and output
// pane. The editor text is only pushed when another client or the file
// watcher changed it.
func (h *Handlers) sendUpdate(sse *datastar.ServerSentEventGenerator, clientID string) error {
	snap := h.session.Snapshot()

	if snap.Version > 0 && (clientID == "" || snap.Author != clientID) {
		if err := sse.MarshalAndPatchSignals(SourceSignals{Source: snap.Source}); err != nil {
			return err
		}
	}
	if err := sse.PatchElementTempl(components.SourceHighlight(snap.Source)); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(components.Status(snap)); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(components.ModeBar(snap.Mode)); err != nil {
		return err
	}
	return sse.PatchElementTempl(components.OutputPane(h.render(snap)))
}

// UpdateSource replaces the document with the posted editor text.
func (h *Handlers) UpdateSource(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)

	var signals SourceSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	clientID := h.clientID(r)
	if h.session.SetSourceBy(signals.Source, clientID) {
		h.logger.Debug("source updated", "client", clientID, "bytes", len(signals.Source))
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectMode switches the output mode named in the URL.
func (h *Handlers) SelectMode(w http.ResponseWriter, r *http.Request) {
	mode, err := session.ParseOutputMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.session.SetMode(mode) {
		h.logger.Debug("mode selected", "client", h.clientID(r), "mode", mode)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Translate renders a one-off source and mode as JSON without touching
// the shared session.
func (h *Handlers) Translate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)

	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	mode := session.ModeSQL
	if req.Mode != "" {
		var err error
		if mode, err = session.ParseOutputMode(req.Mode); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	current := h.session.Snapshot()
	scratch := session.Snapshot{
		SessionID: current.SessionID,
		Source:    req.Source,
		Mode:      mode,
		Readiness: current.Readiness,
		InitError: current.InitError,
	}

	resp := TranslateResponse{
		Readiness: scratch.Readiness.String(),
		Output:    h.render(scratch),
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Kind == view.KindFailure {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode translate response", "error", err)
	}
}

// ensureClientID returns the browser's client id, assigning one on first visit.
func (h *Handlers) ensureClientID(w http.ResponseWriter, r *http.Request) string {
	sess, err := h.sessionStore.Get(r, cookieName)
	if err != nil && sess == nil {
		return ""
	}
	if id, ok := sess.Values[clientIDKey].(string); ok && id != "" {
		return id
	}

	id := uuid.NewString()
	sess.Values[clientIDKey] = id
	if err := sess.Save(r, w); err != nil {
		h.logger.Warn("failed to save client session", "error", err)
	}
	return id
}

// clientID returns the browser's client id, or "" if it has none.
func (h *Handlers) clientID(r *http.Request) string {
	sess, err := h.sessionStore.Get(r, cookieName)
	if err != nil && sess == nil {
		return ""
	}
	id, _ := sess.Values[clientIDKey].(string)
	return id
}
