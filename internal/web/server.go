// Package web serves the form engine over HTTP. Each browser gets its own
// engine, keyed by a session cookie; one mutex serialises every event.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"

	"github.com/goliatone/go-dynform/internal/logging"
	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/jsonview"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "dynform_session"

const (
	defaultShutdownGrace = 5 * time.Second
	defaultSessionIdle   = 30 * time.Minute
	defaultMaxSessions   = 1024
)

type session struct {
	engine   *engine.Engine
	notice   string
	lastSeen time.Time
}

// Server is the HTTP presentation of the engine.
type Server struct {
	catalog         *model.Catalog
	registry        *render.Registry
	defaultRenderer string
	theme           *theme.RendererConfig
	initialType     string
	logger          *slog.Logger
	addr            string
	shutdownGrace   time.Duration
	newSessionID    func() string
	sessionIdle     time.Duration
	maxSessions     int
	now             func() time.Time

	mu       sync.Mutex
	sessions map[string]*session

	handler http.Handler
}

// NewServer wires the routes. The default renderer must be registered.
func NewServer(catalog *model.Catalog, registry *render.Registry, options ...Option) (*Server, error) {
	if catalog.Len() == 0 {
		return nil, engine.ErrEmptyCatalog
	}
	if registry == nil {
		return nil, errors.New("web: renderer registry is required")
	}

	s := &Server{
		catalog:         catalog,
		registry:        registry,
		defaultRenderer: vanilla.Name,
		logger:          logging.Discard(),
		addr:            ":8080",
		shutdownGrace:   defaultShutdownGrace,
		newSessionID:    uuid.NewString,
		sessionIdle:     defaultSessionIdle,
		maxSessions:     defaultMaxSessions,
		now:             time.Now,
		sessions:        map[string]*session{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if !registry.Has(s.defaultRenderer) {
		return nil, fmt.Errorf("web: default renderer %q is not registered", s.defaultRenderer)
	}
	if s.initialType != "" && !catalog.Has(s.initialType) {
		return nil, fmt.Errorf("%w: %q", engine.ErrInvalidFormType, s.initialType)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /type", s.handleSelectType)
	mux.HandleFunc("POST /submit", s.handleSubmit)
	mux.HandleFunc("POST /records/{index}/edit", s.handleEdit)
	mux.HandleFunc("POST /records/{index}/delete", s.handleDelete)
	mux.HandleFunc("POST /cancel", s.handleCancel)
	mux.HandleFunc("GET /state", s.handleState)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.handler = s.logRequests(mux)

	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(logging.NewWriter(s.logger, slog.LevelWarn, "http server"), "", 0),
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	s.logger.Info("listening", "addr", s.addr, "renderer", s.defaultRenderer, "form_types", s.catalog.Len())

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownGrace)
	defer cancel()

	s.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

// sessionFor returns the caller's session. Mutating requests without a
// known cookie get a new stored session and cookie; read-only ones get a
// throwaway engine that is never stored. Callers hold s.mu.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request, create bool) (*session, error) {
	now := s.now()
	s.evictIdle(now)

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.sessions[cookie.Value]; ok {
			sess.lastSeen = now
			return sess, nil
		}
	}

	id := "anonymous"
	if create {
		id = s.newSessionID()
	}
	opts := []engine.Option{engine.WithLogger(s.logger.With("session", id))}
	if s.initialType != "" {
		opts = append(opts, engine.WithInitialFormType(s.initialType))
	}
	e, err := engine.New(s.catalog, opts...)
	if err != nil {
		return nil, err
	}

	sess := &session{engine: e, lastSeen: now}
	if !create {
		return sess, nil
	}

	if len(s.sessions) >= s.maxSessions {
		s.evictOldest()
	}
	s.sessions[id] = sess
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("session created", "session", id, "sessions", len(s.sessions))
	return sess, nil
}

// evictIdle drops sessions not seen within the idle timeout.
func (s *Server) evictIdle(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.sessionIdle {
			delete(s.sessions, id)
			s.logger.Debug("session expired", "session", id)
		}
	}
}

func (s *Server) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		s.logger.Debug("session evicted", "session", oldestID)
	}
}

// SessionCount reports how many sessions are held in memory.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(w, r, false)
	if err != nil {
		s.fail(w, err)
		return
	}
	notice := sess.notice
	sess.notice = ""
	s.renderSnapshot(w, r, sess, http.StatusOK, notice)
}

func (s *Server) handleSelectType(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session) (string, error) {
		return "", sess.engine.SelectFormType(r.PostFormValue("formType"))
	})
}

// handleSubmit copies every posted field of the active schema into the
// draft, then submits. Validation failures re-render with 422.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(w, r, true)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	snapshot := sess.engine.Snapshot()
	for _, field := range snapshot.Schema.Fields {
		values, posted := r.PostForm[field.Name]
		if !posted {
			continue
		}
		value := ""
		if len(values) > 0 {
			value = values[0]
		}
		if err := sess.engine.UpdateField(field.Name, value); err != nil {
			s.fail(w, err)
			return
		}
	}

	if err := sess.engine.Submit(); err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			s.renderSnapshot(w, r, sess, http.StatusUnprocessableEntity, "")
			return
		}
		s.fail(w, err)
		return
	}

	sess.notice = render.NoticeSubmitted
	s.redirectHome(w, r)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session) (string, error) {
		index, err := pathIndex(r)
		if err != nil {
			return "", err
		}
		return "", sess.engine.BeginEdit(index)
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session) (string, error) {
		index, err := pathIndex(r)
		if err != nil {
			return "", err
		}
		if err := sess.engine.DeleteRecord(index); err != nil {
			return "", err
		}
		return render.NoticeDeleted, nil
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session) (string, error) {
		sess.engine.CancelEdit()
		return "", nil
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(w, r, false)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.write(w, r, jsonview.New(""), sess.engine.Snapshot(), http.StatusOK, "")
}

// mutate runs fn under the lock and redirects home with fn's notice.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*session) (string, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(w, r, true)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	notice, err := fn(sess)
	if err != nil {
		s.fail(w, err)
		return
	}
	sess.notice = notice
	s.redirectHome(w, r)
}

func (s *Server) renderSnapshot(w http.ResponseWriter, r *http.Request, sess *session, status int, notice string) {
	name := r.URL.Query().Get("renderer")
	if name == "" {
		name = s.defaultRenderer
	}
	renderer, err := s.registry.Get(name)
	if err != nil {
		http.Error(w, fmt.Sprintf("renderer %q not found", name), http.StatusNotFound)
		return
	}
	s.write(w, r, renderer, sess.engine.Snapshot(), status, notice)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, renderer render.Renderer, snapshot engine.Snapshot, status int, notice string) {
	out, err := renderer.Render(r.Context(), snapshot, render.RenderOptions{
		Notice: notice,
		Theme:  s.theme,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if name := r.URL.Query().Get("renderer"); name != "" {
		target += "?" + url.Values{"renderer": {name}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// fail maps engine reference errors to 400 and everything else to 500.
func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrInvalidReference) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Error("request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func pathIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", engine.ErrRecordIndex, raw)
	}
	return index, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
