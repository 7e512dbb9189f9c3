// Package http serves the page to browsers without any client-side script.
//
// Each visitor gets a session holding an HTML document and a console bound to
// it. Forms post to the server, which raises the matching event, waits for the
// resulting requests and redirects back to the rendered page.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/adapters/dom"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/session"
)

// CookieName carries the visitor session ID.
const CookieName = "zconv_session"

type page struct {
	doc     *dom.Document
	console *zconv.Console
}

// Server implements the web surface.
type Server struct {
	sessions    *session.Manager[*page]
	consoleOpts []zconv.Option
	sessionOpts []session.Option
	metrics     http.Handler
	logger      *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithConsoleOptions is applied to the console of every new session.
func WithConsoleOptions(opts ...zconv.Option) Option {
	return func(s *Server) {
		s.consoleOpts = append(s.consoleOpts, opts...)
	}
}

// WithSessionOptions configures the session manager (e.g. a distributed locker).
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the web surface.
func NewServer(opts ...Option) *Server {
	s := &Server{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = session.NewManager(s.newPage, append([]session.Option{session.WithLogger(s.logger)}, s.sessionOpts...)...)
	return s
}

// NewHandler is a shortcut for NewServer(opts...).Routes().
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Routes()
}

func (s *Server) newPage(ctx context.Context, id string) (*page, error) {
	doc := dom.New()
	c, err := zconv.New(doc, s.consoleOpts...)
	if err != nil {
		return nil, err
	}
	// A fresh page behaves like a browser load: history is fetched once.
	c.Load(ctx)
	s.logger.Debug("Session started", "session_id", id)
	return &page{doc: doc, console: c}, nil
}

// Routes returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.Index)
	r.Post("/submit", s.event(func(ctx context.Context, p *page, r *http.Request) {
		p.console.Submit(ctx, r.PostFormValue(domain.InputID))
	}))
	r.Post("/history", s.event(func(ctx context.Context, p *page, _ *http.Request) {
		p.console.Click(ctx, domain.HistoryButtonID)
	}))
	r.Post("/clear", s.event(func(ctx context.Context, p *page, _ *http.Request) {
		p.console.Click(ctx, domain.ClearButtonID)
	}))
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return r
}

// Prune drops sessions idle for longer than maxIdle.
func (s *Server) Prune(maxIdle time.Duration) int {
	return s.sessions.Prune(maxIdle)
}

// RunJanitor prunes idle sessions every interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(maxIdle); n > 0 {
				s.logger.Info("Pruned idle sessions", "count", n)
			}
		}
	}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *page, error) {
	id := ""
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	p, _, err := s.sessions.LoadOrStart(r.Context(), id)
	return id, p, err
}

// Index renders the visitor's page once its pending requests are done.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	id, p, err := s.session(w, r)
	if err != nil {
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		s.logger.Error("Index: session failed", "err", err)
		return
	}

	var buf strings.Builder
	err = s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
		p.console.Wait()
		return p.doc.Render(&buf)
	})
	if err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		s.logger.Error("Index: render failed", "err", err, "session_id", id)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, buf.String())
}

func (s *Server) event(fire func(ctx context.Context, p *page, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			s.logger.Warn("Event: invalid form", "err", err)
			return
		}
		id, p, err := s.session(w, r)
		if err != nil {
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
			s.logger.Error("Event: session failed", "err", err)
			return
		}

		err = s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
			fire(ctx, p, r)
			p.console.Wait()
			return nil
		})
		if err != nil {
			http.Error(w, "Session busy", http.StatusServiceUnavailable)
			s.logger.Error("Event: lock failed", "err", err, "session_id", id)
			return
		}
		s.logger.Debug("Event handled", "path", r.URL.Path, "session_id", id)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"app":      "zconv-web",
		"version":  strings.TrimSpace(zconv.Version),
		"sessions": len(s.sessions.List()),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
