// Package devapi serves the conversion API the page talks to.
// It is meant for local development and tests; history goes to any ports.HistoryStore.
package devapi

//go:generate go tool oapi-codegen -package devapi -generate types,chi-server,spec -o api.gen.go openapi.yaml

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/chain"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputLength overrides DefaultMaxInputLength.
func WithMaxInputLength(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxInput = n
		}
	}
}

// Server implements the generated ServerInterface.
type Server struct {
	store    ports.HistoryStore
	logger   *slog.Logger
	maxInput int
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a Server persisting history to store.
func NewServer(store ports.HistoryStore, opts ...Option) *Server {
	s := &Server{
		store:    store,
		logger:   logging.NewNop(),
		maxInput: DefaultMaxInputLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler wires the API routes.
func NewHandler(store ports.HistoryStore, opts ...Option) http.Handler {
	return NewServer(store, opts...).Routes()
}

// Routes returns the router for this server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			s.logger.Error("Failed to load OpenAPI spec", "error", err)
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(spec)
	})

	handler := HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.paramError,
	})
	return enableCORS(handler)
}

func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("Rejected request parameters", "url", r.URL.String(), "error", err)
	s.writeDetail(w, http.StatusBadRequest, err.Error())
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		s.logger.Info("Incoming request", "method", r.Method, "url", r.URL.String())
		next.ServeHTTP(ww, r)
		s.logger.Info("Response",
			"method", r.Method,
			"url", r.URL.String(),
			"status", ww.Status(),
			"elapsed", time.Since(start),
		)
	})
}

// Convert handles POST /api/convert.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body ConvertJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Convert: invalid request body", "error", err)
		s.writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.convert(w, r, body.InputString)
}

// ConvertQuery handles GET /api/convert?input_string=.
func (s *Server) ConvertQuery(w http.ResponseWriter, r *http.Request, params ConvertQueryParams) {
	input := ""
	if params.InputString != nil {
		input = *params.InputString
	}
	s.convert(w, r, input)
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request, raw string) {
	input, err := ValidateInput(raw, s.maxInput)
	if err != nil {
		s.logger.Warn("Convert: input rejected", "error", err, "size", len(raw))
		s.writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Info("Converting input string", "input", input)

	result := chain.Process(input)
	if err := s.store.Append(r.Context(), domain.Record{Input: input, Output: result}); err != nil {
		s.logger.Error("Convert: failed to save history", "error", err)
		s.writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.logger.Debug("Saved conversion", "input", input, "result", result)

	s.writeJSON(w, http.StatusOK, ConvertResponse{Input: input, Result: result})
}

// GetHistory handles GET /api/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("GetHistory: failed to list history", "error", err)
		s.writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := HistoryResponse{History: make([]HistoryEntry, len(records))}
	for i, rec := range records {
		out := rec.Output
		if out == nil {
			out = []int{}
		}
		resp.History[i] = HistoryEntry{Input: rec.Input, Output: out}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	s.writeJSON(w, http.StatusOK, InfoResponse{
		App:        "zconv-api",
		Version:    strings.TrimSpace(zconv.Version),
		ApiVersion: apiVersion,
	})
}

func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, Error{Detail: detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to encode response", "status", status, "error", err)
	}
}
