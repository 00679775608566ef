// Package server exposes a validator over HTTP: a JSON validation endpoint,
// a health check, and prometheus metrics. The schema can be hot-reloaded
// from disk while requests keep flowing.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/sieve"
	"github.com/aretw0/sieve/internal/logging"
	"github.com/aretw0/sieve/pkg/schema"
)

// Config holds the server dependencies.
type Config struct {
	// SchemaPath is the YAML or JSON schema document to serve.
	SchemaPath string
	// Options are applied to every validator built from the schema,
	// including rebuilds after a reload.
	Options []sieve.Option
	Logger  *slog.Logger
}

// Server provides thread-safe access to the current validator with hot
// reload support.
type Server struct {
	mu        sync.RWMutex
	validator *sieve.Validator

	cfg     Config
	logger  *slog.Logger
	metrics *metrics
}

// New loads the schema and builds the server.
func New(cfg Config) (*Server, error) {
	if cfg.SchemaPath == "" {
		return nil, fmt.Errorf("server: schema path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
	}
	v, err := s.build()
	if err != nil {
		return nil, err
	}
	s.validator = v
	return s, nil
}

func (s *Server) build() (*sieve.Validator, error) {
	root, err := schema.LoadFile(s.cfg.SchemaPath)
	if err != nil {
		return nil, err
	}
	return sieve.FromCompiled(root, s.cfg.Options...)
}

// Reload rebuilds the validator from the schema file.
// On error the previous validator stays in place.
func (s *Server) Reload() error {
	v, err := s.build()
	if err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		return fmt.Errorf("reload schema: %w", err)
	}
	s.mu.Lock()
	s.validator = v
	s.mu.Unlock()
	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.logger.Info("schema reloaded", "path", s.cfg.SchemaPath)
	return nil
}

// Validator returns the current validator (thread-safe).
func (s *Server) Validator() *sieve.Validator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validator
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Post("/validate", s.handleValidate)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.metrics.record("bad_request", time.Since(start))
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	res, err := s.Validator().Validate(data)
	if err != nil {
		// Strict-mode violation: the whole payload is refused.
		s.metrics.record("rejected", time.Since(start))
		s.logger.Warn("payload rejected", "err", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	outcome := "valid"
	if !res.Success {
		outcome = "invalid"
	}
	s.metrics.record(outcome, time.Since(start))
	s.logger.Debug("payload validated", "outcome", outcome, "duration", time.Since(start))
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
