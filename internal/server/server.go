// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"neelakshi-ai/internal/assistant"
	apperrors "neelakshi-ai/internal/common/errors"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/common/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const RequestIDHeader = "X-Request-ID"

type Answerer interface {
	Answer(ctx context.Context, text string) assistant.Answer
}

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	router    *chi.Mux
	config    *Config
	assistant Answerer
	checks    map[string]ReadinessCheck
	logger    logger.Logger
}

func NewServer(config *Config, a Answerer, checks map[string]ReadinessCheck, log logger.Logger) *Server {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	s := &Server{
		router:    r,
		config:    config,
		assistant: a,
		checks:    checks,
		logger:    log.With(map[string]interface{}{"component": "server"}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Post("/chat", s.handleChat)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Get("/status", s.handleStatus)
	s.mountOps(s.router)
}

// mountOps adds the health, readiness and metrics endpoints.
func (s *Server) mountOps(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())
}

func (s *Server) Router() http.Handler { return s.router }

// OpsRouter serves only health, readiness and metrics, for a separate
// listener.
func (s *Server) OpsRouter() http.Handler {
	r := chi.NewRouter()
	s.mountOps(r)
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(assistant.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.rejectRequest(w, r, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return
		}
		s.rejectRequest(w, r, http.StatusBadRequest, "could not read request body", nil)
		return
	}

	result, err := validation.ValidateChatRequest(body)
	if err != nil {
		s.rejectRequest(w, r, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if !result.Valid {
		s.rejectRequest(w, r, http.StatusBadRequest, "invalid chat request", result.GetErrorMessages())
		return
	}

	var req ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.rejectRequest(w, r, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	answer := s.assistant.Answer(r.Context(), req.Text())
	s.writeJSON(w, http.StatusOK, ChatResponse{Reply: answer.Reply})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.config.ServiceName,
		"version": s.config.Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.config.ReadyTimeout)
	defer cancel()

	failed := map[string]string{}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		s.logger.Warn("readiness check failed", map[string]interface{}{"checks": failed})
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not ready",
			"checks": failed,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) rejectRequest(w http.ResponseWriter, r *http.Request, status int, msg string, details []string) {
	appErr := apperrors.NewInvalidRequestError(msg)
	s.logger.Warn("chat request rejected", map[string]interface{}{
		"requestId": assistant.RequestIDFrom(r.Context()),
		"status":    status,
		"code":      appErr.Code,
		"category":  apperrors.GetErrorCategory(appErr.Code),
		"details":   appErr.Details,
	})
	s.writeJSON(w, status, ErrorResponse{Error: msg, Code: string(appErr.Code), Details: details})
}
