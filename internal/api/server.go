// Package api exposes the assistant over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/observability"
	"hr-assistant/internal/models"
)

const (
	ChatPath = "/api/v2/assistant/chat"

	HeaderEmployeeNumber = "X-Employee-Number"
	HeaderUserRoleID     = "X-User-Role-Id"
	HeaderUsername       = "X-Username"
	HeaderRequestID      = "X-Request-Id"

	maxBodyBytes = 64 << 10
)

// Engine answers one conversational message.
type Engine interface {
	HandleMessage(ctx context.Context, req models.ConversationRequest) models.ReplyPayload
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	router  *chi.Mux
	engine  Engine
	obs     *observability.Observability
	checks  map[string]ReadinessCheck
	metrics http.Handler
	logger  logger.Logger
}

type Option func(*Server)

func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) { s.checks[name] = check }
}

// WithObservability records HTTP request metrics on obs.
func WithObservability(obs *observability.Observability) Option {
	return func(s *Server) { s.obs = obs }
}

// WithMetricsHandler replaces the default Prometheus handler served at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

func NewServer(engine Engine, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		engine:  engine,
		obs:     &observability.Observability{},
		checks:  make(map[string]ReadinessCheck),
		metrics: promhttp.Handler(),
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestID)
	s.router.Use(s.instrument)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ready", s.handleReady)
	s.router.Method(http.MethodGet, "/metrics", s.metrics)
	s.router.Post(ChatPath, s.handleChat)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	failed := make(map[string]string)
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		s.logger.Warn("readiness check failed", map[string]interface{}{"failed": failed})
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not_ready",
			"checks": failed,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
