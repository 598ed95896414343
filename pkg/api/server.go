// Package api exposes the engine's read-only admin surface:
// scenario and solve state, hint progression, the live
// dashboard, the WebSocket event stream, and metrics. No write
// path exists here; all mutation goes through the engine.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"digital.vasic.trainer/pkg/engine"
	"digital.vasic.trainer/pkg/logging"
	"digital.vasic.trainer/pkg/monitor"
)

// Server is the HTTP admin server.
type Server struct {
	router    *chi.Mux
	engine    *engine.Engine
	hub       *monitor.Hub
	dashboard *monitor.Dashboard
	metrics   http.Handler
	logger    logging.Logger
}

// NewServer creates an admin server. metricsHandler may be nil
// when metrics are disabled.
func NewServer(
	eng *engine.Engine,
	hub *monitor.Hub,
	dashboard *monitor.Dashboard,
	metricsHandler http.Handler,
	logger logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	s := &Server{
		engine:    eng,
		hub:       hub,
		dashboard: dashboard,
		metrics:   metricsHandler,
		logger:    logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "X-Request-ID",
		},
		MaxAge: 300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.hub.HandleWS)
	if s.metrics != nil {
		r.Method("GET", "/metrics", s.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/scenarios", s.handleListScenarios)
		r.Get("/scenarios/{key}", s.handleGetScenario)
		r.Get("/scenarios/{key}/hints", s.handleGetHints)
		r.Get("/dashboard", s.handleDashboard)
	})

	s.router = r
}
