// Package api exposes the simulation service over HTTP. Routes live
// under /api/v1 and every body, success or failure, is JSON.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/nishasharma303/NitiVimarsh/app"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/internal/config"
)

// Config carries the server-level knobs. MaxConcurrent bounds how many
// simulations run at once; requests past the cap get 429 rather than
// queueing behind long runs.
type Config struct {
	Port              string
	MaxConcurrent     int64
	SimulationTimeout time.Duration
}

// Server hosts the policy analysis API.
type Server struct {
	router   *chi.Mux
	service  *app.SimulationService
	graph    *graph.CausalGraph
	settings config.Settings
	limiter  *semaphore.Weighted
	port     string
	timeout  time.Duration
}

// NewServer wires the HTTP surface around a simulation service. The
// graph and settings are server-wide: callers may overlay scenario
// parameters per request but never swap the graph itself.
func NewServer(cfg Config, service *app.SimulationService, causalGraph *graph.CausalGraph, settings config.Settings) *Server {
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.SimulationTimeout <= 0 {
		cfg.SimulationTimeout = 60 * time.Second
	}

	s := &Server{
		router:   chi.NewRouter(),
		service:  service,
		graph:    causalGraph,
		settings: settings,
		limiter:  semaphore.NewWeighted(cfg.MaxConcurrent),
		port:     cfg.Port,
		timeout:  cfg.SimulationTimeout,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Post("/api/v1/simulations", s.handleSimulate)
	s.router.Get("/api/v1/runs", s.handleListRuns)
	s.router.Get("/api/v1/runs/{id}", s.handleGetRun)
	s.router.Get("/api/v1/graph/validation", s.handleGraphValidation)
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	addr := ":" + s.port
	log.Printf("[API] Policy analysis API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
