// Package server assembles the HTTP API: router, middleware chain and
// the http.Server that hosts it.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fundfusion/internal/campaigns"
	"fundfusion/internal/config"
	"fundfusion/internal/donations"
	"fundfusion/internal/session"
	"fundfusion/internal/storage"
)

// HealthChecker reports the state of the document store
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Deps are the collaborators the routes need. Storage is optional; without
// it the photo upload route is not registered.
type Deps struct {
	DB        HealthChecker
	Campaigns campaigns.Repository
	Donations donations.Repository
	Sessions  session.Manager
	Storage   storage.Service
	Logger    *slog.Logger
}

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg  *config.Config
	deps Deps
}

// New creates a Server. A nil logger falls back to slog.Default.
func New(cfg *config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{cfg: cfg, deps: deps}
}

// HTTPServer wraps the router in an http.Server using the configured timeouts
func (s *Server) HTTPServer() *http.Server {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	s.deps.Logger.Info("HTTP server configured",
		"port", s.cfg.Port,
		"environment", s.cfg.Environment,
		"guard_all_mutations", s.cfg.GuardAllMutations,
	)
	return server
}
