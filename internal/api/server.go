// Copyright (c) 2026 F-Students App. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/f-students-app/auth-service/internal/core/module"
	"github.com/f-students-app/auth-service/internal/core/role"
	"github.com/f-students-app/auth-service/internal/platform/config"
	"github.com/f-students-app/auth-service/internal/platform/constants"
	"github.com/f-students-app/auth-service/internal/platform/middleware"
	"github.com/f-students-app/auth-service/internal/users/auth"
	"github.com/f-students-app/auth-service/internal/users/authorize"
	"github.com/f-students-app/auth-service/internal/users/password"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle (login, logout, refresh, internal lookup).
	Auth *auth.Handler

	// Authorize handles the second-stage token exchange.
	Authorize *authorize.Handler

	// Password handles credential recovery and rotation.
	Password *password.Handler

	// Role manages the role catalogue and module-access grants.
	Role *role.Handler

	// Module manages the module catalogue.
	Module *module.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Authentication is applied per route group rather than globally: the auth
// vertical mixes public and protected endpoints, while the role and module
// verticals are protected end to end.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	identities middleware.IdentitySource,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	authenticate := middleware.Authenticate(verifier, identities)
	internalAuth := middleware.InternalAuth(cfg.InternalAPIKey)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(authRoute chi.Router) {
			h.Auth.RegisterRoutes(authRoute, authenticate, internalAuth)
			h.Authorize.RegisterRoutes(authRoute, authenticate)
			h.Password.RegisterRoutes(authRoute, authenticate)
		})

		api.Route("/roles", func(roleRoute chi.Router) {
			roleRoute.Use(authenticate)
			h.Role.RegisterRoutes(roleRoute)
		})

		api.Route("/modules", func(moduleRoute chi.Router) {
			moduleRoute.Use(authenticate)
			h.Module.RegisterRoutes(moduleRoute)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
