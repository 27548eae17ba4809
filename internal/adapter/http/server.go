// Package http serves the Reel Report JSON API together with the health,
// readiness and metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/service"
)

// Services are the use cases the API exposes.
type Services struct {
	Accounts *service.Accounts
	Lakes    *service.Lakes
	Species  *service.SpeciesCatalog
	Lures    *service.Lures
	Catches  *service.Catches
	Reports  *service.Reports
}

// Server exposes the API plus /healthz, /readyz and /metrics.
type Server struct {
	httpServer *http.Server
	svc        Services
	metrics    *observability.Metrics
	logger     *slog.Logger
	secure     bool
}

// Option customizes a Server.
type Option func(*Server)

// WithSecureCookies marks the session cookie Secure, for TLS deployments.
func WithSecureCookies() Option {
	return func(s *Server) { s.secure = true }
}

// NewServer builds the router.
func NewServer(addr string, svc Services, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{svc: svc, metrics: metrics, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(requestID)
		r.Use(instrument(logger, metrics))
		r.Use(middleware.Recoverer)
		r.Use(middleware.NoCache)
		r.Use(authenticate(svc.Accounts, logger))
		s.routes(r)
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(r chi.Router) {
	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Get("/lakes", s.handleListLakes)
	r.Get("/lakes/{id}", s.handleGetLake)
	r.Get("/lakes/{id}/forecast", s.handleLakeForecast)
	r.Get("/species", s.handleListSpecies)
	r.Get("/species/{id}", s.handleGetSpecies)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(s.logger))

		r.Get("/me", s.handleMe)
		r.Get("/anglers/{id}", s.handleProfile)
		r.Put("/anglers/{id}", s.handleUpdateAngler)
		r.Delete("/anglers/{id}", s.handleDeleteAngler)
		r.Get("/anglers/{id}/catches", s.handleListCatches)
		r.Get("/anglers/{id}/lures", s.handleTackleBox)
		r.Get("/anglers/{id}/reports/{report}", s.handleReport)

		r.Post("/lakes", s.handleCreateLake)
		r.Put("/lakes/{id}", s.handleUpdateLake)
		r.Delete("/lakes/{id}", s.handleDeleteLake)

		r.Post("/species", s.handleCreateSpecies)
		r.Put("/species/{id}", s.handleUpdateSpecies)
		r.Delete("/species/{id}", s.handleDeleteSpecies)

		r.Post("/lures", s.handleAddLure)

		r.Post("/catches", s.handleRecordCatch)
		r.Get("/catches/{id}", s.handleGetCatch)
		r.Put("/catches/{id}", s.handleUpdateCatch)
		r.Delete("/catches/{id}", s.handleDeleteCatch)
		r.Post("/catches/{id}/photo", s.handleCatchPhoto)
	})
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
