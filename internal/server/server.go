package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/config"
	"github.com/hongminglow/driveops-be/internal/http/handlers"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/metrics"
	"github.com/hongminglow/driveops-be/internal/middleware"
	"github.com/hongminglow/driveops-be/internal/service"
	"github.com/hongminglow/driveops-be/internal/uploads"
)

// Deps are the collaborators the HTTP surface is built on.
type Deps struct {
	Services service.IServiceManager
	Tokens   *auth.TokenManager
	DB       handlers.Pinger
	Uploads  *uploads.LocalStore
	Limiter  *middleware.RateLimiter
	Logger   logger.ILogger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// NewHandler builds the routed and instrumented handler. Callers that keep
// the handler for long should also run Deps.Limiter.Sweep periodically.
func NewHandler(cfg config.Config, deps Deps) http.Handler {
	mux := http.NewServeMux()
	guard := middleware.NewGuard(deps.Tokens)
	svc := deps.Services
	log := deps.Logger
	m := metrics.New(cfg.ServiceName)

	handlers.NewHealthHandler(time.Now(), deps.DB, log).Register(mux)
	mux.Handle("GET /metrics", m.Handler())
	mux.Handle("GET "+uploads.PublicPrefix, deps.Uploads.Handler())

	handlers.NewAuthHandler(svc.Auth(), log).Register(mux)
	handlers.NewApplicationHandler(svc.Applications(), deps.Uploads, cfg.MaxUploadSize, log).Register(mux, guard)
	handlers.NewDriverHandler(svc.Drivers(), log).Register(mux, guard)
	handlers.NewTruckHandler(svc.Trucks(), log).Register(mux, guard)
	handlers.NewTierHandler(svc.Tiers(), log).Register(mux, guard)
	handlers.NewTripHandler(svc.Trips(), log).Register(mux, guard)
	handlers.NewDashboardHandler(svc.Dashboard(), log).Register(mux, guard)

	mws := []middleware.Middleware{
		middleware.CORS(cfg.CORSOrigins),
		middleware.Metrics(m),
		middleware.Logging(log),
	}
	if deps.Limiter != nil {
		mws = append(mws, deps.Limiter.Middleware())
	}
	return middleware.Chain(mux, mws...)
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
