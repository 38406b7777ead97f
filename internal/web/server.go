// Package web provides the HTTP server that exposes the fetch pipeline.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/sheetfetch/internal/config"
	"github.com/JonMunkholm/sheetfetch/internal/core"
	"github.com/JonMunkholm/sheetfetch/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Runner starts one pipeline run. *core.Pipeline satisfies it.
type Runner interface {
	Start(ctx context.Context) <-chan core.Result
}

// Server is the HTTP server for the fetch endpoint.
type Server struct {
	runner  Runner
	cfg     *config.Config
	limiter *core.FetchLimiter
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(runner Runner, cfg *config.Config) *Server {
	s := &Server{
		runner:  runner,
		cfg:     cfg,
		limiter: core.NewFetchLimiter(cfg.Server.MaxConcurrentFetches, cfg.Server.FetchWait),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	if s.cfg.Security.Headers {
		s.router.Use(securityHeaders)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/fetch", s.handleFetch)
	s.router.Get("/healthz", s.handleHealth)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// WaitForFetches blocks until in-flight fetches finish or ctx ends.
func (s *Server) WaitForFetches(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
