// Package server implements the assetmap HTTP API.
//
// A browser surface posts its business graph and gets back the projected
// element list, hull regions for the boxes it currently draws, or a rendered
// diagram. Every route is stateless; the server holds no graph between
// requests.
//
// # Routes
//
//	GET  /healthz                 build info
//	POST /api/v1/project          element list
//	POST /api/v1/hulls            hull regions for posted bounds
//	POST /api/v1/render?format=f  svg, dot or json artifact
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/assetmap/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps request bodies.
	DefaultMaxBodyBytes = 8 << 20

	shutdownTimeout = 10 * time.Second
)

// Config configures the server.
type Config struct {
	Addr         string
	Logger       *log.Logger
	Runner       *pipeline.Runner
	MaxBodyBytes int64

	// Defaults seeds the pipeline options of every request: hull tunables,
	// connector relation and render engine from the config file.
	Defaults pipeline.Options
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
	runner *pipeline.Runner
	router chi.Router
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		runner: cfg.Runner,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/project", s.handleProject)
		r.Post("/hulls", s.handleHulls)
		r.Post("/render", s.handleRender)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
