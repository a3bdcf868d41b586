// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	POST /v1/convert   envelope in, graph document out
//	GET  /healthz      liveness probe
//	GET  /metrics      Prometheus exposition (when metrics are enabled)
//
// Every request runs its own pipeline; the metrics registry is the only
// state shared between requests.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kgviz/pkg/config"
	"github.com/matzehuels/kgviz/pkg/observability"
	"github.com/matzehuels/kgviz/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown after the context is canceled.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// MaxBodyBytes caps request bodies. Larger bodies get 413.
	MaxBodyBytes int64

	// Validate is the default for requests without a validate parameter.
	Validate bool

	// GeneratedAt pins metadata.generatedAt. Zero means the request day.
	GeneratedAt time.Time

	// Metrics serves /metrics and records request metrics. Nil disables both.
	Metrics *observability.Metrics
}

// OptionsFromConfig maps the [serve] section of cfg onto Options.
// Metrics is left nil; the caller decides whether to create a registry.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Addr:         cfg.Serve.Addr,
		MaxBodyBytes: cfg.Serve.MaxBodyBytes,
		Validate:     cfg.Validate,
	}
}

// Server is the kgviz HTTP service.
type Server struct {
	opts   Options
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. If logger is nil, log.Default() is used.
func New(opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Addr == "" {
		opts.Addr = config.DefaultAddr
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	s := &Server{
		opts:   opts,
		runner: pipeline.NewRunner(logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/convert", s.handleConvert)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
// A shutdown triggered by ctx returns nil.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
