// Package server implements the framewright HTTP API.
//
// The API exposes assembly CRUD, resolve passes, command application and
// SVG elevation rendering over a single persistence backend. All request
// and response bodies are JSON except elevations, which are SVG.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/framewright/framewright/pkg/cache"
	"github.com/framewright/framewright/pkg/config"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/render/elevation"
	"github.com/framewright/framewright/pkg/store"
)

// Server serves the framewright HTTP API over a store backend.
type Server struct {
	st     store.Store
	cache  cache.Cache
	cfg    config.Config
	logger *log.Logger

	// render produces the SVG body for an assembly. Swappable in tests.
	render func(*frame.Assembly, elevation.Options) (string, error)
}

// New creates a server. A nil cache disables elevation caching; a nil
// logger falls back to log.Default().
func New(st store.Store, c cache.Cache, cfg config.Config, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{st: st, cache: c, cfg: cfg, logger: logger, render: elevation.RenderString}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/assemblies", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Post("/resolve", s.handleResolve)
			r.Post("/commands", s.handleCommands)
			r.Get("/elevation.svg", s.handleElevation)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// requestLogger logs one line per request with method, path, status and
// elapsed time.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	})
}
