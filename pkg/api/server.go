// Package api exposes the layout engine over HTTP. The surface is small:
// read, replace, and delete saved arrangements per category, compute
// defaults, reconcile saved state against a current item set, and report
// the breakpoint table the frontend must agree on.
package api

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dashgrid/dashgrid/pkg/layout"
	"github.com/dashgrid/dashgrid/pkg/observability"
	"github.com/dashgrid/dashgrid/pkg/store"
)

// Config configures the API server.
type Config struct {
	Store     store.Store
	Templates *layout.Registry
	Logger    *log.Logger
}

// Server serves the layout HTTP API. It is stateless between requests:
// every handler reads through to the store.
type Server struct {
	store store.Store
	log   *log.Logger

	regMu sync.RWMutex
	reg   *layout.Registry
}

// SetTemplates swaps the curated template registry. Used for hot reload of
// the template file while serving.
func (s *Server) SetTemplates(reg *layout.Registry) {
	if reg == nil {
		return
	}
	s.regMu.Lock()
	s.reg = reg
	s.regMu.Unlock()
}

// templates returns the current registry.
func (s *Server) templates() *layout.Registry {
	s.regMu.RLock()
	defer s.regMu.RUnlock()
	return s.reg
}

// NewServer creates an API server.
func NewServer(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.NewNullStore()
	}
	if cfg.Templates == nil {
		cfg.Templates = layout.BuiltinRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Server{
		store: cfg.Store,
		reg:   cfg.Templates,
		log:   cfg.Logger,
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/breakpoints", s.handleBreakpoints)

		r.Route("/layouts/{category}", func(r chi.Router) {
			r.Get("/", s.handleGetLayouts)
			r.Put("/", s.handlePutLayouts)
			r.Delete("/", s.handleDeleteLayouts)
			r.Post("/defaults", s.handleDefaults)
			r.Post("/reconcile", s.handleReconcile)
		})
	})

	return r
}

// observe emits API hooks and a request log line per request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
		)
	})
}
