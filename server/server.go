// Package server exposes question extraction over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsawler/examine/config"
	"github.com/tsawler/examine/scan"
)

// Server is the HTTP API server for examine.
type Server struct {
	router    chi.Router
	log       *slog.Logger
	cfg       config.Config
	converter scan.Converter
}

// New creates and configures the HTTP server. conv handles legacy
// equation objects for uploaded documents.
func New(log *slog.Logger, cfg config.Config, conv scan.Converter) *Server {
	s := &Server{
		log:       log,
		cfg:       cfg,
		converter: conv,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", s.handleHealth)
	r.Post("/extract", s.handleExtract)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// RequestLogger logs one line per request with method, path, status,
// and duration.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
