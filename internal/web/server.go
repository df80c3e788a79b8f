// Package web serves the upload/transform/download UI for the registered
// simfile tools.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/stepsmith/stepsmith/internal/tool"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultMaxUploadBytes caps uploads at 4 MiB; real simfiles are far below
// this.
const DefaultMaxUploadBytes = 4 << 20

// Options configures a Server.
type Options struct {
	ListenAddr     string
	MaxUploadBytes int64

	// FakeMinesDefaults pre-checks the fake-mines option checkboxes.
	FakeMinesDefaults tool.Options
}

// Server is the stepsmith web application.
type Server struct {
	logger     *slog.Logger
	registry   *tool.Registry
	opts       Options
	tmpl       *template.Template
	httpServer *http.Server
}

// pageDef describes how a tool is presented and how its output is named.
type pageDef struct {
	title       string
	suffix      string // appended to the uploaded file's base name
	showOptions bool
}

// pageDefs maps tool names to their presentation. Tools without an entry get
// a generic page.
var pageDefs = map[string]pageDef{
	"fake-mines":        {title: "Fake Mines", suffix: "-fakemines", showOptions: true},
	"scroll-normalizer": {title: "Scroll Normalizer", suffix: "-normalized"},
}

// NewServer builds a Server over the given tool registry.
func NewServer(logger *slog.Logger, registry *tool.Registry, opts Options) (*Server, error) {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		logger:   logger,
		registry: registry,
		opts:     opts,
		tmpl:     tmpl,
	}, nil
}

// Handler builds the route table. Every registered tool gets a GET form page
// and a POST upload endpoint under its own name.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)

	for _, name := range s.registry.Names() {
		t, _ := s.registry.Lookup(name)
		mux.HandleFunc("GET /"+name, s.handlePage(t))
		mux.HandleFunc("POST /"+name, s.handleUpload(t))
	}
	return s.logRequests(mux)
}

// Start runs the server in a goroutine until Shutdown is called.
func (s *Server) Start() {
	s.httpServer = &http.Server{
		Addr:    s.opts.ListenAddr,
		Handler: s.Handler(),
	}

	go func() {
		s.logger.Info("Web server starting", "address", fmt.Sprintf("http://localhost%s/", s.opts.ListenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Web server failed unexpectedly", "error", err)
		}
	}()
}

// Shutdown drains in-flight requests, giving up after a few seconds.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("Shutting down web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("web server shutdown failed: %w", err)
	}
	s.logger.Debug("Web server shut down gracefully.")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Request received.", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
