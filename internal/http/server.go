package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"lifeevents/internal/export"
	"lifeevents/internal/log"
	"lifeevents/internal/middleware/security"
	"lifeevents/internal/middleware/trace"
	appweb "lifeevents/web"
)

const maxFormBytes = 64 << 10

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

// Options configures NewServer. Zero values fall back to UTC, time.Now and a
// discarding logger.
type Options struct {
	Addr        string
	Location    *time.Location
	Clock       func() time.Time
	Logger      *log.Logger
	Mirrors     []export.Mirror
	ReadyChecks map[string]ReadyCheck
}

type Server struct {
	http.Server
	templates   *template.Template
	exports     *export.Fanout
	loc         *time.Location
	now         func() time.Time
	logger      *log.Logger
	readyChecks map[string]ReadyCheck
	started     time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates:   t,
		exports:     export.NewFanout(nil, logger.WithComponent(log.ComponentExport), opts.Mirrors...),
		loc:         loc,
		now:         now,
		logger:      logger.WithComponent(log.ComponentHTTP),
		readyChecks: opts.ReadyChecks,
		started:     now(),
	}

	mux := http.NewServeMux()

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	pages := http.NewServeMux()
	pages.HandleFunc("GET /{$}", s.handleIndex)
	pages.HandleFunc("GET /life-events/edit", s.handleEdit)
	pages.HandleFunc("POST /life-events/projection", s.handleProjection)
	pages.HandleFunc("POST /life-events", s.handleSave)
	pages.HandleFunc("POST /life-events/cancel", s.handleCancel)
	mux.Handle("/", security.NoStore(pages))

	detector := security.NewDetector(logger)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(logger, detector.ExtractClientIP)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           tracer.Middleware(detector.Middleware(headers.Middleware(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("HTTP server configured",
		"addr", opts.Addr,
		"timezone", loc.String(),
		"mirrors", s.exports.Mirrors(),
		log.FieldOperation, log.OpStartup)

	return s, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "HTTP server shutting down", log.FieldOperation, log.OpShutdown)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
