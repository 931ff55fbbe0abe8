// Package server exposes the topic map over HTTP.
//
// Routes:
//
//	GET  /topic?id=<id>[&zoom=<n>][&pan=<dx>,<dy>]  HTML topic page
//	GET  /map.svg?id=<id>                           bare SVG map
//	GET  /overview.svg[?dir=TB][&depth=<n>]         whole-tree overview
//	GET  /api/topics/{id}                           index entry as JSON
//	GET  /api/stats                                 index statistics
//	POST /api/reload                                drop and reload the tree
//	GET  /health                                    liveness
//
// Page responses use the page state for their status: 200 for found and
// no-selection pages, 404 for unknown ids and 502 when the tree failed to
// load. Malformed parameters are rejected with 400.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/topicmap/pkg/config"
	"github.com/matzehuels/topicmap/pkg/pipeline"
	"github.com/matzehuels/topicmap/pkg/render/overview"
	"github.com/matzehuels/topicmap/pkg/render/page"
)

// Options configures the handlers.
type Options struct {
	Page     page.Options
	Overview overview.Options
}

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	log    *log.Logger
	opts   Options
}

// New creates the server and its routes.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Page.LinkBase == "" {
		opts.Page.LinkBase = page.DefaultOptions().LinkBase
	}
	s := &Server{runner: runner, log: logger, opts: opts}
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

	r.Get("/health", s.handleHealth)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.opts.Page.LinkBase, http.StatusFound)
	})
	r.Get("/topic", s.handlePage)
	r.Get("/map.svg", s.handleMap)
	r.Get("/overview.svg", s.handleOverview)

	r.Route("/api", func(r chi.Router) {
		r.Get("/topics/{id}", s.handleTopic)
		r.Get("/stats", s.handleStats)
		r.Post("/reload", s.handleReload)
	})

	s.router = r
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
