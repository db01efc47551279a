package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"egoroff.spb.ru/pkg/config"
	"egoroff.spb.ru/pkg/metrics"
	"egoroff.spb.ru/pkg/navigation"
)

// Loader produces a fresh section tree. It is called at startup and on every
// reload.
type Loader func() (*navigation.SiteSection, error)

// Server holds the HTTP interface and the published navigation graph.
type Server struct {
	cfg    config.Config
	load   Loader
	holder *navigation.Holder
	cache  *navigationCache

	// reloadMu orders reloads so the last one to read the site map publishes.
	reloadMu sync.Mutex

	httpServer  *http.Server
	taskManager *TaskManager
	watcher     *SiteMapWatcher
}

// NewServer loads the site map once and prepares the HTTP server.
// A site map that cannot be loaded at startup is fatal.
func NewServer(cfg config.Config, load Loader) (*Server, error) {
	cache, err := newNavigationCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		load:        load,
		holder:      navigation.NewHolder(nil),
		cache:       cache,
		taskManager: NewTaskManager(),
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := NewSiteMapWatcher(cfg.SiteMap, cfg.WatchDebounce, s.reloadFromWatcher)
		if err != nil {
			return nil, fmt.Errorf("failed to watch site map: %w", err)
		}
		s.watcher = w
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Recovery must be outer-most to catch everything.
	var handler http.Handler = mux
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("GET /metrics", promhttp.Handler())
	rootMux.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           rootMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Graph returns the currently published navigation graph.
func (s *Server) Graph() *navigation.Graph {
	return s.holder.Load()
}

// Reload builds a new graph from the loader and publishes it.
// On failure the previous generation stays in place.
func (s *Server) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	root, err := s.load()
	if err != nil {
		metrics.Reloads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load site map: %w", err)
	}

	g := navigation.BuildWithOptions(root, navigation.Options{Brand: s.cfg.Brand})
	if _, ok := g.Section(navigation.Sep); !ok {
		slog.Warn("Site map has no root section, breadcrumbs are disabled", "root_id", root.ID)
	}

	s.holder.Swap(g)
	s.cache.Purge()

	metrics.Sections.Set(float64(g.Len()))
	metrics.Reloads.WithLabelValues("ok").Inc()
	slog.Info("Navigation graph published", "sections", g.Len())
	return nil
}

func (s *Server) reloadFromWatcher() {
	if err := s.Reload(); err != nil {
		slog.Error("Site map reload failed", "error", err)
	}
}

// Run starts the site map watcher (if enabled) and the HTTP server.
func (s *Server) Run(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start site map watcher: %w", err)
		}
	}

	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server and the watcher.
func (s *Server) Shutdown() {
	slog.Info("Starting graceful shutdown of HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if s.watcher != nil {
		s.watcher.Stop()
	}
}
