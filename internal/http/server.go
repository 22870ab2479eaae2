// Package http exposes unified search and link resolution over HTTP.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"arch1ve/internal/core"
	"arch1ve/internal/throttle"
)

const (
	serviceName     = "arch1ve"
	shutdownTimeout = 10 * time.Second
	// defaultRequestTimeout applies when no write timeout is configured.
	defaultRequestTimeout = 30 * time.Second
)

// Searcher runs unified searches.
type Searcher interface {
	UnifiedSearch(ctx context.Context, req core.SearchRequest) (*core.UnifiedSearchResult, error)
}

// LinkResolver turns a shared link into a single result.
type LinkResolver interface {
	Resolve(ctx context.Context, link, spotifyToken, youtubeKey string) (*core.SearchResult, error)
}

// Dependencies are the collaborators the handlers call.
type Dependencies struct {
	Searcher Searcher
	Links    LinkResolver
	// YouTubeAPIKey is sent with every YouTube call. Empty disables YouTube.
	YouTubeAPIKey string
	// Floodgate limits requests per client on /api. Nil disables the limit.
	Floodgate *throttle.Floodgate
	// Language is used when Accept-Language matches no supported language.
	Language string
	// Ready reports whether backing services are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
	// Registry is served on /metrics. Nil creates a private registry.
	Registry *prometheus.Registry
	// Metrics must be registered on Registry. Nil registers a new set.
	Metrics *Metrics
}

type Server struct {
	config  *core.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	metrics *Metrics
	deps    Dependencies
}

// NewServer builds the router and the underlying http.Server.
func NewServer(config *core.ServerConfig, deps Dependencies, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics(deps.Registry)
	}

	s := &Server{
		config:  config,
		logger:  logger,
		metrics: deps.Metrics,
		deps:    deps,
	}
	s.server = createHTTPServer(config, s.setupRoutes())
	return s
}

func createHTTPServer(config *core.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
}

func (s *Server) setupRoutes() chi.Router {
	timeout := s.config.WriteTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", healthzHandler)
	r.Get("/readyz", s.readyzHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.deps.Registry, promhttp.HandlerOpts{}))
	r.Get("/", homeHandler(s.logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(s.floodgate)
		r.Get("/search", s.handleSearch)
		r.Get("/links/resolve", s.handleResolve)
	})

	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
		}
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

func (s *Server) GetMetrics() *Metrics {
	return s.metrics
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
}

func (s *Server) readyzHandler(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ready != nil {
		if err := s.deps.Ready(r.Context()); err != nil {
			s.logger.Warn("Readiness check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "service": serviceName})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "service": serviceName})
}

func homeHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(homePage)); err != nil {
			logger.Debug("Failed to write home page", zap.Error(err))
		}
	}
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>Arch1ve search</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .header { color: #333; }
        .endpoint { margin: 10px 0; }
        .endpoint a { text-decoration: none; color: #0066cc; }
        .endpoint a:hover { text-decoration: underline; }
        code { background: #f4f4f4; padding: 2px 4px; }
    </style>
</head>
<body>
    <h1 class="header">🎵 Arch1ve search</h1>
    <p>Unified Spotify and YouTube track search</p>

    <h2>API</h2>
    <div class="endpoint">🔎 <code>GET /api/search?q=&lt;query&gt;&amp;limit=&lt;n&gt;</code> with <code>Authorization: Bearer &lt;spotify token&gt;</code></div>
    <div class="endpoint">🔗 <code>GET /api/links/resolve?url=&lt;link&gt;</code></div>

    <h2>Operations</h2>
    <div class="endpoint">📊 <a href="/metrics">Metrics</a> - Prometheus metrics</div>
    <div class="endpoint">💚 <a href="/healthz">Health</a> - Health check</div>
    <div class="endpoint">✅ <a href="/readyz">Ready</a> - Readiness check</div>
</body>
</html>`
