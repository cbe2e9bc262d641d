// Package web serves the pick-a-rick page: a character grid fetched from the
// Rick and Morty GraphQL API and a click counter.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/pickarick/internal/graphql"
	"github.com/louisbranch/pickarick/internal/platform/logging"
	"github.com/louisbranch/pickarick/internal/platform/telemetry/metrics"
	"github.com/louisbranch/pickarick/internal/platform/timeouts"
	"github.com/louisbranch/pickarick/internal/services/web/app"
	"github.com/louisbranch/pickarick/internal/services/web/integration/cache"
	"github.com/louisbranch/pickarick/internal/services/web/modules"
	"github.com/louisbranch/pickarick/internal/services/web/modules/home"
	"github.com/louisbranch/pickarick/internal/services/web/platform/httpx"
	"github.com/louisbranch/pickarick/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pickarick/internal/services/web/static"
	websqlite "github.com/louisbranch/pickarick/internal/services/web/storage/sqlite"
	"go.uber.org/zap"
)

// DefaultGraphQLEndpoint is the public Rick and Morty API.
const DefaultGraphQLEndpoint = "https://rickandmortyapi.com/graphql"

const cacheJanitorInterval = 10 * time.Minute

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string

	GraphQLEndpoint   string
	GraphQLTimeout    time.Duration
	GraphQLMaxRetries uint
	// CacheDBPath stores query results in sqlite; empty keeps them in memory.
	CacheDBPath string
	CacheTTL    time.Duration

	SSR        bool
	CSSPresets []string
	OutputDir  string
	HTMXSrc    string
	Defaults   home.Filter
	// Prefetch warms the query cache with the default grid before serving.
	Prefetch bool

	Logger  *zap.Logger
	Metrics *metrics.Registry
	// Gateway replaces the GraphQL-backed character gateway when set.
	Gateway home.CharacterGateway
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	gateway    home.CharacterGateway
	defaults   home.Filter
	prefetch   bool
	store      *websqlite.Store
	queryCache *cache.QueryCache
	logger     *zap.Logger
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	return NewServerWithContext(context.Background(), config)
}

// NewServerWithContext builds a configured web server.
//
// It validates presets, opens the query cache and wires the GraphQL client
// into the module set. An unknown CSS preset fails construction.
func NewServerWithContext(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	presets, err := static.ValidatePresets(config.CSSPresets)
	if err != nil {
		return nil, fmt.Errorf("validate css presets: %w", err)
	}
	logger := logging.OrNop(config.Logger)
	registry := config.Metrics
	if registry == nil {
		registry = metrics.New()
	}

	server := &Server{
		httpAddr: httpAddr,
		defaults: config.Defaults.Normalize(),
		prefetch: config.Prefetch,
		logger:   logger,
	}

	gateway := config.Gateway
	if gateway == nil {
		client, err := server.newGraphQLClient(config, registry)
		if err != nil {
			server.Close()
			return nil, err
		}
		gateway = home.NewGraphQLGateway(client)
	}
	server.gateway = gateway

	shell := pagerender.Shell{Presets: presets, HTMXSrc: strings.TrimSpace(config.HTMXSrc)}
	root, err := app.Compose(app.ComposeInput{
		Modules: modules.DefaultModules(modules.Dependencies{
			Gateway:         gateway,
			SSR:             config.SSR,
			Shell:           shell,
			Defaults:        server.defaults,
			OutputDir:       config.OutputDir,
			Metrics:         registry.Handler(),
			CounterObserver: registry,
			Logger:          logger,
		}),
	})
	if err != nil {
		server.Close()
		return nil, fmt.Errorf("compose web modules: %w", err)
	}

	handler := httpx.Chain(root,
		httpx.RequestID(),
		httpx.AccessLog(logger),
		registry.Middleware(),
		httpx.RecoverPanic(logger),
	)
	server.httpServer = &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return server, nil
}

// newGraphQLClient opens the configured cache and builds the upstream client.
func (s *Server) newGraphQLClient(config Config, registry *metrics.Registry) (*graphql.Client, error) {
	endpoint := strings.TrimSpace(config.GraphQLEndpoint)
	if endpoint == "" {
		endpoint = DefaultGraphQLEndpoint
	}
	timeout := config.GraphQLTimeout
	if timeout <= 0 {
		timeout = timeouts.GraphQLRequest
	}

	var queryCache graphql.Cache = graphql.NewMemoryCache()
	store, err := cache.OpenStore(config.CacheDBPath)
	if err != nil {
		return nil, err
	}
	if store != nil {
		s.store = store
		s.queryCache = cache.NewQueryCache(store)
		queryCache = s.queryCache
	}

	client, err := graphql.NewClient(endpoint,
		graphql.WithHTTPClient(&http.Client{Timeout: timeout}),
		graphql.WithCache(queryCache, config.CacheTTL),
		graphql.WithRetry(config.GraphQLMaxRetries, 0, 0),
		graphql.WithLogger(s.logger.Named("graphql")),
		graphql.WithObserver(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("build graphql client: %w", err)
	}
	return client, nil
}

// Handler returns the composed root handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return http.NotFoundHandler()
	}
	return s.httpServer.Handler
}

// Prefetch loads the default grid once so the first page render is served
// from cache. Persisted entries from a previous run are marked stale first.
// Failures are logged and never stop startup.
func (s *Server) Prefetch(ctx context.Context) {
	if s == nil || s.gateway == nil {
		return
	}
	if s.queryCache != nil {
		if marked, err := s.queryCache.Invalidate(ctx); err != nil {
			s.logger.Warn("mark cached queries stale", zap.Error(err))
		} else if marked > 0 {
			s.logger.Debug("marked cached queries stale", zap.Int64("count", marked))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Prefetch)
	defer cancel()
	started := time.Now()
	characters, err := s.gateway.ListCharacters(ctx, s.defaults)
	if err != nil {
		s.logger.Warn("prefetch characters", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return
	}
	s.logger.Info("prefetched characters",
		zap.Int("count", len(characters)),
		zap.String("name", s.defaults.Name),
		zap.Int("page", s.defaults.Page),
		zap.Duration("elapsed", time.Since(started)),
	)
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	if s.prefetch {
		s.Prefetch(ctx)
	}
	if s.store != nil {
		janitorCtx, stopJanitor := context.WithCancel(ctx)
		defer stopJanitor()
		go cache.RunJanitor(janitorCtx, s.store, cacheJanitorInterval, s.logger.Named("cache"))
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", zap.String("addr", s.httpAddr))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the query cache store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close web cache store", zap.Error(err))
		}
		s.store = nil
	}
}
