// Package web parses web command flags and launches the web server.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/pickarick/internal/platform/cmd"
	"github.com/louisbranch/pickarick/internal/platform/logging"
	"github.com/louisbranch/pickarick/internal/platform/telemetry/metrics"
	"github.com/louisbranch/pickarick/internal/services/web"
	"github.com/louisbranch/pickarick/internal/services/web/modules/home"
	"go.uber.org/zap"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr          string        `env:"WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	GraphQLEndpoint   string        `env:"WEB_GRAPHQL_ENDPOINT" envDefault:"https://rickandmortyapi.com/graphql"`
	GraphQLTimeout    time.Duration `env:"WEB_GRAPHQL_TIMEOUT" envDefault:"10s"`
	GraphQLMaxRetries uint          `env:"WEB_GRAPHQL_MAX_RETRIES" envDefault:"3"`
	CacheDBPath       string        `env:"WEB_CACHE_DB_PATH"`
	CacheTTL          time.Duration `env:"WEB_CACHE_TTL" envDefault:"5m"`
	SSR               bool          `env:"WEB_SSR" envDefault:"true"`
	CSSPresets        []string      `env:"WEB_CSS_PRESETS" envDefault:"reset,uno,typography,flowbite"`
	OutputDir         string        `env:"WEB_OUTPUT_DIR" envDefault:"./output"`
	HTMXSrc           string        `env:"WEB_HTMX_SRC"`
	CharacterName     string        `env:"WEB_CHARACTER_NAME" envDefault:"rick"`
	CharacterPage     int           `env:"WEB_CHARACTER_PAGE" envDefault:"4"`
	Prefetch          bool          `env:"WEB_PREFETCH" envDefault:"true"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"json"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GraphQLEndpoint, "graphql-endpoint", cfg.GraphQLEndpoint, "Characters GraphQL endpoint")
	fs.DurationVar(&cfg.GraphQLTimeout, "graphql-timeout", cfg.GraphQLTimeout, "Timeout for one GraphQL round trip")
	fs.UintVar(&cfg.GraphQLMaxRetries, "graphql-max-retries", cfg.GraphQLMaxRetries, "Retries after a transient GraphQL failure")
	fs.StringVar(&cfg.CacheDBPath, "cache-db-path", cfg.CacheDBPath, "SQLite query cache path (empty keeps the cache in memory)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Query cache entry lifetime")
	fs.BoolVar(&cfg.SSR, "ssr", cfg.SSR, "Render the character grid in the first response")
	fs.Func("css-presets", "Comma-separated CSS presets linked by the layout", func(value string) error {
		cfg.CSSPresets = splitList(value)
		return nil
	})
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory of built static assets served before the embedded ones")
	fs.StringVar(&cfg.HTMXSrc, "htmx-src", cfg.HTMXSrc, "HTMX script URL")
	fs.StringVar(&cfg.CharacterName, "character-name", cfg.CharacterName, "Default character name filter")
	fs.IntVar(&cfg.CharacterPage, "character-page", cfg.CharacterPage, "Default character result page")
	fs.BoolVar(&cfg.Prefetch, "prefetch", cfg.Prefetch, "Warm the query cache before serving")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log encoding (json, console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.CharacterPage < 1 {
		return Config{}, fmt.Errorf("character page must be at least 1, got %d", cfg.CharacterPage)
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(logging.Options{
		Service: entrypoint.ServiceWeb,
		Level:   cfg.LogLevel,
		Format:  logging.Format(cfg.LogFormat),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := web.NewServerWithContext(ctx, serverConfig(cfg, logger))
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config, logger *zap.Logger) web.Config {
	return web.Config{
		HTTPAddr:          cfg.HTTPAddr,
		GraphQLEndpoint:   cfg.GraphQLEndpoint,
		GraphQLTimeout:    cfg.GraphQLTimeout,
		GraphQLMaxRetries: cfg.GraphQLMaxRetries,
		CacheDBPath:       cfg.CacheDBPath,
		CacheTTL:          cfg.CacheTTL,
		SSR:               cfg.SSR,
		CSSPresets:        cfg.CSSPresets,
		OutputDir:         cfg.OutputDir,
		HTMXSrc:           cfg.HTMXSrc,
		Defaults:          home.Filter{Name: cfg.CharacterName, Page: cfg.CharacterPage},
		Prefetch:          cfg.Prefetch,
		Logger:            logger,
		Metrics:           metrics.New(),
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
