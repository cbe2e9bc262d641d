// Package public serves health, reload-socket, metrics and not-found routes.
package public

import (
	"net/http"
	"time"

	"github.com/louisbranch/pickarick/internal/platform/timeouts"
	"github.com/louisbranch/pickarick/internal/services/web/module"
	"github.com/louisbranch/pickarick/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
	"go.uber.org/zap"
)

// Options configures the public module.
type Options struct {
	Shell pagerender.Shell
	// Metrics serves /metrics when set.
	Metrics http.Handler
	Logger  *zap.Logger
	// Health lists the reporters /healthz consults; any unhealthy one fails it.
	Health []module.HealthReporter
	// ReloadCloseDelay overrides how long the reload socket stays open.
	ReloadCloseDelay time.Duration
}

// Module provides unauthenticated operational routes and the 404 fallback.
type Module struct {
	options Options
}

// New returns a public module.
func New(options Options) Module {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.ReloadCloseDelay <= 0 {
		options.ReloadCloseDelay = timeouts.ReloadSocketClose
	}
	return Module{options: options}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Mount claims the root subtree so unmatched paths reach the 404 page.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.options))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
