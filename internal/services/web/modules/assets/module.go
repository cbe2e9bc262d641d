// Package assets serves stylesheet presets and scripts under /static/.
package assets

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/module"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

// Options configures where assets are read from.
type Options struct {
	// OutputDir holds built assets; missing files fall back to the embedded set.
	OutputDir string
}

// Module serves static assets.
type Module struct {
	options Options
}

// New returns an assets module.
func New(options Options) Module {
	return Module{options: options}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "assets" }

// Mount claims the static prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.options))
	return module.Mount{Prefix: routepath.StaticPrefix, Handler: mux}, nil
}
