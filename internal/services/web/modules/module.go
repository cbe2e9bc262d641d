// Package modules defines web module registry helpers.
package modules

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/module"
	"github.com/louisbranch/pickarick/internal/services/web/modules/home"
	"github.com/louisbranch/pickarick/internal/services/web/platform/pagerender"
	"go.uber.org/zap"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the upstream gateway and shared page settings required
// to compose the web module registry.
type Dependencies struct {
	// Gateway lists characters; nil serves the grid as unavailable.
	Gateway home.CharacterGateway

	SSR       bool
	Shell     pagerender.Shell
	Defaults  home.Filter
	OutputDir string

	// Metrics serves /metrics when set.
	Metrics         http.Handler
	CounterObserver home.CounterObserver
	Logger          *zap.Logger
}
