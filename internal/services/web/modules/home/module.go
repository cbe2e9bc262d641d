// Package home serves the character grid page and its click counter.
package home

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/module"
	"github.com/louisbranch/pickarick/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
	"go.uber.org/zap"
)

// CounterObserver records served counter increments.
type CounterObserver interface {
	ObserveCounterIncrement()
}

type nopObserver struct{}

func (nopObserver) ObserveCounterIncrement() {}

// Options configures page rendering for the home module.
type Options struct {
	// SSR renders the grid inline; otherwise the page loads it after first paint.
	SSR      bool
	Shell    pagerender.Shell
	Defaults Filter
	Logger   *zap.Logger
	Observer CounterObserver
}

// Module provides the home page, grid fragment and counter routes.
type Module struct {
	gateway CharacterGateway
	options Options
}

// NewWithGateway returns a home module backed by gateway.
func NewWithGateway(gateway CharacterGateway, options Options) Module {
	return Module{gateway: gateway, options: options}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "home" }

// Mount wires home route handlers on exact root paths.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.gateway), m.options))
	return module.Mount{
		Paths:   []string{"/{$}", routepath.Characters, routepath.Counter},
		Handler: mux,
	}, nil
}

// Healthy reports whether the module has an upstream gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}
