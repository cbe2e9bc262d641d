// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Mount describes a module route mount. Prefix claims a subtree ending in
// "/"; Paths claims exact root-mux patterns such as "/{$}" or "/counter".
// A mount needs at least one of the two.
type Mount struct {
	Prefix  string
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
