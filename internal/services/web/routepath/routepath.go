// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root           = "/"
	Characters     = "/characters"
	Counter        = "/counter"
	Health         = "/healthz"
	Metrics        = "/metrics"
	ReloadSocket   = "/-/hmr"
	StaticPrefix   = "/static/"
	PresetsPrefix  = StaticPrefix + "css/"
	AppScript      = StaticPrefix + "js/app.js"
	PageQueryKey   = "page"
	NameQueryKey   = "name"
	CountFormField = "count"
)

// CharactersQuery returns the grid fragment route with optional filter overrides.
func CharactersQuery(name string, page int) string {
	values := url.Values{}
	if name = strings.TrimSpace(name); name != "" {
		values.Set(NameQueryKey, name)
	}
	if page > 0 {
		values.Set(PageQueryKey, strconv.Itoa(page))
	}
	if len(values) == 0 {
		return Characters
	}
	return Characters + "?" + values.Encode()
}

// Preset returns the stylesheet route for a CSS preset.
func Preset(name string) string {
	return PresetsPrefix + escapeSegment(name) + ".css"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
