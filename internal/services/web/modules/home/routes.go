package home

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/platform/httpx"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" /{$}", h.handleIndex)
	mux.HandleFunc("/{$}", httpx.MethodNotAllowed("GET, HEAD"))
	mux.HandleFunc(http.MethodGet+" "+routepath.Characters, h.handleCharacters)
	mux.HandleFunc(routepath.Characters, httpx.MethodNotAllowed("GET, HEAD"))
	mux.HandleFunc(http.MethodPost+" "+routepath.Counter, h.handleCounter)
	mux.HandleFunc(routepath.Counter, httpx.MethodNotAllowed(http.MethodPost))
}
