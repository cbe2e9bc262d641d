package public

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/platform/httpx"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Health, httpx.MethodNotAllowed("GET, HEAD"))
	mux.HandleFunc(http.MethodGet+" "+routepath.ReloadSocket, h.handleReloadSocket)
	mux.HandleFunc(http.MethodGet+" "+routepath.Metrics, h.handleMetrics)
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
