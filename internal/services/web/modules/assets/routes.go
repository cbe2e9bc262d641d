package assets

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/platform/httpx"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, h.files)
	mux.HandleFunc(routepath.StaticPrefix, httpx.MethodNotAllowed("GET, HEAD"))
}
