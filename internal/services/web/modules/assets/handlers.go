package assets

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/routepath"
	"github.com/louisbranch/pickarick/internal/services/web/static"
)

type handlers struct {
	files http.Handler
}

func newHandlers(options Options) handlers {
	return handlers{files: cacheControl(http.StripPrefix(routepath.StaticPrefix, static.Handler(options.OutputDir)))}
}

func cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
