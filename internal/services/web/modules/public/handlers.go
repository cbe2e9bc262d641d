package public

import (
	"net/http"
	"time"

	"github.com/louisbranch/pickarick/internal/services/web/platform/httpx"
	"github.com/louisbranch/pickarick/internal/services/web/platform/weberror"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

type reloadMessage struct {
	Type string `json:"type"`
}

type handlers struct {
	options Options
	reload  websocket.Handler
}

func newHandlers(options Options) handlers {
	h := handlers{options: options}
	h.reload = websocket.Handler(h.serveReload)
	return h
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	for _, reporter := range h.options.Health {
		if !reporter.Healthy() {
			_ = httpx.WriteText(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}

func (h handlers) handleReloadSocket(w http.ResponseWriter, r *http.Request) {
	h.reload.ServeHTTP(w, r)
}

// serveReload tells stale dev clients to reload, then closes the socket.
func (h handlers) serveReload(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	if err := websocket.JSON.Send(conn, reloadMessage{Type: "reload"}); err != nil {
		h.logger().Debug("send reload message", zap.Error(err))
		return
	}
	time.Sleep(h.options.ReloadCloseDelay)
}

func (h handlers) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.options.Metrics == nil {
		h.handleNotFound(w, r)
		return
	}
	h.options.Metrics.ServeHTTP(w, r)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.options.Shell)
}

func (h handlers) logger() *zap.Logger {
	if h.options.Logger == nil {
		return zap.NewNop()
	}
	return h.options.Logger
}
