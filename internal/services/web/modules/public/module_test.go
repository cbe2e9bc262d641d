package public

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/pickarick/internal/services/web/module"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
	"golang.org/x/net/websocket"
)

func mountHandler(t *testing.T, options Options) http.Handler {
	t.Helper()
	mount, err := New(options).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.Root {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, routepath.Root)
	}
	return mount.Handler
}

func TestModuleIDReturnsPublic(t *testing.T) {
	t.Parallel()

	if got := New(Options{}).ID(); got != "public" {
		t.Fatalf("ID() = %q, want %q", got, "public")
	}
}

func TestHealthReturnsOK(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, Options{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Health, nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("status = %d body = %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, routepath.Health, nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

type healthFunc func() bool

func (f healthFunc) Healthy() bool { return f() }

func TestHealthReportsUnavailableWhenAnyReporterFails(t *testing.T) {
	t.Parallel()

	healthy := healthFunc(func() bool { return true })
	down := healthFunc(func() bool { return false })

	rr := httptest.NewRecorder()
	mountHandler(t, Options{Health: []module.HealthReporter{healthy}}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Health, nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthy status = %d body = %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	mountHandler(t, Options{Health: []module.HealthReporter{healthy, down}}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Health, nil))
	if rr.Code != http.StatusServiceUnavailable || rr.Body.String() != "unavailable" {
		t.Fatalf("unhealthy status = %d body = %q", rr.Code, rr.Body.String())
	}
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, Options{})
	for _, path := range []string{"/nope", "/static-ish/x", "/a/b/c"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d, want %d", path, rr.Code, http.StatusNotFound)
		}
		body := rr.Body.String()
		if !strings.Contains(body, ">404</div>") || !strings.Contains(body, "bg-gray-600") {
			t.Fatalf("%s body missing 404 markup: %q", path, body)
		}
	}
}

func TestMetricsRouteServesHandlerWhenConfigured(t *testing.T) {
	t.Parallel()

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# HELP test\n")
	})
	rr := httptest.NewRecorder()
	mountHandler(t, Options{Metrics: metrics}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Metrics, nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "# HELP test") {
		t.Fatalf("status = %d body = %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	mountHandler(t, Options{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Metrics, nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unconfigured metrics status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestReloadSocketSendsReloadAndCloses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(mountHandler(t, Options{ReloadCloseDelay: 10 * time.Millisecond}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + routepath.ReloadSocket
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))

	var msg reloadMessage
	if err := websocket.JSON.Receive(conn, &msg); err != nil {
		t.Fatalf("receive reload message: %v", err)
	}
	if msg.Type != "reload" {
		t.Fatalf("message type = %q, want reload", msg.Type)
	}

	var next reloadMessage
	if err := websocket.JSON.Receive(conn, &next); err == nil {
		t.Fatalf("expected socket to close, got %+v", next)
	}
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, newHandlers(Options{}))
}
