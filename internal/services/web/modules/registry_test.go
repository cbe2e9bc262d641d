package modules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/pickarick/internal/services/web/module"
	"github.com/louisbranch/pickarick/internal/services/web/modules/home"
)

type stubGateway struct{}

func (stubGateway) ListCharacters(context.Context, home.Filter) ([]home.Character, error) {
	return nil, nil
}

func TestDefaultModulesOrder(t *testing.T) {
	t.Parallel()

	all := DefaultModules(Dependencies{})
	want := []string{"home", "assets", "public"}
	if len(all) != len(want) {
		t.Fatalf("module count = %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if got := all[i].ID(); got != id {
			t.Fatalf("module[%d] id = %q, want %q", i, got, id)
		}
	}
}

func TestDefaultModulesHaveUniqueRoutes(t *testing.T) {
	t.Parallel()

	seen := map[string]string{}
	for _, m := range DefaultModules(Dependencies{}) {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		routes := append([]string{}, mount.Paths...)
		if mount.Prefix != "" {
			routes = append(routes, mount.Prefix)
		}
		if len(routes) == 0 {
			t.Fatalf("module %q claims no routes", m.ID())
		}
		for _, route := range routes {
			if owner, ok := seen[route]; ok {
				t.Fatalf("route %q claimed by %q and %q", route, owner, m.ID())
			}
			seen[route] = m.ID()
		}
	}
}

func TestHomeWithoutGatewayIsUnhealthy(t *testing.T) {
	t.Parallel()

	for _, m := range DefaultModules(Dependencies{}) {
		reporter, ok := m.(module.HealthReporter)
		if !ok {
			continue
		}
		if m.ID() == "home" && reporter.Healthy() {
			t.Fatal("home module without gateway reports healthy")
		}
	}
}

func TestDefaultModulesHealthFollowsGateway(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		deps Dependencies
		want int
	}{
		{name: "no gateway", deps: Dependencies{}, want: http.StatusServiceUnavailable},
		{name: "gateway", deps: Dependencies{Gateway: stubGateway{}}, want: http.StatusOK},
	}
	for _, tc := range cases {
		all := DefaultModules(tc.deps)
		mount, err := all[len(all)-1].Mount()
		if err != nil {
			t.Fatalf("%s: public mount error = %v", tc.name, err)
		}
		rr := httptest.NewRecorder()
		mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rr.Code != tc.want {
			t.Fatalf("%s: healthz status = %d, want %d", tc.name, rr.Code, tc.want)
		}
	}
}

func TestDefaultModulesWireMetricsHandler(t *testing.T) {
	t.Parallel()

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	all := DefaultModules(Dependencies{Metrics: metrics})
	mount, err := all[len(all)-1].Mount()
	if err != nil {
		t.Fatalf("public mount error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTeapot)
	}
}
