package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRouteAndStatus(t *testing.T) {
	t.Parallel()

	reg := New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := reg.Middleware()(mux)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	got := testutil.ToFloat64(reg.httpRequests.WithLabelValues("GET /missing", http.MethodGet, "404"))
	if got != 1 {
		t.Fatalf("requests_total = %v, want 1", got)
	}
}

func TestObserversIncrementCounters(t *testing.T) {
	t.Parallel()

	reg := New()
	reg.ObserveFetch("ok", 10*time.Millisecond)
	reg.ObserveFetch("error", time.Millisecond)
	reg.ObserveCache(true)
	reg.ObserveCache(false)
	reg.ObserveCache(false)
	reg.ObserveRetry()
	reg.ObserveCounterIncrement()

	if got := testutil.ToFloat64(reg.graphqlFetches.WithLabelValues("ok")); got != 1 {
		t.Fatalf("fetches ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(reg.cacheLookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("cache misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(reg.graphqlRetries); got != 1 {
		t.Fatalf("retries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(reg.counterClicks); got != 1 {
		t.Fatalf("counter increments = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	t.Parallel()

	reg := New()
	reg.ObserveCounterIncrement()

	rr := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "pickarick_page_counter_increments_total 1") {
		t.Fatalf("metrics body missing counter: %s", body)
	}
}

func TestNilRegistryIsSafe(t *testing.T) {
	t.Parallel()

	var reg *Registry
	reg.ObserveFetch("ok", time.Millisecond)
	reg.ObserveCache(true)
	reg.ObserveRetry()
	reg.ObserveCounterIncrement()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	rr := httptest.NewRecorder()
	reg.Middleware()(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTeapot)
	}
}
