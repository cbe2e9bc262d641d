// Package metrics provides operational metrics collection.
//
// # Metric Categories
//
//   - HTTP: request count and latency by route pattern and status
//   - GraphQL: upstream fetch outcomes, latency and retries
//   - Cache: query cache hits and misses
//   - Page: counter increments served
//
// Metrics are exposed in Prometheus format through Handler.
package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pickarick"

// Registry owns the service collectors.
type Registry struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	graphqlFetches *prometheus.CounterVec
	graphqlLatency prometheus.Histogram
	graphqlRetries prometheus.Counter
	cacheLookups   *prometheus.CounterVec
	counterClicks  prometheus.Counter
}

// New builds a Registry with runtime collectors attached.
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		graphqlFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "fetches_total",
			Help:      "Upstream GraphQL fetch attempts, by outcome.",
		}, []string{"outcome"}),
		graphqlLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream GraphQL fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		graphqlRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "retries_total",
			Help:      "Upstream GraphQL fetch retries.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Query cache lookups, by result.",
		}, []string{"result"}),
		counterClicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "counter_increments_total",
			Help:      "Counter increments served.",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.graphqlFetches,
		r.graphqlLatency,
		r.graphqlRetries,
		r.cacheLookups,
		r.counterClicks,
	)
	return r
}

// Handler exposes the registry in Prometheus text format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveFetch records one upstream GraphQL fetch attempt.
func (r *Registry) ObserveFetch(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.graphqlFetches.WithLabelValues(outcome).Inc()
	r.graphqlLatency.Observe(elapsed.Seconds())
}

// ObserveCache records one query cache lookup.
func (r *Registry) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveRetry records one upstream GraphQL retry.
func (r *Registry) ObserveRetry() {
	if r == nil {
		return
	}
	r.graphqlRetries.Inc()
}

// ObserveCounterIncrement records one served counter increment.
func (r *Registry) ObserveCounterIncrement() {
	if r == nil {
		return
	}
	r.counterClicks.Inc()
}

// Middleware records request count and latency by matched route pattern.
func (r *Registry) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if r == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)

			route := routeLabel(req)
			r.httpRequests.WithLabelValues(route, req.Method, strconv.Itoa(rec.status)).Inc()
			r.httpDuration.WithLabelValues(route).Observe(time.Since(started).Seconds())
		})
	}
}

// routeLabel keeps label cardinality bounded by using the mux pattern.
func routeLabel(req *http.Request) string {
	if pattern := strings.TrimSpace(req.Pattern); pattern != "" {
		return pattern
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(status int) {
	if !s.wroteHeader {
		s.status = status
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(p)
}

// Hijack supports websocket upgrades behind the middleware.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	s.wroteHeader = true
	s.status = http.StatusSwitchingProtocols
	return http.NewResponseController(s.ResponseWriter).Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
