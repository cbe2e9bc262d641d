// Package telemetry groups operational observability for pickarick.
//
// Traces are exported through platform/otel. Operational metrics (request
// latency, upstream GraphQL fetches, cache effectiveness) live in
// telemetry/metrics and are exposed in Prometheus format at /metrics.
package telemetry
