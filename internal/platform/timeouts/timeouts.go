// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// GraphQLRequest caps a single upstream GraphQL round trip.
const GraphQLRequest = 10 * time.Second

// Prefetch caps the startup cache warm-up query.
const Prefetch = 15 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown bounds the flush of pending spans on exit.
const TelemetryShutdown = 5 * time.Second

// ReloadSocketClose is the delay before the reload socket is closed after
// telling the client to reload.
const ReloadSocketClose = 50 * time.Millisecond
