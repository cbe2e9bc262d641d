// Package graphql is a small GraphQL-over-HTTP client.
//
// Every query flows through the same stages, in order:
//
//   - dedup: identical in-flight queries share one upstream fetch
//   - cache: cache-first reads against an optional Cache
//   - retry: transient transport and 5xx/429 failures back off exponentially
//   - fetch: one JSON POST to the endpoint, traced with OpenTelemetry
//
// Responses keep the raw data payload; callers extract what they need with
// gjson paths through Response.Get and Response.Decode.
package graphql
