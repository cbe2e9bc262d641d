// Package sqlite provides the web query cache persistence adapter backed by SQLite.
//
// The store only contains derived cache state that can be rebuilt by
// re-querying the upstream GraphQL endpoint.
package sqlite
