// Package storage declares persistence interfaces for web-owned cache data.
//
// The cache holds upstream GraphQL responses only; it is a derived read
// optimization and never becomes the source of truth for character data.
package storage
