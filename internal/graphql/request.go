package graphql

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Request is one GraphQL operation.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Validate reports whether the request can be sent.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("graphql query is required")
	}
	return nil
}

// CacheKey derives a stable key for endpoint and request.
//
// Variables are marshalled through encoding/json, which sorts map keys, so
// logically equal requests share a key.
func CacheKey(endpoint string, r Request) (string, error) {
	vars, err := json.Marshal(r.Variables)
	if err != nil {
		return "", fmt.Errorf("marshal variables: %w", err)
	}
	sum := sha256.New()
	for _, part := range [][]byte{
		[]byte(strings.TrimSpace(endpoint)),
		[]byte(r.OperationName),
		[]byte(normalizeQuery(r.Query)),
		vars,
	} {
		sum.Write(part)
		sum.Write([]byte{0})
	}
	return "gql:" + hex.EncodeToString(sum.Sum(nil)), nil
}

// normalizeQuery collapses whitespace so formatting does not split the cache.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
