package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyIgnoresWhitespaceAndVariableOrder(t *testing.T) {
	t.Parallel()

	a, err := CacheKey("https://example.test/graphql", Request{
		Query:     "{ characters(page: 4) { results { name } } }",
		Variables: map[string]any{"name": "rick", "page": 4},
	})
	require.NoError(t, err)
	b, err := CacheKey("https://example.test/graphql", Request{
		Query:     "{\n  characters(page: 4) {\n    results { name }\n  }\n}",
		Variables: map[string]any{"page": 4, "name": "rick"},
	})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Contains(t, a, "gql:")
}

func TestCacheKeySeparatesEndpointsAndVariables(t *testing.T) {
	t.Parallel()

	req := Request{Query: "{ a }", Variables: map[string]any{"page": 1}}
	base, err := CacheKey("https://one.test/graphql", req)
	require.NoError(t, err)

	otherEndpoint, err := CacheKey("https://two.test/graphql", req)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherEndpoint)

	req.Variables = map[string]any{"page": 2}
	otherVars, err := CacheKey("https://one.test/graphql", req)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherVars)
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, Request{Query: "  "}.Validate())
	assert.NoError(t, Request{Query: "{ a }"}.Validate())
}
