package graphql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseDecodeExtractsPath(t *testing.T) {
	t.Parallel()

	resp, err := decodeResponse([]byte(`{"data":{"characters":{"results":[{"name":"Rick Sanchez"},{"name":"Tiny Rick"}]}}}`))
	require.NoError(t, err)

	var results []struct {
		Name string `json:"name"`
	}
	require.NoError(t, resp.Decode("characters.results", &results))
	require.Len(t, results, 2)
	assert.Equal(t, "Tiny Rick", results[1].Name)
	assert.Equal(t, "Rick Sanchez", resp.Get("characters.results.0.name").String())
}

func TestResponseDecodeMissingPath(t *testing.T) {
	t.Parallel()

	resp, err := decodeResponse([]byte(`{"data":{"characters":null}}`))
	require.NoError(t, err)

	var target []any
	err = resp.Decode("characters.results", &target)
	assert.True(t, errors.Is(err, ErrNoData), "err = %v", err)
}

func TestResponseHasData(t *testing.T) {
	t.Parallel()

	withNull, err := decodeResponse([]byte(`{"data":null,"errors":[{"message":"boom"}]}`))
	require.NoError(t, err)
	assert.False(t, withNull.HasData())
	assert.Len(t, withNull.Errors, 1)

	withData, err := decodeResponse([]byte(`{"data":{}}`))
	require.NoError(t, err)
	assert.True(t, withData.HasData())
}

func TestDecodeResponseRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := decodeResponse([]byte(`<html>`))
	assert.Error(t, err)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	respErr := &ResponseError{Errors: []Error{{Message: "a"}, {Message: "b"}}}
	assert.Equal(t, "graphql: a; b", respErr.Error())
	assert.Equal(t, "graphql: empty response", (&ResponseError{}).Error())

	httpErr := &HTTPError{StatusCode: 503}
	assert.Equal(t, "graphql: unexpected status 503", httpErr.Error())
	assert.True(t, httpErr.Temporary())
	assert.True(t, (&HTTPError{StatusCode: 429}).Temporary())
	assert.False(t, (&HTTPError{StatusCode: 400}).Temporary())
}
