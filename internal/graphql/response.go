package graphql

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoData is returned by Decode when the requested path is absent.
var ErrNoData = errors.New("graphql: no data at path")

// Location points into the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of a GraphQL errors array.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Locations  []Location     `json:"locations,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Response is a decoded GraphQL response envelope.
type Response struct {
	Data   json.RawMessage
	Errors []Error
	// FromCache is set when the response was served without a network fetch.
	FromCache bool
}

type wireResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// HasData reports whether the response carries a non-null data object.
func (r Response) HasData() bool {
	trimmed := bytes.TrimSpace(r.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Get extracts a value from the data payload using a gjson path.
func (r Response) Get(path string) gjson.Result {
	if !r.HasData() {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Data, path)
}

// Decode unmarshals the value at path into target.
func (r Response) Decode(path string, target any) error {
	result := r.Get(path)
	if !result.Exists() || result.Type == gjson.Null {
		return fmt.Errorf("%w: %s", ErrNoData, path)
	}
	if err := json.Unmarshal([]byte(result.Raw), target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func decodeResponse(body []byte) (Response, error) {
	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return Response{}, fmt.Errorf("decode graphql response: %w", err)
	}
	return Response{Data: wire.Data, Errors: wire.Errors}, nil
}

// ResponseError reports a response that carried errors and no data.
type ResponseError struct {
	Errors []Error
}

func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return "graphql: empty response"
	}
	messages := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		messages = append(messages, entry.Message)
	}
	return "graphql: " + strings.Join(messages, "; ")
}

// HTTPError reports a non-2xx status from the endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("graphql: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("graphql: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the status is worth retrying.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
