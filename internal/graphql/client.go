package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	instrumentationName = "github.com/louisbranch/pickarick/internal/graphql"
	maxResponseBytes    = 8 << 20
	maxErrorBodyBytes   = 512

	defaultMaxRetries      = 3
	defaultInitialInterval = 200 * time.Millisecond
	defaultMaxInterval     = 2 * time.Second
	defaultCacheTTL        = 5 * time.Minute
	defaultFetchTimeout    = 30 * time.Second
)

// Policy selects how a query interacts with the cache.
type Policy int

const (
	// CacheFirst serves a cached response when present and fetches otherwise.
	CacheFirst Policy = iota
	// NetworkOnly always fetches, refreshing the cache on success.
	NetworkOnly
)

func (p Policy) String() string {
	switch p {
	case CacheFirst:
		return "cache-first"
	case NetworkOnly:
		return "network-only"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Observer receives client events for metrics.
type Observer interface {
	ObserveFetch(outcome string, elapsed time.Duration)
	ObserveCache(hit bool)
	ObserveRetry()
}

type nopObserver struct{}

func (nopObserver) ObserveFetch(string, time.Duration) {}
func (nopObserver) ObserveCache(bool)                  {}
func (nopObserver) ObserveRetry()                      {}

// Client sends GraphQL requests to one endpoint.
type Client struct {
	endpoint        string
	httpClient      *http.Client
	cache           Cache
	cacheTTL        time.Duration
	policy          Policy
	maxRetries      uint
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          *zap.Logger
	tracer          trace.Tracer
	observer        Observer
	inflight        singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithCache enables the cache stage with the given entry ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithPolicy sets the default request policy.
func WithPolicy(policy Policy) Option {
	return func(c *Client) { c.policy = policy }
}

// WithRetry configures retry attempts after the first try and the backoff bounds.
func WithRetry(maxRetries uint, initialInterval, maxInterval time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		if initialInterval > 0 {
			c.initialInterval = initialInterval
		}
		if maxInterval > 0 {
			c.maxInterval = maxInterval
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer overrides the tracer used for fetch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// NewClient builds a client for endpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("graphql endpoint is required")
	}
	c := &Client{
		endpoint:        endpoint,
		httpClient:      &http.Client{Timeout: defaultFetchTimeout},
		cacheTTL:        defaultCacheTTL,
		policy:          CacheFirst,
		maxRetries:      defaultMaxRetries,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		logger:          zap.NewNop(),
		tracer:          otel.Tracer(instrumentationName),
		observer:        nopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query runs req with the client's default policy.
func (c *Client) Query(ctx context.Context, req Request) (Response, error) {
	return c.QueryWithPolicy(ctx, req, c.policy)
}

// QueryWithPolicy runs req through dedup, cache, retry and fetch.
//
// A response whose errors array is set but whose data is null is returned as a
// *ResponseError. Partial responses are returned as-is and never cached.
func (c *Client) QueryWithPolicy(ctx context.Context, req Request, policy Policy) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}
	key, err := CacheKey(c.endpoint, req)
	if err != nil {
		return Response{}, err
	}
	log := c.logger.With(zap.String("cache_key", key), zap.Stringer("policy", policy))

	if policy == CacheFirst && c.cache != nil {
		if resp, ok := c.readCache(ctx, key, log); ok {
			return resp, nil
		}
	}

	// The shared fetch outlives any single caller; each caller still stops
	// waiting on its own cancellation.
	result := c.inflight.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedFetchTimeout())
		defer cancel()
		return c.fetchAndStore(fetchCtx, key, req, log)
	})
	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return Response{}, res.Err
		}
		if res.Shared {
			log.Debug("graphql fetch shared with in-flight request")
		}
		return res.Val.(Response), nil
	}
}

// sharedFetchTimeout bounds a deduplicated fetch: every attempt plus the
// longest wait between attempts.
func (c *Client) sharedFetchTimeout() time.Duration {
	perAttempt := c.httpClient.Timeout
	if perAttempt <= 0 {
		perAttempt = defaultFetchTimeout
	}
	return (perAttempt + c.maxInterval) * time.Duration(c.maxRetries+1)
}

func (c *Client) readCache(ctx context.Context, key string, log *zap.Logger) (Response, bool) {
	payload, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn("graphql cache read failed", zap.Error(err))
		return Response{}, false
	}
	c.observer.ObserveCache(ok)
	if !ok {
		log.Debug("graphql cache miss")
		return Response{}, false
	}
	resp, err := decodeResponse(payload)
	if err != nil {
		log.Warn("graphql cache entry unreadable, evicting", zap.Error(err))
		if err := c.cache.Delete(ctx, key); err != nil {
			log.Warn("graphql cache evict failed", zap.Error(err))
		}
		return Response{}, false
	}
	log.Debug("graphql cache hit")
	resp.FromCache = true
	return resp, true
}

func (c *Client) fetchAndStore(ctx context.Context, key string, req Request, log *zap.Logger) (Response, error) {
	body, err := c.fetchWithRetry(ctx, req, log)
	if err != nil {
		return Response{}, err
	}
	resp, err := decodeResponse(body)
	if err != nil {
		return Response{}, err
	}
	if !resp.HasData() {
		return Response{}, &ResponseError{Errors: resp.Errors}
	}
	if c.cache != nil && len(resp.Errors) == 0 {
		if err := c.cache.Put(ctx, key, body, c.cacheTTL); err != nil {
			log.Warn("graphql cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, req Request, log *zap.Logger) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval
	policy.MaxInterval = c.maxInterval

	attempt := 0
	return backoff.Retry(ctx, func() ([]byte, error) {
		attempt++
		body, err := c.fetch(ctx, req, attempt)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && !httpErr.Temporary() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.observer.ObserveRetry()
			log.Warn("graphql fetch failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}),
	)
}

func (c *Client) fetch(ctx context.Context, req Request, attempt int) (body []byte, err error) {
	ctx, span := c.tracer.Start(ctx, "graphql.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.endpoint", c.endpoint),
			attribute.String("graphql.operation.name", req.OperationName),
			attribute.Int("graphql.attempt", attempt),
		),
	)
	started := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		c.observer.ObserveFetch(outcome, time.Since(started))
		span.End()
	}()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("marshal graphql request: %w", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build graphql request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/graphql-response+json, application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post graphql request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()
	span.SetAttributes(attribute.Int("http.response.status_code", httpResp.StatusCode))

	body, err = io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read graphql response: %w", err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBodyBytes {
			snippet = snippet[:maxErrorBodyBytes]
		}
		return nil, &HTTPError{StatusCode: httpResp.StatusCode, Body: snippet}
	}
	return body, nil
}
