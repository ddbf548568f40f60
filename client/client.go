// Package client provides the HTTP client used to talk to the Adoptium API.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenk/backoff"
	"github.com/hashicorp/go-hclog"
)

const defaultUserAgent = "adoptium-plugin"

// DefaultTimeout is the HTTP timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 16 << 20

// RateLimiter controls request pacing.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Client is an HTTP client for JSON APIs with optional retries and
// per-host circuit breaking.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxRetries  int
	baseDelay   time.Duration
	rateLimiter RateLimiter
	breakers    *breakerSet
	logger      hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMaxRetries sets the maximum number of retries.
// Retries only apply to 429 and 5xx responses.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithBaseDelay sets the initial delay between retries.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimiter sets a limiter that is waited on before every request.
func WithRateLimiter(rl RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = rl
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l hclog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCircuitBreaker enables a per-host circuit breaker that trips after
// threshold consecutive failures. Useful for long-lived processes such as
// the plugin server, where a dead upstream should fail fast.
func WithCircuitBreaker(threshold int64) Option {
	return func(c *Client) {
		c.breakers = newBreakerSet(threshold)
	}
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - no retries
// - DNS-cached transport
func DefaultClient() *Client {
	return NewClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: NewTransport(),
		},
		userAgent: defaultUserAgent,
		baseDelay: 500 * time.Millisecond,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithUserAgent returns a copy of the client that sends the given User-Agent.
func (c *Client) WithUserAgent(ua string) *Client {
	clone := *c
	clone.userAgent = ua
	return &clone
}

// GetBody fetches url and returns the raw response body.
// Non-2xx responses are returned as *HTTPError or *RateLimitError.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	if c.breakers == nil {
		return c.getWithRetry(ctx, url)
	}

	var body []byte
	err := c.breakers.call(url, func() error {
		var err error
		body, err = c.getWithRetry(ctx, url)
		return err
	})
	return body, err
}

func (c *Client) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	schedule := backoff.NewExponentialBackOff()
	schedule.InitialInterval = c.baseDelay
	schedule.MaxElapsedTime = 0
	schedule.Reset()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(schedule.NextBackOff()):
			}
		}

		body, err := c.get(ctx, url, attempt)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) get(ctx context.Context, url string, attempt int) ([]byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "url", url, "attempt", attempt, "error", err)
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request", "url", url, "status", resp.StatusCode, "attempt", attempt)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, &TransportError{URL: url, Err: err}
		}
		return body, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return nil, &RateLimitError{RetryAfter: retryAfter}

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url, Body: string(body)}
	}
}

func retryable(err error) bool {
	switch e := err.(type) {
	case *RateLimitError:
		return true
	case *HTTPError:
		return e.StatusCode >= 500
	default:
		return false
	}
}
