// Package httpclient is the HTTP client used to refetch batches from a
// storefront export API.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// DefaultTimeout bounds a single request when no timeout is given
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResponseSize is the largest body the client reads
	DefaultMaxResponseSize int64 = 100 * 1024 * 1024

	// UserAgent is sent with every request
	UserAgent = "commerce-sync/1.0"

	defaultMaxTries = 3
)

// Client fetches a resource and returns its body
type Client interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type defaultClient struct {
	httpClient      *http.Client
	maxResponseSize int64
	maxTries        uint
}

// Option configures the default client
type Option func(*defaultClient)

// WithMaxResponseSize caps the response body size
func WithMaxResponseSize(size int64) Option {
	return func(c *defaultClient) {
		if size > 0 {
			c.maxResponseSize = size
		}
	}
}

// WithMaxTries sets how many times a request answered with a temporary
// error status is sent before giving up. One disables retries.
func WithMaxTries(tries uint) Option {
	return func(c *defaultClient) {
		if tries > 0 {
			c.maxTries = tries
		}
	}
}

// NewDefaultClient creates a client with the given per-request timeout.
// A zero timeout uses DefaultTimeout.
func NewDefaultClient(timeout time.Duration, opts ...Option) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &defaultClient{
		httpClient:      &http.Client{Timeout: timeout},
		maxResponseSize: DefaultMaxResponseSize,
		maxTries:        defaultMaxTries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get sends a GET request and returns the body of a 2xx response.
// Responses with a temporary error status are retried with exponential backoff.
func (c *defaultClient) Get(ctx context.Context, url string) ([]byte, error) {
	return backoff.Retry(ctx, func() ([]byte, error) {
		data, err := c.get(ctx, url)
		if err == nil {
			return data, nil
		}
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Temporary() {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.WarnContext(ctx, "Retrying HTTP request", "url", url, "error", err, "next_attempt_in", next)
		}),
	)
}

func (c *defaultClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, NewHTTPError(resp.StatusCode, url, string(body))
	}

	if resp.ContentLength > c.maxResponseSize {
		return nil, c.tooLarge(resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > c.maxResponseSize {
		return nil, c.tooLarge(int64(len(data)))
	}

	return data, nil
}

func (c *defaultClient) tooLarge(size int64) error {
	return fmt.Errorf("response size %d bytes exceeds maximum allowed size of %.2f MB",
		size, float64(c.maxResponseSize)/(1024*1024))
}
