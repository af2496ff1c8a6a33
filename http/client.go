// Package http provides an EDGAR client that downloads full-text filings
// from sec.gov.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/edgardoc"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the fair-access limit EDGAR asks clients
	// to stay under.
	DefaultRequestsPerSecond = 10

	// DefaultBaseURL serves the ticker map and the filing archives.
	DefaultBaseURL = "https://www.sec.gov"

	// DefaultDataURL serves the per-company submission listings.
	DefaultDataURL = "https://data.sec.gov"
)

// DefaultRetryDelays returns the backoff delays for request retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Client performs rate-limited GET requests against EDGAR.
// EDGAR rejects requests without a descriptive User-Agent.
type Client struct {
	client      *http.Client
	limiter     *rate.Limiter
	userAgent   string
	baseURL     string
	dataURL     string
	timeout     time.Duration
	rps         float64
	retryDelays []time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRequestsPerSecond sets the request rate limit. Zero disables limiting.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		c.rps = rps
	}
}

// WithRetryDelays sets the backoff between attempts. One retry is made per
// delay.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithDataURL overrides DefaultDataURL.
func WithDataURL(u string) Option {
	return func(c *Client) {
		c.dataURL = u
	}
}

// NewClient creates a new Client identifying itself with userAgent.
func NewClient(userAgent string, opts ...Option) *Client {
	c := &Client{
		userAgent:   userAgent,
		baseURL:     DefaultBaseURL,
		dataURL:     DefaultDataURL,
		timeout:     DefaultTimeout,
		rps:         DefaultRequestsPerSecond,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}
	limit := rate.Inf
	if c.rps > 0 {
		limit = rate.Limit(c.rps)
	}
	c.limiter = rate.NewLimiter(limit, 1)

	return c
}

// statusError is returned for unexpected HTTP status codes.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.code, e.url)
}

// retryable reports whether a failed request is worth repeating.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Get retrieves url, retrying rate-limit responses, server errors and
// transport failures. A 404 is reported as ENOTFOUND.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	maxAttempts := len(c.retryDelays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, edgardoc.WrapError(edgardoc.ENOTFOUND, err, "not found")
		}
		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelays[attempt]):
		}
	}

	return nil, lastErr
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode, url: url}
	}

	return io.ReadAll(resp.Body)
}
