package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// bodyPreviewLen bounds how much of a failed response body is kept for
// diagnostics.
const bodyPreviewLen = 300

// Error describes a failed fetch: a transport error, a non-2xx status, or a
// provider rate-limit response.
type Error struct {
	URL         string
	StatusCode  int    // 0 when the request never completed
	Body        string // truncated response body, empty for transport errors
	RateLimited bool
	cause       error
}

func (e *Error) Error() string {
	switch {
	case e.cause != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.cause)
	case e.RateLimited:
		return fmt.Sprintf("fetch %s: rate limited (status %d): %s", e.URL, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.StatusCode, e.Body)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Client performs single-shot GET requests for the pipelines.
// There are no retries; callers decide whether a failure is fatal.
type Client struct {
	httpClient      *http.Client
	logger          *slog.Logger
	rateLimitMarker string
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a fetch client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimitMarker sets a body substring that marks an otherwise
// successful response as a provider rate-limit rejection.
func WithRateLimitMarker(marker string) Option {
	return func(c *Client) {
		c.rateLimitMarker = marker
	}
}

// Get fetches a URL and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       preview(body),
		}
	}

	if c.rateLimitMarker != "" && bytes.Contains(body, []byte(c.rateLimitMarker)) {
		return nil, &Error{
			URL:         url,
			StatusCode:  resp.StatusCode,
			Body:        preview(body),
			RateLimited: true,
		}
	}

	c.logger.Debug("fetched resource",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return body, nil
}

// preview truncates a response body for error reporting.
func preview(body []byte) string {
	if len(body) > bodyPreviewLen {
		body = body[:bodyPreviewLen]
	}
	return string(body)
}
