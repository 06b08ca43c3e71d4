// Package wordpress implements the publishing workflow against a remote
// WordPress installation's REST API: endpoint discovery, Basic-Auth
// authentication with credential-encoding fallbacks, permission verification,
// tag resolution, featured-image upload, and post creation with SEO metadata
// and optional scheduling.
package wordpress

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every individual HTTP call the client makes.
const DefaultTimeout = 20 * time.Second

// Client talks to WordPress REST APIs. A single Client is safe for concurrent
// use; each workflow invocation resolves its own endpoint and session.
type Client struct {
	http   *http.Client
	logger zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the structured logger for workflow diagnostics.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// NewClient creates a Client with sane defaults and applies opts.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request builds and executes a single HTTP call. An empty auth or contentType
// leaves the corresponding header unset.
func (c *Client) request(ctx context.Context, method, url, auth string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.http.Do(req)
}

// apiError mirrors the {code, message} error body WordPress returns on
// rejected requests.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMessage extracts the server's error message from a non-2xx response,
// falling back to the HTTP status text. It consumes the response body.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var apiErr apiError
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return http.StatusText(resp.StatusCode)
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func success(status int) bool {
	return status >= 200 && status < 300
}
