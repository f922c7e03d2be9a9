// ABOUTME: HTTP client for the UIO Paws adoption API
// ABOUTME: Shared request plumbing, bearer attachment and error mapping for CLI and TUI use

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultOrigin is the production API origin (without the /api suffix).
const DefaultOrigin = "https://uiopaws-api2.onrender.com"

const (
	publicPrefix = "/api/public"
	authPrefix   = "/api"
)

// CredentialSource supplies the bearer token for authenticated calls.
// ok=false means no usable credential; the request is sent without one.
type CredentialSource interface {
	CurrentCredential() (token string, ok bool)
}

// Client is the API client for the adoption backend
type Client struct {
	origin      string
	httpClient  *http.Client
	credentials CredentialSource
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a new API client rooted at origin (e.g. https://host, no /api suffix)
func New(origin string, opts ...Option) *Client {
	c := &Client{
		origin: strings.TrimRight(origin, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the API origin used to resolve media URLs.
func (c *Client) Origin() string {
	return c.origin
}

// UseCredentials installs the source consulted for bearer tokens.
// It is set after construction because the session manager itself
// needs a client to log in.
func (c *Client) UseCredentials(src CredentialSource) {
	c.credentials = src
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool

	// multipart uploads set these instead of body
	rawBody     io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	contentType := ""
	switch {
	case r.rawBody != nil:
		body = r.rawBody
		contentType = r.contentType
	case r.body != nil:
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	target := c.origin + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.auth && c.credentials != nil {
		if token, ok := c.credentials.CurrentCredential(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	slog.Debug("API request", "method", r.method, "path", r.path, "request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.origin, err)
}

// handleErrorResponse parses API error responses into an *APIError
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	slog.Debug("API error response", "status", resp.StatusCode, "message", apiErr.Message)
	return apiErr
}

func idPath(format string, id int) string {
	return fmt.Sprintf(format, id)
}
