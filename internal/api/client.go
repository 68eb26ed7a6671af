// Package api is a typed client for the claims, photos and tags endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8080"
	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 4 << 20
)

// Client talks to the claims API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.ParseRequestURI(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Host returns the host part of the base URL, without port.
func (c *Client) Host() string {
	return c.baseURL.Hostname()
}

func (c *Client) endpoint(path string, query url.Values) string {
	s := c.BaseURL() + path
	if len(query) > 0 {
		s += "?" + query.Encode()
	}
	return s
}

// do sends a JSON request and decodes the response into out.
// A nil out discards the body; a *string out receives raw text.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Content-Type only with a body so plain GETs stay simple requests.
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Cache-Control", "no-store")

	slog.Debug("API request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newNetworkError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp, strings.TrimSpace(string(raw)))
	}
	if readErr != nil {
		return newNetworkError(readErr)
	}

	return decodeBody(resp, raw, out)
}

func decodeBody(resp *http.Response, raw []byte, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}

	if text, ok := out.(*string); ok {
		*text = string(raw)
		return nil
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		// Some servers omit the content type on JSON bodies.
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unexpected %q response: %s", resp.Header.Get("Content-Type"), truncate(string(raw), 200))
		}
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isJSON(contentType string) bool {
	if strings.Contains(contentType, "*/*") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
