// Package api is the typed HTTP client for the remote crop-monitoring
// service. All endpoints are JSON over HTTP; once a bearer credential is
// available it is attached to every outgoing request. Failed requests are
// never retried here — the caller surfaces the error and the user resubmits.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"fieldscope/internal/logging"
)

// TokenSource supplies the current bearer credential. An empty string means
// unauthenticated; the request then goes out without an Authorization header
// and the service's 401 surfaces as a RemoteError.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-string TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client talks to the crop-monitoring service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the client-wide request timeout. Zero leaves requests
// unbounded: a hung call stays in flight until the process exits.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTokenSource installs the bearer credential source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

// prepare stamps the headers every request carries: content type, request
// correlation ID, and the bearer credential when one is present.
func (c *Client) prepare(req *http.Request, contentType string) {
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
}

// doJSON sends a request with an optional JSON body and decodes the 2xx
// response into out. Non-2xx becomes a RemoteError; transport failures come
// back wrapped so the caller can tell the two apart.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.prepare(req, "application/json")

	return c.send(req, out)
}

// send executes a prepared request and decodes the response.
func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("%s %s: %v", req.Method, req.URL.Path, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		re := remoteError(resp.StatusCode, data)
		logging.APIError("%s %s: %v", req.Method, req.URL.Path, re)
		return re
	}

	logging.API("%s %s: %d", req.Method, req.URL.Path, resp.StatusCode)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var u User
	err := c.doJSON(ctx, http.MethodPost, "/register", req, &u)
	return u, err
}

// Login exchanges credentials for a bearer token. The caller decides where
// the token is persisted.
func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var tok TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/login", req, &tok)
	return tok, err
}

// Profile fetches the authenticated user's record.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var u User
	err := c.doJSON(ctx, http.MethodGet, "/profile", nil, &u)
	return u, err
}

// ListFields returns the user's registered fields.
func (c *Client) ListFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	err := c.doJSON(ctx, http.MethodGet, "/fields", nil, &fields)
	return fields, err
}

// CreateField registers a new field. PolygonGeometry must already be the
// serialized ring produced by the geometry builder; point-count validation
// happens there, before this call.
func (c *Client) CreateField(ctx context.Context, req CreateFieldRequest) (Field, error) {
	var f Field
	err := c.doJSON(ctx, http.MethodPost, "/fields", req, &f)
	return f, err
}

// FieldStats fetches statistics for one field over the trailing window.
func (c *Client) FieldStats(ctx context.Context, fieldID, days int) (FieldStats, error) {
	var fs FieldStats
	path := fmt.Sprintf("/field/%d/stats?days=%d", fieldID, days)
	err := c.doJSON(ctx, http.MethodGet, path, nil, &fs)
	return fs, err
}

// OverallStats fetches the aggregate summary across all fields.
func (c *Client) OverallStats(ctx context.Context, days int) (OverallStats, error) {
	var os OverallStats
	path := "/stats?days=" + url.QueryEscape(fmt.Sprint(days))
	err := c.doJSON(ctx, http.MethodGet, path, nil, &os)
	return os, err
}
