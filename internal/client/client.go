// Package client implements the HTTP API client the executor and
// completer call. Every non-2xx response and transport failure becomes
// a typed *APIError carrying the status code and operation string.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"xcsh/internal/logger"
	"xcsh/pkg/shelltypes"
)

// Config holds the connection settings for one client.
type Config struct {
	ServerURL string
	APIToken  string
	Timeout   time.Duration
}

// Client is the concrete shelltypes.APIClient over net/http.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *log.Logger
}

// New creates a client for the configured server. The server URL must
// be non-empty; token may be empty (the client then reports itself
// unauthenticated and the executor pre-flights the condition).
func New(cfg Config) (*Client, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.ServerURL, "/"),
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.NewStyledLogger("APIClient"),
	}, nil
}

// Authenticated reports whether an API token is configured.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*shelltypes.APIResponse, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*shelltypes.APIResponse, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*shelltypes.APIResponse, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body []byte) (*shelltypes.APIResponse, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*shelltypes.APIResponse, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*shelltypes.APIResponse, error) {
	operation := fmt.Sprintf("%s %s", method, path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Operation: operation, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "APIToken "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, &APIError{Operation: operation, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Operation: operation, Message: err.Error()}
	}

	c.logger.Debug("request complete",
		"method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Operation:  operation,
			Message:    http.StatusText(resp.StatusCode),
			Response:   string(data),
		}
	}

	return &shelltypes.APIResponse{
		StatusCode: resp.StatusCode,
		OK:         true,
		Data:       data,
	}, nil
}

// ExtractTenant pulls the tenant name from a console URL such as
// https://my-tenant.console.example.com/api.
func ExtractTenant(serverURL string) string {
	trimmed := strings.TrimPrefix(serverURL, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	host, _, _ := strings.Cut(trimmed, "/")
	tenant, _, ok := strings.Cut(host, ".")
	if !ok {
		return ""
	}
	return tenant
}
