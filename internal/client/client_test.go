package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{ServerURL: server.URL, APIToken: "test-token"})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresServerURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestClient_Authenticated(t *testing.T) {
	withToken, err := New(Config{ServerURL: "https://example.com", APIToken: "tok"})
	require.NoError(t, err)
	assert.True(t, withToken.Authenticated())

	withoutToken, err := New(Config{ServerURL: "https://example.com"})
	require.NoError(t, err)
	assert.False(t, withoutToken.Authenticated())
}

func TestClient_GetSendsAuthHeader(t *testing.T) {
	var gotAuth, gotAccept string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	resp, err := c.Get(context.Background(), "/api/web/namespaces")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "APIToken test-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_PostSendsBody(t *testing.T) {
	var gotMethod, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	})

	resp, err := c.Post(context.Background(), "/api/config/namespaces/default/dnss", []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_NonSuccessBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"denied"}`))
	})

	_, err := c.Get(context.Background(), "/api/web/namespaces")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "GET /api/web/namespaces", apiErr.Operation)
	assert.Contains(t, apiErr.Response, "denied")
}

func TestClient_TransportFailureBecomesAPIError(t *testing.T) {
	c, err := New(Config{ServerURL: "http://127.0.0.1:1", APIToken: "tok"})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/anything")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.StatusCode)
}

func TestAPIError_Hints(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{401, "token"},
		{403, "Permission"},
		{404, "not found"},
		{429, "Rate"},
		{500, "Server"},
		{503, "Server"},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status, Operation: "GET /x"}
		assert.Contains(t, err.Hint(), tt.want, "status %d", tt.status)
	}
}

func TestExtractTenant(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://acme.console.ves.volterra.io/api", "acme"},
		{"http://tenant1.example.com", "tenant1"},
		{"https://localhost", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExtractTenant(tt.url), tt.url)
	}
}
