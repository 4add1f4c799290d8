package shelltypes

import "context"

// APIResponse is the normalized result of one API call.
type APIResponse struct {
	StatusCode int
	OK         bool
	Data       []byte
}

// APIClient is the HTTP collaborator the executor and completer call.
// Implementations return a typed API error carrying the status code and
// originating operation on non-2xx responses and transport failures.
type APIClient interface {
	Get(ctx context.Context, path string) (*APIResponse, error)
	Post(ctx context.Context, path string, body []byte) (*APIResponse, error)
	Put(ctx context.Context, path string, body []byte) (*APIResponse, error)
	Patch(ctx context.Context, path string, body []byte) (*APIResponse, error)
	Delete(ctx context.Context, path string) (*APIResponse, error)

	// Authenticated reports whether a credential is configured.
	Authenticated() bool
}

// Session is the per-run shell state visible to command implementations.
// Navigation state is owned by the concrete session and not exposed
// here; custom domains and extensions act only on session values.
type Session interface {
	ID() string

	// Client returns the API client handle, or nil when no server URL
	// is configured.
	Client() APIClient

	Namespace() string
	SetNamespace(ns string)
	OutputFormat() string
	SetOutputFormat(format string)
	Tenant() string
	ProfileName() string

	AddToHistory(entry string)
	History() []string
}
