package client

import "fmt"

// APIError is the typed error raised for any non-2xx response or
// transport failure. It always carries the originating operation
// string for traceability.
type APIError struct {
	StatusCode int    // zero for transport failures
	Operation  string // e.g. "list http_loadbalancers"
	Message    string
	Response   string // raw response body, may be empty
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Hint returns a human remediation hint for the status code.
func (e *APIError) Hint() string {
	switch {
	case e.StatusCode == 401:
		return "Authentication failed. Check your API token or run 'login profile use <name>'."
	case e.StatusCode == 403:
		return "Permission denied. You may not have access to this resource."
	case e.StatusCode == 404:
		return "Resource not found. Verify the name and namespace are correct."
	case e.StatusCode == 429:
		return "Rate limited. Please wait and try again."
	case e.StatusCode >= 500:
		return "Server error. Please try again later."
	case e.StatusCode == 0:
		return "Could not reach the server. Check your network connection and server URL."
	default:
		return ""
	}
}
