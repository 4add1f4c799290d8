package executor

import "xcsh/pkg/shelltypes"

// UsageError marks a locally recoverable input problem: an unknown
// command, domain, or action, or a missing required argument.
type UsageError struct {
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *UsageError) Error() string { return e.Message }

// ConnectionError marks a pre-flight connection problem: no server URL
// configured, or a server without a credential.
type ConnectionError struct {
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *ConnectionError) Error() string { return e.Message }

func usageErr(message, hint string) *UsageError {
	return &UsageError{Message: message, Hint: hint}
}

// usageResult folds a usage error into a result with its hint surfaced
// as output, the same way API and connection errors render theirs.
func usageResult(message, hint string) *shelltypes.ExecutionResult {
	return errorWithHint(usageErr(message, hint), hint)
}
