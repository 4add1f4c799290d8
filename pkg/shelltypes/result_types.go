// Package shelltypes defines the core data types and interfaces shared
// across the xcsh shell: execution results, completion suggestions,
// parsed commands, and the contracts between the executor/completer and
// their collaborators (session, API client, command-source registries).
package shelltypes

// ExecutionResult is the sole channel between the executor and the
// renderer. Every command, including every failure path, resolves to
// one of these; nothing in the core prints directly.
type ExecutionResult struct {
	// Output holds display lines in order. May be empty.
	Output []string

	// ShouldExit asks the shell loop to terminate after rendering.
	ShouldExit bool

	// ShouldClear asks the renderer to clear the screen.
	ShouldClear bool

	// ContextChanged signals that the navigation context was mutated
	// and the prompt must be rebuilt before the next read.
	ContextChanged bool

	// Err carries the failure, if any. A non-nil Err never escapes as
	// a Go error from the executor; it is part of the result.
	Err error
}

// OutputResult builds a plain result from display lines.
func OutputResult(lines ...string) *ExecutionResult {
	return &ExecutionResult{Output: lines}
}

// ErrorResult builds a result carrying a failure.
func ErrorResult(err error) *ExecutionResult {
	return &ExecutionResult{Err: err}
}

// SuggestionCategory tags what kind of thing a completion candidate is,
// so the renderer can group or style them.
type SuggestionCategory string

// Suggestion categories.
const (
	CategoryDomain     SuggestionCategory = "domain"
	CategoryAction     SuggestionCategory = "action"
	CategoryFlag       SuggestionCategory = "flag"
	CategoryValue      SuggestionCategory = "value"
	CategoryBuiltin    SuggestionCategory = "builtin"
	CategoryCommand    SuggestionCategory = "command"
	CategorySubcommand SuggestionCategory = "subcommand"
	CategoryExtension  SuggestionCategory = "extension"
	CategoryArgument   SuggestionCategory = "argument"
	CategoryNavigation SuggestionCategory = "navigation"
)

// Suggestion is one candidate completion.
type Suggestion struct {
	Text        string
	Description string
	Category    SuggestionCategory
}
