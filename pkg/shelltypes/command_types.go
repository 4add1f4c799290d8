package shelltypes

// ParsedCommand is the structured form of one raw input line. It is
// produced fresh per line by the parser and never mutated afterwards.
type ParsedCommand struct {
	// Raw is the trimmed input line.
	Raw string

	// IsDirectNavigation is set for "/domain ..." input where the
	// domain token resolved against a known command source.
	IsDirectNavigation bool

	// TargetDomain and TargetAction are populated for direct
	// navigation input.
	TargetDomain string
	TargetAction string

	// Args holds the remaining whitespace-delimited tokens.
	Args []string

	// IsBuiltin is set when the first token names a shell built-in.
	IsBuiltin bool
}

// Builtins is the fixed set of shell built-in command names. The parser
// classifies against this set; the executor owns the handlers.
var Builtins = map[string]bool{
	"help":    true,
	"clear":   true,
	"quit":    true,
	"exit":    true,
	"back":    true,
	"..":      true,
	"root":    true,
	"/":       true,
	"context": true,
	"ctx":     true,
	"history": true,
	"version": true,
	"domains": true,
	"whoami":  true,
}

// BuiltinDescriptions maps built-in names to completion descriptions.
var BuiltinDescriptions = map[string]string{
	"help":    "Show help information",
	"clear":   "Clear the screen",
	"quit":    "Exit the shell immediately",
	"exit":    "Go up one level, or exit at root",
	"back":    "Go up one level",
	"..":      "Go up one level",
	"root":    "Return to root context",
	"/":       "Return to root context",
	"context": "Show current context",
	"ctx":     "Show current context (alias)",
	"history": "Show command history",
	"version": "Show version information",
	"domains": "List available domains",
	"whoami":  "Show current user information",
}

// DefaultActions lists the actions every API-generated domain accepts,
// in display order.
var DefaultActions = []string{
	"list", "get", "create", "delete", "replace",
	"apply", "status", "patch", "add-labels", "remove-labels",
}

// ActionDescriptions maps each action to its completion description.
var ActionDescriptions = map[string]string{
	"list":          "List resources",
	"get":           "Get a specific resource",
	"create":        "Create a new resource",
	"delete":        "Delete a resource",
	"replace":       "Replace a resource",
	"apply":         "Apply configuration from file",
	"status":        "Get resource status",
	"patch":         "Patch a resource",
	"add-labels":    "Add labels to a resource",
	"remove-labels": "Remove labels from a resource",
}

// IsValidAction reports whether name is a recognized API domain action.
func IsValidAction(name string) bool {
	_, ok := ActionDescriptions[name]
	return ok
}
