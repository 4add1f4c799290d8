package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"xcsh/internal/apipath"
	"xcsh/internal/parser"
	"xcsh/pkg/shelltypes"
)

// historyDisplayCount is how many entries the history built-in shows.
const historyDisplayCount = 20

// builtinHandler is the single contract every built-in follows,
// including the ones that never touch the network.
type builtinHandler func(ctx context.Context, e *Executor, args []string) *shelltypes.ExecutionResult

var builtins = map[string]builtinHandler{
	"help":    cmdHelp,
	"clear":   cmdClear,
	"quit":    cmdQuit,
	"exit":    cmdExit,
	"back":    cmdBack,
	"..":      cmdBack,
	"root":    cmdRoot,
	"/":       cmdRoot,
	"context": cmdContext,
	"ctx":     cmdContext,
	"history": cmdHistory,
	"version": cmdVersion,
	"domains": cmdDomains,
	"whoami":  cmdWhoami,
}

func (e *Executor) executeBuiltin(ctx context.Context, cmd shelltypes.ParsedCommand) *shelltypes.ExecutionResult {
	name := parser.FirstToken(cmd)
	handler, ok := builtins[name]
	if !ok {
		return usageResult(
			fmt.Sprintf("unknown built-in '%s'", name), "Type 'help' for available commands")
	}
	return handler(ctx, e, cmd.Args)
}

func cmdQuit(_ context.Context, _ *Executor, _ []string) *shelltypes.ExecutionResult {
	return &shelltypes.ExecutionResult{Output: []string{"Goodbye!"}, ShouldExit: true}
}

// cmdExit pops one level, or exits the shell at root.
func cmdExit(ctx context.Context, e *Executor, args []string) *shelltypes.ExecutionResult {
	return cmdBack(ctx, e, args)
}

// cmdBack pops one level. At root this is an exit request, not a
// silent failure.
func cmdBack(_ context.Context, e *Executor, _ []string) *shelltypes.ExecutionResult {
	if e.session.ContextPath().NavigateUp() {
		return &shelltypes.ExecutionResult{ContextChanged: true}
	}
	return &shelltypes.ExecutionResult{Output: []string{"Goodbye!"}, ShouldExit: true}
}

func cmdRoot(_ context.Context, e *Executor, _ []string) *shelltypes.ExecutionResult {
	path := e.session.ContextPath()
	wasRoot := path.IsRoot()
	path.Reset()
	return &shelltypes.ExecutionResult{ContextChanged: !wasRoot}
}

func cmdClear(_ context.Context, _ *Executor, _ []string) *shelltypes.ExecutionResult {
	return &shelltypes.ExecutionResult{ShouldClear: true}
}

func cmdContext(_ context.Context, e *Executor, _ []string) *shelltypes.ExecutionResult {
	path := e.session.ContextPath()
	return shelltypes.OutputResult(
		"Current Context:",
		"  Tenant:    "+valueOrDefault(e.session.Tenant(), "(not set)"),
		"  Domain:    "+valueOrDefault(path.Domain(), "(root)"),
		"  Action:    "+valueOrDefault(path.Action(), "(none)"),
		"  Namespace: "+valueOrDefault(e.session.Namespace(), "(not set)"),
		"  Path:      "+valueOrDefault(path.String(), "/"),
	)
}

func cmdHistory(_ context.Context, e *Executor, _ []string) *shelltypes.ExecutionResult {
	entries := e.session.History()
	if len(entries) > historyDisplayCount {
		entries = entries[len(entries)-historyDisplayCount:]
	}
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%4d  %s", i+1, entry))
	}
	return shelltypes.OutputResult(lines...)
}

func cmdVersion(_ context.Context, e *Executor, _ []string) *shelltypes.ExecutionResult {
	return shelltypes.OutputResult("xcsh " + e.version)
}

func cmdDomains(_ context.Context, e *Executor, _ []string) *shelltypes.ExecutionResult {
	var lines []string

	custom := e.resolver.Custom().All()
	if len(custom) > 0 {
		lines = append(lines, "Custom domains:")
		for _, d := range custom {
			lines = append(lines, fmt.Sprintf("  %-22s %s", d.Name(), d.Description()))
		}
	}

	var standalone []shelltypes.Extension
	for _, ext := range e.resolver.Extensions().All() {
		if ext.Standalone() {
			standalone = append(standalone, ext)
		}
	}
	if len(standalone) > 0 {
		lines = append(lines, "Extension domains:")
		for _, ext := range standalone {
			lines = append(lines, fmt.Sprintf("  %-22s %s", ext.Domain(), ext.Description()))
		}
	}

	lines = append(lines, "API domains:")
	for _, d := range e.resolver.API().All() {
		name := d.Name
		if len(d.Aliases) > 0 {
			name += " (" + strings.Join(d.Aliases, ", ") + ")"
		}
		lines = append(lines, fmt.Sprintf("  %-22s %s", name, d.Description))
	}

	return shelltypes.OutputResult(lines...)
}

func cmdHelp(_ context.Context, e *Executor, _ []string) *shelltypes.ExecutionResult {
	path := e.session.ContextPath()

	if path.IsDomain() {
		res := e.resolver.Resolve(path.Domain())
		lines := []string{fmt.Sprintf("Context: %s", path.String()), ""}
		lines = append(lines, fmt.Sprintf("Available actions in '%s':", path.Domain()))
		for _, action := range domainActions(res) {
			lines = append(lines, fmt.Sprintf("  %-16s %s", action, shelltypes.ActionDescriptions[action]))
		}
		lines = append(lines,
			"",
			"Navigation:",
			"  exit, back, ..    Return to root",
		)
		return shelltypes.OutputResult(lines...)
	}

	if path.IsAction() {
		return shelltypes.OutputResult(
			fmt.Sprintf("Context: %s", path.String()),
			"",
			"Commands execute with this context prepended.",
			"Use flags and arguments directly, e.g. -n production --output json",
			"",
			"Navigation:",
			"  exit, back, ..    Return to domain context",
			"  root, /           Return to root",
		)
	}

	return shelltypes.OutputResult(
		"xcsh Interactive Shell",
		"",
		"Context Navigation:",
		"  <domain>          Enter a domain context (e.g., http_loadbalancer)",
		"  /<domain> ...     Run a command in a domain without entering it",
		"  exit, back, ..    Go up one level (exit shell at root)",
		"  root, /           Return to root context",
		"  quit              Exit shell immediately",
		"",
		"Built-in Commands:",
		"  help              Show this help",
		"  clear             Clear the screen",
		"  history           Show command history",
		"  context, ctx      Show current context info",
		"  domains           List available domains",
		"  version           Show version information",
		"  whoami            Show current user (-q quota, -a addons, -v verbose, -j json)",
		"",
		"Keyboard Shortcuts:",
		"  Tab               Auto-complete commands and arguments",
		"  Ctrl+C twice      Exit the shell",
	)
}

// cmdWhoami looks up the current user. It shares the builtin contract
// with the synchronous commands even though it hits the network.
func cmdWhoami(ctx context.Context, e *Executor, args []string) *shelltypes.ExecutionResult {
	var quota, addons, verbose, raw bool
	for _, arg := range args {
		switch arg {
		case "-q", "--quota":
			quota = true
		case "-a", "--addons":
			addons = true
		case "-v", "--verbose":
			verbose = true
		case "-j", "--json":
			raw = true
		default:
			return usageResult(
				fmt.Sprintf("unknown flag '%s' for whoami", arg),
				"Usage: whoami [-q|--quota] [-a|--addons] [-v|--verbose] [-j|--json]")
		}
	}

	apiClient, errResult := e.preflight()
	if errResult != nil {
		return errResult
	}

	resp, err := apiClient.Get(ctx, apipath.Whoami)
	if err != nil {
		return e.apiErrorResult(err)
	}

	if raw {
		return shelltypes.OutputResult(string(resp.Data))
	}

	var user struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Tenant    string `json:"tenant"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Type      string `json:"type"`
	}
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("unexpected whoami response: %w", err))
	}

	lines := []string{
		"User:   " + valueOrDefault(user.Name, user.Email),
		"Email:  " + valueOrDefault(user.Email, "(unknown)"),
		"Tenant: " + valueOrDefault(user.Tenant, e.session.Tenant()),
	}
	if verbose {
		lines = append(lines,
			"Type:   "+valueOrDefault(user.Type, "(unknown)"),
			"Name:   "+strings.TrimSpace(user.FirstName+" "+user.LastName),
			"Profile: "+valueOrDefault(e.session.ProfileName(), "(none)"),
		)
	}

	if quota {
		lines = append(lines, "", "Quota:")
		lines = append(lines, e.fetchSummary(ctx, apiClient, apipath.QuotaUsage, "  quota unavailable")...)
	}
	if addons {
		lines = append(lines, "", "Add-ons:")
		lines = append(lines, e.fetchSummary(ctx, apiClient, apipath.AddonServices, "  add-ons unavailable")...)
	}

	return shelltypes.OutputResult(lines...)
}

// fetchSummary renders a secondary whoami section; failures degrade to
// a placeholder line instead of failing the whole command.
func (e *Executor) fetchSummary(ctx context.Context, apiClient shelltypes.APIClient, path, unavailable string) []string {
	resp, err := apiClient.Get(ctx, path)
	if err != nil {
		return []string{unavailable}
	}

	names := parseSummaryNames(resp.Data)
	if len(names) == 0 {
		return []string{"  (none)"}
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+name)
	}
	return lines
}

func parseSummaryNames(data []byte) []string {
	var body struct {
		Items []struct {
			Name     string `json:"name"`
			Metadata struct {
				Name string `json:"name"`
			} `json:"metadata"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil
	}
	var names []string
	for _, item := range body.Items {
		switch {
		case item.Name != "":
			names = append(names, item.Name)
		case item.Metadata.Name != "":
			names = append(names, item.Metadata.Name)
		}
	}
	return names
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
