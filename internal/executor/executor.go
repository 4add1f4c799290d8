// Package executor resolves parsed input against the three command
// sources and dispatches it: built-ins first, then custom domains,
// extensions, and API-generated domains in fixed precedence order.
// Execute never fails out-of-band — every path, including panics,
// resolves to an ExecutionResult.
package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"xcsh/internal/completion"
	"xcsh/internal/logger"
	"xcsh/internal/parser"
	"xcsh/internal/registry"
	"xcsh/internal/session"
	"xcsh/pkg/shelltypes"
)

// Executor consumes the session and injected command sources.
type Executor struct {
	session   *session.Session
	resolver  *registry.Resolver
	completer *completion.Completer
	version   string
	logger    *log.Logger
}

// New creates an executor. completer may be nil (used only for cache
// invalidation after namespace-affecting commands); version feeds the
// version built-in.
func New(sess *session.Session, resolver *registry.Resolver, completer *completion.Completer, version string) *Executor {
	return &Executor{
		session:   sess,
		resolver:  resolver,
		completer: completer,
		version:   version,
		logger:    logger.NewStyledLogger("Executor"),
	}
}

// Execute processes one input line. It records the line in history,
// classifies it, and dispatches. All failures are folded into the
// result; recovered panics become the result's error.
func (e *Executor) Execute(ctx context.Context, input string) (result *shelltypes.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("execution recovered", "error", r)
			result = shelltypes.ErrorResult(fmt.Errorf("unexpected error: %v", r))
		}
	}()

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &shelltypes.ExecutionResult{Output: []string{}}
	}

	e.session.AddToHistory(trimmed)

	cmd := parser.Parse(trimmed, e.session.Validator())
	e.logger.Debug("parsed",
		"builtin", cmd.IsBuiltin, "direct", cmd.IsDirectNavigation, "path", e.session.ContextPath().String())

	if cmd.IsBuiltin {
		return e.executeBuiltin(ctx, cmd)
	}

	if cmd.IsDirectNavigation {
		res := e.resolver.Resolve(cmd.TargetDomain)
		return e.dispatchDomain(ctx, res, cmd.TargetAction, cmd.Args, true)
	}

	return e.dispatchTokens(ctx, cmd.Args)
}

// dispatchTokens handles an ordinary (non-builtin, non-escaped) line
// relative to the current navigation context.
func (e *Executor) dispatchTokens(ctx context.Context, tokens []string) *shelltypes.ExecutionResult {
	if len(tokens) == 0 {
		return &shelltypes.ExecutionResult{Output: []string{}}
	}

	path := e.session.ContextPath()

	// Inside an action context the whole line is arguments.
	if path.IsAction() {
		if shelltypes.IsValidAction(tokens[0]) {
			return e.executeAction(ctx, path.Domain(), tokens[0], tokens[1:])
		}
		res := e.resolver.Resolve(tokens[0])
		if res.Kind != shelltypes.DomainKindUnknown {
			return e.dispatchDomain(ctx, res, first(tokens[1:]), rest(tokens[1:]), false)
		}
		return e.executeAction(ctx, path.Domain(), path.Action(), tokens)
	}

	// Inside a domain context an action token executes against the
	// current domain.
	if path.IsDomain() {
		if shelltypes.IsValidAction(tokens[0]) {
			return e.executeAction(ctx, path.Domain(), tokens[0], tokens[1:])
		}
		res := e.resolver.Resolve(tokens[0])
		if res.Kind != shelltypes.DomainKindUnknown {
			return e.dispatchDomain(ctx, res, first(tokens[1:]), rest(tokens[1:]), false)
		}
		// Extension command of the current domain?
		cur := e.resolver.Resolve(path.Domain())
		if cur.Extension != nil {
			if extCmd, ok := cur.Extension.Command(tokens[0]); ok {
				return extCmd.Execute(ctx, tokens[1:], e.session)
			}
		}
		return usageResult(
			fmt.Sprintf("unknown action '%s' for domain '%s'", tokens[0], path.Domain()),
			"Valid actions: "+strings.Join(domainActions(cur), ", "))
	}

	// Root context.
	res := e.resolver.Resolve(tokens[0])
	if res.Kind == shelltypes.DomainKindUnknown {
		return usageResult(
			fmt.Sprintf("unknown command '%s'", tokens[0]),
			"Type 'domains' to list domains or 'help' for built-in commands")
	}
	return e.dispatchDomain(ctx, res, first(tokens[1:]), rest(tokens[1:]), false)
}

// dispatchDomain applies the fixed precedence for one resolved domain:
// custom wins outright; an extension command match wins next; anything
// else falls to the API-generated domain. escaped marks "/domain"
// input, which may navigate into an action context.
func (e *Executor) dispatchDomain(ctx context.Context, res shelltypes.Resolution, actionToken string, args []string, escaped bool) *shelltypes.ExecutionResult {
	switch res.Kind {
	case shelltypes.DomainKindCustom:
		full := args
		if actionToken != "" {
			full = append([]string{actionToken}, args...)
		}
		return res.Custom.Execute(ctx, full, e.session)

	case shelltypes.DomainKindExtension:
		if actionToken != "" {
			if extCmd, ok := res.Extension.Command(actionToken); ok {
				return extCmd.Execute(ctx, args, e.session)
			}
		}
		if res.Extension.Standalone() {
			if actionToken == "" {
				return e.listExtensionCommands(res.Extension)
			}
			return usageResult(
				fmt.Sprintf("unknown command '%s' for '%s'", actionToken, res.Name),
				"Available commands: "+strings.Join(extensionCommandNames(res.Extension), ", "))
		}
		// Layered extension with no command match: fall through to
		// the backing API domain.
		return e.dispatchAPI(ctx, res, actionToken, args, escaped)

	case shelltypes.DomainKindAPI:
		return e.dispatchAPI(ctx, res, actionToken, args, escaped)

	default:
		return usageResult(
			fmt.Sprintf("unknown domain '%s'", res.Name),
			"Type 'domains' to list available domains")
	}
}

// dispatchAPI handles an API-generated domain: bare names navigate,
// recognized actions execute, and an unrecognized token defaults the
// action to list with the token kept as an argument.
func (e *Executor) dispatchAPI(ctx context.Context, res shelltypes.Resolution, actionToken string, args []string, escaped bool) *shelltypes.ExecutionResult {
	path := e.session.ContextPath()

	if actionToken == "" {
		path.SetDomain(res.Name)
		return &shelltypes.ExecutionResult{ContextChanged: true}
	}

	if isDomainAction(res.API, actionToken) {
		// "/domain action" with nothing else enters the action
		// context for actions that need a name.
		if escaped && len(args) == 0 && actionNeedsName(actionToken) {
			path.SetDomain(res.Name)
			path.SetAction(actionToken)
			return &shelltypes.ExecutionResult{ContextChanged: true}
		}
		return e.executeAction(ctx, res.Name, actionToken, args)
	}

	if shelltypes.IsValidAction(actionToken) {
		// Recognized action, but this domain's spec narrows it out.
		return usageResult(
			fmt.Sprintf("action '%s' is not supported by domain '%s'", actionToken, res.Name),
			"Valid actions: "+strings.Join(res.API.ValidActions(), ", "))
	}

	return e.executeAction(ctx, res.Name, "list", append([]string{actionToken}, args...))
}

func (e *Executor) listExtensionCommands(ext shelltypes.Extension) *shelltypes.ExecutionResult {
	lines := []string{fmt.Sprintf("Commands for '%s':", ext.Domain())}
	for _, cmd := range ext.Commands() {
		lines = append(lines, fmt.Sprintf("  %-14s %s", cmd.Name(), cmd.Description()))
	}
	return shelltypes.OutputResult(lines...)
}

func isDomainAction(d *shelltypes.APIDomain, action string) bool {
	for _, a := range d.ValidActions() {
		if a == action {
			return true
		}
	}
	return false
}

func actionNeedsName(action string) bool {
	switch action {
	case "get", "delete", "status", "patch", "add-labels", "remove-labels":
		return true
	default:
		return false
	}
}

func domainActions(res shelltypes.Resolution) []string {
	var out []string
	if res.API != nil {
		out = append(out, res.API.ValidActions()...)
	}
	if res.Extension != nil {
		out = append(out, extensionCommandNames(res.Extension)...)
	}
	if len(out) == 0 {
		out = shelltypes.DefaultActions
	}
	return out
}

func extensionCommandNames(ext shelltypes.Extension) []string {
	var names []string
	for _, cmd := range ext.Commands() {
		names = append(names, cmd.Name())
	}
	return names
}

func first(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

func rest(tokens []string) []string {
	if len(tokens) <= 1 {
		return nil
	}
	return tokens[1:]
}
