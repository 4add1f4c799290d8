// Package completion implements the context-aware tab-completion
// engine: ranked, prefix-filtered suggestions for the current partial
// input, with dynamically fetched values (namespaces, resource names)
// served through a TTL cache. Completion never fails: on any fetch
// error it falls back to static defaults or an empty list.
package completion

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"xcsh/internal/logger"
	"xcsh/internal/parser"
	"xcsh/internal/registry"
	"xcsh/internal/session"
	"xcsh/pkg/shelltypes"
)

// Completer produces suggestions for the current partial input. It is
// pure with respect to its inputs except for the two memoized data
// sources (namespaces, resource names) behind the cache.
type Completer struct {
	session  *session.Session
	resolver *registry.Resolver
	cache    *CompletionCache
	logger   *log.Logger
}

// New creates a completer bound to a session and resolver.
func New(sess *session.Session, resolver *registry.Resolver) *Completer {
	return &Completer{
		session:  sess,
		resolver: resolver,
		cache:    NewCompletionCache(DefaultTTL),
		logger:   logger.NewStyledLogger("Completer"),
	}
}

// Cache exposes the completion cache, e.g. for invalidation after a
// namespace switch.
func (c *Completer) Cache() *CompletionCache { return c.cache }

// Complete returns suggestions for partial input. It never panics and
// never returns an error; a failed data fetch degrades to defaults.
func (c *Completer) Complete(ctx context.Context, partial string) (suggestions []shelltypes.Suggestion) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("completion recovered", "error", r)
			suggestions = nil
		}
	}()

	trimmed := strings.TrimSpace(partial)
	if trimmed == "" {
		return c.contextSuggestions()
	}

	// Bare "/" escapes to the full root set regardless of context.
	if trimmed == "/" {
		return c.rootSuggestions()
	}

	endsWithSpace := strings.HasSuffix(partial, " ") || strings.HasSuffix(partial, "\t")
	tokens := parser.SplitArgs(trimmed)
	if len(tokens) == 0 {
		return c.contextSuggestions()
	}

	current := ""
	complete := tokens
	if !endsWithSpace {
		current = tokens[len(tokens)-1]
		complete = tokens[:len(tokens)-1]
	}

	// Token immediately preceding the cursor is a value flag.
	if len(complete) > 0 {
		if values, ok := c.valueSuggestions(ctx, complete[len(complete)-1], complete); ok {
			return filterPrefix(values, current)
		}
	}

	// "/domain ..." resolves in the unified registry and recurses
	// into the domain's children.
	if strings.HasPrefix(tokens[0], "/") && len(tokens[0]) > 1 {
		name := strings.TrimPrefix(tokens[0], "/")
		if len(complete) == 0 {
			// Still typing the domain token itself.
			return filterPrefix(c.rootSuggestions(), strings.TrimPrefix(current, "/"))
		}
		res := c.resolver.Resolve(name)
		if res.Kind == shelltypes.DomainKindUnknown {
			return nil
		}
		return filterPrefix(c.domainSuggestions(res, complete[1:]), current)
	}

	// A custom domain delegates to its own tree even without the
	// "/" escape.
	if len(complete) > 0 {
		res := c.resolver.Resolve(complete[0])
		if res.Kind == shelltypes.DomainKindCustom {
			return filterPrefix(c.domainSuggestions(res, complete[1:]), current)
		}
	}

	// An action token at the start of the line scopes completion to
	// that action's flags.
	if len(complete) > 0 && shelltypes.IsValidAction(complete[0]) {
		return filterPrefix(flagSuggestions(complete[0]), current)
	}

	return filterPrefix(c.contextSuggestions(), current)
}

// contextSuggestions returns the default set for the current
// navigation state.
func (c *Completer) contextSuggestions() []shelltypes.Suggestion {
	path := c.session.ContextPath()

	switch {
	case path.IsRoot():
		return c.rootSuggestions()
	case path.IsDomain():
		return c.domainContextSuggestions(path.Domain())
	default:
		return c.actionContextSuggestions(path.Domain(), path.Action())
	}
}

// rootSuggestions is the full root set: every domain from every
// source, API aliases, and the built-ins.
func (c *Completer) rootSuggestions() []shelltypes.Suggestion {
	var out []shelltypes.Suggestion

	for _, d := range c.resolver.Custom().All() {
		out = append(out, shelltypes.Suggestion{
			Text: d.Name(), Description: d.Description(), Category: shelltypes.CategoryDomain,
		})
	}

	for _, e := range c.resolver.Extensions().All() {
		if !e.Standalone() {
			continue // layered extensions surface through their API domain
		}
		out = append(out, shelltypes.Suggestion{
			Text: e.Domain(), Description: e.Description(), Category: shelltypes.CategoryDomain,
		})
	}

	for _, d := range c.resolver.API().All() {
		out = append(out, shelltypes.Suggestion{
			Text: d.Name, Description: d.Description, Category: shelltypes.CategoryDomain,
		})
		for _, alias := range d.Aliases {
			out = append(out, shelltypes.Suggestion{
				Text:        alias,
				Description: "Alias for " + d.Name,
				Category:    shelltypes.CategoryDomain,
			})
		}
	}

	for _, name := range sortedBuiltins() {
		out = append(out, shelltypes.Suggestion{
			Text:        name,
			Description: shelltypes.BuiltinDescriptions[name],
			Category:    shelltypes.CategoryBuiltin,
		})
	}

	return out
}

// domainContextSuggestions: the domain's actions, its extension
// commands, and navigation.
func (c *Completer) domainContextSuggestions(domain string) []shelltypes.Suggestion {
	var out []shelltypes.Suggestion

	res := c.resolver.Resolve(domain)
	if res.API != nil {
		out = append(out, actionSuggestions(res.API)...)
	}
	if res.Extension != nil {
		for _, cmd := range res.Extension.Commands() {
			out = append(out, shelltypes.Suggestion{
				Text: cmd.Name(), Description: cmd.Description(), Category: shelltypes.CategoryExtension,
			})
		}
	}

	return append(out, navigationSuggestions("Go up to root context")...)
}

// actionContextSuggestions: the action's flags and navigation.
func (c *Completer) actionContextSuggestions(domain, action string) []shelltypes.Suggestion {
	out := flagSuggestions(action)
	return append(out, navigationSuggestions("Go up to domain context")...)
}

// domainSuggestions recurses into a resolved domain's children for
// "/domain ..." (or bare custom-domain) input. rest holds the complete
// tokens after the domain name.
func (c *Completer) domainSuggestions(res shelltypes.Resolution, rest []string) []shelltypes.Suggestion {
	switch res.Kind {
	case shelltypes.DomainKindCustom:
		return customTreeSuggestions(res.Custom.Commands(), rest, shelltypes.CategoryCommand)

	case shelltypes.DomainKindExtension:
		if len(rest) == 0 {
			var out []shelltypes.Suggestion
			for _, cmd := range res.Extension.Commands() {
				out = append(out, shelltypes.Suggestion{
					Text: cmd.Name(), Description: cmd.Description(), Category: shelltypes.CategoryExtension,
				})
			}
			if res.API != nil {
				out = append(out, actionSuggestions(res.API)...)
			}
			return out
		}
		if _, ok := res.Extension.Command(rest[0]); ok {
			return nil // extension commands own their arguments
		}
		if res.API != nil && shelltypes.IsValidAction(rest[0]) {
			return flagSuggestions(rest[0])
		}
		return nil

	case shelltypes.DomainKindAPI:
		if len(rest) == 0 {
			return actionSuggestions(res.API)
		}
		if shelltypes.IsValidAction(rest[0]) {
			return flagSuggestions(rest[0])
		}
		return nil

	default:
		return nil
	}
}

// customTreeSuggestions walks a custom command tree by the complete
// tokens, suggesting each level's commands and delegating argument
// completion to the owning leaf's hook.
func customTreeSuggestions(cmds []shelltypes.CustomCommand, rest []string, category shelltypes.SuggestionCategory) []shelltypes.Suggestion {
	if len(rest) == 0 {
		var out []shelltypes.Suggestion
		for _, cmd := range cmds {
			out = append(out, shelltypes.Suggestion{
				Text: cmd.Name(), Description: cmd.Description(), Category: category,
			})
		}
		return out
	}

	for _, cmd := range cmds {
		if cmd.Name() != rest[0] {
			continue
		}
		if subs := cmd.Subcommands(); len(subs) > 0 {
			return customTreeSuggestions(subs, rest[1:], shelltypes.CategorySubcommand)
		}
		// Leaf: argument-level completion is the command's own.
		return cmd.CompleteArgs("")
	}
	return nil
}

func actionSuggestions(d *shelltypes.APIDomain) []shelltypes.Suggestion {
	var out []shelltypes.Suggestion
	for _, action := range d.ValidActions() {
		out = append(out, shelltypes.Suggestion{
			Text:        action,
			Description: shelltypes.ActionDescriptions[action],
			Category:    shelltypes.CategoryAction,
		})
	}
	return out
}

func navigationSuggestions(upDescription string) []shelltypes.Suggestion {
	return []shelltypes.Suggestion{
		{Text: "exit", Description: upDescription, Category: shelltypes.CategoryNavigation},
		{Text: "back", Description: upDescription, Category: shelltypes.CategoryNavigation},
		{Text: "..", Description: upDescription, Category: shelltypes.CategoryNavigation},
		{Text: "root", Description: "Return to root context", Category: shelltypes.CategoryNavigation},
		{Text: "/", Description: "Return to root context", Category: shelltypes.CategoryNavigation},
		{Text: "help", Description: "Show context help", Category: shelltypes.CategoryBuiltin},
	}
}

// filterPrefix keeps suggestions whose text matches prefix,
// case-insensitively.
func filterPrefix(suggestions []shelltypes.Suggestion, prefix string) []shelltypes.Suggestion {
	if prefix == "" {
		return suggestions
	}
	lower := strings.ToLower(prefix)
	var out []shelltypes.Suggestion
	for _, s := range suggestions {
		if strings.HasPrefix(strings.ToLower(s.Text), lower) {
			out = append(out, s)
		}
	}
	return out
}

func sortedBuiltins() []string {
	names := make([]string, 0, len(shelltypes.Builtins))
	for name := range shelltypes.Builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
