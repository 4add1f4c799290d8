// Package login provides the hand-authored 'login' domain: profile
// management (list, use, show, create, delete) plus connection status.
// It registers as a custom domain and therefore shadows any same-named
// API domain.
package login

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"xcsh/internal/config"
	"xcsh/pkg/shelltypes"
)

// ConnectFunc is invoked after 'profile use' switches the active
// profile, so the owning shell can rebuild its API client.
type ConnectFunc func(name string, p config.Profile) error

// Domain implements shelltypes.CustomDomain.
type Domain struct {
	store   *config.Store
	connect ConnectFunc
}

// New builds the login domain over a profile store. connect may be nil
// when profile switches should not touch the live session.
func New(store *config.Store, connect ConnectFunc) *Domain {
	return &Domain{store: store, connect: connect}
}

func (d *Domain) Name() string        { return "login" }
func (d *Domain) Description() string { return "Manage connection profiles and credentials" }

func (d *Domain) Commands() []shelltypes.CustomCommand {
	return []shelltypes.CustomCommand{
		&profileCommand{domain: d},
		&statusCommand{domain: d},
	}
}

// Execute dispatches into the command tree. With no arguments it
// prints the domain's own usage.
func (d *Domain) Execute(ctx context.Context, args []string, sess shelltypes.Session) *shelltypes.ExecutionResult {
	if len(args) == 0 {
		return d.usage()
	}

	for _, cmd := range d.Commands() {
		if cmd.Name() == args[0] {
			return cmd.Execute(ctx, args[1:], sess)
		}
	}
	return shelltypes.ErrorResult(fmt.Errorf("unknown login command '%s'", args[0]))
}

func (d *Domain) usage() *shelltypes.ExecutionResult {
	return shelltypes.OutputResult(
		"login - "+d.Description(),
		"",
		"Commands:",
		"  profile list                List saved profiles",
		"  profile use <name>          Switch the active profile",
		"  profile show [name]         Show a profile (token redacted)",
		"  profile create <name> --server-url <url> [--token <tok>] [--namespace <ns>]",
		"  profile delete <name>       Remove a profile",
		"  status                      Show the current connection",
	)
}

// profileCommand is the 'profile' command group.
type profileCommand struct {
	domain *Domain
}

func (c *profileCommand) Name() string        { return "profile" }
func (c *profileCommand) Description() string { return "Manage saved connection profiles" }

func (c *profileCommand) Subcommands() []shelltypes.CustomCommand {
	return []shelltypes.CustomCommand{
		&profileLeaf{domain: c.domain, name: "list", description: "List saved profiles", run: c.list},
		&profileLeaf{domain: c.domain, name: "use", description: "Switch the active profile", run: c.use, completeNames: true},
		&profileLeaf{domain: c.domain, name: "show", description: "Show a profile with its token redacted", run: c.show, completeNames: true},
		&profileLeaf{domain: c.domain, name: "create", description: "Create or replace a profile", run: c.create},
		&profileLeaf{domain: c.domain, name: "delete", description: "Remove a profile", run: c.del, completeNames: true},
	}
}

func (c *profileCommand) Execute(ctx context.Context, args []string, sess shelltypes.Session) *shelltypes.ExecutionResult {
	if len(args) == 0 {
		return c.list(ctx, nil, sess)
	}
	for _, sub := range c.Subcommands() {
		if sub.Name() == args[0] {
			return sub.Execute(ctx, args[1:], sess)
		}
	}
	return shelltypes.ErrorResult(fmt.Errorf("unknown profile command '%s'", args[0]))
}

func (c *profileCommand) CompleteArgs(prefix string) []shelltypes.Suggestion {
	var out []shelltypes.Suggestion
	for _, sub := range c.Subcommands() {
		if strings.HasPrefix(sub.Name(), prefix) {
			out = append(out, shelltypes.Suggestion{
				Text:        sub.Name(),
				Description: sub.Description(),
				Category:    shelltypes.CategorySubcommand,
			})
		}
	}
	return out
}

func (c *profileCommand) list(_ context.Context, _ []string, _ shelltypes.Session) *shelltypes.ExecutionResult {
	names := c.domain.store.Names()
	if len(names) == 0 {
		return shelltypes.OutputResult(
			"No profiles saved.",
			"Create one with: login profile create <name> --server-url <url>")
	}

	lines := []string{"PROFILE          SERVER"}
	for _, name := range names {
		p, _ := c.domain.store.Get(name)
		marker := " "
		if name == c.domain.store.Active {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %-15s %s", marker, name, p.ServerURL))
	}
	return shelltypes.OutputResult(lines...)
}

func (c *profileCommand) use(_ context.Context, args []string, _ shelltypes.Session) *shelltypes.ExecutionResult {
	if len(args) == 0 {
		return shelltypes.ErrorResult(fmt.Errorf("usage: login profile use <name>"))
	}
	name := args[0]

	if err := c.domain.store.Use(name); err != nil {
		return shelltypes.ErrorResult(err)
	}
	if err := c.domain.store.Save(); err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("failed to save profiles: %w", err))
	}

	if c.domain.connect != nil {
		p, _ := c.domain.store.Get(name)
		if err := c.domain.connect(name, *p); err != nil {
			return shelltypes.ErrorResult(fmt.Errorf("profile '%s' selected but connection failed: %w", name, err))
		}
	}
	return shelltypes.OutputResult(fmt.Sprintf("Switched to profile '%s'", name))
}

func (c *profileCommand) show(_ context.Context, args []string, _ shelltypes.Session) *shelltypes.ExecutionResult {
	name := c.domain.store.Active
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return shelltypes.ErrorResult(fmt.Errorf("no active profile; usage: login profile show <name>"))
	}

	p, ok := c.domain.store.Get(name)
	if !ok {
		return shelltypes.ErrorResult(fmt.Errorf("profile '%s' does not exist", name))
	}

	return shelltypes.OutputResult(
		"Profile:   "+name,
		"Server:    "+p.ServerURL,
		"Token:     "+redactToken(p.APIToken),
		"Tenant:    "+orNone(p.Tenant),
		"Namespace: "+orNone(p.Namespace),
	)
}

func (c *profileCommand) create(_ context.Context, args []string, _ shelltypes.Session) *shelltypes.ExecutionResult {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return shelltypes.ErrorResult(fmt.Errorf("usage: login profile create <name> --server-url <url> [--token <tok>] [--namespace <ns>]"))
	}

	name := args[0]
	p := config.Profile{}
	for i := 1; i < len(args); i++ {
		flag := args[i]
		var value string
		if i+1 < len(args) {
			value = args[i+1]
		}
		switch flag {
		case "--server-url", "--server":
			p.ServerURL = value
			i++
		case "--token":
			p.APIToken = value
			i++
		case "--tenant":
			p.Tenant = value
			i++
		case "--namespace", "--ns":
			p.Namespace = value
			i++
		default:
			return shelltypes.ErrorResult(fmt.Errorf("unknown flag '%s' for profile create", flag))
		}
	}
	if p.ServerURL == "" {
		return shelltypes.ErrorResult(fmt.Errorf("--server-url is required"))
	}

	c.domain.store.Set(name, &p)
	if err := c.domain.store.Save(); err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("failed to save profiles: %w", err))
	}
	return shelltypes.OutputResult(fmt.Sprintf("Saved profile '%s'", name))
}

func (c *profileCommand) del(_ context.Context, args []string, _ shelltypes.Session) *shelltypes.ExecutionResult {
	if len(args) == 0 {
		return shelltypes.ErrorResult(fmt.Errorf("usage: login profile delete <name>"))
	}

	if err := c.domain.store.Delete(args[0]); err != nil {
		return shelltypes.ErrorResult(err)
	}
	if err := c.domain.store.Save(); err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("failed to save profiles: %w", err))
	}
	return shelltypes.OutputResult(fmt.Sprintf("Deleted profile '%s'", args[0]))
}

// profileLeaf binds one profile subcommand to its handler. Leaves that
// take a profile name complete against the store.
type profileLeaf struct {
	domain        *Domain
	name          string
	description   string
	completeNames bool
	run           func(ctx context.Context, args []string, sess shelltypes.Session) *shelltypes.ExecutionResult
}

func (l *profileLeaf) Name() string                            { return l.name }
func (l *profileLeaf) Description() string                     { return l.description }
func (l *profileLeaf) Subcommands() []shelltypes.CustomCommand { return nil }

func (l *profileLeaf) Execute(ctx context.Context, args []string, sess shelltypes.Session) *shelltypes.ExecutionResult {
	return l.run(ctx, args, sess)
}

func (l *profileLeaf) CompleteArgs(prefix string) []shelltypes.Suggestion {
	if !l.completeNames {
		return nil
	}
	names := l.domain.store.Names()
	sort.Strings(names)

	var out []shelltypes.Suggestion
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, shelltypes.Suggestion{
				Text:        name,
				Description: "Saved profile",
				Category:    shelltypes.CategoryArgument,
			})
		}
	}
	return out
}

// statusCommand reports the live connection for the current session.
type statusCommand struct {
	domain *Domain
}

func (c *statusCommand) Name() string                                { return "status" }
func (c *statusCommand) Description() string                         { return "Show the current connection status" }
func (c *statusCommand) Subcommands() []shelltypes.CustomCommand     { return nil }
func (c *statusCommand) CompleteArgs(string) []shelltypes.Suggestion { return nil }

func (c *statusCommand) Execute(_ context.Context, _ []string, sess shelltypes.Session) *shelltypes.ExecutionResult {
	resolved := c.domain.store.Resolved()

	state := "not connected"
	if sess.Client() != nil {
		state = "connected (unauthenticated)"
		if sess.Client().Authenticated() {
			state = "connected"
		}
	}

	return shelltypes.OutputResult(
		"Status:    "+state,
		"Profile:   "+orNone(sess.ProfileName()),
		"Server:    "+orNone(resolved.ServerURL),
		"Tenant:    "+orNone(sess.Tenant()),
		"Namespace: "+orNone(sess.Namespace()),
	)
}

func redactToken(token string) string {
	if token == "" {
		return "(none)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
