// This file defines the types for precedence-based domain resolution.
// A domain name may be backed by up to three sources: a hand-authored
// custom command tree, a CLI-only extension, and an API-generated
// registry entry. Resolution evaluates the sources once, in fixed
// precedence order (custom > extension > api), and both the executor
// and the completer consume the same tagged result.
package shelltypes

import "context"

// DomainKind identifies the winning command source for a domain name.
type DomainKind int

const (
	// DomainKindUnknown means no source recognizes the name.
	DomainKindUnknown DomainKind = iota

	// DomainKindCustom is a domain whose entire command tree is
	// hand-authored. Always wins, even over an API domain of the
	// same name.
	DomainKindCustom

	// DomainKindExtension is a domain with CLI-only commands layered
	// onto an API domain, or standing alone with no API backing.
	DomainKindExtension

	// DomainKindAPI is a domain generated from upstream API specs.
	DomainKindAPI
)

// String returns a human-readable name for the kind.
func (k DomainKind) String() string {
	switch k {
	case DomainKindCustom:
		return "custom"
	case DomainKindExtension:
		return "extension"
	case DomainKindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one domain name against all
// three command sources. Kind names the winning source; the source
// fields below it carry every match so the executor can fall through
// (an extension command miss falls through to the backing API domain).
type Resolution struct {
	Kind DomainKind

	// Name is the canonical domain name after alias resolution.
	Name string

	Custom    CustomDomain
	Extension Extension
	API       *APIDomain
}

// CustomCommand is one node in a custom domain's command tree.
type CustomCommand interface {
	Name() string
	Description() string

	// Subcommands returns nested command groups, or nil for a leaf.
	Subcommands() []CustomCommand

	// Execute runs the command with its remaining argument list.
	Execute(ctx context.Context, args []string, sess Session) *ExecutionResult

	// CompleteArgs is the command's own argument-level completion
	// hook. Leaf commands with no dynamic arguments return nil.
	CompleteArgs(prefix string) []Suggestion
}

// CustomDomain is a domain whose full command tree is hand-authored.
type CustomDomain interface {
	Name() string
	Description() string
	Commands() []CustomCommand

	// Execute dispatches the full remaining argument list into the
	// domain's command tree.
	Execute(ctx context.Context, args []string, sess Session) *ExecutionResult
}

// ExtensionCommand is one CLI-only command contributed by an extension.
type ExtensionCommand interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args []string, sess Session) *ExecutionResult
}

// Extension groups CLI-only commands under a domain name. When
// Standalone is true the domain has no API-generated backing and the
// extension is its entire surface.
type Extension interface {
	Domain() string
	Description() string
	Standalone() bool
	Commands() []ExtensionCommand
	Command(name string) (ExtensionCommand, bool)
}

// APIDomain describes one domain generated from upstream API specs.
type APIDomain struct {
	Name        string
	Description string
	Aliases     []string

	// Actions overrides DefaultActions when non-nil.
	Actions []string
}

// ValidActions returns the domain's action set.
func (d *APIDomain) ValidActions() []string {
	if d.Actions != nil {
		return d.Actions
	}
	return DefaultActions
}

// CustomDomainRegistry is the read-only view of registered custom domains.
type CustomDomainRegistry interface {
	Get(name string) (CustomDomain, bool)
	All() []CustomDomain
}

// ExtensionRegistry is the read-only view of registered extensions.
type ExtensionRegistry interface {
	Get(domain string) (Extension, bool)
	All() []Extension
}

// APIDomainRegistry is the read-only view of API-generated domains.
type APIDomainRegistry interface {
	Get(name string) (*APIDomain, bool)

	// ResolveAlias maps a name or alias to the canonical domain name.
	ResolveAlias(name string) (string, bool)

	All() []*APIDomain
}
