package navigation

import "xcsh/pkg/shelltypes"

// ContextValidator answers membership questions about domain and action
// names. It is a read-only view over the injected command sources and
// never mutates them.
type ContextValidator struct {
	custom     shelltypes.CustomDomainRegistry
	extensions shelltypes.ExtensionRegistry
	api        shelltypes.APIDomainRegistry
}

// NewContextValidator builds a validator over the three command sources.
func NewContextValidator(custom shelltypes.CustomDomainRegistry, extensions shelltypes.ExtensionRegistry, api shelltypes.APIDomainRegistry) *ContextValidator {
	return &ContextValidator{custom: custom, extensions: extensions, api: api}
}

// IsValidDomain reports whether name is a navigable domain in any
// source: a custom domain, an extension domain, or an API domain name
// or alias.
func (v *ContextValidator) IsValidDomain(name string) bool {
	if v.custom != nil {
		if _, ok := v.custom.Get(name); ok {
			return true
		}
	}
	if v.extensions != nil {
		if _, ok := v.extensions.Get(name); ok {
			return true
		}
	}
	if v.api != nil {
		if _, ok := v.api.Get(name); ok {
			return true
		}
		if _, ok := v.api.ResolveAlias(name); ok {
			return true
		}
	}
	return false
}

// IsValidAction reports whether name is a recognized domain action.
func (v *ContextValidator) IsValidAction(name string) bool {
	return shelltypes.IsValidAction(name)
}

// ResolveDomain maps an alias to its canonical domain name. Names that
// are already canonical (in any source) resolve to themselves.
func (v *ContextValidator) ResolveDomain(name string) (string, bool) {
	if v.custom != nil {
		if _, ok := v.custom.Get(name); ok {
			return name, true
		}
	}
	if v.extensions != nil {
		if _, ok := v.extensions.Get(name); ok {
			return name, true
		}
	}
	if v.api != nil {
		if _, ok := v.api.Get(name); ok {
			return name, true
		}
		if canonical, ok := v.api.ResolveAlias(name); ok {
			return canonical, true
		}
	}
	return "", false
}
