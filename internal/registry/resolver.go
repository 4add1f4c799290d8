package registry

import (
	"github.com/charmbracelet/log"

	"xcsh/internal/logger"
	"xcsh/pkg/shelltypes"
)

// Resolver evaluates a domain name against all three command sources
// once and returns a tagged Resolution. Precedence is fixed: a custom
// domain always wins, an extension beats the API domain it extends,
// and API-generated domains (with alias resolution) come last.
type Resolver struct {
	custom     shelltypes.CustomDomainRegistry
	extensions shelltypes.ExtensionRegistry
	api        shelltypes.APIDomainRegistry
	logger     *log.Logger
}

// NewResolver builds a resolver over the injected command sources.
func NewResolver(custom shelltypes.CustomDomainRegistry, extensions shelltypes.ExtensionRegistry, api shelltypes.APIDomainRegistry) *Resolver {
	return &Resolver{
		custom:     custom,
		extensions: extensions,
		api:        api,
		logger:     logger.NewStyledLogger("Resolver"),
	}
}

// Resolve looks name up in every source. Kind names the winning
// source; the Extension and API fields are both populated when a
// domain has an extension layered onto API backing, so callers can
// fall through on an extension-command miss.
func (r *Resolver) Resolve(name string) shelltypes.Resolution {
	res := shelltypes.Resolution{Kind: shelltypes.DomainKindUnknown, Name: name}

	if r.custom != nil {
		if d, ok := r.custom.Get(name); ok {
			res.Kind = shelltypes.DomainKindCustom
			res.Custom = d
			r.logger.Debug("resolved", "domain", name, "kind", res.Kind)
			return res
		}
	}

	canonical := name
	if r.api != nil {
		if c, ok := r.api.ResolveAlias(name); ok {
			canonical = c
		}
	}

	if r.extensions != nil {
		if e, ok := r.extensions.Get(canonical); ok {
			res.Kind = shelltypes.DomainKindExtension
			res.Name = canonical
			res.Extension = e
			if r.api != nil {
				if d, ok := r.api.Get(canonical); ok {
					res.API = d
				}
			}
			r.logger.Debug("resolved", "domain", canonical, "kind", res.Kind, "standalone", e.Standalone())
			return res
		}
	}

	if r.api != nil {
		if d, ok := r.api.Get(canonical); ok {
			res.Kind = shelltypes.DomainKindAPI
			res.Name = canonical
			res.API = d
			r.logger.Debug("resolved", "domain", canonical, "kind", res.Kind)
			return res
		}
	}

	r.logger.Debug("resolved", "domain", name, "kind", res.Kind)
	return res
}

// IsValidDomain reports whether name resolves to any command source.
func (r *Resolver) IsValidDomain(name string) bool {
	return r.Resolve(name).Kind != shelltypes.DomainKindUnknown
}

// Custom returns the custom-domain registry view.
func (r *Resolver) Custom() shelltypes.CustomDomainRegistry { return r.custom }

// Extensions returns the extension registry view.
func (r *Resolver) Extensions() shelltypes.ExtensionRegistry { return r.extensions }

// API returns the API-domain registry view.
func (r *Resolver) API() shelltypes.APIDomainRegistry { return r.api }
