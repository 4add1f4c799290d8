// Package registry implements the three command sources the shell
// resolves against — custom domains, CLI-only extensions, and
// API-generated domains — plus the unified precedence resolver. The
// registries are populated at startup and injected read-only into the
// executor and completer.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"xcsh/pkg/shelltypes"
)

// CustomRegistry holds hand-authored domains with full command trees.
type CustomRegistry struct {
	mu      sync.RWMutex
	domains map[string]shelltypes.CustomDomain
}

// NewCustomRegistry creates an empty custom-domain registry.
func NewCustomRegistry() *CustomRegistry {
	return &CustomRegistry{domains: make(map[string]shelltypes.CustomDomain)}
}

// Register adds a custom domain. Names must be unique and non-empty.
func (r *CustomRegistry) Register(d shelltypes.CustomDomain) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Name() == "" {
		return fmt.Errorf("custom domain name cannot be empty")
	}
	if _, exists := r.domains[d.Name()]; exists {
		return fmt.Errorf("custom domain %s already registered", d.Name())
	}
	r.domains[d.Name()] = d
	return nil
}

// Get retrieves a custom domain by name.
func (r *CustomRegistry) Get(name string) (shelltypes.CustomDomain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.domains[name]
	return d, ok
}

// All returns every registered custom domain, sorted by name.
func (r *CustomRegistry) All() []shelltypes.CustomDomain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelltypes.CustomDomain, 0, len(r.domains))
	for _, d := range r.domains {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ExtensionRegistry holds CLI-only command groups keyed by the domain
// they extend (or, for standalone extensions, the domain they define).
type ExtensionRegistry struct {
	mu         sync.RWMutex
	extensions map[string]shelltypes.Extension
}

// NewExtensionRegistry creates an empty extension registry.
func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{extensions: make(map[string]shelltypes.Extension)}
}

// Register adds an extension. One extension per domain.
func (r *ExtensionRegistry) Register(e shelltypes.Extension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Domain() == "" {
		return fmt.Errorf("extension domain cannot be empty")
	}
	if _, exists := r.extensions[e.Domain()]; exists {
		return fmt.Errorf("extension for domain %s already registered", e.Domain())
	}
	r.extensions[e.Domain()] = e
	return nil
}

// Get retrieves the extension for a domain.
func (r *ExtensionRegistry) Get(domain string) (shelltypes.Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.extensions[domain]
	return e, ok
}

// All returns every registered extension, sorted by domain.
func (r *ExtensionRegistry) All() []shelltypes.Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelltypes.Extension, 0, len(r.extensions))
	for _, e := range r.extensions {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain() < out[j].Domain() })
	return out
}

// APIRegistry holds domains generated from upstream API specs, with
// alias resolution to canonical names.
type APIRegistry struct {
	mu      sync.RWMutex
	domains map[string]*shelltypes.APIDomain
	aliases map[string]string
}

// NewAPIRegistry creates an API-domain registry from a generated table.
func NewAPIRegistry(domains []*shelltypes.APIDomain) *APIRegistry {
	r := &APIRegistry{
		domains: make(map[string]*shelltypes.APIDomain, len(domains)),
		aliases: make(map[string]string),
	}
	for _, d := range domains {
		r.domains[d.Name] = d
		for _, alias := range d.Aliases {
			r.aliases[alias] = d.Name
		}
	}
	return r
}

// Get retrieves an API domain by canonical name.
func (r *APIRegistry) Get(name string) (*shelltypes.APIDomain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.domains[name]
	return d, ok
}

// ResolveAlias maps a name or alias to the canonical domain name.
func (r *APIRegistry) ResolveAlias(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.domains[name]; ok {
		return name, true
	}
	canonical, ok := r.aliases[name]
	return canonical, ok
}

// All returns every API domain, sorted by name.
func (r *APIRegistry) All() []*shelltypes.APIDomain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*shelltypes.APIDomain, 0, len(r.domains))
	for _, d := range r.domains {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
