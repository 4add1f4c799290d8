package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcsh/pkg/shelltypes"
)

// fakeCustomDomain is a minimal CustomDomain for registry tests.
type fakeCustomDomain struct {
	name string
}

func (f *fakeCustomDomain) Name() string                         { return f.name }
func (f *fakeCustomDomain) Description() string                  { return "fake" }
func (f *fakeCustomDomain) Commands() []shelltypes.CustomCommand { return nil }
func (f *fakeCustomDomain) Execute(_ context.Context, _ []string, _ shelltypes.Session) *shelltypes.ExecutionResult {
	return shelltypes.OutputResult("custom ran")
}

// fakeExtension is a minimal Extension for registry tests.
type fakeExtension struct {
	domain     string
	standalone bool
}

func (f *fakeExtension) Domain() string                          { return f.domain }
func (f *fakeExtension) Description() string                     { return "fake extension" }
func (f *fakeExtension) Standalone() bool                        { return f.standalone }
func (f *fakeExtension) Commands() []shelltypes.ExtensionCommand { return nil }
func (f *fakeExtension) Command(string) (shelltypes.ExtensionCommand, bool) {
	return nil, false
}

func TestCustomRegistry_Register(t *testing.T) {
	r := NewCustomRegistry()

	require.NoError(t, r.Register(&fakeCustomDomain{name: "login"}))
	assert.Error(t, r.Register(&fakeCustomDomain{name: "login"}), "duplicate registration must fail")
	assert.Error(t, r.Register(&fakeCustomDomain{name: ""}), "empty name must fail")

	d, ok := r.Get("login")
	assert.True(t, ok)
	assert.Equal(t, "login", d.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestCustomRegistry_AllSorted(t *testing.T) {
	r := NewCustomRegistry()
	require.NoError(t, r.Register(&fakeCustomDomain{name: "zeta"}))
	require.NoError(t, r.Register(&fakeCustomDomain{name: "alpha"}))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "zeta", all[1].Name())
}

func TestExtensionRegistry_Register(t *testing.T) {
	r := NewExtensionRegistry()

	require.NoError(t, r.Register(&fakeExtension{domain: "cloudstatus", standalone: true}))
	assert.Error(t, r.Register(&fakeExtension{domain: "cloudstatus"}))

	e, ok := r.Get("cloudstatus")
	assert.True(t, ok)
	assert.True(t, e.Standalone())
}

func TestAPIRegistry_AliasResolution(t *testing.T) {
	r := NewAPIRegistry([]*shelltypes.APIDomain{
		{Name: "http_loadbalancer", Aliases: []string{"http-lb", "lb"}},
		{Name: "dns"},
	})

	canonical, ok := r.ResolveAlias("lb")
	assert.True(t, ok)
	assert.Equal(t, "http_loadbalancer", canonical)

	canonical, ok = r.ResolveAlias("http-lb")
	assert.True(t, ok)
	assert.Equal(t, "http_loadbalancer", canonical)

	canonical, ok = r.ResolveAlias("dns")
	assert.True(t, ok, "canonical names resolve to themselves")
	assert.Equal(t, "dns", canonical)

	_, ok = r.ResolveAlias("bogus")
	assert.False(t, ok)

	_, ok = r.Get("lb")
	assert.False(t, ok, "Get is canonical-name only")

	d, ok := r.Get("http_loadbalancer")
	require.True(t, ok)
	assert.Equal(t, shelltypes.DefaultActions, d.ValidActions())
}

func TestAPIRegistry_NarrowedActions(t *testing.T) {
	r := NewAPIRegistry(GeneratedAPIDomains())

	ns, ok := r.Get("namespace")
	require.True(t, ok)
	assert.NotContains(t, ns.ValidActions(), "apply", "namespace actions are narrowed")
	assert.Contains(t, ns.ValidActions(), "list")

	dns, ok := r.Get("dns")
	require.True(t, ok)
	assert.Equal(t, shelltypes.DefaultActions, dns.ValidActions())
}

func TestResolver_Precedence(t *testing.T) {
	custom := NewCustomRegistry()
	extensions := NewExtensionRegistry()
	api := NewAPIRegistry([]*shelltypes.APIDomain{
		{Name: "dns"},
		{Name: "site", Aliases: []string{"s"}},
	})

	require.NoError(t, custom.Register(&fakeCustomDomain{name: "dns"}))
	require.NoError(t, extensions.Register(&fakeExtension{domain: "site"}))
	require.NoError(t, extensions.Register(&fakeExtension{domain: "cloudstatus", standalone: true}))

	r := NewResolver(custom, extensions, api)

	t.Run("custom shadows api", func(t *testing.T) {
		res := r.Resolve("dns")
		assert.Equal(t, shelltypes.DomainKindCustom, res.Kind)
		assert.NotNil(t, res.Custom)
	})

	t.Run("extension layered on api keeps backing", func(t *testing.T) {
		res := r.Resolve("site")
		assert.Equal(t, shelltypes.DomainKindExtension, res.Kind)
		require.NotNil(t, res.Extension)
		assert.NotNil(t, res.API, "backing API domain rides along for fall-through")
	})

	t.Run("alias resolves before extension lookup", func(t *testing.T) {
		res := r.Resolve("s")
		assert.Equal(t, shelltypes.DomainKindExtension, res.Kind)
		assert.Equal(t, "site", res.Name)
	})

	t.Run("standalone extension has no api backing", func(t *testing.T) {
		res := r.Resolve("cloudstatus")
		assert.Equal(t, shelltypes.DomainKindExtension, res.Kind)
		assert.Nil(t, res.API)
	})

	t.Run("unknown", func(t *testing.T) {
		res := r.Resolve("nonsense")
		assert.Equal(t, shelltypes.DomainKindUnknown, res.Kind)
		assert.False(t, r.IsValidDomain("nonsense"))
	})
}
