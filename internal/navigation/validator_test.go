package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xcsh/internal/registry"
	"xcsh/pkg/shelltypes"
)

func testValidator(t *testing.T) *ContextValidator {
	t.Helper()
	api := registry.NewAPIRegistry([]*shelltypes.APIDomain{
		{Name: "dns", Description: "DNS zones"},
		{Name: "http_loadbalancer", Description: "HTTP load balancers", Aliases: []string{"http-lb", "lb"}},
	})
	return NewContextValidator(registry.NewCustomRegistry(), registry.NewExtensionRegistry(), api)
}

func TestContextValidator_IsValidDomain(t *testing.T) {
	v := testValidator(t)

	assert.True(t, v.IsValidDomain("dns"))
	assert.True(t, v.IsValidDomain("http_loadbalancer"))
	assert.True(t, v.IsValidDomain("lb"), "aliases count as valid domains")
	assert.False(t, v.IsValidDomain("nonexistent"))
	assert.False(t, v.IsValidDomain(""))
}

func TestContextValidator_IsValidAction(t *testing.T) {
	v := testValidator(t)

	for _, action := range []string{"list", "get", "create", "delete", "replace", "apply", "status"} {
		assert.True(t, v.IsValidAction(action), action)
	}
	assert.False(t, v.IsValidAction("explode"))
}

func TestContextValidator_ResolveDomain(t *testing.T) {
	v := testValidator(t)

	canonical, ok := v.ResolveDomain("lb")
	assert.True(t, ok)
	assert.Equal(t, "http_loadbalancer", canonical)

	canonical, ok = v.ResolveDomain("dns")
	assert.True(t, ok)
	assert.Equal(t, "dns", canonical)

	_, ok = v.ResolveDomain("nope")
	assert.False(t, ok)
}

func TestContextValidator_NilSources(t *testing.T) {
	v := NewContextValidator(nil, nil, nil)

	assert.False(t, v.IsValidDomain("dns"))
	_, ok := v.ResolveDomain("dns")
	assert.False(t, ok)
}
