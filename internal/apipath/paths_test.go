package apipath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralResource(t *testing.T) {
	tests := []struct {
		domain   string
		expected string
	}{
		{"http_loadbalancer", "http-loadbalancers"},
		{"origin_pool", "origin-pools"},
		{"healthcheck", "healthchecks"},
		{"virtual_site", "virtual-sites"},
		{"dns", "dnss"},
		{"namespace", "namespaces"},
		{"virtual_k8s", "virtual-k8ss"},
		{"app_security", "app-securitys"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PluralResource(tt.domain), tt.domain)
	}
}

func TestResource(t *testing.T) {
	assert.Equal(t,
		"/api/config/namespaces/prod/http-loadbalancers",
		Resource("http_loadbalancer", "prod", ""))

	assert.Equal(t,
		"/api/config/namespaces/prod/http-loadbalancers/my-lb",
		Resource("http_loadbalancer", "prod", "my-lb"))

	assert.Equal(t,
		"/api/config/namespaces/default/dnss/zone-1",
		Resource("dns", "default", "zone-1"))
}

func TestWellKnownPaths(t *testing.T) {
	assert.Equal(t, "/api/web/namespaces", Namespaces)
	assert.Equal(t, "/api/web/custom/namespace/system/whoami", Whoami)
}
