package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceBody_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zone.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metadata:\n  name: zone-a\nspec:\n  ttl: 300\n"), 0644))

	body, ok, err := resourceBody(apiArgs{flags: map[string]string{"file": path}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"metadata":{"name":"zone-a"},"spec":{"ttl":300}}`, string(body))
}

func TestResourceBody_FromJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zone.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"metadata":{"name":"zone-a"}}`), 0644))

	body, ok, err := resourceBody(apiArgs{flags: map[string]string{"file": path}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"metadata":{"name":"zone-a"}}`, string(body))
}

func TestResourceBody_Inline(t *testing.T) {
	body, ok, err := resourceBody(apiArgs{
		name:  `{"metadata":{"name":"inline"}}`,
		flags: map[string]string{},
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(body), "inline")
}

func TestResourceBody_None(t *testing.T) {
	_, ok, err := resourceBody(apiArgs{name: "zone-a", flags: map[string]string{}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResourceBody_MissingFile(t *testing.T) {
	_, _, err := resourceBody(apiArgs{flags: map[string]string{"file": "/nonexistent/zone.yaml"}})
	assert.Error(t, err)
}

func TestBodyName(t *testing.T) {
	assert.Equal(t, "zone-a", bodyName([]byte(`{"metadata":{"name":"zone-a"}}`)))
	assert.Equal(t, "", bodyName([]byte(`{}`)))
	assert.Equal(t, "", bodyName([]byte(`not json`)))
}

func TestExecute_CreateFromFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "zone.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metadata:\n  name: zone-a\n"), 0644))

	f.run(t, "dns")
	result := f.run(t, "create --file "+path)

	require.NoError(t, result.Err)
	assert.Contains(t, f.client.requests, "POST /api/config/namespaces/default/dnss")
}

func TestExecute_ReplaceNeedsName(t *testing.T) {
	f := newFixture(t)

	f.run(t, "dns")
	result := f.run(t, `replace '{"spec":{}}'`)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "replace")
}

func TestExecute_ReplaceNameFromBody(t *testing.T) {
	f := newFixture(t)

	f.run(t, "dns")
	result := f.run(t, `replace '{"metadata":{"name":"zone-a"}}'`)

	require.NoError(t, result.Err)
	assert.Contains(t, f.client.requests, "PUT /api/config/namespaces/default/dnss/zone-a")
}

func TestExecute_PatchNeedsNameAndBody(t *testing.T) {
	f := newFixture(t)
	f.run(t, "dns")

	result := f.run(t, "patch")
	require.Error(t, result.Err)

	result = f.run(t, "patch zone-a")
	assert.NoError(t, result.Err, "missing patch body is guidance")
	assert.Empty(t, f.client.requests)

	result = f.run(t, `patch zone-a '{"spec":{"ttl":60}}'`)
	require.NoError(t, result.Err)
	assert.Contains(t, f.client.requests, "PATCH /api/config/namespaces/default/dnss/zone-a")
}

func TestExecute_AddLabels(t *testing.T) {
	f := newFixture(t)
	f.run(t, "dns")

	result := f.run(t, "add-labels zone-a env=prod team=net")
	require.NoError(t, result.Err)
	assert.Contains(t, f.client.requests, "PATCH /api/config/namespaces/default/dnss/zone-a")

	result = f.run(t, "add-labels zone-a notapair")
	require.Error(t, result.Err)

	result = f.run(t, "add-labels")
	require.Error(t, result.Err)
}

func TestExecute_RemoveLabels(t *testing.T) {
	f := newFixture(t)
	f.run(t, "dns")

	result := f.run(t, "remove-labels zone-a env")
	require.NoError(t, result.Err)

	result = f.run(t, "remove-labels zone-a")
	require.Error(t, result.Err)
}
