package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryManager_AddRules(t *testing.T) {
	h, err := NewHistoryManager(filepath.Join(t.TempDir(), "hist"), 100)
	require.NoError(t, err)

	h.Add("dns")
	h.Add("dns")
	h.Add("")
	h.Add("list")
	h.Add("dns")

	assert.Equal(t, []string{"dns", "list", "dns"}, h.Entries(),
		"only immediate duplicates and empty lines are suppressed")
}

func TestHistoryManager_MaxSizeTrimsOldest(t *testing.T) {
	h, err := NewHistoryManager(filepath.Join(t.TempDir(), "hist"), 3)
	require.NoError(t, err)

	for _, entry := range []string{"a", "b", "c", "d"} {
		h.Add(entry)
	}

	assert.Equal(t, []string{"b", "c", "d"}, h.Entries())
}

func TestHistoryManager_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")
	h, err := NewHistoryManager(path, 100)
	require.NoError(t, err)

	h.Add("dns")
	h.Add("list --namespace prod")
	require.NoError(t, h.Save())

	reloaded, err := NewHistoryManager(path, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"dns", "list --namespace prod"}, reloaded.Entries())
}

func TestHistoryManager_LoadTrimsToMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0644))

	h, err := NewHistoryManager(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, h.Entries())
}

func TestHistoryManager_Last(t *testing.T) {
	h, err := NewHistoryManager(filepath.Join(t.TempDir(), "hist"), 100)
	require.NoError(t, err)

	for _, entry := range []string{"a", "b", "c"} {
		h.Add(entry)
	}

	assert.Equal(t, []string{"b", "c"}, h.Last(2))
	assert.Equal(t, []string{"a", "b", "c"}, h.Last(10))
	assert.Nil(t, h.Last(0))
}
