package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Defaults(t *testing.T) {
	s := New(Options{})

	assert.NotEmpty(t, s.ID())
	assert.Nil(t, s.Client())
	assert.Equal(t, "", s.Namespace())
	assert.Equal(t, "table", s.OutputFormat())
	assert.True(t, s.ContextPath().IsRoot())
}

func TestSession_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, New(Options{}).ID(), New(Options{}).ID())
}

func TestSession_Setters(t *testing.T) {
	s := New(Options{Namespace: "default", Tenant: "acme", ProfileName: "prod"})

	assert.Equal(t, "default", s.Namespace())
	assert.Equal(t, "acme", s.Tenant())
	assert.Equal(t, "prod", s.ProfileName())

	s.SetNamespace("shared")
	s.SetOutputFormat("json")
	s.SetTenant("other")
	s.SetProfileName("staging")

	assert.Equal(t, "shared", s.Namespace())
	assert.Equal(t, "json", s.OutputFormat())
	assert.Equal(t, "other", s.Tenant())
	assert.Equal(t, "staging", s.ProfileName())
}

func TestSession_HistoryWithoutManager(t *testing.T) {
	s := New(Options{})

	s.AddToHistory("dns")
	assert.Nil(t, s.History(), "history is a no-op without a manager")
	assert.Nil(t, s.HistoryManager())
}

func TestSession_HistoryWithManager(t *testing.T) {
	h, err := NewHistoryManager(t.TempDir()+"/hist", 10)
	require.NoError(t, err)
	s := New(Options{History: h})

	s.AddToHistory("dns")
	s.AddToHistory("list")

	assert.Equal(t, []string{"dns", "list"}, s.History())
}
