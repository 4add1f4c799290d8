package login

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcsh/internal/config"
	"xcsh/internal/session"
)

func newTestDomain(t *testing.T, connect ConnectFunc) (*Domain, *config.Store) {
	t.Helper()
	store, err := config.Load(filepath.Join(t.TempDir(), "profiles.yaml"))
	require.NoError(t, err)
	return New(store, connect), store
}

func run(t *testing.T, d *Domain, args ...string) ([]string, error) {
	t.Helper()
	result := d.Execute(context.Background(), args, session.New(session.Options{}))
	require.NotNil(t, result)
	return result.Output, result.Err
}

func TestDomain_Identity(t *testing.T) {
	d, _ := newTestDomain(t, nil)

	assert.Equal(t, "login", d.Name())
	assert.Len(t, d.Commands(), 2)
}

func TestDomain_NoArgsShowsUsage(t *testing.T) {
	d, _ := newTestDomain(t, nil)

	output, err := run(t, d)
	require.NoError(t, err)
	assert.Contains(t, output[0], "login")
}

func TestDomain_UnknownCommand(t *testing.T) {
	d, _ := newTestDomain(t, nil)

	_, err := run(t, d, "nonsense")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown login command")
}

func TestProfile_CreateAndList(t *testing.T) {
	d, store := newTestDomain(t, nil)

	output, err := run(t, d, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, output[0], "No profiles saved")

	_, err = run(t, d, "profile", "create", "prod", "--server-url", "https://acme.example.com", "--token", "tok", "--namespace", "prod-ns")
	require.NoError(t, err)

	p, ok := store.Get("prod")
	require.True(t, ok)
	assert.Equal(t, "https://acme.example.com", p.ServerURL)
	assert.Equal(t, "prod-ns", p.Namespace)

	output, err = run(t, d, "profile", "list")
	require.NoError(t, err)
	joined := ""
	for _, line := range output {
		joined += line + "\n"
	}
	assert.Contains(t, joined, "prod")
	assert.Contains(t, joined, "* ", "active profile is marked")
}

func TestProfile_CreateValidation(t *testing.T) {
	d, _ := newTestDomain(t, nil)

	_, err := run(t, d, "profile", "create")
	assert.Error(t, err, "name is required")

	_, err = run(t, d, "profile", "create", "prod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--server-url is required")

	_, err = run(t, d, "profile", "create", "prod", "--bogus", "x")
	assert.Error(t, err)
}

func TestProfile_UseInvokesConnect(t *testing.T) {
	var connectedName string
	d, _ := newTestDomain(t, func(name string, p config.Profile) error {
		connectedName = name
		return nil
	})

	_, err := run(t, d, "profile", "create", "a", "--server-url", "https://a")
	require.NoError(t, err)
	_, err = run(t, d, "profile", "create", "b", "--server-url", "https://b")
	require.NoError(t, err)

	output, err := run(t, d, "profile", "use", "b")
	require.NoError(t, err)
	assert.Contains(t, output[0], "Switched to profile 'b'")
	assert.Equal(t, "b", connectedName)

	_, err = run(t, d, "profile", "use", "missing")
	assert.Error(t, err)

	_, err = run(t, d, "profile", "use")
	assert.Error(t, err)
}

func TestProfile_ShowRedactsToken(t *testing.T) {
	d, _ := newTestDomain(t, nil)

	_, err := run(t, d, "profile", "create", "prod", "--server-url", "https://a", "--token", "supersecret99")
	require.NoError(t, err)

	output, err := run(t, d, "profile", "show", "prod")
	require.NoError(t, err)

	joined := ""
	for _, line := range output {
		joined += line + "\n"
	}
	assert.NotContains(t, joined, "supersecret99")
	assert.Contains(t, joined, "****et99")
}

func TestProfile_Delete(t *testing.T) {
	d, store := newTestDomain(t, nil)

	_, err := run(t, d, "profile", "create", "prod", "--server-url", "https://a")
	require.NoError(t, err)

	_, err = run(t, d, "profile", "delete", "prod")
	require.NoError(t, err)
	assert.Empty(t, store.Names())

	_, err = run(t, d, "profile", "delete", "prod")
	assert.Error(t, err)
}

func TestStatus_NotConnected(t *testing.T) {
	d, _ := newTestDomain(t, nil)

	output, err := run(t, d, "status")
	require.NoError(t, err)
	assert.Contains(t, output[0], "not connected")
}

func TestProfileLeaf_CompletesNames(t *testing.T) {
	d, store := newTestDomain(t, nil)
	store.Set("prod", &config.Profile{ServerURL: "https://a"})
	store.Set("staging", &config.Profile{ServerURL: "https://b"})

	group, ok := d.Commands()[0].(*profileCommand)
	require.True(t, ok)

	var useLeaf *profileLeaf
	for _, sub := range group.Subcommands() {
		if sub.Name() == "use" {
			useLeaf = sub.(*profileLeaf)
		}
	}
	require.NotNil(t, useLeaf)

	got := useLeaf.CompleteArgs("st")
	require.Len(t, got, 1)
	assert.Equal(t, "staging", got[0].Text)

	listLeaf := group.Subcommands()[0].(*profileLeaf)
	assert.Nil(t, listLeaf.CompleteArgs(""), "list takes no profile argument")
}

func TestRedactToken(t *testing.T) {
	assert.Equal(t, "(none)", redactToken(""))
	assert.Equal(t, "****", redactToken("abc"))
	assert.Equal(t, "****t-99", redactToken("secret-99"))
}
