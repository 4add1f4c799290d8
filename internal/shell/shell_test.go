package shell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcsh/internal/completion"
	"xcsh/internal/navigation"
	"xcsh/internal/registry"
	"xcsh/internal/session"
	"xcsh/pkg/shelltypes"
)

func newTestShell(t *testing.T) (*Shell, *session.Session) {
	t.Helper()
	// Force the plain prompt path.
	t.Setenv("TERM", "dumb")

	api := registry.NewAPIRegistry([]*shelltypes.APIDomain{
		{Name: "dns", Description: "DNS zones"},
		{Name: "http_loadbalancer", Description: "HTTP load balancers", Aliases: []string{"lb"}},
	})
	custom := registry.NewCustomRegistry()
	extensions := registry.NewExtensionRegistry()

	sess := session.New(session.Options{
		Validator: navigation.NewContextValidator(custom, extensions, api),
		Namespace: "default",
		Tenant:    "acme",
	})

	resolver := registry.NewResolver(custom, extensions, api)
	completer := completion.New(sess, resolver)
	return New(sess, nil, completer), sess
}

func TestPrompt_States(t *testing.T) {
	s, sess := newTestShell(t)

	assert.Equal(t, "acme@default> ", s.prompt())

	sess.ContextPath().SetDomain("dns")
	assert.Equal(t, "acme:dns@default> ", s.prompt())

	sess.ContextPath().SetAction("get")
	assert.Equal(t, "acme:dns/get@default> ", s.prompt())

	sess.SetNamespace("")
	assert.Equal(t, "acme:dns/get> ", s.prompt())
}

func TestPrompt_NoTenantFallsBackToShellName(t *testing.T) {
	s, sess := newTestShell(t)
	sess.SetTenant("")
	sess.SetNamespace("")

	assert.Equal(t, "xcsh> ", s.prompt())
}

func TestBanner_MentionsHelp(t *testing.T) {
	s, _ := newTestShell(t)

	banner := s.banner()
	assert.Contains(t, banner, "xcsh")
	assert.Contains(t, banner, "help")
}

func TestArmInterrupt(t *testing.T) {
	s, _ := newTestShell(t)

	assert.False(t, s.armInterrupt(), "first Ctrl+C arms")
	assert.True(t, s.armInterrupt(), "second Ctrl+C within the window exits")

	s.lastInterrupt = time.Now().Add(-time.Second)
	assert.False(t, s.armInterrupt(), "window expired, re-arm instead of exiting")
}

func TestReadlineCompleter_Do(t *testing.T) {
	s, _ := newTestShell(t)
	rc := &readlineCompleter{completer: s.completer}

	line := []rune("dn")
	candidates, length := rc.Do(line, len(line))

	require.Len(t, candidates, 1)
	assert.Equal(t, "s ", string(candidates[0]), "candidate is the suffix after the typed word")
	assert.Equal(t, 2, length)
}

func TestReadlineCompleter_DoEscapedDomain(t *testing.T) {
	s, sess := newTestShell(t)
	sess.ContextPath().SetDomain("http_loadbalancer")
	rc := &readlineCompleter{completer: s.completer}

	line := []rune("/dn")
	candidates, length := rc.Do(line, len(line))

	require.Len(t, candidates, 1, "the escape jumps anywhere regardless of context")
	assert.Equal(t, "s ", string(candidates[0]))
	assert.Equal(t, len("dn"), length, "the escape marker is not part of the completed word")
}

func TestReadlineCompleter_DoMidLine(t *testing.T) {
	s, sess := newTestShell(t)
	sess.ContextPath().SetDomain("dns")
	rc := &readlineCompleter{completer: s.completer}

	line := []rune("list --out")
	candidates, length := rc.Do(line, len(line))

	require.Len(t, candidates, 1)
	assert.Equal(t, "put ", string(candidates[0]))
	assert.Equal(t, len("--out"), length)
}

func TestReadlineCompleter_NoMatches(t *testing.T) {
	s, _ := newTestShell(t)
	rc := &readlineCompleter{completer: s.completer}

	line := []rune("zzzz")
	candidates, _ := rc.Do(line, len(line))
	assert.Empty(t, candidates)
}
