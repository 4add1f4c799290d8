// Package session holds the per-run shell state: the active namespace,
// output format, tenant, profile, API client handle, navigation
// context, and command history. One Session lives for the lifetime of
// one shell invocation.
package session

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"xcsh/internal/navigation"
	"xcsh/pkg/shelltypes"
)

// Session is the concrete shell session. It implements
// shelltypes.Session for custom domains and extensions; the executor
// and completer use it directly and also reach the navigation context.
type Session struct {
	mu sync.RWMutex

	id          string
	client      shelltypes.APIClient
	contextPath *navigation.ContextPath
	validator   *navigation.ContextValidator
	history     *HistoryManager

	namespace    string
	outputFormat string
	tenant       string
	profileName  string
	colorEnabled bool
}

// Options configures a new session. Client may be nil when no server
// URL is configured; History may be nil for an ephemeral session.
type Options struct {
	Client      shelltypes.APIClient
	Validator   *navigation.ContextValidator
	History     *HistoryManager
	Namespace   string
	Tenant      string
	ProfileName string
}

// New creates a session with a fresh ID and a root navigation context.
func New(opts Options) *Session {
	return &Session{
		id:           uuid.New().String(),
		client:       opts.Client,
		contextPath:  &navigation.ContextPath{},
		validator:    opts.Validator,
		history:      opts.History,
		namespace:    opts.Namespace,
		outputFormat: "table",
		tenant:       opts.Tenant,
		profileName:  opts.ProfileName,
		colorEnabled: detectColorSupport(),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Client returns the API client handle, or nil when not connected.
func (s *Session) Client() shelltypes.APIClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// SetClient swaps the API client, e.g. after a profile switch.
func (s *Session) SetClient(c shelltypes.APIClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = c
}

// ContextPath returns the navigation cursor. The same object is
// mutated for the whole session.
func (s *Session) ContextPath() *navigation.ContextPath { return s.contextPath }

// Validator returns the domain/action validator.
func (s *Session) Validator() *navigation.ContextValidator { return s.validator }

// Namespace returns the active default namespace.
func (s *Session) Namespace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namespace
}

// SetNamespace updates the active default namespace.
func (s *Session) SetNamespace(ns string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.namespace = ns
}

// OutputFormat returns the active output format.
func (s *Session) OutputFormat() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outputFormat
}

// SetOutputFormat updates the active output format.
func (s *Session) SetOutputFormat(format string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputFormat = format
}

// Tenant returns the tenant extracted from the server URL.
func (s *Session) Tenant() string { return s.tenant }

// SetTenant updates the tenant, e.g. after a profile switch.
func (s *Session) SetTenant(tenant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant = tenant
}

// ProfileName returns the active profile name, or "".
func (s *Session) ProfileName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileName
}

// SetProfileName updates the active profile name.
func (s *Session) SetProfileName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileName = name
}

// AddToHistory appends an input line to the history, if history is
// enabled for this session.
func (s *Session) AddToHistory(entry string) {
	if s.history != nil {
		s.history.Add(entry)
	}
}

// History returns all history entries in submission order.
func (s *Session) History() []string {
	if s.history == nil {
		return nil
	}
	return s.history.Entries()
}

// HistoryManager returns the underlying manager for persistence.
func (s *Session) HistoryManager() *HistoryManager { return s.history }

// ColorEnabled reports whether the terminal supports colored output.
func (s *Session) ColorEnabled() bool { return s.colorEnabled }

func detectColorSupport() bool {
	if termenv.EnvNoColor() {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
