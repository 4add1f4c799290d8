// Package config implements the profile store: named connection
// profiles (server URL, API token, tenant, default namespace) kept in
// a YAML file under the user's config directory, with environment
// variables taking precedence over the active profile.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is one named connection configuration.
type Profile struct {
	ServerURL string `yaml:"server_url"`
	APIToken  string `yaml:"api_token,omitempty"`
	Tenant    string `yaml:"tenant,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// Store holds all profiles plus the active selection.
type Store struct {
	path     string
	Active   string              `yaml:"active"`
	Profiles map[string]*Profile `yaml:"profiles"`
}

// DefaultPath returns the profile file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xcsh_profiles.yaml"
	}
	return filepath.Join(home, ".config", "xcsh", "profiles.yaml")
}

// Load reads the store from path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := &Store{path: path, Profiles: make(map[string]*Profile)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid profile file %s: %w", path, err)
	}
	if s.Profiles == nil {
		s.Profiles = make(map[string]*Profile)
	}
	s.path = path
	return s, nil
}

// Save writes the store back to its file, creating directories as
// needed. Mode 0600: the file may hold tokens.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Get returns a profile by name.
func (s *Store) Get(name string) (*Profile, bool) {
	p, ok := s.Profiles[name]
	return p, ok
}

// ActiveProfile returns the active profile, or nil when none is set.
func (s *Store) ActiveProfile() *Profile {
	if s.Active == "" {
		return nil
	}
	return s.Profiles[s.Active]
}

// Set adds or replaces a profile.
func (s *Store) Set(name string, p *Profile) {
	s.Profiles[name] = p
	if s.Active == "" {
		s.Active = name
	}
}

// Use marks a profile as active.
func (s *Store) Use(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	s.Active = name
	return nil
}

// Delete removes a profile. Deleting the active profile clears the
// active selection.
func (s *Store) Delete(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(s.Profiles, name)
	if s.Active == name {
		s.Active = ""
	}
	return nil
}

// Names returns all profile names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolved returns the effective connection settings: the active
// profile overlaid with XCSH_API_URL and XCSH_API_TOKEN.
func (s *Store) Resolved() Profile {
	var p Profile
	if active := s.ActiveProfile(); active != nil {
		p = *active
	}
	if url := os.Getenv("XCSH_API_URL"); url != "" {
		p.ServerURL = url
	}
	if token := os.Getenv("XCSH_API_TOKEN"); token != "" {
		p.APIToken = token
	}
	return p
}
