// Package navigation implements the shell's three-state navigation
// cursor (root / domain / action) and the read-only validator used to
// decide whether an input token is a navigable domain or action.
package navigation

// ContextPath is the navigation cursor. Exactly three states exist:
// root (both fields empty), domain (Domain set), and action (both set).
// The zero value is root. One ContextPath lives for the whole session
// and is mutated only through the methods below.
type ContextPath struct {
	domain string
	action string
}

// Domain returns the current domain, or "" at root.
func (c *ContextPath) Domain() string { return c.domain }

// Action returns the current action, or "" outside action context.
func (c *ContextPath) Action() string { return c.action }

// IsRoot reports whether no domain is selected.
func (c *ContextPath) IsRoot() bool { return c.domain == "" }

// IsDomain reports whether a domain is selected but no action.
func (c *ContextPath) IsDomain() bool { return c.domain != "" && c.action == "" }

// IsAction reports whether both a domain and an action are selected.
func (c *ContextPath) IsAction() bool { return c.domain != "" && c.action != "" }

// SetDomain enters a domain context from any state. Any action is
// cleared.
func (c *ContextPath) SetDomain(domain string) {
	c.domain = domain
	c.action = ""
}

// SetAction enters an action context within the current domain. The
// call is rejected at root: an action with no domain is not a state
// this machine has, so IsAction stays the single source of truth.
func (c *ContextPath) SetAction(action string) bool {
	if c.domain == "" {
		return false
	}
	c.action = action
	return true
}

// NavigateUp moves up one level: action -> domain -> root. Returns
// false when already at root, leaving the state untouched.
func (c *ContextPath) NavigateUp() bool {
	if c.action != "" {
		c.action = ""
		return true
	}
	if c.domain != "" {
		c.domain = ""
		return true
	}
	return false
}

// Reset returns to root unconditionally.
func (c *ContextPath) Reset() {
	c.domain = ""
	c.action = ""
}

// String renders the path as "", "domain", or "domain/action".
func (c *ContextPath) String() string {
	if c.domain == "" {
		return ""
	}
	if c.action == "" {
		return c.domain
	}
	return c.domain + "/" + c.action
}
