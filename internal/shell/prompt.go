package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"xcsh/internal/version"
)

var (
	tenantStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	namespaceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bannerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// prompt renders the input prompt from session state:
//
//	tenant:domain/action@namespace>
//
// Empty segments collapse; a fresh unconnected session shows "xcsh>".
func (s *Shell) prompt() string {
	tenant := s.session.Tenant()
	if tenant == "" {
		tenant = "xcsh"
	}
	path := s.session.ContextPath().String()
	namespace := s.session.Namespace()

	if !s.session.ColorEnabled() {
		return plainPrompt(tenant, path, namespace)
	}

	var b strings.Builder
	b.WriteString(tenantStyle.Render(tenant))
	if path != "" {
		b.WriteString(":")
		b.WriteString(pathStyle.Render(path))
	}
	if namespace != "" {
		b.WriteString("@")
		b.WriteString(namespaceStyle.Render(namespace))
	}
	b.WriteString("> ")
	return b.String()
}

func plainPrompt(tenant, path, namespace string) string {
	var b strings.Builder
	b.WriteString(tenant)
	if path != "" {
		b.WriteString(":")
		b.WriteString(path)
	}
	if namespace != "" {
		b.WriteString("@")
		b.WriteString(namespace)
	}
	b.WriteString("> ")
	return b.String()
}

// banner is printed once at startup.
func (s *Shell) banner() string {
	title := fmt.Sprintf("xcsh %s - interactive distributed cloud shell", version.Short())
	hint := "Type 'help' for commands, '/' to list domains, Tab to complete."

	if !s.session.ColorEnabled() {
		return title + "\n" + hint
	}
	return bannerStyle.Render(title) + "\n" + hintStyle.Render(hint)
}
