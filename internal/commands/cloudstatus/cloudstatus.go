// Package cloudstatus provides the 'cloudstatus' extension, a
// standalone domain (no API-generated backing) that reports platform
// health from the public status page.
package cloudstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"xcsh/internal/client"
	"xcsh/pkg/shelltypes"
)

// DefaultStatusURL is the public status page API. XCSH_STATUS_URL
// overrides it.
const DefaultStatusURL = "https://status.cloud.f5.com"

// Extension implements shelltypes.Extension for the cloudstatus domain.
type Extension struct {
	statusURL string

	mu     sync.Mutex
	client *client.Client
}

// New builds the extension. statusURL may be empty; the environment
// override and then the default apply.
func New(statusURL string) *Extension {
	if statusURL == "" {
		statusURL = os.Getenv("XCSH_STATUS_URL")
	}
	if statusURL == "" {
		statusURL = DefaultStatusURL
	}
	return &Extension{statusURL: statusURL}
}

func (e *Extension) Domain() string      { return "cloudstatus" }
func (e *Extension) Description() string { return "Platform health from the public status page" }
func (e *Extension) Standalone() bool    { return true }

func (e *Extension) Commands() []shelltypes.ExtensionCommand {
	return []shelltypes.ExtensionCommand{
		&statusCommand{ext: e, name: "summary", description: "Overall platform status and component health"},
		&statusCommand{ext: e, name: "incidents", description: "Unresolved incidents"},
	}
}

func (e *Extension) Command(name string) (shelltypes.ExtensionCommand, bool) {
	for _, cmd := range e.Commands() {
		if cmd.Name() == name {
			return cmd, true
		}
	}
	return nil, false
}

// statusClient lazily builds the HTTP client for the status page. The
// status API is public, so no token is set.
func (e *Extension) statusClient() (*client.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		c, err := client.New(client.Config{ServerURL: e.statusURL})
		if err != nil {
			return nil, fmt.Errorf("invalid status page URL: %w", err)
		}
		e.client = c
	}
	return e.client, nil
}

type statusCommand struct {
	ext         *Extension
	name        string
	description string
}

func (c *statusCommand) Name() string        { return c.name }
func (c *statusCommand) Description() string { return c.description }

func (c *statusCommand) Execute(ctx context.Context, _ []string, _ shelltypes.Session) *shelltypes.ExecutionResult {
	statusClient, err := c.ext.statusClient()
	if err != nil {
		return shelltypes.ErrorResult(err)
	}

	switch c.name {
	case "summary":
		return summary(ctx, statusClient)
	case "incidents":
		return incidents(ctx, statusClient)
	default:
		return shelltypes.ErrorResult(fmt.Errorf("unknown cloudstatus command '%s'", c.name))
	}
}

func summary(ctx context.Context, statusClient *client.Client) *shelltypes.ExecutionResult {
	resp, err := statusClient.Get(ctx, "/api/v2/summary.json")
	if err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("status page unreachable: %w", err))
	}

	var body struct {
		Status struct {
			Indicator   string `json:"indicator"`
			Description string `json:"description"`
		} `json:"status"`
		Components []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"components"`
	}
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("unexpected status page response: %w", err))
	}

	lines := []string{
		fmt.Sprintf("Status: %s (%s)", body.Status.Description, body.Status.Indicator),
	}
	if len(body.Components) > 0 {
		lines = append(lines, "", "Components:")
		for _, comp := range body.Components {
			lines = append(lines, fmt.Sprintf("  %-40s %s", comp.Name, comp.Status))
		}
	}
	return shelltypes.OutputResult(lines...)
}

func incidents(ctx context.Context, statusClient *client.Client) *shelltypes.ExecutionResult {
	resp, err := statusClient.Get(ctx, "/api/v2/incidents/unresolved.json")
	if err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("status page unreachable: %w", err))
	}

	var body struct {
		Incidents []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Impact string `json:"impact"`
		} `json:"incidents"`
	}
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		return shelltypes.ErrorResult(fmt.Errorf("unexpected status page response: %w", err))
	}

	if len(body.Incidents) == 0 {
		return shelltypes.OutputResult("No unresolved incidents.")
	}

	lines := make([]string, 0, len(body.Incidents))
	for _, inc := range body.Incidents {
		lines = append(lines, fmt.Sprintf("[%s] %s (%s)", inc.Impact, inc.Name, inc.Status))
	}
	return shelltypes.OutputResult(lines...)
}
