package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"xcsh/internal/apipath"
	"xcsh/internal/client"
	"xcsh/pkg/shelltypes"
)

// apiArgs is the outcome of the left-to-right argument scan for API
// commands.
type apiArgs struct {
	namespace  string
	name       string
	flags      map[string]string
	positional []string
}

// scanArgs reads the argument list once, left to right. The namespace
// flags and --name are recognized explicitly; the first non-flag token
// becomes the resource name; any other flag consumes the following
// token as its value unless that token itself looks like a flag.
func scanArgs(args []string) apiArgs {
	a := apiArgs{flags: make(map[string]string)}

	for i := 0; i < len(args); i++ {
		token := args[i]

		if !strings.HasPrefix(token, "-") {
			if a.name == "" {
				a.name = token
			} else {
				a.positional = append(a.positional, token)
			}
			continue
		}

		flag, value, hasValue := strings.Cut(token, "=")
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			value = args[i+1]
			i++
		}

		switch flag {
		case "--namespace", "--ns", "-n":
			a.namespace = value
		case "--name":
			a.name = value
		default:
			a.flags[strings.TrimLeft(flag, "-")] = value
		}
	}

	return a
}

// preflight checks the two distinct connection error conditions before
// any network attempt.
func (e *Executor) preflight() (shelltypes.APIClient, *shelltypes.ExecutionResult) {
	apiClient := e.session.Client()
	if apiClient == nil {
		return nil, errorWithHint(
			&ConnectionError{Message: "not connected: no server URL configured"},
			"Run 'login profile create <name> --server-url <url>' or set XCSH_API_URL")
	}
	if !apiClient.Authenticated() {
		return nil, errorWithHint(
			&ConnectionError{Message: "not authenticated: no API token configured"},
			"Set XCSH_API_TOKEN or add api_token to the active profile")
	}
	return apiClient, nil
}

// executeAction runs one API action for a canonical domain name.
func (e *Executor) executeAction(ctx context.Context, domain, action string, args []string) *shelltypes.ExecutionResult {
	apiClient, errResult := e.preflight()
	if errResult != nil {
		return errResult
	}

	a := scanArgs(args)
	namespace := a.namespace
	if namespace == "" {
		namespace = e.session.Namespace()
	}
	if namespace == "" {
		namespace = "default"
	}

	e.logger.Debug("api action", "domain", domain, "action", action, "namespace", namespace)

	switch action {
	case "list":
		return e.actionList(ctx, apiClient, domain, namespace, a)
	case "get":
		return e.actionGetVerb(ctx, apiClient, domain, namespace, a, "get")
	case "status":
		return e.actionGetVerb(ctx, apiClient, domain, namespace, a, "status")
	case "delete":
		return e.actionDelete(ctx, apiClient, domain, namespace, a)
	case "create", "replace", "apply":
		return e.actionWrite(ctx, apiClient, domain, namespace, a, action)
	case "patch":
		return e.actionPatch(ctx, apiClient, domain, namespace, a)
	case "add-labels", "remove-labels":
		return e.actionLabels(ctx, apiClient, domain, namespace, a, action)
	default:
		return usageResult(
			fmt.Sprintf("unknown action '%s'", action),
			"Valid actions: "+strings.Join(shelltypes.DefaultActions, ", "))
	}
}

func (e *Executor) actionList(ctx context.Context, apiClient shelltypes.APIClient, domain, namespace string, a apiArgs) *shelltypes.ExecutionResult {
	resp, err := apiClient.Get(ctx, apipath.Resource(domain, namespace, ""))
	if err != nil {
		return e.apiErrorResult(err)
	}

	if e.outputFormat(a) == "json" {
		return shelltypes.OutputResult(prettyJSON(resp.Data))
	}

	names := parseSummaryNames(resp.Data)
	if limitStr, ok := a.flags["limit"]; ok {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 && limit < len(names) {
			names = names[:limit]
		}
	}
	if len(names) == 0 {
		return shelltypes.OutputResult(
			fmt.Sprintf("No %s found in namespace '%s'", apipath.PluralResource(domain), namespace))
	}

	lines := []string{"NAME"}
	lines = append(lines, names...)
	return shelltypes.OutputResult(lines...)
}

func (e *Executor) actionGetVerb(ctx context.Context, apiClient shelltypes.APIClient, domain, namespace string, a apiArgs, verb string) *shelltypes.ExecutionResult {
	if a.name == "" {
		return usageResult(
			fmt.Sprintf("Usage: %s <name>", verb),
			fmt.Sprintf("Provide a resource name, e.g. '%s my-%s'", verb, strings.ReplaceAll(domain, "_", "-")))
	}

	resp, err := apiClient.Get(ctx, apipath.Resource(domain, namespace, a.name))
	if err != nil {
		return e.apiErrorResult(err)
	}
	return shelltypes.OutputResult(prettyJSON(resp.Data))
}

func (e *Executor) actionDelete(ctx context.Context, apiClient shelltypes.APIClient, domain, namespace string, a apiArgs) *shelltypes.ExecutionResult {
	if a.name == "" {
		return usageResult("Usage: delete <name>", "Provide the name of the resource to delete")
	}

	if _, err := apiClient.Delete(ctx, apipath.Resource(domain, namespace, a.name)); err != nil {
		return e.apiErrorResult(err)
	}

	if e.completer != nil {
		e.completer.Cache().Invalidate(domain + ":" + namespace)
	}
	return shelltypes.OutputResult(fmt.Sprintf("Deleted %s '%s' from namespace '%s'", domain, a.name, namespace))
}

// actionWrite covers create/replace/apply. Without a resource body
// there is nothing to send; the result is guidance, not an API call.
func (e *Executor) actionWrite(ctx context.Context, apiClient shelltypes.APIClient, domain, namespace string, a apiArgs, action string) *shelltypes.ExecutionResult {
	body, ok, err := resourceBody(a)
	if err != nil {
		return shelltypes.ErrorResult(err)
	}
	if !ok {
		return shelltypes.OutputResult(
			fmt.Sprintf("'%s' needs a resource body.", action),
			"",
			fmt.Sprintf("  %s --file <resource.yaml>", action),
			fmt.Sprintf("  %s '{\"metadata\": {\"name\": ...}, \"spec\": ...}'", action),
		)
	}

	switch action {
	case "create":
		_, err = apiClient.Post(ctx, apipath.Resource(domain, namespace, ""), body)
	case "replace":
		name := a.name
		if strings.HasPrefix(strings.TrimSpace(name), "{") {
			name = "" // the inline body landed in the name slot
		}
		if name == "" {
			name = bodyName(body)
		}
		if name == "" {
			return usageResult(
				"Usage: replace --name <name> (or set metadata.name in the body)", "")
		}
		_, err = apiClient.Put(ctx, apipath.Resource(domain, namespace, name), body)
	case "apply":
		_, err = apiClient.Post(ctx, apipath.Resource(domain, namespace, ""), body)
	}
	if err != nil {
		return e.apiErrorResult(err)
	}

	if e.completer != nil {
		e.completer.Cache().Invalidate(domain + ":" + namespace)
	}
	return shelltypes.OutputResult(fmt.Sprintf("%s succeeded for %s in namespace '%s'", capitalize(action), domain, namespace))
}

func (e *Executor) actionPatch(ctx context.Context, apiClient shelltypes.APIClient, domain, namespace string, a apiArgs) *shelltypes.ExecutionResult {
	if strings.HasPrefix(strings.TrimSpace(a.name), "{") {
		a.name = ""
	}
	if a.name == "" {
		return usageResult("Usage: patch <name> --file <patch.yaml>", "")
	}
	body, ok, err := resourceBody(a)
	if err != nil {
		return shelltypes.ErrorResult(err)
	}
	if !ok {
		return shelltypes.OutputResult(
			"'patch' needs a patch document.",
			"",
			"  patch <name> --file <patch.yaml>",
			"  patch <name> '{\"spec\": ...}'",
		)
	}

	if _, err := apiClient.Patch(ctx, apipath.Resource(domain, namespace, a.name), body); err != nil {
		return e.apiErrorResult(err)
	}
	return shelltypes.OutputResult(fmt.Sprintf("Patched %s '%s' in namespace '%s'", domain, a.name, namespace))
}

func (e *Executor) actionLabels(ctx context.Context, apiClient shelltypes.APIClient, domain, namespace string, a apiArgs, action string) *shelltypes.ExecutionResult {
	if a.name == "" {
		return usageResult(
			fmt.Sprintf("Usage: %s <name> <key=value>...", action), "")
	}

	var payload []byte
	if action == "add-labels" {
		labels := make(map[string]string)
		for _, kv := range a.positional {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return usageResult(
					fmt.Sprintf("invalid label '%s'", kv), "Labels are key=value pairs")
			}
			labels[key] = value
		}
		if len(labels) == 0 {
			return usageResult("Usage: add-labels <name> <key=value>...", "")
		}
		payload, _ = json.Marshal(map[string]any{"add_labels": labels})
	} else {
		if len(a.positional) == 0 {
			return usageResult("Usage: remove-labels <name> <key>...", "")
		}
		payload, _ = json.Marshal(map[string]any{"remove_labels": a.positional})
	}

	if _, err := apiClient.Patch(ctx, apipath.Resource(domain, namespace, a.name), payload); err != nil {
		return e.apiErrorResult(err)
	}
	return shelltypes.OutputResult(fmt.Sprintf("Updated labels on %s '%s'", domain, a.name))
}

// resourceBody loads the request body from --file (YAML or JSON) or an
// inline JSON positional argument. ok is false when neither is given.
func resourceBody(a apiArgs) ([]byte, bool, error) {
	if path, exists := a.flags["file"]; exists && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read resource file: %w", err)
		}
		return toJSON(data)
	}

	// An inline body lands in name or positional during the scan.
	for _, candidate := range append([]string{a.name}, a.positional...) {
		if strings.HasPrefix(strings.TrimSpace(candidate), "{") {
			return []byte(candidate), true, nil
		}
	}
	return nil, false, nil
}

// toJSON accepts a JSON document as-is and converts YAML otherwise.
func toJSON(data []byte) ([]byte, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return trimmed, true, nil
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("resource file is neither JSON nor YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func bodyName(body []byte) string {
	var doc struct {
		Metadata struct {
			Name string `json:"name"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	return doc.Metadata.Name
}

func (e *Executor) outputFormat(a apiArgs) string {
	if format, ok := a.flags["output"]; ok && format != "" {
		return format
	}
	if format, ok := a.flags["o"]; ok && format != "" {
		return format
	}
	return e.session.OutputFormat()
}

// apiErrorResult folds a thrown API error into a result, attaching the
// status-specific human hint.
func (e *Executor) apiErrorResult(err error) *shelltypes.ExecutionResult {
	if apiErr, ok := err.(*client.APIError); ok {
		if hint := apiErr.Hint(); hint != "" {
			return errorWithHint(apiErr, hint)
		}
	}
	return shelltypes.ErrorResult(err)
}

func errorWithHint(err error, hint string) *shelltypes.ExecutionResult {
	result := shelltypes.ErrorResult(err)
	if hint != "" {
		result.Output = []string{hint}
	}
	return result
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func prettyJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}
