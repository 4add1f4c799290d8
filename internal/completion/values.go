package completion

import (
	"context"
	"encoding/json"
	"strings"

	"xcsh/internal/apipath"
	"xcsh/pkg/shelltypes"
)

// fallbackNamespaces is served when the namespace list cannot be
// fetched (no client, no token, or a failed call).
var fallbackNamespaces = []string{"default", "shared", "system"}

var outputFormats = []string{"table", "json", "yaml"}

var limitValues = []string{"10", "20", "50", "100"}

// actionFlags maps each API action to the flags it accepts.
var actionFlags = map[string][]shelltypes.Suggestion{
	"list": {
		{Text: "--namespace", Description: "Namespace to list from", Category: shelltypes.CategoryFlag},
		{Text: "--output", Description: "Output format", Category: shelltypes.CategoryFlag},
		{Text: "--limit", Description: "Maximum number of items", Category: shelltypes.CategoryFlag},
		{Text: "--label", Description: "Label selector", Category: shelltypes.CategoryFlag},
	},
	"get": {
		{Text: "--namespace", Description: "Namespace of the resource", Category: shelltypes.CategoryFlag},
		{Text: "--name", Description: "Resource name", Category: shelltypes.CategoryFlag},
		{Text: "--output", Description: "Output format", Category: shelltypes.CategoryFlag},
	},
	"create": {
		{Text: "--file", Description: "Resource definition file (YAML or JSON)", Category: shelltypes.CategoryFlag},
		{Text: "--namespace", Description: "Namespace to create in", Category: shelltypes.CategoryFlag},
	},
	"delete": {
		{Text: "--namespace", Description: "Namespace of the resource", Category: shelltypes.CategoryFlag},
		{Text: "--name", Description: "Resource name", Category: shelltypes.CategoryFlag},
	},
	"replace": {
		{Text: "--file", Description: "Resource definition file (YAML or JSON)", Category: shelltypes.CategoryFlag},
		{Text: "--namespace", Description: "Namespace of the resource", Category: shelltypes.CategoryFlag},
	},
	"apply": {
		{Text: "--file", Description: "Resource definition file (YAML or JSON)", Category: shelltypes.CategoryFlag},
		{Text: "--namespace", Description: "Namespace to apply in", Category: shelltypes.CategoryFlag},
	},
	"status": {
		{Text: "--namespace", Description: "Namespace of the resource", Category: shelltypes.CategoryFlag},
		{Text: "--name", Description: "Resource name", Category: shelltypes.CategoryFlag},
		{Text: "--output", Description: "Output format", Category: shelltypes.CategoryFlag},
	},
	"patch": {
		{Text: "--file", Description: "Patch document (YAML or JSON)", Category: shelltypes.CategoryFlag},
		{Text: "--namespace", Description: "Namespace of the resource", Category: shelltypes.CategoryFlag},
		{Text: "--name", Description: "Resource name", Category: shelltypes.CategoryFlag},
	},
	"add-labels": {
		{Text: "--namespace", Description: "Namespace of the resource", Category: shelltypes.CategoryFlag},
		{Text: "--name", Description: "Resource name", Category: shelltypes.CategoryFlag},
	},
	"remove-labels": {
		{Text: "--namespace", Description: "Namespace of the resource", Category: shelltypes.CategoryFlag},
		{Text: "--name", Description: "Resource name", Category: shelltypes.CategoryFlag},
	},
}

func flagSuggestions(action string) []shelltypes.Suggestion {
	flags, ok := actionFlags[action]
	if !ok {
		return nil
	}
	out := make([]shelltypes.Suggestion, len(flags))
	copy(out, flags)
	return out
}

// valueSuggestions dispatches to a flag-specific value generator when
// flagToken is a known value flag. The second return is false when
// the token is not a value flag.
func (c *Completer) valueSuggestions(ctx context.Context, flagToken string, tokens []string) ([]shelltypes.Suggestion, bool) {
	switch flagToken {
	case "--namespace", "--ns", "-ns":
		return asValues(c.namespaces(ctx), "Namespace"), true
	case "--output", "-o":
		return asValues(outputFormats, "Output format"), true
	case "--name", "-n":
		return asValues(c.resourceNames(ctx, tokens), "Resource name"), true
	case "--limit":
		return asValues(limitValues, "Item limit"), true
	case "--label":
		return nil, true // labels are free-form
	default:
		return nil, false
	}
}

// namespaces returns the cached namespace list, fetching it once per
// TTL through the session's API client.
func (c *Completer) namespaces(ctx context.Context) []string {
	apiClient := c.session.Client()
	if apiClient == nil || !apiClient.Authenticated() {
		return fallbackNamespaces
	}

	values, err := c.cache.GetOrFetch(ctx, "namespaces", func(ctx context.Context) ([]string, error) {
		resp, err := apiClient.Get(ctx, apipath.Namespaces)
		if err != nil {
			return nil, err
		}
		return parseItemNames(resp.Data), nil
	})
	if err != nil {
		c.logger.Debug("namespace fetch failed", "error", err)
		return fallbackNamespaces
	}
	return values
}

// resourceNames returns the cached resource names for the current
// domain, keyed by domain:namespace. An empty list on any failure.
func (c *Completer) resourceNames(ctx context.Context, tokens []string) []string {
	domain := c.resourceDomain(tokens)
	if domain == "" {
		return nil
	}

	namespace := namespaceFromTokens(tokens)
	if namespace == "" {
		namespace = c.session.Namespace()
	}
	if namespace == "" {
		namespace = "default"
	}

	apiClient := c.session.Client()
	if apiClient == nil || !apiClient.Authenticated() {
		return nil
	}

	key := domain + ":" + namespace
	values, err := c.cache.GetOrFetch(ctx, key, func(ctx context.Context) ([]string, error) {
		resp, err := apiClient.Get(ctx, apipath.Resource(domain, namespace, ""))
		if err != nil {
			return nil, err
		}
		return parseItemNames(resp.Data), nil
	})
	if err != nil {
		c.logger.Debug("resource name fetch failed", "domain", domain, "error", err)
		return nil
	}
	return values
}

// resourceDomain finds the domain a --name completion is scoped to:
// the navigation context's domain, or the first token when it resolves
// to an API domain.
func (c *Completer) resourceDomain(tokens []string) string {
	if domain := c.session.ContextPath().Domain(); domain != "" {
		return domain
	}
	if len(tokens) > 0 {
		name := strings.TrimPrefix(tokens[0], "/")
		res := c.resolver.Resolve(name)
		if res.Kind == shelltypes.DomainKindAPI || (res.Kind == shelltypes.DomainKindExtension && res.API != nil) {
			return res.Name
		}
	}
	return ""
}

func namespaceFromTokens(tokens []string) string {
	for i, token := range tokens {
		if token == "--namespace" || token == "--ns" || token == "-ns" {
			if i+1 < len(tokens) {
				return tokens[i+1]
			}
		}
	}
	return ""
}

func asValues(values []string, description string) []shelltypes.Suggestion {
	out := make([]shelltypes.Suggestion, 0, len(values))
	for _, v := range values {
		out = append(out, shelltypes.Suggestion{
			Text: v, Description: description, Category: shelltypes.CategoryValue,
		})
	}
	return out
}

// parseItemNames extracts item names from a list response, accepting
// both {"items":[{"name":...}]} and {"items":[{"metadata":{"name":...}}]}.
func parseItemNames(data []byte) []string {
	var body struct {
		Items []struct {
			Name     string `json:"name"`
			Metadata struct {
				Name string `json:"name"`
			} `json:"metadata"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil
	}

	names := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		name := item.Name
		if name == "" {
			name = item.Metadata.Name
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
