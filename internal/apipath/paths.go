// Package apipath builds API request paths from domain names. The
// pluralization here is deliberately naive: it mirrors the upstream
// API's naming convention (underscores become hyphens, an "s" is
// always appended) and must not be replaced with a general English
// pluralizer.
package apipath

import "strings"

// Namespaces is the namespace listing endpoint.
const Namespaces = "/api/web/namespaces"

// Whoami is the current-user endpoint.
const Whoami = "/api/web/custom/namespace/system/whoami"

// QuotaUsage is the subscription quota usage endpoint.
const QuotaUsage = "/api/web/namespaces/system/quota/usage"

// AddonServices is the subscribed add-on services endpoint.
const AddonServices = "/api/config/namespaces/system/addon_services"

// PluralResource converts a canonical domain name to its resource path
// segment: underscores to hyphens plus an unconditional "s" suffix.
// dns -> dnss and virtual_k8s -> virtual-k8ss are correct per the API
// convention.
func PluralResource(domain string) string {
	return strings.ReplaceAll(domain, "_", "-") + "s"
}

// Resource builds the collection or item path for a domain in a
// namespace. name may be empty for collection operations.
func Resource(domain, namespace, name string) string {
	path := "/api/config/namespaces/" + namespace + "/" + PluralResource(domain)
	if name != "" {
		path += "/" + name
	}
	return path
}
