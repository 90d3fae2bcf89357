/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"net/http"
	"net/url"

	"github.com/h2c-project/h2c-api/internal/state"
)

// serverVersion is the static advertised version; §4.5 fixes this
// exactly so standard clients' bootstrap version checks succeed.
const serverVersion = "v1.28.0-h2c"

func handleVersion(_ *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	return jsonResponse(http.StatusOK, map[string]any{
		"major":      "1",
		"minor":      "28",
		"gitVersion": serverVersion,
		"platform":   "linux/amd64",
	})
}

func handleAPI(_ *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	return jsonResponse(http.StatusOK, map[string]any{
		"kind":     "APIVersions",
		"versions": []string{"v1"},
		"serverAddressByClientCIDRs": []map[string]string{
			{"clientCIDR": "0.0.0.0/0", "serverAddress": "h2c-api:6443"},
		},
	})
}

func handleAPIv1(_ *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	resources := []map[string]any{
		{"name": "namespaces", "namespaced": false, "kind": "Namespace", "verbs": []string{"get", "list"}},
		{"name": "pods", "namespaced": true, "kind": "Pod", "verbs": []string{"get", "list"}},
		{"name": "pods/log", "namespaced": true, "kind": "Pod", "verbs": []string{"get"}},
		{"name": "services", "namespaced": true, "kind": "Service", "verbs": []string{"get", "list"}},
		{"name": "endpoints", "namespaced": true, "kind": "Endpoints", "verbs": []string{"get", "list"}},
		{"name": "configmaps", "namespaced": true, "kind": "ConfigMap", "verbs": []string{"get", "list"}},
		{"name": "secrets", "namespaced": true, "kind": "Secret", "verbs": []string{"get", "list"}},
	}
	return jsonResponse(http.StatusOK, map[string]any{
		"kind": "APIResourceList", "groupVersion": "v1", "resources": resources,
	})
}

func handleAPIs(_ *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	return jsonResponse(http.StatusOK, map[string]any{
		"kind": "APIGroupList",
		"groups": []map[string]any{
			{
				"name":             "apps",
				"versions":         []map[string]string{{"groupVersion": "apps/v1", "version": "v1"}},
				"preferredVersion": map[string]string{"groupVersion": "apps/v1", "version": "v1"},
			},
			{
				"name":             "coordination.k8s.io",
				"versions":         []map[string]string{{"groupVersion": "coordination.k8s.io/v1", "version": "v1"}},
				"preferredVersion": map[string]string{"groupVersion": "coordination.k8s.io/v1", "version": "v1"},
			},
		},
	})
}

func handleAppsV1(_ *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	resources := []map[string]any{
		{"name": "deployments", "namespaced": true, "kind": "Deployment", "verbs": []string{"get", "list", "patch", "update"}},
	}
	return jsonResponse(http.StatusOK, map[string]any{
		"kind": "APIResourceList", "groupVersion": "apps/v1", "resources": resources,
	})
}

func handleCoordinationV1(_ *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	resources := []map[string]any{
		{"name": "leases", "namespaced": true, "kind": "Lease", "verbs": []string{"create", "delete", "get", "list", "update"}},
	}
	return jsonResponse(http.StatusOK, map[string]any{
		"kind": "APIResourceList", "groupVersion": "coordination.k8s.io/v1", "resources": resources,
	})
}
