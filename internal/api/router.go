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
	"regexp"

	"github.com/h2c-project/h2c-api/internal/state"
)

// route is one entry of the statically-built dispatch table: an HTTP
// method paired with a compiled path pattern and the handler it invokes
// on a match. Routes are tried in declaration order; the first match
// wins (per spec.md §4.4).
type route struct {
	method  string
	pattern *regexp.Regexp
	handler Handler
}

const (
	nsPattern   = `(?P<ns>[^/]+)`
	namePattern = `(?P<name>[^/]+)`
)

// Router holds the compiled route table and the server state it
// dispatches against.
type Router struct {
	state  *state.State
	routes []route
}

// NewRouter builds the route table once and binds it to state. Building
// the table as a plain slice (rather than a decorator-driven global
// list, as the system this was rewritten from used) means the whole
// table is visible and immutable after construction.
func NewRouter(s *state.State) *Router {
	return &Router{
		state:  s,
		routes: buildRoutes(),
	}
}

func buildRoutes() []route {
	return []route{
		{"GET", regexp.MustCompile(`^/version$`), handleVersion},
		{"GET", regexp.MustCompile(`^/api$`), handleAPI},
		{"GET", regexp.MustCompile(`^/api/v1$`), handleAPIv1},
		{"GET", regexp.MustCompile(`^/apis$`), handleAPIs},
		{"GET", regexp.MustCompile(`^/apis/apps/v1$`), handleAppsV1},
		{"GET", regexp.MustCompile(`^/apis/coordination\.k8s\.io/v1$`), handleCoordinationV1},

		{"GET", regexp.MustCompile(`^/api/v1/namespaces$`), handleListNamespaces},
		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `$`), handleGetNamespace},

		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/pods$`), handleListPods},
		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/pods/` + namePattern + `/log$`), handlePodLog},
		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/pods/` + namePattern + `$`), handleGetPod},

		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/services$`), handleListServices},
		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/services/` + namePattern + `$`), handleGetService},

		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/endpoints$`), handleListEndpoints},

		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/configmaps$`), handleListConfigMaps},
		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/configmaps/` + namePattern + `$`), handleGetConfigMap},

		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/secrets$`), handleListSecrets},
		{"GET", regexp.MustCompile(`^/api/v1/namespaces/` + nsPattern + `/secrets/` + namePattern + `$`), handleGetSecret},

		{"GET", regexp.MustCompile(`^/apis/apps/v1/namespaces/` + nsPattern + `/deployments$`), handleListDeployments},
		{"GET", regexp.MustCompile(`^/apis/apps/v1/namespaces/` + nsPattern + `/deployments/` + namePattern + `$`), handleGetDeployment},
		{"PATCH", regexp.MustCompile(`^/apis/apps/v1/namespaces/` + nsPattern + `/deployments/` + namePattern + `$`), handlePatchDeployment},

		{"GET", regexp.MustCompile(`^/apis/coordination\.k8s\.io/v1/namespaces/` + nsPattern + `/leases$`), handleListLeases},
		{"POST", regexp.MustCompile(`^/apis/coordination\.k8s\.io/v1/namespaces/` + nsPattern + `/leases$`), handleCreateLease},
		{"GET", regexp.MustCompile(`^/apis/coordination\.k8s\.io/v1/namespaces/` + nsPattern + `/leases/` + namePattern + `$`), handleGetLease},
		{"PUT", regexp.MustCompile(`^/apis/coordination\.k8s\.io/v1/namespaces/` + nsPattern + `/leases/` + namePattern + `$`), handlePutLease},
		{"DELETE", regexp.MustCompile(`^/apis/coordination\.k8s\.io/v1/namespaces/` + nsPattern + `/leases/` + namePattern + `$`), handleDeleteLease},
	}
}

// match returns the first route matching method and path, and its named
// captures, in declaration order.
func (rt *Router) match(method, path string) (Handler, map[string]string, bool) {
	for _, r := range rt.routes {
		if r.method != method {
			continue
		}
		m := r.pattern.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		params := map[string]string{}
		for i, name := range r.pattern.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			params[name] = m[i]
		}
		return r.handler, params, true
	}
	return nil, nil, false
}
