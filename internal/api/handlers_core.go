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
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/h2c-project/h2c-api/internal/objects"
	"github.com/h2c-project/h2c-api/internal/state"
)

// notFound builds the 404 Status document for an unknown resource name,
// carrying the resource plural and the quoted name per spec.md §4.5.
func notFound(plural, name string) Response {
	return jsonResponse(http.StatusNotFound,
		objects.MakeStatus(http.StatusNotFound, objects.ReasonNotFound, fmt.Sprintf("%s %q not found", plural, name)))
}

var wellKnownNamespaces = []string{"default", "kube-system"}

func handleListNamespaces(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	names := []string{s.Namespace}
	for _, n := range wellKnownNamespaces {
		if n != s.Namespace {
			names = append(names, n)
		}
	}
	items := make([]any, 0, len(names))
	for _, n := range names {
		items = append(items, objects.MakeNamespace(n))
	}
	return jsonResponse(http.StatusOK, objects.MakeList("Namespace", "v1", items))
}

func handleGetNamespace(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	ns := params["ns"]
	if ns == s.Namespace || ns == "default" || ns == "kube-system" {
		return jsonResponse(http.StatusOK, objects.MakeNamespace(ns))
	}
	return notFound("namespaces", ns)
}

func handleListPods(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	items := make([]any, 0, len(s.Services))
	for _, name := range s.ServiceNames() {
		items = append(items, objects.MakePod(name, s.Services[name], s.Namespace))
	}
	return jsonResponse(http.StatusOK, objects.MakeList("Pod", "v1", items))
}

func handleGetPod(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	svc, ok := s.Services[name]
	if !ok {
		return notFound("pods", name)
	}
	return jsonResponse(http.StatusOK, objects.MakePod(name, svc, s.Namespace))
}

func handlePodLog(s *state.State, params map[string]string, _ map[string]any, query url.Values) Response {
	name := params["name"]
	if _, ok := s.Services[name]; !ok {
		return notFound("pods", name)
	}
	if !s.Runtime.Available() {
		return jsonResponse(http.StatusNotImplemented,
			objects.MakeStatus(http.StatusNotImplemented, objects.ReasonNotImplemented, "runtime socket not mounted"))
	}

	containerID, ok := s.Runtime.FindContainer(context.Background(), s.ProjectName, name)
	if !ok {
		return jsonResponse(http.StatusNotFound,
			objects.MakeStatus(http.StatusNotFound, objects.ReasonNotFound, fmt.Sprintf("container for pod %q not found", name)))
	}

	tail := query.Get("tailLines")
	if tail == "" {
		tail = "100"
	}
	logs, ok := s.Runtime.GetLogs(context.Background(), containerID, tail)
	if !ok {
		return jsonResponse(http.StatusInternalServerError,
			objects.MakeStatus(http.StatusInternalServerError, objects.ReasonInternalError, "failed to retrieve logs"))
	}
	return Response{Code: http.StatusOK, Body: logs, ContentType: "text/plain"}
}

func handleListServices(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	items := make([]any, 0, len(s.Services))
	for _, name := range s.ServiceNames() {
		items = append(items, objects.MakeService(name, s.Services[name], s.Namespace))
	}
	return jsonResponse(http.StatusOK, objects.MakeList("Service", "v1", items))
}

func handleGetService(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	svc, ok := s.Services[name]
	if !ok {
		return notFound("services", name)
	}
	return jsonResponse(http.StatusOK, objects.MakeService(name, svc, s.Namespace))
}

func handleListEndpoints(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	items := make([]any, 0, len(s.Services))
	for _, name := range s.ServiceNames() {
		items = append(items, objects.MakeEndpoints(name, s.Services[name], s.Namespace))
	}
	return jsonResponse(http.StatusOK, objects.MakeList("Endpoints", "v1", items))
}

func handleListConfigMaps(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	items := make([]any, 0, len(s.ConfigMaps))
	for _, name := range s.ConfigMapNames() {
		items = append(items, objects.MakeConfigMap(name, s.ConfigMaps[name], s.Namespace))
	}
	return jsonResponse(http.StatusOK, objects.MakeList("ConfigMap", "v1", items))
}

func handleGetConfigMap(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	data, ok := s.ConfigMaps[name]
	if !ok {
		return notFound("configmaps", name)
	}
	return jsonResponse(http.StatusOK, objects.MakeConfigMap(name, data, s.Namespace))
}

func handleListSecrets(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	items := make([]any, 0, len(s.Secrets))
	for _, name := range s.SecretNames() {
		items = append(items, objects.MakeSecret(name, s.Secrets[name], s.Namespace))
	}
	return jsonResponse(http.StatusOK, objects.MakeList("Secret", "v1", items))
}

func handleGetSecret(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	data, ok := s.Secrets[name]
	if !ok {
		return notFound("secrets", name)
	}
	return jsonResponse(http.StatusOK, objects.MakeSecret(name, data, s.Namespace))
}
