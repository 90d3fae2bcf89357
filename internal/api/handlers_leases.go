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
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/h2c-project/h2c-api/internal/objects"
	"github.com/h2c-project/h2c-api/internal/state"
)

func handleListLeases(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	leases := s.ListLeases()
	items := make([]any, 0, len(leases))
	for _, l := range leases {
		items = append(items, l)
	}
	return jsonResponse(http.StatusOK, objects.MakeList("Lease", "coordination.k8s.io/v1", items))
}

func handleGetLease(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	lease, ok := s.GetLease(name)
	if !ok {
		return notFound("leases.coordination.k8s.io", name)
	}
	return jsonResponse(http.StatusOK, lease)
}

// handleCreateLease implements the absent->present POST transition
// (§4.5 Lease state machine): missing metadata.name is BadRequest, an
// existing name is Conflict.
func handleCreateLease(s *state.State, _ map[string]string, body map[string]any, _ url.Values) Response {
	name := leaseNameFromBody(body)
	if name == "" {
		return jsonResponse(http.StatusBadRequest,
			objects.MakeStatus(http.StatusBadRequest, objects.ReasonBadRequest, "metadata.name is required"))
	}

	lease := objects.MakeLease(name, s.Namespace, body, time.Now())
	if !s.CreateLease(name, lease) {
		return jsonResponse(http.StatusConflict,
			objects.MakeStatus(http.StatusConflict, objects.ReasonConflict, fmt.Sprintf("leases.coordination.k8s.io %q already exists", name)))
	}
	return jsonResponse(http.StatusCreated, lease)
}

// handlePutLease implements the idempotent absent|present->present PUT
// transition; there is no resource-version check.
func handlePutLease(s *state.State, params map[string]string, body map[string]any, _ url.Values) Response {
	name := params["name"]
	lease := objects.MakeLease(name, s.Namespace, body, time.Now())
	s.PutLease(name, lease)
	return jsonResponse(http.StatusOK, lease)
}

func handleDeleteLease(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	lease, ok := s.DeleteLease(name)
	if !ok {
		return notFound("leases.coordination.k8s.io", name)
	}
	return jsonResponse(http.StatusOK, lease)
}

func leaseNameFromBody(body map[string]any) string {
	meta, ok := body["metadata"].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := meta["name"].(string)
	return name
}
