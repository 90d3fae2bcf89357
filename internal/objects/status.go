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

package objects

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// Status reasons. Unlike the source this is rewritten from, each kind of
// failure carries its own semantically correct reason rather than
// "NotFound" for everything — callers should assert on HTTP status code,
// not on this string, for compatibility with the legacy behavior.
const (
	ReasonNotFound       = "NotFound"
	ReasonConflict       = "Conflict"
	ReasonBadRequest     = "BadRequest"
	ReasonInternalError  = "InternalError"
	ReasonNotImplemented = "NotImplemented"
)

// MakeStatus builds a failure Status document.
func MakeStatus(code int32, reason, message string) *metav1.Status {
	return &metav1.Status{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Status"},
		Status:   metav1.StatusFailure,
		Reason:   metav1.StatusReason(reason),
		Message:  message,
		Code:     code,
	}
}

// MakeList builds a list envelope for kind/apiVersion with the given
// items, per §3's invariant that list envelopes always carry
// metadata.resourceVersion = "1". Every list response (Pod, Service,
// Endpoints, ConfigMap, Secret, Deployment, Namespace, Lease) is built
// with this one envelope; the typed k8s.io/api *List structs are not used.
func MakeList(kind, apiVersion string, items []any) map[string]any {
	if items == nil {
		items = []any{}
	}
	return map[string]any{
		"kind":       kind + "List",
		"apiVersion": apiVersion,
		"metadata":   map[string]string{"resourceVersion": "1"},
		"items":      items,
	}
}
