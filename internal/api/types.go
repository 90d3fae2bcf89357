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

// Package api implements the route table, dispatcher, handlers, and HTTP
// front-end that together impersonate a Kubernetes API server in front
// of one compose project.
package api

import (
	"net/url"

	"github.com/h2c-project/h2c-api/internal/state"
)

// jsonContentType is the default content type for handler responses;
// only pod-log retrieval overrides it (text/plain).
const jsonContentType = "application/json"

// Handler is the shared signature every route entry dispatches to.
// params carries the named path captures (ns, name); body is the parsed
// JSON request body (an empty map for read methods or a malformed/absent
// body); query is the parsed query string.
type Handler func(s *state.State, params map[string]string, body map[string]any, query url.Values) Response

// Response is what a Handler returns: a status code, a body, and an
// explicit content type. Body is marshaled as JSON unless ContentType is
// not "application/json", in which case it must already be []byte and is
// written raw (used only for pod logs).
type Response struct {
	Code        int
	Body        any
	ContentType string
}

func jsonResponse(code int, body any) Response {
	return Response{Code: code, Body: body, ContentType: jsonContentType}
}
