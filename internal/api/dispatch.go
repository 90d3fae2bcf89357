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
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/h2c-project/h2c-api/internal/objects"
)

var writeMethods = map[string]bool{http.MethodPost: true, http.MethodPut: true, http.MethodPatch: true}

// ServeHTTP implements the dispatch sequence from spec.md §4.4: strip a
// trailing slash, parse the body for write methods (tolerating a
// malformed or absent body as an empty map), reject watch requests
// before routing, find the first matching route, and serialize the
// handler's response.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "" {
		path = "/"
	}

	body := parseBody(r)

	query := r.URL.Query()
	if strings.EqualFold(query.Get("watch"), "true") {
		rt.respond(w, jsonResponse(http.StatusNotImplemented,
			objects.MakeStatus(http.StatusNotImplemented, objects.ReasonNotImplemented, "watch not supported by h2c-api")))
		logRequest(r.Method, path, http.StatusNotImplemented, start)
		return
	}

	handler, params, ok := rt.match(r.Method, path)
	if !ok {
		resp := jsonResponse(http.StatusNotImplemented,
			objects.MakeStatus(http.StatusNotImplemented, objects.ReasonNotImplemented, r.Method+" "+path+" not implemented"))
		rt.respond(w, resp)
		logRequest(r.Method, path, resp.Code, start)
		return
	}

	resp := handler(rt.state, params, body, query)
	rt.respond(w, resp)
	logRequest(r.Method, path, resp.Code, start)
}

// parseBody reads and decodes the request body for write methods. A
// malformed or absent body yields an empty map, not an error — write
// handlers decide for themselves whether required fields are missing.
func parseBody(r *http.Request) map[string]any {
	if !writeMethods[r.Method] || r.ContentLength == 0 {
		return map[string]any{}
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil || len(raw) == 0 {
		return map[string]any{}
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return map[string]any{}
	}
	return body
}

func (rt *Router) respond(w http.ResponseWriter, resp Response) {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = jsonContentType
	}

	var data []byte
	if contentType == jsonContentType {
		encoded, err := json.Marshal(resp.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		data = encoded
	} else if raw, ok := resp.Body.([]byte); ok {
		data = raw
	} else {
		data = []byte{}
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.Code)
	_, _ = w.Write(data)
}

func logRequest(method, path string, code int, start time.Time) {
	logrus.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   code,
		"duration": time.Since(start),
	}).Info("request")
}
