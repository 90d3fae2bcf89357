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
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/h2c-project/h2c-api/internal/objects"
	"github.com/h2c-project/h2c-api/internal/state"
)

func handleListDeployments(s *state.State, _ map[string]string, _ map[string]any, _ url.Values) Response {
	items := make([]any, 0, len(s.Services))
	now := time.Now()
	for _, name := range s.ServiceNames() {
		items = append(items, objects.MakeDeployment(name, s.Services[name], s.Namespace, now))
	}
	return jsonResponse(http.StatusOK, objects.MakeList("Deployment", "apps/v1", items))
}

func handleGetDeployment(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	svc, ok := s.Services[name]
	if !ok {
		return notFound("deployments.apps", name)
	}
	return jsonResponse(http.StatusOK, objects.MakeDeployment(name, svc, s.Namespace, time.Now()))
}

// handlePatchDeployment is the sole supported workload mutation: a
// restart-via-annotation. It always returns 200 with a fresh Deployment
// document, regardless of whether the underlying container could
// actually be restarted — a restart failure is logged, never surfaced
// (§7: clients treat 200 as "request accepted").
func handlePatchDeployment(s *state.State, params map[string]string, _ map[string]any, _ url.Values) Response {
	name := params["name"]
	svc, ok := s.Services[name]
	if !ok {
		return notFound("deployments.apps", name)
	}

	if s.Runtime.Available() {
		if containerID, found := s.Runtime.FindContainer(context.Background(), s.ProjectName, name); found {
			if !s.Runtime.RestartContainer(context.Background(), containerID) {
				logrus.WithField("deployment", name).Warn("could not restart container")
			}
		} else {
			logrus.WithField("deployment", name).Warn("could not restart container")
		}
	}

	now := time.Now()
	deployment := objects.MakeDeployment(name, svc, s.Namespace, now)
	if deployment.Annotations == nil {
		deployment.Annotations = map[string]string{}
	}
	deployment.Annotations["kubectl.kubernetes.io/restartedAt"] = now.UTC().Format(time.RFC3339)
	return jsonResponse(http.StatusOK, deployment)
}
