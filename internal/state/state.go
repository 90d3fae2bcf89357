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

// Package state loads the server's source of truth once at startup: the
// compose document, the configmaps/secrets file-resource directories, and
// an empty Lease table. Nothing here is reloaded after startup.
package state

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/compose-spec/compose-go/v2/cli"
	composetypes "github.com/compose-spec/compose-go/v2/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	coordinationv1 "k8s.io/api/coordination/v1"
	"gopkg.in/yaml.v3"

	"github.com/h2c-project/h2c-api/internal/runtime"
)

// defaultProjectName is used when the compose document has no top-level
// "name" key.
const defaultProjectName = "default"

// State is the server's process-wide source of truth: the parsed compose
// project, the file-resource tables, and the mutable Lease map. It is
// built once by Load and then only ever mutated via the Lease methods.
type State struct {
	ProjectName string
	Namespace   string
	Services    map[string]composetypes.ServiceConfig

	ConfigMaps map[string]map[string]string
	Secrets    map[string]map[string]string

	Runtime *runtime.Client

	leaseMu sync.RWMutex
	leases  map[string]*coordinationv1.Lease
}

// composeNamePeek is used to read only the top-level "name" key before
// handing the file to compose-go, so the project name default
// ("default") is decided by h2c-api rather than by compose-go's own
// directory-basename fallback.
type composeNamePeek struct {
	Name string `yaml:"name"`
}

// Load parses the compose file once, walks the configmaps/ and secrets/
// subdirectories of dataDir, and returns a State with an empty Lease
// table and a runtime client bound to socketPath. A missing or
// unparsable compose file is a fatal error, as is a resource directory
// that exists but cannot be read; missing resource directories yield
// empty tables.
func Load(ctx context.Context, composePath, dataDir, socketPath string, log *logrus.Entry) (*State, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	raw, err := os.ReadFile(composePath)
	if err != nil {
		return nil, errors.Wrapf(err, "compose file %q not found", composePath)
	}

	var peek composeNamePeek
	if err := yaml.Unmarshal(raw, &peek); err != nil {
		return nil, errors.Wrapf(err, "failed to parse compose file %q", composePath)
	}
	projectName := peek.Name
	if projectName == "" {
		projectName = defaultProjectName
	}

	opts, err := cli.NewProjectOptions(
		[]string{composePath},
		cli.WithName(projectName),
		cli.WithWorkingDirectory(workingDir(composePath)),
		cli.WithOsEnv,
		cli.WithDotEnv,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build compose project options")
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse compose document")
	}

	configmaps, err := loadFileResources(dataDir, "configmaps", log)
	if err != nil {
		return nil, err
	}
	secrets, err := loadFileResources(dataDir, "secrets", log)
	if err != nil {
		return nil, err
	}

	services := make(map[string]composetypes.ServiceConfig, len(project.Services))
	for _, svc := range project.Services {
		services[svc.Name] = svc
	}

	return &State{
		ProjectName: projectName,
		Namespace:   projectName,
		Services:    services,
		ConfigMaps:  configmaps,
		Secrets:     secrets,
		Runtime:     runtime.NewClient(socketPath, log),
		leases:      make(map[string]*coordinationv1.Lease),
	}, nil
}

// ServiceNames returns the compose service names in sorted order, the
// deterministic iteration order §3 requires for list responses.
func (s *State) ServiceNames() []string {
	names := make([]string, 0, len(s.Services))
	for name := range s.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConfigMapNames returns configmap resource names in sorted order.
func (s *State) ConfigMapNames() []string {
	return sortedKeys(s.ConfigMaps)
}

// SecretNames returns secret resource names in sorted order.
func (s *State) SecretNames() []string {
	return sortedKeys(s.Secrets)
}

func sortedKeys(m map[string]map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// workingDir returns the directory containing the compose file, used as
// the project's working directory for bind-mount and env-file
// resolution during parsing.
func workingDir(composePath string) string {
	return filepath.Dir(composePath)
}
