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

package state

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// loadFileResources walks <dataDir>/<kind>/<name>/<key> into
// name -> (key -> file contents). A missing <dataDir>/<kind> directory
// is not an error and yields an empty table. Entries are discovered in
// sorted order; empty subdirectories are elided; unreadable individual
// files are skipped with a warning rather than aborting the whole load.
func loadFileResources(dataDir, kind string, log *logrus.Entry) (map[string]map[string]string, error) {
	resources := make(map[string]map[string]string)

	resourceDir := filepath.Join(dataDir, kind)
	entries, err := os.ReadDir(resourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return resources, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		nameDir := filepath.Join(resourceDir, name)
		keyFiles, err := os.ReadDir(nameDir)
		if err != nil {
			log.WithError(err).Warnf("skipping unreadable %s resource %q", kind, name)
			continue
		}

		keys := make([]string, 0, len(keyFiles))
		for _, kf := range keyFiles {
			if kf.Type().IsRegular() {
				keys = append(keys, kf.Name())
			}
		}
		sort.Strings(keys)

		data := make(map[string]string, len(keys))
		for _, key := range keys {
			content, err := os.ReadFile(filepath.Join(nameDir, key))
			if err != nil {
				log.WithError(err).Warnf("skipping unreadable key %q in %s %q", key, kind, name)
				continue
			}
			data[key] = string(content)
		}
		if len(data) > 0 {
			resources[name] = data
		}
	}

	return resources, nil
}
