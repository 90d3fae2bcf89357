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

import (
	"fmt"
	"hash/fnv"
)

// clusterIPPrefix is the /16 range Service cluster IPs are synthesized
// within, per §3's invariant.
const clusterIPPrefix = "10.96"

// ClusterIP derives a stable-per-process IP address for a service name
// within 10.96.0.0/16. The derivation is a local detail (§9's Open
// Question): it need only be stable for a given (service name, process
// invocation), not across restarts or implementations.
func ClusterIP(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	sum := h.Sum32()

	third := (sum >> 8) % 256
	fourth := (sum % 254) + 1
	return fmt.Sprintf("%s.%d.%d", clusterIPPrefix, third, fourth)
}
