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
	"sort"

	coordinationv1 "k8s.io/api/coordination/v1"
)

// The Lease table is the only mutable shared state in the server. It is
// guarded by a reader/writer lock: reads (List/Get) take the read lock,
// mutations (Create/Update/Delete) take the write lock, so each
// mutation commits atomically before its response is sent (§5:
// linearizable Lease operations).

// ListLeases returns all stored leases sorted by name, so that two
// calls against an unchanged table return the same order (§3:
// deterministic list order) despite Go's randomized map iteration.
func (s *State) ListLeases() []*coordinationv1.Lease {
	s.leaseMu.RLock()
	defer s.leaseMu.RUnlock()

	names := make([]string, 0, len(s.leases))
	for name := range s.leases {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*coordinationv1.Lease, 0, len(names))
	for _, name := range names {
		out = append(out, s.leases[name])
	}
	return out
}

// GetLease returns the stored lease for name, if any.
func (s *State) GetLease(name string) (*coordinationv1.Lease, bool) {
	s.leaseMu.RLock()
	defer s.leaseMu.RUnlock()

	l, ok := s.leases[name]
	return l, ok
}

// CreateLease stores a new lease under name. It returns false without
// storing anything if a lease with that name already exists
// (absent->present only; present->present is rejected as a Conflict by
// the caller).
func (s *State) CreateLease(name string, lease *coordinationv1.Lease) bool {
	s.leaseMu.Lock()
	defer s.leaseMu.Unlock()

	if _, exists := s.leases[name]; exists {
		return false
	}
	s.leases[name] = lease
	return true
}

// PutLease unconditionally replaces (or creates) the lease under name.
// PUT is absent|present -> present: idempotent create-or-replace, no
// resource-version check.
func (s *State) PutLease(name string, lease *coordinationv1.Lease) {
	s.leaseMu.Lock()
	defer s.leaseMu.Unlock()

	s.leases[name] = lease
}

// DeleteLease removes and returns the lease under name, if present.
func (s *State) DeleteLease(name string) (*coordinationv1.Lease, bool) {
	s.leaseMu.Lock()
	defer s.leaseMu.Unlock()

	l, ok := s.leases[name]
	if ok {
		delete(s.leases, name)
	}
	return l, ok
}
