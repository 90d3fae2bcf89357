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
	"context"
	"os"
	"path/filepath"
	"testing"

	coordinationv1 "k8s.io/api/coordination/v1"
)

func writeComposeFixture(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "compose.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write compose fixture: %v", err)
	}
	return path
}

func TestLoad_ProjectNameDefault(t *testing.T) {
	composePath := writeComposeFixture(t, "compose.yml", `
services:
  web:
    image: nginx
    ports:
      - "8080:80/tcp"
`)
	dataDir := filepath.Dir(composePath)

	s, err := Load(context.Background(), composePath, dataDir, "/nonexistent.sock", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ProjectName != "default" {
		t.Fatalf("ProjectName = %q, want %q", s.ProjectName, "default")
	}
	if s.Namespace != "default" {
		t.Fatalf("Namespace = %q, want %q", s.Namespace, "default")
	}
	svc, ok := s.Services["web"]
	if !ok {
		t.Fatalf("expected service %q in parsed project", "web")
	}
	if svc.Image != "nginx" {
		t.Fatalf("Image = %q, want %q", svc.Image, "nginx")
	}
}

func TestLoad_NamedProject(t *testing.T) {
	composePath := writeComposeFixture(t, "compose.yml", `
name: demo
services:
  web:
    image: nginx
`)
	s, err := Load(context.Background(), composePath, filepath.Dir(composePath), "/nonexistent.sock", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ProjectName != "demo" {
		t.Fatalf("ProjectName = %q, want %q", s.ProjectName, "demo")
	}
}

func TestLoad_MissingComposeFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yml"), t.TempDir(), "/nonexistent.sock", nil)
	if err == nil {
		t.Fatal("expected error for missing compose file")
	}
}

func TestLoad_FileResources(t *testing.T) {
	dataDir := t.TempDir()
	mustWriteFile(t, filepath.Join(dataDir, "secrets", "creds", "password"), "hunter2")
	mustWriteFile(t, filepath.Join(dataDir, "configmaps", "app", "config.yaml"), "k: v")
	// Empty resource directory must be elided.
	if err := os.MkdirAll(filepath.Join(dataDir, "secrets", "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	composePath := writeComposeFixture(t, "compose.yml", "services:\n  web:\n    image: nginx\n")
	// Reuse writeComposeFixture's tmp dir only for the compose file;
	// point the data dir at our separately constructed fixture.
	composePath = filepath.Join(filepath.Dir(composePath), "compose.yml")

	s, err := Load(context.Background(), composePath, dataDir, "/nonexistent.sock", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := s.Secrets["creds"]["password"]; got != "hunter2" {
		t.Fatalf("Secrets[creds][password] = %q, want %q", got, "hunter2")
	}
	if got := s.ConfigMaps["app"]["config.yaml"]; got != "k: v" {
		t.Fatalf("ConfigMaps[app][config.yaml] = %q, want %q", got, "k: v")
	}
	if _, ok := s.Secrets["empty"]; ok {
		t.Fatal("expected empty secret directory to be elided")
	}
}

func TestLoad_MissingResourceDirectoriesAreEmpty(t *testing.T) {
	composePath := writeComposeFixture(t, "compose.yml", "services:\n  web:\n    image: nginx\n")
	s, err := Load(context.Background(), composePath, filepath.Dir(composePath), "/nonexistent.sock", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.ConfigMaps) != 0 || len(s.Secrets) != 0 {
		t.Fatalf("expected empty resource tables, got configmaps=%v secrets=%v", s.ConfigMaps, s.Secrets)
	}
}

func mustWriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLeaseLifecycle(t *testing.T) {
	s := &State{leases: make(map[string]*coordinationv1.Lease)}

	if _, ok := s.GetLease("l1"); ok {
		t.Fatal("expected no lease before creation")
	}

	l1 := &coordinationv1.Lease{}
	if !s.CreateLease("l1", l1) {
		t.Fatal("expected first create to succeed")
	}
	if s.CreateLease("l1", l1) {
		t.Fatal("expected second create of the same name to be rejected")
	}

	got, ok := s.GetLease("l1")
	if !ok || got != l1 {
		t.Fatal("expected GetLease to return the stored lease")
	}

	l1b := &coordinationv1.Lease{}
	s.PutLease("l1", l1b)
	got, ok = s.GetLease("l1")
	if !ok || got != l1b {
		t.Fatal("expected PutLease to replace the stored lease")
	}

	deleted, ok := s.DeleteLease("l1")
	if !ok || deleted != l1b {
		t.Fatal("expected DeleteLease to return the prior document")
	}
	if _, ok := s.DeleteLease("l1"); ok {
		t.Fatal("expected second delete to report absent")
	}
	if _, ok := s.GetLease("l1"); ok {
		t.Fatal("expected lease to be gone after delete")
	}
}

func TestServiceNamesAreSorted(t *testing.T) {
	composePath := writeComposeFixture(t, "compose.yml", `
services:
  web:
    image: nginx
  api:
    image: busybox
  db:
    image: postgres
`)
	s, err := Load(context.Background(), composePath, filepath.Dir(composePath), "/nonexistent.sock", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := s.ServiceNames()
	want := []string{"api", "db", "web"}
	if len(got) != len(want) {
		t.Fatalf("ServiceNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ServiceNames() = %v, want %v", got, want)
		}
	}
}
