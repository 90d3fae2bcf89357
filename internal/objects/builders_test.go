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
	"testing"
	"time"

	composetypes "github.com/compose-spec/compose-go/v2/types"
	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
)

func TestMakePod_Projection(t *testing.T) {
	svc := composetypes.ServiceConfig{
		Image: "nginx:1.25",
		Ports: []composetypes.ServicePortConfig{
			{Target: 80, Published: "8080", Protocol: "tcp"},
		},
	}

	pod := MakePod("web", svc, "default")

	if pod.Name != "web" || pod.Namespace != "default" {
		t.Fatalf("pod identity = %s/%s, want default/web", pod.Namespace, pod.Name)
	}
	if pod.Status.PodIP != "web" || pod.Status.HostIP != "127.0.0.1" {
		t.Fatalf("pod.Status = %+v, want PodIP=web HostIP=127.0.0.1", pod.Status)
	}
	if pod.Spec.NodeName != nodeName {
		t.Fatalf("NodeName = %q, want %q", pod.Spec.NodeName, nodeName)
	}
	if len(pod.Spec.Containers) != 1 || pod.Spec.Containers[0].Image != "nginx:1.25" {
		t.Fatalf("Containers = %+v, want one container with image nginx:1.25", pod.Spec.Containers)
	}
	if len(pod.Spec.Containers[0].Ports) != 1 || pod.Spec.Containers[0].Ports[0].ContainerPort != 80 {
		t.Fatalf("container ports = %+v, want [{ContainerPort:80}]", pod.Spec.Containers[0].Ports)
	}
	if pod.Status.Phase != corev1.PodRunning {
		t.Fatalf("Phase = %v, want %v", pod.Status.Phase, corev1.PodRunning)
	}
	if len(pod.Status.Conditions) != 1 || pod.Status.Conditions[0].Status != corev1.ConditionTrue {
		t.Fatalf("Conditions = %+v, want one Ready=True condition", pod.Status.Conditions)
	}
}

func TestMakePod_NoImageFallsBackToUnknown(t *testing.T) {
	pod := MakePod("web", composetypes.ServiceConfig{}, "default")
	if pod.Spec.Containers[0].Image != "unknown" {
		t.Fatalf("Image = %q, want %q", pod.Spec.Containers[0].Image, "unknown")
	}
}

func TestMakeService_PortsAndClusterIP(t *testing.T) {
	svc := composetypes.ServiceConfig{
		Ports: []composetypes.ServicePortConfig{{Target: 80}},
	}
	s := MakeService("web", svc, "default")

	if s.Spec.Type != corev1.ServiceTypeClusterIP {
		t.Fatalf("Type = %v, want ClusterIP", s.Spec.Type)
	}
	if s.Spec.ClusterIP != ClusterIP("web") {
		t.Fatalf("ClusterIP = %q, want %q", s.Spec.ClusterIP, ClusterIP("web"))
	}
	if len(s.Spec.Ports) != 1 || s.Spec.Ports[0].Port != 80 || s.Spec.Ports[0].Protocol != corev1.ProtocolTCP {
		t.Fatalf("Ports = %+v, want one TCP port 80", s.Spec.Ports)
	}
	if s.Spec.Ports[0].TargetPort.IntVal != 80 {
		t.Fatalf("TargetPort = %+v, want IntVal=80", s.Spec.Ports[0].TargetPort)
	}
}

func TestMakeEndpoints_NoPortsYieldsEmptySubsets(t *testing.T) {
	ep := MakeEndpoints("web", composetypes.ServiceConfig{}, "default")
	if len(ep.Subsets) != 0 {
		t.Fatalf("Subsets = %+v, want empty", ep.Subsets)
	}
}

func TestMakeEndpoints_WithPorts(t *testing.T) {
	svc := composetypes.ServiceConfig{
		Ports: []composetypes.ServicePortConfig{{Target: 80}, {Target: 443}},
	}
	ep := MakeEndpoints("web", svc, "default")

	if len(ep.Subsets) != 1 {
		t.Fatalf("expected exactly one subset, got %d", len(ep.Subsets))
	}
	subset := ep.Subsets[0]
	if len(subset.Addresses) != 1 || subset.Addresses[0].IP != "web" || subset.Addresses[0].Hostname != "web" {
		t.Fatalf("Addresses = %+v, want one address IP=web Hostname=web", subset.Addresses)
	}
	if len(subset.Ports) != 2 {
		t.Fatalf("Ports = %+v, want 2 entries", subset.Ports)
	}
}

func TestMakeSecret_ValuesMarshalAsBase64OnTheWire(t *testing.T) {
	secret := MakeSecret("creds", map[string]string{"password": "hunter2"}, "default")

	// corev1.Secret.Data is map[string][]byte; encoding/json base64-encodes
	// []byte values automatically. Storing the raw bytes here (rather than
	// pre-encoding) is what makes the wire format correct.
	if string(secret.Data["password"]) != "hunter2" {
		t.Fatalf("Data[password] = %q, want %q", secret.Data["password"], "hunter2")
	}
	if secret.Type != corev1.SecretTypeOpaque {
		t.Fatalf("Type = %v, want Opaque", secret.Type)
	}
}

func TestMakeConfigMap_ValuesAreRaw(t *testing.T) {
	cm := MakeConfigMap("app", map[string]string{"config.yaml": "k: v"}, "default")
	if cm.Data["config.yaml"] != "k: v" {
		t.Fatalf("Data[config.yaml] = %q, want %q", cm.Data["config.yaml"], "k: v")
	}
}

func TestMakeDeployment_SingleReplicaReady(t *testing.T) {
	now := time.Unix(1700000000, 0)
	d := MakeDeployment("web", composetypes.ServiceConfig{Image: "nginx"}, "default", now)

	if d.Spec.Replicas == nil || *d.Spec.Replicas != 1 {
		t.Fatalf("Replicas = %v, want 1", d.Spec.Replicas)
	}
	if d.Status.ReadyReplicas != 1 || d.Status.AvailableReplicas != 1 {
		t.Fatalf("Status = %+v, want 1 ready and available replica", d.Status)
	}
	if d.ObjectMeta.ResourceVersion == "" {
		t.Fatal("expected non-empty ResourceVersion")
	}
}

func TestMakeLease_NilBodyYieldsEmptySpec(t *testing.T) {
	now := time.Unix(1700000000, 0)
	lease := MakeLease("l1", "default", nil, now)

	if lease.Spec.HolderIdentity != nil {
		t.Fatalf("HolderIdentity = %v, want nil", lease.Spec.HolderIdentity)
	}
	if lease.ObjectMeta.CreationTimestamp.IsZero() {
		t.Fatal("expected non-zero CreationTimestamp")
	}
}

func TestMakeLease_CopiesSpecAndMetadataFromBody(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := map[string]any{
		"metadata": map[string]any{
			"labels":      map[string]any{"team": "platform"},
			"annotations": map[string]any{"note": "test"},
		},
		"spec": map[string]any{
			"holderIdentity":       "leader-1",
			"leaseDurationSeconds": float64(15),
			"leaseTransitions":     float64(2),
		},
	}

	lease := MakeLease("l1", "default", body, now)

	if lease.Spec.HolderIdentity == nil || *lease.Spec.HolderIdentity != "leader-1" {
		t.Fatalf("HolderIdentity = %v, want leader-1", lease.Spec.HolderIdentity)
	}
	if lease.Spec.LeaseDurationSeconds == nil || *lease.Spec.LeaseDurationSeconds != 15 {
		t.Fatalf("LeaseDurationSeconds = %v, want 15", lease.Spec.LeaseDurationSeconds)
	}
	if lease.Spec.LeaseTransitions == nil || *lease.Spec.LeaseTransitions != 2 {
		t.Fatalf("LeaseTransitions = %v, want 2", lease.Spec.LeaseTransitions)
	}
	if diff := cmp.Diff(map[string]string{"team": "platform"}, lease.Labels); diff != "" {
		t.Fatalf("Labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"note": "test"}, lease.Annotations); diff != "" {
		t.Fatalf("Annotations mismatch (-want +got):\n%s", diff)
	}
}

func TestClusterIP_StablePerName(t *testing.T) {
	a := ClusterIP("web")
	b := ClusterIP("web")
	if a != b {
		t.Fatalf("ClusterIP(web) = %q and %q, want identical values", a, b)
	}
	if ClusterIP("web") == ClusterIP("db") {
		t.Fatal("expected distinct names to (almost certainly) yield distinct cluster IPs")
	}
}
