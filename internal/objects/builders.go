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

// Package objects projects compose services and file-resource tables
// into the Kubernetes resource documents h2c-api serves. Every builder
// here is a pure function of its inputs: nothing is cached, nothing is
// read from disk or the network, and the same inputs always produce the
// same document (modulo the process-lifetime-scoped resourceVersion
// timestamps §3 calls for).
package objects

import (
	"strconv"
	"time"

	composetypes "github.com/compose-spec/compose-go/v2/types"
	appsv1 "k8s.io/api/apps/v1"
	coordinationv1 "k8s.io/api/coordination/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// nodeName is the single virtual node every pod is reported scheduled
// to — there is no real scheduler behind this server.
const nodeName = "h2c-node"

// containerPorts extracts the container-facing port numbers from a
// compose service. compose-go's loader has already normalized whatever
// shape the YAML used (bare integer, "host:container[/proto]" string,
// or a target/published mapping) into ServicePortConfig.Target, so no
// manual string parsing is needed here.
func containerPorts(svc composetypes.ServiceConfig) []int32 {
	ports := make([]int32, 0, len(svc.Ports))
	for _, p := range svc.Ports {
		ports = append(ports, int32(p.Target))
	}
	return ports
}

// MakeNamespace builds the Namespace document for name.
func MakeNamespace(name string) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: map[string]string{"kubernetes.io/metadata.name": name},
		},
		Status: corev1.NamespaceStatus{Phase: corev1.NamespaceActive},
	}
}

// MakePod builds the Pod document for a compose service. The pod's IP
// (status.podIP) equals the service name, relying on compose's own
// DNS contract (service name resolves to the container) rather than
// any IP address h2c-api invents.
func MakePod(name string, svc composetypes.ServiceConfig, namespace string) *corev1.Pod {
	ports := make([]corev1.ContainerPort, 0, len(svc.Ports))
	for _, p := range containerPorts(svc) {
		ports = append(ports, corev1.ContainerPort{ContainerPort: p})
	}

	return &corev1.Pod{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Pod"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    map[string]string{"app": name},
		},
		Spec: corev1.PodSpec{
			NodeName: nodeName,
			Containers: []corev1.Container{{
				Name:  name,
				Image: imageOrUnknown(svc.Image),
				Ports: ports,
			}},
		},
		Status: corev1.PodStatus{
			Phase:  corev1.PodRunning,
			PodIP:  name,
			HostIP: "127.0.0.1",
			Conditions: []corev1.PodCondition{
				{Type: corev1.PodReady, Status: corev1.ConditionTrue},
			},
		},
	}
}

// MakeService builds the Service document for a compose service. The
// cluster IP is derived by ClusterIP; see §9 for why it need not match
// any particular scheme beyond per-process stability.
func MakeService(name string, svc composetypes.ServiceConfig, namespace string) *corev1.Service {
	ports := make([]corev1.ServicePort, 0, len(svc.Ports))
	for _, p := range containerPorts(svc) {
		ports = append(ports, corev1.ServicePort{
			Port:       p,
			TargetPort: intOrStringFromInt32(p),
			Protocol:   corev1.ProtocolTCP,
		})
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    map[string]string{"app": name},
		},
		Spec: corev1.ServiceSpec{
			Type:      corev1.ServiceTypeClusterIP,
			ClusterIP: ClusterIP(name),
			Ports:     ports,
			Selector:  map[string]string{"app": name},
		},
	}
}

// MakeEndpoints builds the Endpoints document for a compose service. A
// service with no declared ports yields an empty subsets list, per §4.3.
func MakeEndpoints(name string, svc composetypes.ServiceConfig, namespace string) *corev1.Endpoints {
	ports := containerPorts(svc)
	ep := &corev1.Endpoints{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Endpoints"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
	if len(ports) == 0 {
		return ep
	}

	epPorts := make([]corev1.EndpointPort, 0, len(ports))
	for _, p := range ports {
		epPorts = append(epPorts, corev1.EndpointPort{Port: p, Protocol: corev1.ProtocolTCP})
	}
	ep.Subsets = []corev1.EndpointSubset{{
		Addresses: []corev1.EndpointAddress{{IP: name, Hostname: name}},
		Ports:     epPorts,
	}}
	return ep
}

// MakeConfigMap builds the ConfigMap document for a file-resource entry.
// Values are emitted raw, unlike Secret values.
func MakeConfigMap(name string, data map[string]string, namespace string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Data:       data,
	}
}

// MakeSecret builds the Secret document for a file-resource entry.
// corev1.Secret.Data is a map[string][]byte, which encoding/json
// base64-encodes on the wire automatically — so the raw bytes are
// stored here unencoded, and the JSON output carries exactly the
// base64(value) the spec requires.
func MakeSecret(name string, data map[string]string, namespace string) *corev1.Secret {
	raw := make(map[string][]byte, len(data))
	for k, v := range data {
		raw[k] = []byte(v)
	}
	return &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Type:       corev1.SecretTypeOpaque,
		Data:       raw,
	}
}

// MakeDeployment builds the Deployment document for a compose service.
func MakeDeployment(name string, svc composetypes.ServiceConfig, namespace string, now time.Time) *appsv1.Deployment {
	replicas := int32(1)
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            name,
			Namespace:       namespace,
			Labels:          map[string]string{"app": name},
			Annotations:     map[string]string{},
			ResourceVersion: strconv.FormatInt(now.Unix(), 10),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": name}},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      map[string]string{"app": name},
					Annotations: map[string]string{},
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:  name,
						Image: imageOrUnknown(svc.Image),
					}},
				},
			},
		},
		Status: appsv1.DeploymentStatus{
			Replicas:          1,
			ReadyReplicas:     1,
			AvailableReplicas: 1,
		},
	}
}

// MakeLease builds a Lease document, copying spec/labels/annotations out
// of the request body when present. body may be nil for a PUT that
// supplies no body.
func MakeLease(name, namespace string, body map[string]any, now time.Time) *coordinationv1.Lease {
	lease := &coordinationv1.Lease{
		TypeMeta: metav1.TypeMeta{APIVersion: "coordination.k8s.io/v1", Kind: "Lease"},
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         namespace,
			ResourceVersion:   strconv.FormatInt(now.Unix(), 10),
			CreationTimestamp: metav1.NewTime(now.UTC()),
		},
		Spec: coordinationv1.LeaseSpec{},
	}

	if body == nil {
		return lease
	}
	if spec, ok := body["spec"].(map[string]any); ok {
		applyLeaseSpec(lease, spec)
	}
	if meta, ok := body["metadata"].(map[string]any); ok {
		if labels, ok := meta["labels"].(map[string]any); ok {
			lease.Labels = stringMap(labels)
		}
		if annotations, ok := meta["annotations"].(map[string]any); ok {
			lease.Annotations = stringMap(annotations)
		}
	}
	return lease
}

func applyLeaseSpec(lease *coordinationv1.Lease, spec map[string]any) {
	if holder, ok := spec["holderIdentity"].(string); ok {
		lease.Spec.HolderIdentity = &holder
	}
	if id, ok := spec["leaseDurationSeconds"].(float64); ok {
		v := int32(id)
		lease.Spec.LeaseDurationSeconds = &v
	}
	if transitions, ok := spec["leaseTransitions"].(float64); ok {
		v := int32(transitions)
		lease.Spec.LeaseTransitions = &v
	}
}

func stringMap(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func intOrStringFromInt32(v int32) intstr.IntOrString {
	return intstr.FromInt32(v)
}

func imageOrUnknown(image string) string {
	if image == "" {
		return "unknown"
	}
	return image
}
