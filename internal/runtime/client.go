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

// Package runtime speaks the narrow slice of the Docker API that h2c-api
// needs: resolving a container by compose labels, fetching its logs,
// and restarting it. The daemon is reached over a Unix-domain socket.
package runtime

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	dockerclient "github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/sirupsen/logrus"
)

// requestTimeout bounds a single daemon round trip. There are no
// per-request retries; a timed-out request is reported to the caller as
// an absent result, same as any other transport failure.
const requestTimeout = 3 * time.Second

// Client is a minimal Docker API client bound to one Unix domain
// socket.
type Client struct {
	cli       *dockerclient.Client
	available bool
	log       *logrus.Entry
}

// NewClient constructs a Client for the given socket path. Availability
// is recorded once, at construction time, by checking whether the path
// exists; handlers consult Available() rather than re-stat'ing the
// socket on every request. The underlying client is built even against
// a missing socket, so a caller that bypasses the Available() check
// still gets a graceful transport error rather than a nil-pointer
// panic. If constructing the underlying client itself fails, the
// returned Client has none and reports itself unavailable.
func NewClient(socketPath string, log *logrus.Entry) *Client {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "runtime-client")

	_, statErr := os.Stat(socketPath)

	cli, err := dockerclient.NewClientWithOpts(
		dockerclient.WithHost("unix://"+socketPath),
		dockerclient.WithAPIVersionNegotiation(),
		dockerclient.WithTimeout(requestTimeout),
	)
	if err != nil {
		log.WithError(err).Warn("failed to construct runtime client")
		return &Client{available: false, log: log}
	}

	return &Client{
		cli:       cli,
		available: statErr == nil,
		log:       log,
	}
}

// Available reports whether the runtime socket existed at construction
// time. Handlers use this to short-circuit log retrieval and restart
// attempts rather than incur the cost of a doomed dial.
func (c *Client) Available() bool {
	return c.available
}

// FindContainer resolves the container ID for a compose project/service
// pair by its compose labels. It returns ("", false) on any transport
// failure, negotiation failure, or empty result set — never an error,
// per §4.1's "unavailable" contract.
func (c *Client) FindContainer(ctx context.Context, project, service string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	args := filters.NewArgs(
		filters.Arg("label", "com.docker.compose.project="+project),
		filters.Arg("label", "com.docker.compose.service="+service),
	)
	containers, err := c.cli.ContainerList(ctx, container.ListOptions{Filters: args})
	if err != nil {
		c.log.WithError(err).Warn("runtime socket unavailable while resolving container")
		return "", false
	}
	if len(containers) == 0 {
		return "", false
	}
	return containers[0].ID, true
}

// GetLogs fetches and demultiplexes a container's combined
// stdout+stderr log stream, tailed to the given number of lines. tail
// is forwarded to the daemon verbatim (including non-numeric or
// negative values — the daemon decides whether to reject it).
func (c *Client) GetLogs(ctx context.Context, containerID, tail string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	r, err := c.cli.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
		Tail:       tail,
	})
	if err != nil {
		c.log.WithError(err).Warn("runtime socket unavailable while fetching logs")
		return nil, false
	}
	defer func() { _ = r.Close() }()

	var out bytes.Buffer
	if _, err := stdcopy.StdCopy(&out, &out, r); err != nil {
		c.log.WithError(err).Warn("failed to demultiplex container log stream")
		return nil, false
	}
	return out.Bytes(), true
}

// RestartContainer asks the daemon to restart a container. It returns
// true only on a successful daemon response; any other outcome,
// including a transport failure, is reported as false and logged —
// never surfaced to the HTTP client (§7: restart failure during a PATCH
// is swallowed).
func (c *Client) RestartContainer(ctx context.Context, containerID string) bool {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.cli.ContainerRestart(ctx, containerID, container.StopOptions{}); err != nil {
		c.log.WithError(err).Warn("runtime socket unavailable while restarting container")
		return false
	}
	return true
}
