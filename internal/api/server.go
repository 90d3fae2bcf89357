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
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/h2c-project/h2c-api/internal/state"
)

// shutdownGrace bounds how long Serve waits for in-flight requests to
// drain once ctx is cancelled before giving up and returning.
const shutdownGrace = 5 * time.Second

// Serve binds a TCP listener on port and serves the dispatcher over it
// until ctx is cancelled, at which point it drains in-flight requests
// and returns nil (§6: a clean shutdown exits 0). If saDir contains
// both tls.crt and tls.key, the listener is wrapped in TLS using that
// certificate (§4.6); otherwise it serves plain HTTP. The decision is
// made once at startup and never revisited.
func Serve(ctx context.Context, s *state.State, port int, saDir string) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.Wrapf(err, "failed to bind port %d", port)
	}

	certFile := filepath.Join(saDir, "tls.crt")
	keyFile := filepath.Join(saDir, "tls.key")
	if fileExists(certFile) && fileExists(keyFile) {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return errors.Wrap(err, "failed to load TLS certificate")
		}
		listener = tls.NewListener(listener, &tls.Config{Certificates: []tls.Certificate{cert}})
		logrus.Info("tls: enabled")
	} else {
		logrus.Info("tls: disabled (no cert found)")
	}

	router := NewRouter(s)
	server := &http.Server{Handler: router}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(listener) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logrus.Info("shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "failed to shut down cleanly")
		}
		return nil
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
