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

// Command h2c-api impersonates a Kubernetes control plane in front of a
// compose project: a compose service becomes a Pod, a Service, an
// Endpoints entry, and a Deployment; on-disk directories become
// ConfigMaps and Secrets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/h2c-project/h2c-api/internal/api"
	"github.com/h2c-project/h2c-api/internal/config"
	"github.com/h2c-project/h2c-api/internal/state"
)

// version is the build version reported by --version; overridden at
// release build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "h2c-api",
	Short:   "Fake Kubernetes API server fronting a compose project",
	Version: version,
	RunE:    run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logrus.NewEntry(logrus.StandardLogger())

	ctx, cancel := context.WithCancel(cmd.Context())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
		signal.Stop(sig)
		close(sig)
	}()

	s, err := state.Load(ctx, cfg.ComposePath, cfg.DataDir, cfg.RuntimeSocket, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runtimeStatus := "unavailable"
	if s.Runtime.Available() {
		runtimeStatus = "connected"
	}
	log.WithFields(logrus.Fields{
		"project":    s.ProjectName,
		"services":   len(s.Services),
		"configmaps": len(s.ConfigMaps),
		"secrets":    len(s.Secrets),
		"runtime":    runtimeStatus,
		"port":       cfg.Port,
	}).Info("h2c-api starting")

	return api.Serve(ctx, s, cfg.Port, cfg.ServiceAcctDir)
}
