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

// Package config binds the H2C_* environment variables to a typed
// Config, with the defaults spec.md §6 lists.
package config

import "github.com/spf13/viper"

// Config holds the server's startup configuration, resolved once from
// the environment (and, for local development, an optional .env file)
// before State is loaded.
type Config struct {
	ComposePath    string
	DataDir        string
	Port           int
	RuntimeSocket  string
	ServiceAcctDir string
}

// Load binds every H2C_* variable through viper and returns the resolved
// Config. Missing variables fall back to the listed defaults (§6); there
// is no required configuration.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("h2c")
	v.AutomaticEnv()

	v.SetDefault("compose", "/data/compose.yml")
	v.SetDefault("data_dir", "/data")
	v.SetDefault("port", 6443)
	v.SetDefault("runtime_socket", "/var/run/docker.sock")
	v.SetDefault("sa_dir", "/var/run/secrets/kubernetes.io/serviceaccount")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional local override; absence is not an error

	return &Config{
		ComposePath:    v.GetString("compose"),
		DataDir:        v.GetString("data_dir"),
		Port:           v.GetInt("port"),
		RuntimeSocket:  v.GetString("runtime_socket"),
		ServiceAcctDir: v.GetString("sa_dir"),
	}
}
