// Package config loads process configuration from the environment.
//
// Every variable read by dicestats carries the DICESTATS_ prefix; struct tags
// name the variable without it, e.g. `env:"PORT"` reads DICESTATS_PORT.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "DICESTATS_"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	return parse(target, env.Options{Prefix: EnvPrefix})
}

// ParseEnvMap loads configuration from environ instead of the process
// environment. Keys include the prefix.
func ParseEnvMap(target any, environ map[string]string) error {
	return parse(target, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parse(target any, opts env.Options) error {
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
