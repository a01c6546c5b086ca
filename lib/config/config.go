// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Helix components,
// chiefly the repair tool.
//
// Configuration is loaded from a single file specified by:
//   - HELIX_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
//
// The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/helixdb/helix/lib/keystore"
	"github.com/helixdb/helix/lib/snapshot"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for Helix-based applications.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// KeyDir is the directory the machine key file lives in. See
	// keystore.DefaultDir for the value used when this is empty.
	KeyDir string `yaml:"key_dir"`

	// Defaults are the Save options used when a command does not
	// override them explicitly (e.g. via CLI flags).
	Defaults SnapshotDefaults `yaml:"defaults"`

	// Development, Staging, and Production contain per-environment
	// overrides. The one matching Environment is applied after the
	// base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// SnapshotDefaults mirrors snapshot.Options in a form that round-trips
// through YAML. See ToSnapshotOptions.
type SnapshotDefaults struct {
	Compress bool `yaml:"compress"`
	Portable bool `yaml:"portable"`
	Backup   bool `yaml:"backup"`
}

// ToSnapshotOptions converts d to the snapshot package's Options type.
func (d SnapshotDefaults) ToSnapshotOptions() snapshot.Options {
	return snapshot.Options{
		Compress: d.Compress,
		Portable: d.Portable,
		Backup:   d.Backup,
	}
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	KeyDir   string            `yaml:"key_dir,omitempty"`
	Defaults *SnapshotDefaults `yaml:"defaults,omitempty"`
}

// Default returns the default configuration. These defaults are used
// as a base before loading the config file. They exist primarily to
// ensure all fields have sensible zero-values, not as a fallback --
// the config file is required by Load.
func Default() *Config {
	keyDir, err := keystore.DefaultDir()
	if err != nil {
		// os.UserConfigDir failing means the environment is unusual
		// enough (no $HOME, no $XDG_CONFIG_HOME) that a relative
		// fallback is more useful than propagating an error from a
		// function that returns no error.
		keyDir = ".helix"
	}

	return &Config{
		Environment: Development,
		KeyDir:      keyDir,
		Defaults: SnapshotDefaults{
			Compress: true,
			Portable: true,
			Backup:   true,
		},
	}
}

// Load loads configuration from the HELIX_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit
// path. There are no fallbacks or defaults -- if HELIX_CONFIG is not
// set, this fails. This ensures deterministic, auditable
// configuration with no hidden overrides.
func Load() (*Config, error) {
	configPath := os.Getenv("HELIX_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("HELIX_CONFIG environment variable not set; " +
			"set it to the path of your helix.yaml config file, or use --config")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment
// variables do not override config values -- this ensures
// deterministic, auditable configuration. The only expansion
// performed is ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			// Production defaults to non-portable snapshots: a
			// production deployment's machine key should not leak
			// into a portable file that might be copied elsewhere.
			overrides = &ConfigOverrides{
				Defaults: &SnapshotDefaults{Portable: false, Compress: true, Backup: true},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.KeyDir != "" {
		c.KeyDir = overrides.KeyDir
	}
	if overrides.Defaults != nil {
		c.Defaults = *overrides.Defaults
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.KeyDir = expandVars(c.KeyDir, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.KeyDir == "" {
		errs = append(errs, fmt.Errorf("key_dir is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsureKeyDir creates the configured key directory if it does not exist.
func (c *Config) EnsureKeyDir() error {
	if c.KeyDir == "" {
		return fmt.Errorf("key_dir is not set")
	}
	if err := os.MkdirAll(c.KeyDir, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", c.KeyDir, err)
	}
	return nil
}

// KeyDirAbs returns KeyDir resolved to an absolute path, for
// diagnostics and log messages.
func (c *Config) KeyDirAbs() (string, error) {
	return filepath.Abs(c.KeyDir)
}
