// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/helixdb/helix/lib/config"
	"github.com/helixdb/helix/lib/keystore"
	"github.com/helixdb/helix/lib/snapshot"
)

// commonFlags holds the flags shared by both verbs: where to load
// configuration from and where to find the machine key.
type commonFlags struct {
	configPath string
	keyDir     string
}

func (f *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.configPath, "config", "", "path to a helix.yaml config file (default: $HELIX_CONFIG, or built-in defaults)")
	flagSet.StringVar(&f.keyDir, "key-dir", "", "override the configured machine key directory")
}

// resolve loads configuration (explicit --config, then $HELIX_CONFIG,
// then built-in defaults) and opens the keystore it points at.
func (f *commonFlags) resolve() (*config.Config, *keystore.Store, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if f.keyDir != "" {
		cfg.KeyDir = f.keyDir
	}

	store := keystore.New(cfg.KeyDir)
	return cfg, store, nil
}

func (f *commonFlags) loadConfig() (*config.Config, error) {
	if f.configPath != "" {
		return config.LoadFile(f.configPath)
	}
	if cfg, err := config.Load(); err == nil {
		return cfg, nil
	}
	return config.Default(), nil
}

// snapshotFlags mirrors snapshot.Options as CLI flags, seeded from a
// Config's defaults so a bare `--compress` or `--portable` toggle
// only needs to flip the one bit the operator cares about.
type snapshotFlags struct {
	compress bool
	portable bool
	backup   bool
}

func (f *snapshotFlags) register(flagSet *pflag.FlagSet, defaults config.SnapshotDefaults) {
	f.compress, f.portable, f.backup = defaults.Compress, defaults.Portable, defaults.Backup
	flagSet.BoolVar(&f.compress, "compress", f.compress, "LZ4-compress the written payload")
	flagSet.BoolVar(&f.portable, "portable", f.portable, "sign with the portable global key instead of the machine key")
	flagSet.BoolVar(&f.backup, "backup", f.backup, "preserve the previous file as a .bak sibling")
}

func (f *snapshotFlags) options() snapshot.Options {
	return snapshot.Options{Compress: f.compress, Portable: f.portable, Backup: f.backup}
}

// defaultSnapshotFlags seeds flag registration before a config has
// been resolved; actual defaults are applied from the resolved
// config's Defaults after parsing, for flags the operator left unset.
func defaultSnapshotFlags() config.SnapshotDefaults {
	opts := snapshot.DefaultOptions()
	return config.SnapshotDefaults{Compress: opts.Compress, Portable: opts.Portable, Backup: opts.Backup}
}
