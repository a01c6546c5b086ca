// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/helixdb/helix/lib/clock"
	"github.com/helixdb/helix/lib/codec"
	"github.com/helixdb/helix/lib/fingerprint"
	"github.com/helixdb/helix/lib/snapshot"
)

func runImport(args []string) error {
	flagSet := newFlagSet("helix-repair import")
	var common commonFlags
	common.register(flagSet)

	var filePath, outPath string
	flagSet.StringVar(&filePath, "file", "", "path to the JSON export to import (required)")
	flagSet.StringVar(&outPath, "out", "", "path to write the recovered .hlx snapshot (required)")

	var snap snapshotFlags
	snap.register(flagSet, defaultSnapshotFlags())

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return usageErrorf("%v", err)
	}

	if filePath == "" {
		return usageError("import requires --file")
	}
	if outPath == "" {
		return usageError("import requires --out")
	}

	cfg, store, err := common.resolve()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	defer store.Close()

	// Flags the operator didn't pass explicitly fall back to the
	// resolved config's defaults rather than the flag package's own
	// zero-value defaults.
	if !flagSet.Changed("compress") {
		snap.compress = cfg.Defaults.Compress
	}
	if !flagSet.Changed("portable") {
		snap.portable = cfg.Defaults.Portable
	}
	if !flagSet.Changed("backup") {
		snap.backup = cfg.Defaults.Backup
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(raw)))
	decoder.UseNumber()
	var document exportDocument
	if err := decoder.Decode(&document); err != nil {
		return fmt.Errorf("parsing %s: %w", filePath, err)
	}
	if document.TypeDigest == "" {
		return usageErrorf("%s is missing a type_digest field", filePath)
	}

	digest, err := fingerprint.ParseDigest(document.TypeDigest)
	if err != nil {
		return usageErrorf("%s: invalid type_digest: %v", filePath, err)
	}

	opts := snap.options()
	payload, err := codec.Encode(normalizeJSONNumbers(document.Value), opts.Compress)
	if err != nil {
		return fmt.Errorf("re-encoding value from %s: %w", filePath, err)
	}

	if err := snapshot.SavePrebuiltPayload(outPath, digest, payload, opts.Compress, store, clock.Real(), opts); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(os.Stderr, "imported %s -> %s (type %s)\n", filePath, outPath, digest)
	return nil
}
