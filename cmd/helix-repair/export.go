// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/helixdb/helix/lib/codec"
	"github.com/helixdb/helix/lib/snapshot"
)

// exportDocument is the JSON shape written by export and read back by
// import. TypeDigest records which Go type produced the snapshot so
// import can recreate the same fingerprint without the original type
// in scope -- the repair tool only ever sees generic CBOR values.
type exportDocument struct {
	TypeDigest string `json:"type_digest"`
	Value      any    `json:"value"`
}

func runExport(args []string) error {
	flagSet := newFlagSet("helix-repair export")
	var common commonFlags
	common.register(flagSet)

	var filePath, outPath string
	flagSet.StringVar(&filePath, "file", "", "path to the .hlx snapshot to export (required)")
	flagSet.StringVar(&outPath, "out", "", "path to write the JSON export (default: <file> with .hlx replaced by .json)")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return usageErrorf("%v", err)
	}

	if filePath == "" {
		return usageError("export requires --file")
	}
	if outPath == "" {
		outPath = defaultExportPath(filePath)
	}

	_, store, err := common.resolve()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	defer store.Close()

	digest, payload, err := snapshot.ExtractRawPayload(filePath, store)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}

	var value any
	if err := codec.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("decoding payload of %s: %w", filePath, err)
	}

	document := exportDocument{TypeDigest: digest.Format(), Value: value}
	out, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(outPath, out, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(os.Stderr, "exported %s -> %s (type %s)\n", filePath, outPath, digest)
	return nil
}

// defaultExportPath swaps a trailing .hlx extension for .json, or
// appends .json when filePath has some other or no extension.
func defaultExportPath(filePath string) string {
	if strings.HasSuffix(filePath, ".hlx") {
		return strings.TrimSuffix(filePath, ".hlx") + ".json"
	}
	return filePath + ".json"
}
