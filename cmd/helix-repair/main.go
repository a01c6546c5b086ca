// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// helix-repair is a standalone tool for inspecting and recovering
// Helix snapshot files outside of the application that wrote them.
//
// Two verbs:
//
// export reads a .hlx snapshot and writes its payload out as
// indented JSON next to a hex-encoded type fingerprint, for
// inspection or hand-editing. An uncompressed envelope only gets its
// framing checked (no MAC verification, since plain CBOR is already
// human-inspectable without the signing key); a compressed envelope
// is fully verified and decompressed first.
//
// import reads that JSON back -- tolerating // and /* */ comments,
// so an operator's inline notes survive the round trip -- re-encodes
// the value as CBOR, and writes a fresh, fully signed snapshot file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/helixdb/helix/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		exitCode := 1
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			exitCode = coder.ExitCode()
		}
		os.Exit(exitCode)
	}
}

func run(args []string) error {
	if len(args) > 0 && args[0] == "--version" {
		version.Print("helix-repair")
		return nil
	}

	if len(args) == 0 {
		printTopHelp()
		return usageError("a verb is required")
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "export":
		return runExport(rest)
	case "import":
		return runImport(rest)
	case "-h", "--help", "help":
		printTopHelp()
		return nil
	default:
		printTopHelp()
		return usageErrorf("unknown verb %q", verb)
	}
}

func printTopHelp() {
	fmt.Fprint(os.Stderr, `helix-repair -- inspect and recover Helix snapshot files.

Usage:
  helix-repair export --file state.hlx [--out state.json]
  helix-repair import --file state.json --out state.hlx

Run 'helix-repair <verb> --help' for verb-specific flags.
`)
}

func newFlagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(os.Stderr)
	return flagSet
}
