// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

// Options controls how Save writes a snapshot. Go has no default
// parameter values, so callers that want the defaults call
// DefaultOptions and override only the fields that matter to them,
// rather than writing out every field at every call site.
type Options struct {
	// Compress LZ4-compresses the payload. Default true.
	Compress bool

	// Portable signs the envelope with the compiled-in global key
	// instead of this machine's key, so the file can be moved to a
	// different machine and still verify. Default true.
	Portable bool

	// Backup preserves the previous file as path+".bak" before the
	// new one takes its place. Default true.
	Backup bool
}

// DefaultOptions returns the Options Save uses when the caller has no
// reason to deviate: compressed, portable, and backed up.
func DefaultOptions() Options {
	return Options{
		Compress: true,
		Portable: true,
		Backup:   true,
	}
}
