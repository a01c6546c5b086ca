// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot is Helix's top-level API: typed Save and Load
// operations that wire together the envelope, codec, durable, and
// keystore packages into one call each.
package snapshot

import (
	"fmt"

	"github.com/helixdb/helix/lib/clock"
	"github.com/helixdb/helix/lib/codec"
	"github.com/helixdb/helix/lib/durable"
	"github.com/helixdb/helix/lib/envelope"
	"github.com/helixdb/helix/lib/fingerprint"
	"github.com/helixdb/helix/lib/keystore"
)

// Save encodes value, signs it, and durably writes it to path. The
// type digest bound into the envelope is computed from T, so a later
// Load call for a different type against the same file fails with
// ErrTypeMismatch rather than silently decoding garbage into the
// wrong struct shape.
func Save[T any](path string, value T, store *keystore.Store, clk clock.Clock, opts Options) error {
	payload, err := codec.Encode(value, opts.Compress)
	if err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}

	return writeEnvelope(path, fingerprint.Of[T](), payload, opts.Compress, store, clk, opts)
}

// SavePrebuiltPayload writes an envelope around a payload that has
// already been through codec.Encode -- the path the repair tool's
// import verb takes, since it reconstructs a payload from a textual
// export without ever holding a live Go value of the original type.
// compressed must describe the payload exactly as it already is;
// unlike Save, this function never compresses on the caller's behalf.
func SavePrebuiltPayload(path string, typeDigest fingerprint.Digest, payload []byte, compressed bool, store *keystore.Store, clk clock.Clock, opts Options) error {
	return writeEnvelope(path, typeDigest, payload, compressed, store, clk, opts)
}

func writeEnvelope(path string, digest fingerprint.Digest, payload []byte, compressed bool, store *keystore.Store, clk clock.Clock, opts Options) error {
	key, err := store.Select(opts.Portable)
	if err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}

	var flags byte
	if compressed {
		flags |= envelope.FlagCompressed
	}
	if opts.Portable {
		flags |= envelope.FlagPortable
	}

	data, err := envelope.Encode(key.Bytes(), digest, clk.Now().UnixNano(), flags, payload)
	if err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}

	if err := durable.WriteFile(path, data, opts.Backup); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}
