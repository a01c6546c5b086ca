// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot is documented alongside its entry points in
// save.go and load.go. This file holds the package-level overview.
//
// A snapshot is a single typed Go value persisted to one file: encode
// with [codec], sign and frame with [envelope], write atomically with
// [durable], keyed by [keystore]. [Save] drives the whole pipeline for
// a value already in hand; [LoadOrNew] and [LoadOrFail] drive it in
// reverse, differing only in what they do when neither the primary
// file nor its ".bak" sibling can be recovered.
//
// [ExtractRawPayload] and [SavePrebuiltPayload] exist for the repair
// tool, which works with generic CBOR values rather than a concrete
// Go type and so cannot call [Save] or the Load functions directly.
package snapshot
