// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint computes the TypeFingerprint that binds a Helix
// snapshot to the Go type it was saved as.
//
// A fingerprint is the SHA256 digest of a type's canonical name: its
// package import path joined with its type name, or its reflect
// String() form for unnamed and predeclared types (an instantiated
// generic type is named, with its type arguments). The digest is opaque
// and stable across process restarts and compiler versions, but it is
// not stable across package renames or moves -- renaming the package
// that declares T changes every fingerprint computed from T, which is
// by design: a snapshot's bytes are only meaningful in light of the
// exact type that produced them.
//
// [Of] is the entry point for typed callers:
//
//	digest := fingerprint.Of[GameState]()
//
// [OfValue], [CanonicalName], and [OfName] exist for callers that hold
// a value, a reflect.Type, or a name string instead of a type
// parameter. The repair tool carries digests as hex text and reads
// them back with [ParseDigest].
//
// This package has no dependencies on other Helix packages.
package fingerprint
