// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
)

// Digest is a SHA256 fingerprint binding a snapshot to the Go type it
// was saved as. It is stored in the envelope header's type_digest
// field and checked on load before the payload is ever decoded.
type Digest [32]byte

// Of returns the fingerprint for type T: the SHA256 digest of T's
// canonical name. T is never instantiated -- only its reflect.Type is
// used, so an interface type is named as itself rather than as the
// dynamic type of a nil value.
func Of[T any]() Digest {
	return OfName(CanonicalName(reflect.TypeOf((*T)(nil)).Elem()))
}

// OfValue returns the fingerprint of v's dynamic type. Prefer [Of]
// when the type is known at the call site; OfValue serves callers that
// hold a value of the type rather than the type itself. A nil
// interface value has no dynamic type and fingerprints as "<nil>".
func OfValue(v any) Digest {
	return OfName(CanonicalName(reflect.TypeOf(v)))
}

// CanonicalName returns the stable, fully-qualified name used to
// fingerprint t: its package import path joined with its type name.
// For an instantiated generic type the name includes the type
// arguments (MyMap[int]). Unnamed and predeclared types
// (map[string]any, []Record, int) have no package path, so
// CanonicalName falls back to t.String(), which still distinguishes
// them from one another.
func CanonicalName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if path := t.PkgPath(); path != "" && t.Name() != "" {
		return path + "." + t.Name()
	}
	return t.String()
}

// OfName computes the fingerprint of an already-resolved canonical
// name. Exposed for callers that hold a canonical name string rather
// than a live reflect.Type.
func OfName(name string) Digest {
	return sha256.Sum256([]byte(name))
}

// Format returns the hex-encoded string representation of d. This is
// the form used in repair-tool JSON output and log messages.
func (d Digest) Format() string {
	return hex.EncodeToString(d[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return d.Format()
}

// ParseDigest parses a hex-encoded fingerprint string back into a
// Digest. Returns an error if the string is not a valid 64-character
// hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("fingerprint: parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("fingerprint: digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
