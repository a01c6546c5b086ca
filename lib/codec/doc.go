// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is Helix's ObjectCodec: it turns a typed Go value into
// a self-describing byte string and back, with an optional compressed
// mode.
//
// [Marshal] and [Unmarshal] use CBOR with Core Deterministic Encoding
// (RFC 8949 §4.2), which gives additive schema evolution for free --
// appending an optional field to a struct does not break decoding of
// records written before the field existed, because unknown fields are
// ignored and missing ones decode to their zero value.
//
// [Encode] and [Decode] add an LZ4-compressed mode on top of the plain
// CBOR stream. The snapshot package calls Encode once at save time
// with the caller's chosen compression mode, and Decode once at load
// time with the mode recovered from the envelope's verified flags
// byte -- by the time Decode runs, the compression bit has already
// been authenticated, so it is safe to branch on.
//
// Struct tag rule: use `cbor:"name"` tags for fields private to this
// engine's on-disk records. Never mix `cbor` and `json` tags on the
// same field -- the repair tool's textual export goes through a
// generic CBOR-to-any decode, not through the Go struct, so field
// naming for that path comes from the tag the type declares here, not
// from a parallel json representation.
package codec
