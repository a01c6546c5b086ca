// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope is documented in envelope.go; this file exists so
// the package doc comment has a conventional home separate from the
// Encode/Decode implementation it describes.
//
// # Layout
//
//	offset  size  field
//	0       4     magic ("%HLX")
//	4       2     version (uint16, little-endian)
//	6       1     flags
//	7       32    type digest (SHA256 of the canonical type name)
//	39      8     timestamp (int64, little-endian, Unix nanoseconds)
//	47      4     payload length (int32, little-endian)
//	51      N     payload
//	51+N    32    HMAC-SHA256 tag
//
// The tag is computed over version, flags, type digest, timestamp,
// and payload -- never magic, which exists to let a reader sniff the
// file format before it has a key, and never payload length, which
// framing validation already ties to the actual data size before the
// MAC is ever checked.
package envelope
