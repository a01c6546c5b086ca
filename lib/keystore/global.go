// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import "encoding/binary"

// These four constants and the salt below are laid little-endian into
// a 32-byte buffer and XORed together to produce the global key. They
// exist in no other form anywhere in the source tree; splitting the
// key across five compiled-in values and an XOR step means a reader
// grepping the binary for a contiguous 32-byte secret will not find
// one.
const (
	globalConstantA uint64 = 0x4e5e1a0c7d3b9f21
	globalConstantB uint64 = 0x8a6f2d4c91e7b035
	globalConstantC uint64 = 0x1f9c3e7a5b2d8061
	globalConstantD uint64 = 0x6b3d8f1e4a9c7205
)

// globalSalt is XORed over the assembled constants. Changing it
// invalidates every portable snapshot ever saved with the previous
// binary -- it must never change within a released version line.
var globalSalt = [32]byte{
	0x7c, 0x41, 0x9e, 0x2a, 0x55, 0xd8, 0x0b, 0x63,
	0xf1, 0x2e, 0x84, 0x9a, 0x37, 0x60, 0xcd, 0x15,
	0xa9, 0x4f, 0x73, 0x0e, 0x8b, 0x21, 0x5c, 0xd6,
	0x39, 0x1d, 0x67, 0xf2, 0x4a, 0x86, 0x0c, 0x93,
}

// assembleGlobalKey lays the four compiled-in constants little-endian
// into a 32-byte buffer and XORs the result with globalSalt.
func assembleGlobalKey() [32]byte {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:8], globalConstantA)
	binary.LittleEndian.PutUint64(key[8:16], globalConstantB)
	binary.LittleEndian.PutUint64(key[16:24], globalConstantC)
	binary.LittleEndian.PutUint64(key[24:32], globalConstantD)

	for i := range key {
		key[i] ^= globalSalt[i]
	}
	return key
}
