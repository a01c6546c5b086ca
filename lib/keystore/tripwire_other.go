// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package keystore

// debuggerAttached always reports false on platforms without a cheap
// /proc-based tracer check. The tripwire is a speed bump on Linux, not
// a guarantee on any platform; its absence elsewhere does not change
// Helix's actual security boundary.
func debuggerAttached() bool {
	return false
}
