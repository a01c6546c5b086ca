// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !darwin

package durable

import "os"

// fullSync flushes file via the standard fsync syscall, which is
// sufficient on Linux and other platforms that do not buffer writes
// in a drive-level cache the kernel cannot flush.
func fullSync(f *os.File) error {
	return f.Sync()
}
