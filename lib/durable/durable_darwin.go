// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin

package durable

import (
	"os"

	"golang.org/x/sys/unix"
)

// fullSync flushes file to the physical disk. On Darwin, f.Sync()
// (fsync) only pushes data to the drive's write cache, not to the
// platter -- F_FULLFSYNC is the only way to get a real barrier. When
// the filesystem does not support it (some network and virtual
// filesystems return ENOTSUP), fall back to the weaker os-level sync
// rather than fail the write outright.
func fullSync(f *os.File) error {
	if err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err != nil {
		return f.Sync()
	}
	return nil
}
