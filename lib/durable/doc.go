// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package durable provides atomic, fsync-durable file writes for
// Helix's snapshot saves.
//
// [WriteFile] writes to a temporary sibling of the target path,
// flushes it with the platform's strongest available sync primitive,
// and renames it into place. Rename within a single directory is
// atomic on every filesystem Go supports, so a reader opening path at
// any point either sees the complete previous snapshot or the
// complete new one -- never a truncated or torn write, even if the
// process is killed or the machine loses power mid-save.
//
// Setting keepBackup preserves the previous contents of path as
// path+".bak" before the new file takes its place, giving the loader
// a fallback to try when the primary file turns out to be corrupt for
// a reason sync durability cannot prevent, such as disk bit rot or an
// operator truncating the file by hand. With keepBackup, path is
// briefly absent between the backup rename and the final rename; a
// crash in that window leaves the previous snapshot only at
// path+".bak".
//
// On Darwin, plain fsync only reaches the drive's write cache; a
// build-tag-specific fullSync uses F_FULLFSYNC there and falls back
// to fsync elsewhere. See durable_darwin.go and durable_other.go.
package durable
