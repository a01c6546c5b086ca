// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import "errors"

// Sentinel errors returned by this package's loaders. The envelope
// package contributes its own sentinels (ErrBadMagic, ErrMacFailed,
// and so on) for framing- and authentication-level failures; these
// cover the layer above framing.
var (
	// ErrAbsent means the requested file does not exist.
	ErrAbsent = errors.New("snapshot: file does not exist")

	// ErrTypeMismatch means the envelope's type digest does not match
	// the type the caller asked to decode into.
	ErrTypeMismatch = errors.New("snapshot: type digest does not match requested type")

	// ErrCodecFailed means the envelope verified successfully but its
	// payload could not be decompressed or decoded.
	ErrCodecFailed = errors.New("snapshot: payload decode failed")

	// ErrIoFailed means a filesystem operation failed for a reason
	// other than the file being absent.
	ErrIoFailed = errors.New("snapshot: io failure")

	// ErrLoadFailed is returned by LoadOrFail when neither the primary
	// file nor its backup could be loaded and at least one of them
	// exists.
	ErrLoadFailed = errors.New("snapshot: load failed")
)
