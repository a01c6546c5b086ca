// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/helixdb/helix/lib/codec"
	"github.com/helixdb/helix/lib/envelope"
	"github.com/helixdb/helix/lib/fingerprint"
	"github.com/helixdb/helix/lib/keystore"
)

const backupSuffix = ".bak"

// LoadOrNew loads the snapshot at path, falling back to path+".bak"
// if the primary file is missing or fails to verify, and finally
// falling back to a zero value of T if both fail. It never returns an
// error: this is the entry point for application state that should
// simply start fresh rather than block startup on a corrupt file.
// logger receives a warning for every fallback taken; pass
// slog.Default() if the caller has no more specific logger.
func LoadOrNew[T any](path string, store *keystore.Store, logger *slog.Logger) T {
	value, err := tryLoad[T](path, store)
	if err == nil {
		return value
	}
	logger.Warn("snapshot: primary load failed, trying backup", "path", path, "error", err)

	value, backupErr := tryLoad[T](path+backupSuffix, store)
	if backupErr == nil {
		logger.Warn("snapshot: recovered from backup", "path", path)
		return value
	}
	logger.Warn("snapshot: backup load also failed, starting from zero value", "path", path, "error", backupErr)

	var zero T
	return zero
}

// LoadOrFail loads the snapshot at path, falling back to path+".bak"
// on failure, and returns an error only when both attempts fail. The
// returned error wraps ErrAbsent when neither file exists, and
// ErrLoadFailed when at least one file exists but could not be
// verified or decoded -- callers that need to tell "never saved" from
// "saved but unreadable" apart can use errors.Is against either. An
// ErrLoadFailed error also wraps the rejection of the primary file (or
// of the backup, when the primary is absent), so errors.Is matches
// causes such as ErrTypeMismatch or envelope.ErrMacFailed; it never
// wraps ErrAbsent.
func LoadOrFail[T any](path string, store *keystore.Store) (T, error) {
	value, err := tryLoad[T](path, store)
	if err == nil {
		return value, nil
	}

	backupValue, backupErr := tryLoad[T](path+backupSuffix, store)
	if backupErr == nil {
		return backupValue, nil
	}

	var zero T
	if errors.Is(err, ErrAbsent) && errors.Is(backupErr, ErrAbsent) {
		return zero, fmt.Errorf("%w: %s", ErrAbsent, path)
	}
	if errors.Is(err, ErrAbsent) {
		return zero, fmt.Errorf("%w: %s: primary: %v, backup: %w", ErrLoadFailed, path, err, backupErr)
	}
	return zero, fmt.Errorf("%w: %s: primary: %w, backup: %v", ErrLoadFailed, path, err, backupErr)
}

// tryLoad reads, verifies, and decodes the single file at path into a
// T. It never tries a backup itself -- that policy lives in LoadOrNew
// and LoadOrFail, one layer up.
func tryLoad[T any](path string, store *keystore.Store) (T, error) {
	var zero T

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, fmt.Errorf("%w: %s", ErrAbsent, path)
		}
		return zero, fmt.Errorf("%w: reading %s: %v", ErrIoFailed, path, err)
	}

	portable, err := peekPortable(data)
	if err != nil {
		return zero, err
	}

	key, err := store.Select(portable)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrIoFailed, path, err)
	}

	header, payload, err := envelope.Decode(key.Bytes(), data)
	if err != nil {
		return zero, fmt.Errorf("snapshot: %s: %w", path, err)
	}

	if wantDigest := fingerprint.Of[T](); header.TypeDigest != wantDigest {
		return zero, fmt.Errorf("%w: %s", ErrTypeMismatch, path)
	}

	var value T
	if err := codec.Decode(payload, header.Compressed(), &value); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrCodecFailed, path, err)
	}
	return value, nil
}

// peekPortable reads the flags byte to decide which key Select should
// use, without first needing a key to parse the rest of the header.
func peekPortable(data []byte) (bool, error) {
	if len(data) < 7 {
		return false, fmt.Errorf("snapshot: %w", envelope.ErrTooShort)
	}
	return data[6]&envelope.FlagPortable != 0, nil
}
