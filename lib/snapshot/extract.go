// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/helixdb/helix/lib/codec"
	"github.com/helixdb/helix/lib/envelope"
	"github.com/helixdb/helix/lib/fingerprint"
	"github.com/helixdb/helix/lib/keystore"
)

const (
	rawHeaderSize = 51 // magic(4) + version(2) + flags(1) + digest(32) + timestamp(8) + payload_len(4)
	rawMacSize    = 32
)

// ExtractRawPayload recovers a snapshot's type digest and plain,
// uncompressed CBOR bytes for the repair tool's export verb, without
// requiring the caller to know the original Go type.
//
// Uncompressed envelopes take a fast path: only framing is validated
// (magic, version, flags, payload length consistency), not the HMAC
// tag. This is a deliberate trade-off -- plain CBOR is already
// human-inspectable without the signing key, so skipping verification
// here does not expose anything a text editor opening the file
// wouldn't. Compressed envelopes take the fully verified path, since
// decompression requires going through the normal envelope.Decode
// call anyway.
func ExtractRawPayload(path string, store *keystore.Store) (fingerprint.Digest, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fingerprint.Digest{}, nil, fmt.Errorf("%w: %s", ErrAbsent, path)
		}
		return fingerprint.Digest{}, nil, fmt.Errorf("%w: reading %s: %v", ErrIoFailed, path, err)
	}

	if len(data) < rawHeaderSize+rawMacSize {
		return fingerprint.Digest{}, nil, fmt.Errorf("snapshot: %s: %w", path, envelope.ErrTooShort)
	}
	if string(data[0:4]) != envelope.Magic {
		return fingerprint.Digest{}, nil, fmt.Errorf("snapshot: %s: %w", path, envelope.ErrBadMagic)
	}

	flags := data[6]
	compressed := flags&envelope.FlagCompressed != 0
	portable := flags&envelope.FlagPortable != 0

	if !compressed {
		if version := binary.LittleEndian.Uint16(data[4:6]); version != envelope.CurrentVersion {
			return fingerprint.Digest{}, nil, fmt.Errorf("snapshot: %s: %w", path, envelope.ErrBadVersion)
		}
		if flags&^(envelope.FlagCompressed|envelope.FlagPortable) != 0 {
			return fingerprint.Digest{}, nil, fmt.Errorf("snapshot: %s: %w", path, envelope.ErrBadFlags)
		}
		payloadLen := int32(binary.LittleEndian.Uint32(data[47:51]))
		if payloadLen < 0 || rawHeaderSize+int(payloadLen)+rawMacSize != len(data) {
			return fingerprint.Digest{}, nil, fmt.Errorf("snapshot: %s: %w", path, envelope.ErrFramingMismatch)
		}

		var digest fingerprint.Digest
		copy(digest[:], data[7:39])
		payload := data[rawHeaderSize : rawHeaderSize+int(payloadLen)]
		return digest, payload, nil
	}

	key, err := store.Select(portable)
	if err != nil {
		return fingerprint.Digest{}, nil, fmt.Errorf("%w: %s: %v", ErrIoFailed, path, err)
	}

	header, payload, err := envelope.Decode(key.Bytes(), data)
	if err != nil {
		return fingerprint.Digest{}, nil, fmt.Errorf("snapshot: %s: %w", path, err)
	}

	plain, err := codec.Decompress(payload)
	if err != nil {
		return fingerprint.Digest{}, nil, fmt.Errorf("%w: %s: %v", ErrCodecFailed, path, err)
	}

	return header.TypeDigest, plain, nil
}
