// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope implements Helix's on-disk framing: a fixed header
// binding a payload to a type and a timestamp, followed by the
// payload and an HMAC-SHA256 tag over everything but the magic bytes
// and the payload length.
package envelope

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/helixdb/helix/lib/fingerprint"
)

// Magic identifies a Helix envelope. It is the first four bytes of
// every file this package writes.
const Magic = "%HLX"

// CurrentVersion is the envelope layout version this package writes.
// Decode rejects any other value -- there has only ever been one
// layout, so a mismatch means the file was written by something else
// or by a Helix version from before or after a future format change.
const CurrentVersion uint16 = 1

const (
	magicSize      = 4
	versionSize    = 2
	flagsSize      = 1
	digestSize     = 32
	timestampSize  = 8
	payloadLenSize = 4
	macSize        = 32

	// headerSize is the size of everything before the payload:
	// magic, version, flags, type digest, timestamp, payload length.
	headerSize = magicSize + versionSize + flagsSize + digestSize + timestampSize + payloadLenSize

	// macFieldsOffset and macFieldsEnd bound the version+flags+digest+
	// timestamp run within an encoded envelope: right after magic and
	// right before payload_len. The MAC input is this run followed by
	// the payload -- magic and payload_len are both excluded, the
	// former so it can double as a quick format sniff without
	// touching key material, the latter because it is redundant with
	// len(payload) once framing has already been validated.
	macFieldsOffset = magicSize
	macFieldsEnd    = magicSize + versionSize + flagsSize + digestSize + timestampSize
)

// Flag bits stored in the header's single flags byte. Flags is
// included in the MAC, so a bit flipped in transit is detected the
// same way a corrupted payload would be.
const (
	// FlagCompressed marks the payload as LZ4-frame compressed CBOR,
	// rather than plain CBOR.
	FlagCompressed byte = 1 << 0

	// FlagPortable marks the envelope as signed with the compiled-in
	// global key rather than this machine's key, making it verifiable
	// after being copied to a different machine.
	FlagPortable byte = 1 << 1

	validFlags = FlagCompressed | FlagPortable
)

// Sentinel errors identify why Decode rejected an envelope. Callers
// distinguish these with errors.Is; the snapshot package maps them
// onto its own load-failure taxonomy.
var (
	ErrTooShort        = errors.New("envelope: data shorter than header and MAC")
	ErrBadMagic        = errors.New("envelope: bad magic bytes")
	ErrBadVersion      = errors.New("envelope: unsupported version")
	ErrBadFlags        = errors.New("envelope: unrecognized flag bits set")
	ErrFramingMismatch = errors.New("envelope: payload length does not match data size")
	ErrMacFailed       = errors.New("envelope: MAC verification failed")
)

// Header is the parsed form of an envelope's framing fields.
type Header struct {
	Version    uint16
	Flags      byte
	TypeDigest fingerprint.Digest
	Timestamp  int64
	PayloadLen int32
}

// Compressed reports whether FlagCompressed is set.
func (h Header) Compressed() bool { return h.Flags&FlagCompressed != 0 }

// Portable reports whether FlagPortable is set.
func (h Header) Portable() bool { return h.Flags&FlagPortable != 0 }

// Encode assembles a complete envelope: header, payload, and an
// HMAC-SHA256 tag keyed by key. The tag covers version, flags, the
// type digest, the timestamp, and the payload -- magic and the
// payload length are excluded, so either field can be inspected (and,
// for magic, relied on for format sniffing) without first holding the
// signing key.
func Encode(key []byte, typeDigest fingerprint.Digest, timestamp int64, flags byte, payload []byte) ([]byte, error) {
	if flags&^validFlags != 0 {
		return nil, fmt.Errorf("envelope: encode: %w: 0x%02x", ErrBadFlags, flags)
	}

	total := headerSize + len(payload) + macSize
	buf := make([]byte, total)

	copy(buf[0:magicSize], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], CurrentVersion)
	buf[6] = flags
	copy(buf[7:7+digestSize], typeDigest[:])
	binary.LittleEndian.PutUint64(buf[39:47], uint64(timestamp))
	binary.LittleEndian.PutUint32(buf[47:51], uint32(len(payload)))
	copy(buf[headerSize:headerSize+len(payload)], payload)

	mac := computeMAC(key, buf[macFieldsOffset:macFieldsEnd], payload)
	copy(buf[headerSize+len(payload):], mac)

	return buf, nil
}

// Decode parses and verifies data, returning the header and a slice
// of data holding the payload (not copied). The returned payload
// slice aliases data and must not be retained past data's lifetime if
// the caller intends to reuse or zero the backing array.
func Decode(key []byte, data []byte) (Header, []byte, error) {
	if len(data) < headerSize+macSize {
		return Header{}, nil, ErrTooShort
	}

	if string(data[0:magicSize]) != Magic {
		return Header{}, nil, ErrBadMagic
	}

	header := Header{
		Version:    binary.LittleEndian.Uint16(data[4:6]),
		Flags:      data[6],
		Timestamp:  int64(binary.LittleEndian.Uint64(data[39:47])),
		PayloadLen: int32(binary.LittleEndian.Uint32(data[47:51])),
	}
	copy(header.TypeDigest[:], data[7:7+digestSize])

	if header.Version != CurrentVersion {
		return Header{}, nil, fmt.Errorf("%w: got %d, want %d", ErrBadVersion, header.Version, CurrentVersion)
	}
	if header.Flags&^validFlags != 0 {
		return Header{}, nil, fmt.Errorf("%w: 0x%02x", ErrBadFlags, header.Flags)
	}
	if header.PayloadLen <= 0 || headerSize+int(header.PayloadLen)+macSize != len(data) {
		return Header{}, nil, ErrFramingMismatch
	}

	payload := data[headerSize : headerSize+int(header.PayloadLen)]
	tag := data[headerSize+int(header.PayloadLen):]

	expected := computeMAC(key, data[macFieldsOffset:macFieldsEnd], payload)
	if subtle.ConstantTimeCompare(expected, tag) != 1 {
		return Header{}, nil, ErrMacFailed
	}

	return header, payload, nil
}

func computeMAC(key []byte, fields []byte, payload []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(fields)
	mac.Write(payload)
	return mac.Sum(nil)
}
