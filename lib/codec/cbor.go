// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. The same logical value always
// produces identical bytes, which keeps repeated saves of an
// unchanged value byte-for-byte reproducible.
var encMode cbor.EncMode

// decMode is the CBOR decoder. Unknown fields are silently ignored so
// that a record written by a newer, additive schema still decodes
// under an older reader (the self-describing, additive-schema-evolution
// requirement). Nested container depth is bounded well above any
// realistic snapshot shape, defending against maliciously deep input
// before a single field of untrusted payload bytes is trusted.
var decMode cbor.DecMode

// maxNestedLevels bounds recursion depth during decode. The envelope's
// MAC check happens before decode ever runs, but defense in depth
// costs nothing here.
const maxNestedLevels = 2048

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Types implementing encoding.TextMarshaler serialize as CBOR text
	// strings via MarshalText rather than as opaque byte blobs.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Snapshot payloads never use non-string map keys. When the
		// decode target is interface{} (e.g. the generic record used
		// by the repair tool), this selects map[string]any instead of
		// CBOR's default map[interface{}]interface{}, which is
		// incompatible with encoding/json and most Go code.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
		MaxNestedLevels: maxNestedLevels,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding. The
// result is plain, uncompressed CBOR -- a self-describing byte stream
// decodable by any conforming CBOR implementation, not just this one.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Unknown fields are ignored,
// supporting additive schema evolution: a record written with extra
// optional fields by a newer version of the caller's type still
// decodes cleanly into an older version of that type.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for
// data, a human-readable rendering of a payload.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
