// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Encode serializes v to CBOR and, when compress is true, runs the
// result through an LZ4 frame (a sequence of independently
// decompressible blocks, rather than one monolithic block). The
// envelope records which mode was used in its flags byte so Decode
// can be told which path to take without guessing from content.
func Encode(v any, compress bool) ([]byte, error) {
	plain, err := Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal: %w", err)
	}
	if !compress {
		return plain, nil
	}

	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)
	if _, err := writer.Write(plain); err != nil {
		return nil, fmt.Errorf("codec: lz4 compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("codec: lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode. compressed must match the mode the data was
// encoded with (the envelope recovers this from its verified flags
// byte before calling Decode, so by the time it reaches here it is
// trusted).
func Decode(data []byte, compressed bool, v any) error {
	if !compressed {
		if err := Unmarshal(data, v); err != nil {
			return fmt.Errorf("codec: unmarshal: %w", err)
		}
		return nil
	}

	plain, err := Decompress(data)
	if err != nil {
		return err
	}
	if err := Unmarshal(plain, v); err != nil {
		return fmt.Errorf("codec: unmarshal: %w", err)
	}
	return nil
}

// Decompress reverses the LZ4 framing step alone, without touching
// CBOR. The repair tool uses this to recover a snapshot's raw CBOR
// bytes (for diagnostic export) without needing a Go type to decode
// into.
func Decompress(data []byte) ([]byte, error) {
	reader := lz4.NewReader(bytes.NewReader(data))
	plain, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("codec: lz4 decompress: %w", err)
	}
	return plain, nil
}
