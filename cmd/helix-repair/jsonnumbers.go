// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "encoding/json"

// normalizeJSONNumbers walks a value decoded with json.Decoder.UseNumber
// and replaces each json.Number with an int64 (when it parses as one)
// or a float64 otherwise. Without this, a value round-tripped through
// JSON would re-encode every integer field as a CBOR float, since
// encoding/json's default number type loses the int/float distinction
// that the original CBOR payload had.
func normalizeJSONNumbers(v any) any {
	switch value := v.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return f
		}
		return value.String()
	case map[string]any:
		for key, element := range value {
			value[key] = normalizeJSONNumbers(element)
		}
		return value
	case []any:
		for i, element := range value {
			value[i] = normalizeJSONNumbers(element)
		}
		return value
	default:
		return v
	}
}
