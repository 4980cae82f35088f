// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/tagwire/lib/dyn"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// ToNative converts a decoded value tree into generic Go values
// suitable for document marshaling: nil, bool, int64/uint64/float64,
// string, []byte, []any, and map[string]any.
//
// Map keys are rendered as strings (documents require it); positional
// struct keys become their decimal index. Enum variants become maps
// with "variant" and, when present, "payload" keys. Duplicate map
// keys keep the last occurrence, matching what a document parser
// would do.
func ToNative(v dyn.Value) (any, error) {
	switch v := v.(type) {
	case dyn.Unit:
		return nil, nil
	case dyn.Bool:
		return bool(v), nil
	case dyn.Number:
		switch v.Tag {
		case wire.Int8, wire.Int16, wire.Int32, wire.Int64:
			return v.Int, nil
		case wire.Uint8, wire.Uint16, wire.Uint32, wire.Uint64:
			return v.Uint, nil
		case wire.Float32, wire.Float64:
			return v.Float, nil
		default:
			return nil, fmt.Errorf("transcode: number has invalid tag %s", v.Tag)
		}
	case dyn.Char:
		return string(rune(v)), nil
	case dyn.String:
		return string(v), nil
	case dyn.Bytes:
		return []byte(v), nil
	case dyn.Option:
		if v.Inner == nil {
			return nil, nil
		}
		return ToNative(v.Inner)
	case dyn.Array:
		elements := make([]any, len(v))
		for i, element := range v {
			converted, err := ToNative(element)
			if err != nil {
				return nil, err
			}
			elements[i] = converted
		}
		return elements, nil
	case dyn.Map:
		entries := make(map[string]any, len(v.Entries))
		for _, entry := range v.Entries {
			key, err := keyString(entry.Key)
			if err != nil {
				return nil, err
			}
			value, err := ToNative(entry.Value)
			if err != nil {
				return nil, err
			}
			entries[key] = value
		}
		return entries, nil
	case dyn.Enum:
		entries := map[string]any{"variant": uint64(v.Variant)}
		if v.Payload != nil {
			payload, err := ToNative(v.Payload)
			if err != nil {
				return nil, err
			}
			entries["payload"] = payload
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("transcode: unhandled value type %T", v)
	}
}

// keyString renders a map key as document-compatible text.
func keyString(v dyn.Value) (string, error) {
	switch v := v.(type) {
	case dyn.String:
		return string(v), nil
	case dyn.Char:
		return string(rune(v)), nil
	case dyn.Bool:
		return strconv.FormatBool(bool(v)), nil
	case dyn.Number:
		switch v.Tag {
		case wire.Int8, wire.Int16, wire.Int32, wire.Int64:
			return strconv.FormatInt(v.Int, 10), nil
		case wire.Uint8, wire.Uint16, wire.Uint32, wire.Uint64:
			return strconv.FormatUint(v.Uint, 10), nil
		case wire.Float32, wire.Float64:
			return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
		}
	}
	return "", fmt.Errorf("transcode: map key %s cannot be a document key", v)
}
