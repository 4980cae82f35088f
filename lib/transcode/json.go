// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/dyn"
)

// ToJSON renders a decoded value tree as indented JSON.
func ToJSON(v dyn.Value) ([]byte, error) {
	native, err := ToNative(v)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(native, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("transcode: marshaling JSON: %w", err)
	}
	return out, nil
}

// FromJSON parses a JSON document and encodes it to the wire. JSON's
// type model maps through the standard reflection rules: objects
// become maps with sorted keys, arrays become sequences, numbers
// become Float64 (JSON has only one number type), null becomes Unit.
func FromJSON(data []byte) ([]byte, error) {
	var native any
	if err := json.Unmarshal(data, &native); err != nil {
		return nil, fmt.Errorf("transcode: parsing JSON: %w", err)
	}
	return codec.Encode(native)
}

// FromJSONC is FromJSON for JSON with comments and trailing commas.
func FromJSONC(data []byte) ([]byte, error) {
	return FromJSON(jsonc.ToJSON(data))
}
