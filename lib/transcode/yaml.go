// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/dyn"
)

// ToYAML renders a decoded value tree as YAML.
func ToYAML(v dyn.Value) ([]byte, error) {
	native, err := ToNative(v)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("transcode: marshaling YAML: %w", err)
	}
	return out, nil
}

// FromYAML parses a YAML document and encodes it to the wire. YAML
// integers arrive as Go int and encode as Int64; floats as Float64.
func FromYAML(data []byte) ([]byte, error) {
	var native any
	if err := yaml.Unmarshal(data, &native); err != nil {
		return nil, fmt.Errorf("transcode: parsing YAML: %w", err)
	}
	return codec.Encode(native)
}
