// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/dyn"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR
// with string-keyed maps for any-typed targets.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("transcode: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		// The inbound path decodes into any; the CBOR default map
		// type for that is map[interface{}]interface{}, which the
		// reflection walk would accept but document keys would not.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("transcode: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR renders a decoded value tree as deterministic CBOR.
func ToCBOR(v dyn.Value) ([]byte, error) {
	native, err := ToNative(v)
	if err != nil {
		return nil, err
	}
	out, err := encMode.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("transcode: marshaling CBOR: %w", err)
	}
	return out, nil
}

// FromCBOR parses a CBOR document and encodes it to the wire.
func FromCBOR(data []byte) ([]byte, error) {
	var native any
	if err := decMode.Unmarshal(data, &native); err != nil {
		return nil, fmt.Errorf("transcode: parsing CBOR: %w", err)
	}
	return codec.Encode(native)
}

// DiagnoseCBOR returns the CBOR diagnostic notation (RFC 8949 §8)
// for data. Used by the CLI to show CBOR output in readable form.
func DiagnoseCBOR(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
