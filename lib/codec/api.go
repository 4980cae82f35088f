// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/bureau-foundation/tagwire/lib/sink"
)

// Char is a Unicode scalar that encodes as a Char1..Char4 value
// rather than as an Int32. Go's rune is an int32 alias, so reflection
// cannot tell the two apart; use this type where char semantics are
// wanted.
type Char rune

// Marshaler is implemented by types that encode themselves through
// the engine surface. This is the only way to produce enum-variant
// shapes (EncodeUnitVariant and friends) from Go values.
type Marshaler interface {
	MarshalTagwire(e *Encoder) error
}

// Unmarshaler is implemented by types that decode themselves through
// the engine surface. The implementation typically peeks the tag to
// select a variant before committing to a concrete decode path.
type Unmarshaler interface {
	UnmarshalTagwire(d *Decoder) error
}

// Encode encodes v into a fresh heap-backed buffer using default
// options.
func Encode(v any) ([]byte, error) {
	return EncOptions{}.Encode(v)
}

// Encode encodes v into a fresh heap-backed buffer using these
// options.
func (o EncOptions) Encode(v any) ([]byte, error) {
	var buffer sink.Buffer
	if _, err := o.EncodeToSink(v, &buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeToSink encodes v to s, returning the number of bytes written.
// A sink failure aborts the encode with that failure; there is no
// partial-success outcome.
func EncodeToSink(v any, s sink.Sink) (int, error) {
	return EncOptions{}.EncodeToSink(v, s)
}

// EncodeToSink encodes v to s using these options.
func (o EncOptions) EncodeToSink(v any, s sink.Sink) (int, error) {
	encoder := o.NewEncoder(s)
	if err := encodeAny(encoder, v); err != nil {
		return encoder.Written(), err
	}
	return encoder.Written(), nil
}

// EncodeToBuffer encodes v into the caller-provided buf, returning
// the number of bytes written. If buf is too small the encode fails
// with sink.ErrEndOfBuffer. Use EncodedSize to pre-size buf.
func EncodeToBuffer(v any, buf []byte) (int, error) {
	fixed := sink.NewFixed(buf)
	return EncodeToSink(v, fixed)
}

// EncodedSize measures the encoded size of v by driving the encoder
// against a sink that discards bytes while counting them. The cost is
// a full encode pass without the output.
func EncodedSize(v any) (int, error) {
	var counter sink.Counter
	return EncodeToSink(v, &counter)
}

// Decode decodes one value from data into v, which must be a non-nil
// pointer. The entire input must be consumed: a non-empty remainder
// after the top-level value is a TrailingBytesError.
func Decode(data []byte, v any) error {
	decoder := NewDecoder(data)
	if err := decodeAny(decoder, v); err != nil {
		return err
	}
	if remaining := decoder.Remaining(); remaining > 0 {
		return TrailingBytesError(remaining)
	}
	return nil
}
