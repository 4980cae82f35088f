// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dyn

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// Value is one node of a decoded value tree. The concrete types are
// Unit, Bool, Number, Char, String, Bytes, Option, Array, Map, and
// Enum; the interface is sealed. Every Value knows how to encode
// itself back to the wire.
type Value interface {
	codec.Marshaler
	fmt.Stringer

	// isValue seals the interface.
	isValue()
}

// Unit is the empty value.
type Unit struct{}

func (Unit) isValue()       {}
func (Unit) String() string { return "()" }

// MarshalTagwire emits the Unit tag.
func (Unit) MarshalTagwire(e *codec.Encoder) error {
	return e.EncodeUnit()
}

// Bool is a boolean value.
type Bool bool

func (Bool) isValue()         {}
func (v Bool) String() string { return fmt.Sprintf("Bool(%t)", bool(v)) }

// MarshalTagwire emits BoolTrue or BoolFalse.
func (v Bool) MarshalTagwire(e *codec.Encoder) error {
	return e.EncodeBool(bool(v))
}

// Number is a numeric value of one of the ten supported shapes. Tag
// records the wire shape (wire.Int8 through wire.Float64); exactly
// one of Int, Uint, or Float holds the value, selected by the tag's
// signedness.
type Number struct {
	Tag   wire.Tag
	Int   int64
	Uint  uint64
	Float float64
}

func (Number) isValue() {}

func (v Number) String() string {
	switch v.Tag {
	case wire.Int8, wire.Int16, wire.Int32, wire.Int64:
		return fmt.Sprintf("%s(%d)", v.Tag, v.Int)
	case wire.Uint8, wire.Uint16, wire.Uint32, wire.Uint64:
		return fmt.Sprintf("%s(%d)", v.Tag, v.Uint)
	case wire.Float32, wire.Float64:
		return fmt.Sprintf("%s(%g)", v.Tag, v.Float)
	default:
		return fmt.Sprintf("Number(invalid tag %s)", v.Tag)
	}
}

// MarshalTagwire re-emits the number under its original width and
// signedness.
func (v Number) MarshalTagwire(e *codec.Encoder) error {
	switch v.Tag {
	case wire.Int8:
		return e.EncodeInt8(int8(v.Int))
	case wire.Int16:
		return e.EncodeInt16(int16(v.Int))
	case wire.Int32:
		return e.EncodeInt32(int32(v.Int))
	case wire.Int64:
		return e.EncodeInt64(v.Int)
	case wire.Uint8:
		return e.EncodeUint8(uint8(v.Uint))
	case wire.Uint16:
		return e.EncodeUint16(uint16(v.Uint))
	case wire.Uint32:
		return e.EncodeUint32(uint32(v.Uint))
	case wire.Uint64:
		return e.EncodeUint64(v.Uint)
	case wire.Float32:
		return e.EncodeFloat32(float32(v.Float))
	case wire.Float64:
		return e.EncodeFloat64(v.Float)
	default:
		return fmt.Errorf("dyn: number has invalid tag %s", v.Tag)
	}
}

// Char is a single Unicode scalar.
type Char rune

func (Char) isValue()         {}
func (v Char) String() string { return fmt.Sprintf("'%c'", rune(v)) }

// MarshalTagwire emits the scalar under a Char1..Char4 tag.
func (v Char) MarshalTagwire(e *codec.Encoder) error {
	return e.EncodeChar(rune(v))
}

// String is a text value. Always an owned copy of the input bytes.
type String string

func (String) isValue()         {}
func (v String) String() string { return fmt.Sprintf("String(%q)", string(v)) }

// MarshalTagwire emits a length-prefixed string regardless of
// whether the source was length-prefixed or end-marked; the two forms
// are equivalent in content.
func (v String) MarshalTagwire(e *codec.Encoder) error {
	return e.EncodeString(string(v))
}

// Bytes is a raw byte value. When produced by Decode it aliases the
// input buffer.
type Bytes []byte

func (Bytes) isValue()         {}
func (v Bytes) String() string { return fmt.Sprintf("Bytes(%x)", []byte(v)) }

// MarshalTagwire emits a length-prefixed byte array.
func (v Bytes) MarshalTagwire(e *codec.Encoder) error {
	return e.EncodeBytes(v)
}

// Option is an optional value: nil Inner is absence.
type Option struct {
	Inner Value
}

func (Option) isValue() {}

func (v Option) String() string {
	if v.Inner == nil {
		return "None"
	}
	return fmt.Sprintf("Some(%s)", v.Inner)
}

// MarshalTagwire emits None, or Some followed by the inner value.
func (v Option) MarshalTagwire(e *codec.Encoder) error {
	if v.Inner == nil {
		return e.EncodeNone()
	}
	if err := e.EncodeSome(); err != nil {
		return err
	}
	return v.Inner.MarshalTagwire(e)
}

// Array is an ordered sequence of values.
type Array []Value

func (Array) isValue() {}

func (v Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, element := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(element.String())
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalTagwire emits a known-length sequence.
func (v Array) MarshalTagwire(e *codec.Encoder) error {
	if err := e.BeginSeq(len(v)); err != nil {
		return err
	}
	for _, element := range v {
		if err := element.MarshalTagwire(e); err != nil {
			return err
		}
	}
	return nil
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

// Map is an ordered sequence of entries. Duplicate keys are allowed
// and insertion order is preserved — it is a transcript of the wire,
// not a lookup structure.
type Map struct {
	Entries []Entry

	// positional marks a map reconstructed from a struct: keys are
	// synthetic Uint64 field positions, and re-encoding emits the
	// struct form (count byte plus field values, no keys).
	positional bool
}

func (Map) isValue() {}

// Positional reports whether the map was reconstructed from a struct
// and carries synthetic positional keys.
func (v Map) Positional() bool {
	return v.positional
}

func (v Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, entry := range v.Entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(entry.Key.String())
		b.WriteByte(':')
		b.WriteString(entry.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalTagwire emits the struct form for positional maps and a
// known-length map otherwise.
func (v Map) MarshalTagwire(e *codec.Encoder) error {
	if v.positional {
		if err := e.BeginStruct(len(v.Entries)); err != nil {
			return err
		}
		for _, entry := range v.Entries {
			if err := entry.Value.MarshalTagwire(e); err != nil {
				return err
			}
		}
		return nil
	}
	if err := e.BeginMap(len(v.Entries)); err != nil {
		return err
	}
	for _, entry := range v.Entries {
		if err := entry.Key.MarshalTagwire(e); err != nil {
			return err
		}
		if err := entry.Value.MarshalTagwire(e); err != nil {
			return err
		}
	}
	return nil
}

// Enum is an enum variant: the variant-kind tag, the 4-byte index,
// and the payload. Payload is nil for unit variants, a single value
// for newtype variants, and an Array of fields for tuple and struct
// variants (which can be encoded but never produced by Decode — their
// arity is not on the wire).
type Enum struct {
	Kind    wire.Tag
	Variant uint32
	Payload Value
}

func (Enum) isValue() {}

func (v Enum) String() string {
	if v.Payload == nil {
		return fmt.Sprintf("%s(%d)", v.Kind, v.Variant)
	}
	return fmt.Sprintf("%s(%d,%s)", v.Kind, v.Variant, v.Payload)
}

// MarshalTagwire re-emits the variant under its original kind.
func (v Enum) MarshalTagwire(e *codec.Encoder) error {
	switch v.Kind {
	case wire.UnitVariant:
		return e.EncodeUnitVariant(v.Variant)
	case wire.NewtypeVariant:
		if v.Payload == nil {
			return fmt.Errorf("dyn: newtype variant %d has no payload", v.Variant)
		}
		if err := e.EncodeNewtypeVariant(v.Variant); err != nil {
			return err
		}
		return v.Payload.MarshalTagwire(e)
	case wire.TupleVariant, wire.StructVariant:
		fields, ok := v.Payload.(Array)
		if !ok {
			return fmt.Errorf("dyn: %s payload must be an Array, got %T", v.Kind, v.Payload)
		}
		var err error
		if v.Kind == wire.TupleVariant {
			err = e.BeginTupleVariant(v.Variant)
		} else {
			err = e.BeginStructVariant(v.Variant)
		}
		if err != nil {
			return err
		}
		for _, field := range fields {
			if err := field.MarshalTagwire(e); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("dyn: enum has invalid kind %s", v.Kind)
	}
}
