// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dyn

import (
	"fmt"

	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// maxPrealloc caps how many elements are pre-allocated from a
// declared container length. Larger containers grow by appending, so
// a corrupt length cannot force a giant allocation up front.
const maxPrealloc = 256

// Decode reconstructs the value tree from a complete encoded value.
// The input must contain exactly one top-level value; leftover bytes
// are a codec.TrailingBytesError.
func Decode(input []byte) (Value, error) {
	d := codec.NewDecoder(input)
	v, err := DecodeNext(d)
	if err != nil {
		return nil, err
	}
	if n := d.Remaining(); n > 0 {
		return nil, codec.TrailingBytesError(n)
	}
	return v, nil
}

// DecodeNext reconstructs the next value from an in-progress decode.
// It consumes exactly one value and leaves the decoder positioned
// after it, so it composes with typed decoding of the surrounding
// structure.
func DecodeNext(d *codec.Decoder) (Value, error) {
	tag, err := d.PeekTag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case wire.None, wire.Some:
		present, err := d.DecodeOption()
		if err != nil {
			return nil, err
		}
		if !present {
			return Option{}, nil
		}
		inner, err := DecodeNext(d)
		if err != nil {
			return nil, err
		}
		return Option{Inner: inner}, nil

	case wire.BoolFalse, wire.BoolTrue:
		v, err := d.DecodeBool()
		if err != nil {
			return nil, err
		}
		return Bool(v), nil

	case wire.Int8:
		v, err := d.DecodeInt8()
		return Number{Tag: tag, Int: int64(v)}, err
	case wire.Int16:
		v, err := d.DecodeInt16()
		return Number{Tag: tag, Int: int64(v)}, err
	case wire.Int32:
		v, err := d.DecodeInt32()
		return Number{Tag: tag, Int: int64(v)}, err
	case wire.Int64:
		v, err := d.DecodeInt64()
		return Number{Tag: tag, Int: v}, err
	case wire.Uint8:
		v, err := d.DecodeUint8()
		return Number{Tag: tag, Uint: uint64(v)}, err
	case wire.Uint16:
		v, err := d.DecodeUint16()
		return Number{Tag: tag, Uint: uint64(v)}, err
	case wire.Uint32:
		v, err := d.DecodeUint32()
		return Number{Tag: tag, Uint: uint64(v)}, err
	case wire.Uint64:
		v, err := d.DecodeUint64()
		return Number{Tag: tag, Uint: v}, err
	case wire.Float32:
		v, err := d.DecodeFloat32()
		return Number{Tag: tag, Float: float64(v)}, err
	case wire.Float64:
		v, err := d.DecodeFloat64()
		return Number{Tag: tag, Float: v}, err

	case wire.Int128, wire.Uint128:
		return nil, codec.ErrInt128Unsupported

	case wire.Char1, wire.Char2, wire.Char3, wire.Char4:
		r, err := d.DecodeChar()
		if err != nil {
			return nil, err
		}
		return Char(r), nil

	case wire.String, wire.UnsizedString:
		s, err := d.DecodeString()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case wire.ByteArray:
		p, err := d.DecodeBytes()
		if err != nil {
			return nil, err
		}
		return Bytes(p), nil

	case wire.Unit:
		return Unit{}, d.DecodeUnit()

	case wire.UnitStruct:
		// The struct's name is not on the wire; it collapses to the
		// plain unit.
		return Unit{}, d.DecodeUnitStruct()

	case wire.NewtypeStruct:
		// The wrapper is transparent on the wire: the tree holds the
		// inner value directly.
		if err := d.DecodeNewtypeStruct(); err != nil {
			return nil, err
		}
		return DecodeNext(d)

	case wire.UnitVariant:
		index, err := d.DecodeUnitVariant()
		if err != nil {
			return nil, err
		}
		return Enum{Kind: wire.UnitVariant, Variant: index}, nil

	case wire.NewtypeVariant:
		index, err := d.DecodeNewtypeVariant()
		if err != nil {
			return nil, err
		}
		payload, err := DecodeNext(d)
		if err != nil {
			return nil, err
		}
		return Enum{Kind: wire.NewtypeVariant, Variant: index, Payload: payload}, nil

	case wire.Tuple:
		arity, err := d.BeginTupleAny()
		if err != nil {
			return nil, err
		}
		return decodeFixed(d, arity)

	case wire.TupleStruct:
		arity, err := d.BeginTupleStructAny()
		if err != nil {
			return nil, err
		}
		return decodeFixed(d, arity)

	case wire.Seq, wire.UnsizedSeq:
		container, err := d.BeginSeq()
		if err != nil {
			return nil, err
		}
		elements := make(Array, 0, preallocFor(container))
		for {
			more, err := container.Next()
			if err != nil {
				return nil, err
			}
			if !more {
				return elements, nil
			}
			element, err := DecodeNext(d)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}

	case wire.Map, wire.UnsizedMap:
		container, err := d.BeginMap()
		if err != nil {
			return nil, err
		}
		m := Map{Entries: make([]Entry, 0, preallocFor(container))}
		for {
			more, err := container.Next()
			if err != nil {
				return nil, err
			}
			if !more {
				return m, nil
			}
			key, err := DecodeNext(d)
			if err != nil {
				return nil, err
			}
			value, err := DecodeNext(d)
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, Entry{Key: key, Value: value})
		}

	case wire.Struct:
		fieldCount, err := d.BeginStructAny()
		if err != nil {
			return nil, err
		}
		m := Map{
			Entries:    make([]Entry, 0, min(fieldCount, maxPrealloc)),
			positional: true,
		}
		for i := range fieldCount {
			value, err := DecodeNext(d)
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, Entry{
				Key:   Number{Tag: wire.Uint64, Uint: uint64(i)},
				Value: value,
			})
		}
		return m, nil

	case wire.TupleVariant, wire.StructVariant:
		// Field arity lives only in the target type: these variants
		// exist on the wire but cannot be walked without it.
		return nil, fmt.Errorf("dyn: %s requires a target type to decode", tag)

	default:
		return nil, wire.Unexpected("value", tag)
	}
}

// decodeFixed collects a counted run of values into an Array.
func decodeFixed(d *codec.Decoder, arity int) (Array, error) {
	elements := make(Array, 0, min(arity, maxPrealloc))
	for range arity {
		element, err := DecodeNext(d)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

// preallocFor sizes the initial allocation for a container whose
// length may be known.
func preallocFor(c codec.Container) int {
	if length, known := c.Len(); known {
		return min(length, maxPrealloc)
	}
	return 0
}
