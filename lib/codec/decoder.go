// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/bureau-foundation/tagwire/lib/wire"
)

// Decoder consumes one top-level value from a byte slice and is then
// discarded. It never takes ownership of the input: byte-array and
// raw string results alias it. Not safe for concurrent use.
type Decoder struct {
	input []byte
}

// NewDecoder returns a decoder reading from data. The decoder borrows
// data for its whole lifetime.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{input: data}
}

// Remaining returns the number of unconsumed input bytes.
func (d *Decoder) Remaining() int {
	return len(d.input)
}

// PeekTag returns the next tag without consuming it. Callers use it
// to dispatch on shape categories (option presence, variant kind)
// before committing to a concrete decode path.
func (d *Decoder) PeekTag() (wire.Tag, error) {
	if len(d.input) == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	return wire.FromByte(d.input[0])
}

func (d *Decoder) popTag() (wire.Tag, error) {
	tag, err := d.PeekTag()
	if err != nil {
		return 0, err
	}
	d.input = d.input[1:]
	return tag, nil
}

// expectTag pops the next tag and fails unless it is want. The
// context label names what the caller was decoding, for diagnostics.
func (d *Decoder) expectTag(want wire.Tag, context string) error {
	got, err := d.popTag()
	if err != nil {
		return err
	}
	if got != want {
		return wire.Unexpected(context, got)
	}
	return nil
}

// popSlice consumes n bytes, returning a slice that aliases the
// input.
func (d *Decoder) popSlice(n int) ([]byte, error) {
	if len(d.input) < n {
		return nil, io.ErrUnexpectedEOF
	}
	head := d.input[:n:n]
	d.input = d.input[n:]
	return head, nil
}

// popLength consumes an 8-byte big-endian length and validates that
// it fits in int.
func (d *Decoder) popLength() (int, error) {
	raw, err := d.popSlice(wire.LengthSize)
	if err != nil {
		return 0, err
	}
	length := binary.BigEndian.Uint64(raw)
	if length > uint64(math.MaxInt) {
		return 0, ErrInvalidSize
	}
	return int(length), nil
}

// popVariantIndex consumes the fixed 4-byte variant index.
func (d *Decoder) popVariantIndex() (uint32, error) {
	raw, err := d.popSlice(wire.VariantIndexSize)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(raw), nil
}

// popCount consumes the 1-byte element count of tuples and structs.
func (d *Decoder) popCount() (int, error) {
	raw, err := d.popSlice(1)
	if err != nil {
		return 0, err
	}
	return int(raw[0]), nil
}

// DecodeBool consumes a boolean.
func (d *Decoder) DecodeBool() (bool, error) {
	tag, err := d.popTag()
	if err != nil {
		return false, err
	}
	switch tag {
	case wire.BoolFalse:
		return false, nil
	case wire.BoolTrue:
		return true, nil
	default:
		return false, wire.Unexpected("Boolean", tag)
	}
}

// DecodeInt8 consumes an Int8 value.
func (d *Decoder) DecodeInt8() (int8, error) {
	if err := d.expectTag(wire.Int8, "Int8"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(1)
	if err != nil {
		return 0, err
	}
	return int8(raw[0]), nil
}

// DecodeInt16 consumes an Int16 value.
func (d *Decoder) DecodeInt16() (int16, error) {
	if err := d.expectTag(wire.Int16, "Int16"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(raw)), nil
}

// DecodeInt32 consumes an Int32 value.
func (d *Decoder) DecodeInt32() (int32, error) {
	if err := d.expectTag(wire.Int32, "Int32"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(raw)), nil
}

// DecodeInt64 consumes an Int64 value.
func (d *Decoder) DecodeInt64() (int64, error) {
	if err := d.expectTag(wire.Int64, "Int64"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

// DecodeUint8 consumes a Uint8 value.
func (d *Decoder) DecodeUint8() (uint8, error) {
	if err := d.expectTag(wire.Uint8, "Uint8"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(1)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

// DecodeUint16 consumes a Uint16 value.
func (d *Decoder) DecodeUint16() (uint16, error) {
	if err := d.expectTag(wire.Uint16, "Uint16"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(raw), nil
}

// DecodeUint32 consumes a Uint32 value.
func (d *Decoder) DecodeUint32() (uint32, error) {
	if err := d.expectTag(wire.Uint32, "Uint32"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(raw), nil
}

// DecodeUint64 consumes a Uint64 value.
func (d *Decoder) DecodeUint64() (uint64, error) {
	if err := d.expectTag(wire.Uint64, "Uint64"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

// DecodeFloat32 consumes a Float32 value.
func (d *Decoder) DecodeFloat32() (float32, error) {
	if err := d.expectTag(wire.Float32, "Float32"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(raw)), nil
}

// DecodeFloat64 consumes a Float64 value.
func (d *Decoder) DecodeFloat64() (float64, error) {
	if err := d.expectTag(wire.Float64, "Float64"); err != nil {
		return 0, err
	}
	raw, err := d.popSlice(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(raw)), nil
}

// DecodeChar consumes a Unicode scalar. The Char1..Char4 tag gives
// the UTF-8 byte length; the bytes must decode to a single valid
// rune.
func (d *Decoder) DecodeChar() (rune, error) {
	tag, err := d.popTag()
	if err != nil {
		return 0, err
	}
	length := tag.CharLen()
	if length == 0 {
		return 0, wire.Unexpected("Char", tag)
	}
	raw, err := d.popSlice(length)
	if err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRune(raw)
	if r == utf8.RuneError && size <= 1 || size != length {
		return 0, fmt.Errorf("codec: char payload %v is not a single UTF-8 scalar", raw)
	}
	return r, nil
}

// DecodeString consumes a string of either encoding. Length-prefixed
// and end-marked strings use distinct tags, so no guessing is needed.
// The result is a copy (Go strings are immutable); use
// DecodeStringBytes to borrow from the input instead.
func (d *Decoder) DecodeString() (string, error) {
	raw, err := d.DecodeStringBytes()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeStringBytes consumes a string of either encoding and returns
// its UTF-8 bytes aliasing the input buffer. An end-marked string is
// located by scanning for the first occurrence of wire.EndMarker —
// the marker is invalid UTF-8, so it can never appear inside the
// string's content; absence of it before end of input is an EOF
// error.
func (d *Decoder) DecodeStringBytes() ([]byte, error) {
	tag, err := d.popTag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case wire.String:
		return d.popSizedString()
	case wire.UnsizedString:
		return d.popUnsizedString()
	default:
		return nil, wire.Unexpected("String", tag)
	}
}

func (d *Decoder) popSizedString() ([]byte, error) {
	length, err := d.popLength()
	if err != nil {
		return nil, err
	}
	raw, err := d.popSlice(length)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("codec: string payload is not valid UTF-8")
	}
	return raw, nil
}

func (d *Decoder) popUnsizedString() ([]byte, error) {
	end := bytes.Index(d.input, wire.EndMarker[:])
	if end < 0 {
		return nil, io.ErrUnexpectedEOF
	}
	raw, err := d.popSlice(end)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("codec: string payload is not valid UTF-8")
	}
	// Consume the marker itself.
	if _, err := d.popSlice(len(wire.EndMarker)); err != nil {
		return nil, err
	}
	return raw, nil
}

// DecodeBytes consumes a byte array. The result aliases the input
// buffer.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	if err := d.expectTag(wire.ByteArray, "ByteArray"); err != nil {
		return nil, err
	}
	length, err := d.popLength()
	if err != nil {
		return nil, err
	}
	return d.popSlice(length)
}

// DecodeOption consumes an option prefix. It reports whether a value
// is present; if so, the caller decodes the inner value next.
func (d *Decoder) DecodeOption() (bool, error) {
	tag, err := d.popTag()
	if err != nil {
		return false, err
	}
	switch tag {
	case wire.None:
		return false, nil
	case wire.Some:
		return true, nil
	default:
		return false, wire.Unexpected("Option", tag)
	}
}

// DecodeUnit consumes the empty value.
func (d *Decoder) DecodeUnit() error {
	return d.expectTag(wire.Unit, "Unit")
}

// DecodeUnitStruct consumes a named empty value.
func (d *Decoder) DecodeUnitStruct() error {
	return d.expectTag(wire.UnitStruct, "UnitStruct")
}

// DecodeUnitVariant consumes a payload-free enum variant and returns
// its index.
func (d *Decoder) DecodeUnitVariant() (uint32, error) {
	if err := d.expectTag(wire.UnitVariant, "UnitVariant"); err != nil {
		return 0, err
	}
	return d.popVariantIndex()
}

// DecodeNewtypeStruct consumes the newtype-struct prefix. The caller
// decodes the inner value next.
func (d *Decoder) DecodeNewtypeStruct() error {
	return d.expectTag(wire.NewtypeStruct, "NewtypeStruct")
}

// DecodeNewtypeVariant consumes the newtype-variant prefix and
// returns its index. The caller decodes the inner value next.
func (d *Decoder) DecodeNewtypeVariant() (uint32, error) {
	if err := d.expectTag(wire.NewtypeVariant, "NewtypeVariant"); err != nil {
		return 0, err
	}
	return d.popVariantIndex()
}

// BeginTupleVariant consumes the tuple-variant prefix and returns its
// index. The field arity is not on the wire; the caller decodes the
// number of fields its target type declares.
func (d *Decoder) BeginTupleVariant() (uint32, error) {
	if err := d.expectTag(wire.TupleVariant, "TupleVariant"); err != nil {
		return 0, err
	}
	return d.popVariantIndex()
}

// BeginStructVariant consumes the struct-variant prefix and returns
// its index. Fields follow positionally.
func (d *Decoder) BeginStructVariant() (uint32, error) {
	if err := d.expectTag(wire.StructVariant, "StructVariant"); err != nil {
		return 0, err
	}
	return d.popVariantIndex()
}

// BeginTuple consumes a tuple prefix and validates the declared
// element count against the arity the target expects.
func (d *Decoder) BeginTuple(arity int) error {
	return d.beginCounted(wire.Tuple, "Tuple", arity)
}

// BeginTupleStruct consumes a tuple-struct prefix with arity
// validation.
func (d *Decoder) BeginTupleStruct(arity int) error {
	return d.beginCounted(wire.TupleStruct, "TupleStruct", arity)
}

// BeginStruct consumes a struct prefix and validates the declared
// field count against the target type's field count.
func (d *Decoder) BeginStruct(fieldCount int) error {
	return d.beginCounted(wire.Struct, "Struct", fieldCount)
}

func (d *Decoder) beginCounted(tag wire.Tag, context string, arity int) error {
	if err := d.expectTag(tag, context); err != nil {
		return err
	}
	declared, err := d.popCount()
	if err != nil {
		return err
	}
	if declared != arity {
		return &SizeMismatchError{Expected: arity, Got: declared}
	}
	return nil
}

// BeginTupleAny consumes a tuple prefix and returns the declared
// element count without validating it. Used by self-describing
// decode, which has no expected arity.
func (d *Decoder) BeginTupleAny() (int, error) {
	if err := d.expectTag(wire.Tuple, "Tuple"); err != nil {
		return 0, err
	}
	return d.popCount()
}

// BeginTupleStructAny is BeginTupleAny for tuple structs.
func (d *Decoder) BeginTupleStructAny() (int, error) {
	if err := d.expectTag(wire.TupleStruct, "TupleStruct"); err != nil {
		return 0, err
	}
	return d.popCount()
}

// BeginStructAny consumes a struct prefix and returns the declared
// field count without validation.
func (d *Decoder) BeginStructAny() (int, error) {
	if err := d.expectTag(wire.Struct, "Struct"); err != nil {
		return 0, err
	}
	return d.popCount()
}

// Container iterates the elements of a sequence or map. For counted
// containers it counts down the declared length; for end-tag
// containers it stops when it sees UnsizedSeqEnd. Obtain one from
// BeginSeq or BeginMap and call Next before each element (each
// entry, for maps).
type Container struct {
	d         *Decoder
	remaining int
	counted   bool
}

// BeginSeq consumes a sequence prefix of either termination strategy.
func (d *Decoder) BeginSeq() (Container, error) {
	return d.beginContainer(wire.Seq, wire.UnsizedSeq, "Sequence")
}

// BeginMap consumes a map prefix of either termination strategy.
func (d *Decoder) BeginMap() (Container, error) {
	return d.beginContainer(wire.Map, wire.UnsizedMap, "Map")
}

func (d *Decoder) beginContainer(sized, unsized wire.Tag, context string) (Container, error) {
	tag, err := d.popTag()
	if err != nil {
		return Container{}, err
	}
	switch tag {
	case sized:
		length, err := d.popLength()
		if err != nil {
			return Container{}, err
		}
		return Container{d: d, remaining: length, counted: true}, nil
	case unsized:
		return Container{d: d}, nil
	default:
		return Container{}, wire.Unexpected(context, tag)
	}
}

// Next reports whether another element follows, consuming the end tag
// of an unsized container when it is reached.
func (c *Container) Next() (bool, error) {
	if c.counted {
		if c.remaining == 0 {
			return false, nil
		}
		c.remaining--
		return true, nil
	}
	tag, err := c.d.PeekTag()
	if err != nil {
		return false, err
	}
	if tag == wire.UnsizedSeqEnd {
		c.d.input = c.d.input[1:]
		return false, nil
	}
	return true, nil
}

// Len returns the declared element count and whether one exists
// (end-tag containers have none). Useful for pre-sizing, subject to
// the caller's own allocation cap.
func (c *Container) Len() (int, bool) {
	if !c.counted {
		return 0, false
	}
	return c.remaining, true
}
