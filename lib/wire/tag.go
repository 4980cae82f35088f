// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"unicode/utf8"
)

// Tag is the one-byte discriminant that precedes every encoded value.
// Tag values are protocol constants — changing them breaks wire
// compatibility.
type Tag byte

const (
	// None is an absent optional value. No payload.
	None Tag = 0

	// Some is a present optional value, followed by the encoded
	// inner value.
	Some Tag = 1

	// BoolFalse and BoolTrue carry the boolean in the tag itself.
	// No payload.
	BoolFalse Tag = 2
	BoolTrue  Tag = 3

	// Fixed-width signed integers, big-endian two's-complement
	// payload of the indicated width.
	Int8  Tag = 4
	Int16 Tag = 5
	Int32 Tag = 6
	Int64 Tag = 7

	// Fixed-width unsigned integers, big-endian payload.
	Uint8  Tag = 8
	Uint16 Tag = 9
	Uint32 Tag = 10
	Uint64 Tag = 11

	// IEEE-754 floats, big-endian payload.
	Float32 Tag = 12
	Float64 Tag = 13

	// Char1 through Char4 carry a single Unicode scalar as its
	// UTF-8 bytes. The tag encodes the byte length, so no separate
	// length field follows.
	Char1 Tag = 14
	Char2 Tag = 15
	Char3 Tag = 16
	Char4 Tag = 17

	// String is a length-prefixed UTF-8 string: 8-byte big-endian
	// byte length, then the bytes.
	String Tag = 18

	// ByteArray is a length-prefixed raw byte sequence: 8-byte
	// big-endian length, then the bytes.
	ByteArray Tag = 19

	// Unit is the empty value; UnitStruct a named empty value. The
	// name is not on the wire, so the two tags differ only in
	// declared intent. No payload.
	Unit       Tag = 20
	UnitStruct Tag = 21

	// UnitVariant is an enum variant with no payload: 4-byte
	// big-endian variant index only.
	UnitVariant Tag = 22

	// NewtypeStruct wraps a single inner value. No index, no
	// length — struct identity is implicit.
	NewtypeStruct Tag = 23

	// NewtypeVariant is an enum variant wrapping one value: 4-byte
	// variant index, then the encoded inner value.
	NewtypeVariant Tag = 24

	// Seq is a length-prefixed sequence: 8-byte big-endian element
	// count, then each element encoded in order.
	Seq Tag = 25

	// Tuple and TupleStruct are fixed-arity positional containers:
	// 1-byte element count (cap 255), then the elements.
	Tuple       Tag = 26
	TupleStruct Tag = 27

	// TupleVariant is an enum variant with positional fields:
	// 4-byte variant index, then the fields. The arity is not on
	// the wire; the decoder must know it from the target type.
	TupleVariant Tag = 28

	// Map is a length-prefixed map: 8-byte big-endian entry count,
	// then key and value alternating per entry.
	Map Tag = 29

	// Struct is a fixed-field-count container: 1-byte field count
	// (cap 255), then each field's value in declaration order.
	// Field names are never written.
	Struct Tag = 30

	// StructVariant is an enum variant with named fields, encoded
	// positionally: 4-byte variant index, then the field values.
	StructVariant Tag = 31

	// UnsizedString is a UTF-8 run of unknown length, terminated by
	// EndMarker rather than length-prefixed. Produced when a value
	// is formatted incrementally and its byte length is unknown
	// until the run completes.
	UnsizedString Tag = 32

	// Int128 and Uint128 are reserved for 128-bit integers. The
	// grammar recognizes them so the tag space stays partitioned,
	// but this implementation rejects them: Go has no native
	// 128-bit integer type.
	Int128  Tag = 33
	Uint128 Tag = 34

	// UnsizedSeq and UnsizedMap are containers of unknown length:
	// no count, elements follow immediately, terminated by an
	// UnsizedSeqEnd tag.
	UnsizedSeq Tag = 35
	UnsizedMap Tag = 36

	// UnsizedSeqEnd terminates an UnsizedSeq or UnsizedMap. It is
	// only valid in that position.
	UnsizedSeqEnd Tag = 37
)

// maxTag is the highest assigned tag value. Bytes above it are
// invalid.
const maxTag = UnsizedSeqEnd

// Wire width constants.
const (
	// LengthSize is the byte width of string, byte-array, sequence,
	// and map length prefixes.
	LengthSize = 8

	// VariantIndexSize is the byte width of an enum variant index.
	// Always 4 regardless of how many variants the enum declares.
	VariantIndexSize = 4

	// MaxCount is the element cap for tuples, tuple structs, and
	// structs, whose counts are stored in a single byte.
	MaxCount = 255
)

// EndMarker terminates an UnsizedString run. Both bytes are invalid
// in UTF-8 at every position (0xC0 and 0xC1 can never appear in
// well-formed UTF-8), so the marker cannot collide with string
// content. See TestEndMarkerNeverValidUTF8.
var EndMarker = [2]byte{0xC0, 0xC1}

// FromByte converts a raw byte into a Tag. Every byte maps to exactly
// one shape or fails closed with the offending value attached.
func FromByte(b byte) (Tag, error) {
	if Tag(b) > maxTag {
		return 0, InvalidTagError(b)
	}
	return Tag(b), nil
}

// InvalidTagError reports a byte outside the assigned tag range.
type InvalidTagError byte

func (e InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag: expected byte between 0 and %d, got %d", maxTag, byte(e))
}

// UnexpectedTagError reports a tag that is valid in the grammar but
// wrong for the position being decoded, e.g. a boolean tag where a
// string was expected. Expected is a human-readable context label.
type UnexpectedTagError struct {
	Expected string
	Got      Tag
}

func (e *UnexpectedTagError) Error() string {
	return fmt.Sprintf("expected %s but got %s", e.Expected, e.Got)
}

// Unexpected returns an UnexpectedTagError for the given context.
func Unexpected(expected string, got Tag) error {
	return &UnexpectedTagError{Expected: expected, Got: got}
}

// CharTag returns the tag for a Unicode scalar along with its UTF-8
// encoding. The byte length (1–4) selects among Char1..Char4.
func CharTag(r rune) (Tag, []byte, error) {
	if !utf8.ValidRune(r) {
		return 0, nil, fmt.Errorf("rune %#x is not a Unicode scalar value", r)
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return Char1 + Tag(n-1), buf[:n], nil
}

// CharLen returns the UTF-8 byte length encoded by a Char1..Char4
// tag, or 0 if the tag is not a char tag.
func (t Tag) CharLen() int {
	if t < Char1 || t > Char4 {
		return 0
	}
	return int(t-Char1) + 1
}

// IsVariant reports whether the tag introduces an enum variant
// (unit, newtype, tuple, or struct variant). All four are followed by
// a 4-byte variant index.
func (t Tag) IsVariant() bool {
	switch t {
	case UnitVariant, NewtypeVariant, TupleVariant, StructVariant:
		return true
	}
	return false
}

// String returns the tag's name for diagnostics.
func (t Tag) String() string {
	switch t {
	case None:
		return "None"
	case Some:
		return "Some"
	case BoolFalse:
		return "BoolFalse"
	case BoolTrue:
		return "BoolTrue"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Uint8:
		return "Uint8"
	case Uint16:
		return "Uint16"
	case Uint32:
		return "Uint32"
	case Uint64:
		return "Uint64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Char1:
		return "Char1"
	case Char2:
		return "Char2"
	case Char3:
		return "Char3"
	case Char4:
		return "Char4"
	case String:
		return "String"
	case ByteArray:
		return "ByteArray"
	case Unit:
		return "Unit"
	case UnitStruct:
		return "UnitStruct"
	case UnitVariant:
		return "UnitVariant"
	case NewtypeStruct:
		return "NewtypeStruct"
	case NewtypeVariant:
		return "NewtypeVariant"
	case Seq:
		return "Seq"
	case Tuple:
		return "Tuple"
	case TupleStruct:
		return "TupleStruct"
	case TupleVariant:
		return "TupleVariant"
	case Map:
		return "Map"
	case Struct:
		return "Struct"
	case StructVariant:
		return "StructVariant"
	case UnsizedString:
		return "UnsizedString"
	case Int128:
		return "Int128"
	case Uint128:
		return "Uint128"
	case UnsizedSeq:
		return "UnsizedSeq"
	case UnsizedMap:
		return "UnsizedMap"
	case UnsizedSeqEnd:
		return "UnsizedSeqEnd"
	default:
		return fmt.Sprintf("invalid(%d)", byte(t))
	}
}
