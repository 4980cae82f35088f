// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bureau-foundation/tagwire/lib/sink"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// Termination selects how the encoder terminates containers whose
// element count is unknown before iteration completes.
type Termination int

const (
	// TerminateWithEndTag streams elements directly under an
	// UnsizedSeq/UnsizedMap tag and closes the container with an
	// UnsizedSeqEnd tag. No side buffer is allocated.
	TerminateWithEndTag Termination = iota

	// TerminateWithCount buffers elements in memory while counting
	// them, then emits an ordinary Seq/Map tag, the 8-byte count,
	// and the buffered bytes. On the wire the result is identical
	// to a known-length container. The side buffer's cost scales
	// with the container, not the whole message.
	TerminateWithCount
)

// EncOptions configures an Encoder. The zero value is the default
// configuration.
type EncOptions struct {
	// Termination is the unknown-length container policy.
	Termination Termination
}

// Encoder writes one top-level value to a sink and is then discarded.
// Any sink failure aborts the encode; there is no partial success.
// Not safe for concurrent use.
type Encoder struct {
	sink    sink.Sink
	options EncOptions
	written int
}

// NewEncoder returns an encoder with default options writing to s.
func NewEncoder(s sink.Sink) *Encoder {
	return EncOptions{}.NewEncoder(s)
}

// NewEncoder returns an encoder with these options writing to s.
func (o EncOptions) NewEncoder(s sink.Sink) *Encoder {
	return &Encoder{sink: s, options: o}
}

// Written returns the number of bytes emitted so far.
func (e *Encoder) Written() int {
	return e.written
}

func (e *Encoder) writeByte(b byte) error {
	if err := e.sink.WriteByte(b); err != nil {
		return err
	}
	e.written++
	return nil
}

func (e *Encoder) write(p []byte) error {
	n, err := e.sink.Write(p)
	e.written += n
	return err
}

func (e *Encoder) writeTag(t wire.Tag) error {
	return e.writeByte(byte(t))
}

func (e *Encoder) writeTagThen(t wire.Tag, payload []byte) error {
	if err := e.writeTag(t); err != nil {
		return err
	}
	return e.write(payload)
}

// writeLength emits an 8-byte big-endian length.
func (e *Encoder) writeLength(n int) error {
	var buf [wire.LengthSize]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	return e.write(buf[:])
}

// writeVariantIndex emits the fixed 4-byte big-endian variant index.
func (e *Encoder) writeVariantIndex(index uint32) error {
	var buf [wire.VariantIndexSize]byte
	binary.BigEndian.PutUint32(buf[:], index)
	return e.write(buf[:])
}

// writeCount emits the 1-byte element count used by tuples and
// structs, enforcing the cap instead of truncating.
func (e *Encoder) writeCount(n int) error {
	if n < 0 || n > wire.MaxCount {
		return ErrTooManyElements
	}
	return e.writeByte(byte(n))
}

// EncodeBool emits BoolTrue or BoolFalse. The value lives in the tag;
// there is no payload.
func (e *Encoder) EncodeBool(v bool) error {
	if v {
		return e.writeTag(wire.BoolTrue)
	}
	return e.writeTag(wire.BoolFalse)
}

// EncodeInt8 emits an Int8 value.
func (e *Encoder) EncodeInt8(v int8) error {
	if err := e.writeTag(wire.Int8); err != nil {
		return err
	}
	return e.writeByte(byte(v))
}

// EncodeInt16 emits an Int16 value.
func (e *Encoder) EncodeInt16(v int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	return e.writeTagThen(wire.Int16, buf[:])
}

// EncodeInt32 emits an Int32 value.
func (e *Encoder) EncodeInt32(v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return e.writeTagThen(wire.Int32, buf[:])
}

// EncodeInt64 emits an Int64 value.
func (e *Encoder) EncodeInt64(v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	return e.writeTagThen(wire.Int64, buf[:])
}

// EncodeUint8 emits a Uint8 value.
func (e *Encoder) EncodeUint8(v uint8) error {
	if err := e.writeTag(wire.Uint8); err != nil {
		return err
	}
	return e.writeByte(v)
}

// EncodeUint16 emits a Uint16 value.
func (e *Encoder) EncodeUint16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return e.writeTagThen(wire.Uint16, buf[:])
}

// EncodeUint32 emits a Uint32 value.
func (e *Encoder) EncodeUint32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return e.writeTagThen(wire.Uint32, buf[:])
}

// EncodeUint64 emits a Uint64 value.
func (e *Encoder) EncodeUint64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return e.writeTagThen(wire.Uint64, buf[:])
}

// EncodeFloat32 emits a Float32 value (IEEE-754 big-endian).
func (e *Encoder) EncodeFloat32(v float32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	return e.writeTagThen(wire.Float32, buf[:])
}

// EncodeFloat64 emits a Float64 value (IEEE-754 big-endian).
func (e *Encoder) EncodeFloat64(v float64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	return e.writeTagThen(wire.Float64, buf[:])
}

// EncodeChar emits a Unicode scalar as its UTF-8 bytes under a
// Char1..Char4 tag. The tag carries the byte length.
func (e *Encoder) EncodeChar(r rune) error {
	tag, bytes, err := wire.CharTag(r)
	if err != nil {
		return err
	}
	return e.writeTagThen(tag, bytes)
}

// EncodeString emits a length-prefixed UTF-8 string.
func (e *Encoder) EncodeString(s string) error {
	if err := e.writeTag(wire.String); err != nil {
		return err
	}
	if err := e.writeLength(len(s)); err != nil {
		return err
	}
	return e.write([]byte(s))
}

// EncodeUnsizedString emits an end-marker-terminated UTF-8 run. Used
// when the string's byte length is known only as it is produced; a
// caller holding a complete string should prefer EncodeString.
func (e *Encoder) EncodeUnsizedString(s string) error {
	if err := e.writeTag(wire.UnsizedString); err != nil {
		return err
	}
	if err := e.write([]byte(s)); err != nil {
		return err
	}
	return e.write(wire.EndMarker[:])
}

// EncodeFormatted streams v's fmt representation directly to the sink
// as an UnsizedString run: tag, formatted bytes as they are produced,
// then the end marker. No intermediate string is built.
func (e *Encoder) EncodeFormatted(v any) error {
	if err := e.writeTag(wire.UnsizedString); err != nil {
		return err
	}
	n, err := fmt.Fprint(formatWriter{e}, v)
	e.written += n
	if err != nil {
		return fmt.Errorf("codec: formatting display string: %w", err)
	}
	return e.write(wire.EndMarker[:])
}

// formatWriter adapts the encoder's sink for fmt without double
// counting (EncodeFormatted adds fmt's own byte count).
type formatWriter struct {
	e *Encoder
}

func (w formatWriter) Write(p []byte) (int, error) {
	return w.e.sink.Write(p)
}

// EncodeBytes emits a length-prefixed raw byte array.
func (e *Encoder) EncodeBytes(p []byte) error {
	if err := e.writeTag(wire.ByteArray); err != nil {
		return err
	}
	if err := e.writeLength(len(p)); err != nil {
		return err
	}
	return e.write(p)
}

// EncodeNone emits an absent optional value.
func (e *Encoder) EncodeNone() error {
	return e.writeTag(wire.None)
}

// EncodeSome emits the present-optional prefix. The caller encodes
// the inner value immediately after.
func (e *Encoder) EncodeSome() error {
	return e.writeTag(wire.Some)
}

// EncodeUnit emits the empty value.
func (e *Encoder) EncodeUnit() error {
	return e.writeTag(wire.Unit)
}

// EncodeUnitStruct emits a named empty value. The name is not on the
// wire.
func (e *Encoder) EncodeUnitStruct() error {
	return e.writeTag(wire.UnitStruct)
}

// EncodeUnitVariant emits an enum variant with no payload.
func (e *Encoder) EncodeUnitVariant(index uint32) error {
	if err := e.writeTag(wire.UnitVariant); err != nil {
		return err
	}
	return e.writeVariantIndex(index)
}

// EncodeNewtypeStruct emits the newtype-struct prefix. The caller
// encodes the single inner value immediately after.
func (e *Encoder) EncodeNewtypeStruct() error {
	return e.writeTag(wire.NewtypeStruct)
}

// EncodeNewtypeVariant emits the newtype-variant prefix and index.
// The caller encodes the inner value immediately after.
func (e *Encoder) EncodeNewtypeVariant(index uint32) error {
	if err := e.writeTag(wire.NewtypeVariant); err != nil {
		return err
	}
	return e.writeVariantIndex(index)
}

// BeginTuple emits the tuple prefix for count elements. The caller
// encodes exactly count values after. Counts above 255 are an error.
func (e *Encoder) BeginTuple(count int) error {
	if err := e.writeTag(wire.Tuple); err != nil {
		return err
	}
	return e.writeCount(count)
}

// BeginTupleStruct emits the tuple-struct prefix for count elements.
func (e *Encoder) BeginTupleStruct(count int) error {
	if err := e.writeTag(wire.TupleStruct); err != nil {
		return err
	}
	return e.writeCount(count)
}

// BeginStruct emits the struct prefix for fieldCount positional
// fields. Field names are never written.
func (e *Encoder) BeginStruct(fieldCount int) error {
	if err := e.writeTag(wire.Struct); err != nil {
		return err
	}
	return e.writeCount(fieldCount)
}

// BeginTupleVariant emits the tuple-variant prefix. The field arity
// is not on the wire; the decoder recovers it from the target type.
func (e *Encoder) BeginTupleVariant(index uint32) error {
	if err := e.writeTag(wire.TupleVariant); err != nil {
		return err
	}
	return e.writeVariantIndex(index)
}

// BeginStructVariant emits the struct-variant prefix. Fields follow
// positionally.
func (e *Encoder) BeginStructVariant(index uint32) error {
	if err := e.writeTag(wire.StructVariant); err != nil {
		return err
	}
	return e.writeVariantIndex(index)
}

// BeginSeq emits the prefix of a sequence whose element count is
// known before iteration: tag plus 8-byte count. The caller encodes
// exactly count elements after.
func (e *Encoder) BeginSeq(count int) error {
	if err := e.writeTag(wire.Seq); err != nil {
		return err
	}
	return e.writeLength(count)
}

// BeginMap emits the prefix of a map with a known entry count. The
// caller encodes key then value for each entry.
func (e *Encoder) BeginMap(count int) error {
	if err := e.writeTag(wire.Map); err != nil {
		return err
	}
	return e.writeLength(count)
}

// BeginUnsizedSeq starts a sequence whose element count is unknown
// until iteration completes. How it terminates is governed by the
// encoder's Termination option.
func (e *Encoder) BeginUnsizedSeq() (*UnsizedEncoder, error) {
	return e.beginUnsized(false)
}

// BeginUnsizedMap starts a map of unknown entry count. Encode key
// then value on the element encoder for each entry.
func (e *Encoder) BeginUnsizedMap() (*UnsizedEncoder, error) {
	return e.beginUnsized(true)
}

func (e *Encoder) beginUnsized(isMap bool) (*UnsizedEncoder, error) {
	u := &UnsizedEncoder{parent: e, isMap: isMap}
	switch e.options.Termination {
	case TerminateWithEndTag:
		tag := wire.UnsizedSeq
		if isMap {
			tag = wire.UnsizedMap
		}
		if err := e.writeTag(tag); err != nil {
			return nil, err
		}
		u.child = e
	case TerminateWithCount:
		u.buffer = &sink.Buffer{}
		u.child = e.options.NewEncoder(u.buffer)
	}
	return u, nil
}

// UnsizedEncoder encodes the elements of an unknown-length container.
// Call Element once per element (per entry, for maps), encode the
// element on the returned encoder, then call End exactly once.
type UnsizedEncoder struct {
	parent *Encoder
	child  *Encoder
	buffer *sink.Buffer // nil under TerminateWithEndTag
	count  uint64
	isMap  bool
}

// Element records the start of the next element and returns the
// encoder to write it to.
func (u *UnsizedEncoder) Element() *Encoder {
	u.count++
	return u.child
}

// End terminates the container. Under TerminateWithEndTag it emits
// the end tag; under TerminateWithCount it emits the container tag,
// the final element count, and the buffered element bytes.
func (u *UnsizedEncoder) End() error {
	if u.buffer == nil {
		return u.parent.writeTag(wire.UnsizedSeqEnd)
	}
	tag := wire.Seq
	if u.isMap {
		tag = wire.Map
	}
	if err := u.parent.writeTag(tag); err != nil {
		return err
	}
	var buf [wire.LengthSize]byte
	binary.BigEndian.PutUint64(buf[:], u.count)
	if err := u.parent.write(buf[:]); err != nil {
		return err
	}
	return u.parent.write(u.buffer.Bytes())
}
