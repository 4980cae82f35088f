// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bureau-foundation/tagwire/lib/sink"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// encode runs fn against a fresh default-options encoder and returns
// the emitted bytes.
func encode(t *testing.T, fn func(e *Encoder) error) []byte {
	t.Helper()
	var buffer sink.Buffer
	encoder := NewEncoder(&buffer)
	if err := fn(encoder); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if encoder.Written() != buffer.Len() {
		t.Fatalf("Written() = %d, sink holds %d bytes", encoder.Written(), buffer.Len())
	}
	return buffer.Bytes()
}

// length8 renders a value as the wire's 8-byte big-endian length.
func length8(n uint64) []byte {
	return []byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
	}
}

func TestEncodeScalarBytes(t *testing.T) {
	cases := []struct {
		name string
		fn   func(e *Encoder) error
		want []byte
	}{
		{"false", func(e *Encoder) error { return e.EncodeBool(false) }, []byte{2}},
		{"true", func(e *Encoder) error { return e.EncodeBool(true) }, []byte{3}},
		{"int8", func(e *Encoder) error { return e.EncodeInt8(-1) }, []byte{4, 0xFF}},
		{"int16", func(e *Encoder) error { return e.EncodeInt16(-2) }, []byte{5, 0xFF, 0xFE}},
		{"int32", func(e *Encoder) error { return e.EncodeInt32(1 << 16) }, []byte{6, 0, 1, 0, 0}},
		{"int64", func(e *Encoder) error { return e.EncodeInt64(-1) }, []byte{7, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"uint8", func(e *Encoder) error { return e.EncodeUint8(56) }, []byte{8, 56}},
		{"uint16", func(e *Encoder) error { return e.EncodeUint16(0x0102) }, []byte{9, 1, 2}},
		{"uint32", func(e *Encoder) error { return e.EncodeUint32(0x01020304) }, []byte{10, 1, 2, 3, 4}},
		{"uint64", func(e *Encoder) error { return e.EncodeUint64(56) }, append([]byte{11}, length8(56)...)},
		{"float32", func(e *Encoder) error { return e.EncodeFloat32(12.3) }, []byte{12, 65, 68, 204, 205}},
		{"float64", func(e *Encoder) error { return e.EncodeFloat64(42.123) }, []byte{13, 64, 69, 15, 190, 118, 200, 180, 57}},
		{"char ascii", func(e *Encoder) error { return e.EncodeChar('A') }, []byte{14, 'A'}},
		{"char two byte", func(e *Encoder) error { return e.EncodeChar('î') }, []byte{15, 0xC3, 0xAE}},
		{"none", func(e *Encoder) error { return e.EncodeNone() }, []byte{0}},
		{"unit", func(e *Encoder) error { return e.EncodeUnit() }, []byte{20}},
		{"unit struct", func(e *Encoder) error { return e.EncodeUnitStruct() }, []byte{21}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := encode(t, tc.fn)
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("emitted % x, want % x", got, tc.want)
			}
		})
	}
}

func TestEncodeStringBytes(t *testing.T) {
	got := encode(t, func(e *Encoder) error { return e.EncodeString("Hello") })
	want := append([]byte{byte(wire.String)}, length8(5)...)
	want = append(want, "Hello"...)
	if !bytes.Equal(got, want) {
		t.Fatalf("emitted % x, want % x", got, want)
	}
}

func TestEncodeUnsizedStringBytes(t *testing.T) {
	got := encode(t, func(e *Encoder) error { return e.EncodeUnsizedString("Hi") })
	want := []byte{byte(wire.UnsizedString), 'H', 'i', 0xC0, 0xC1}
	if !bytes.Equal(got, want) {
		t.Fatalf("emitted % x, want % x", got, want)
	}
}

func TestEncodeFormatted(t *testing.T) {
	// fmt output streams straight to the sink under an UnsizedString
	// tag; the result is indistinguishable from EncodeUnsizedString
	// of the formatted text.
	got := encode(t, func(e *Encoder) error { return e.EncodeFormatted(1234) })
	want := encode(t, func(e *Encoder) error { return e.EncodeUnsizedString("1234") })
	if !bytes.Equal(got, want) {
		t.Fatalf("emitted % x, want % x", got, want)
	}
}

func TestEncodeStructBytes(t *testing.T) {
	// Struct tag, 1-byte field count, then the fields positionally.
	got := encode(t, func(e *Encoder) error {
		if err := e.BeginStruct(2); err != nil {
			return err
		}
		if err := e.EncodeUint64(56); err != nil {
			return err
		}
		return e.EncodeString("Hello")
	})
	want := []byte{byte(wire.Struct), 2, byte(wire.Uint64)}
	want = append(want, length8(56)...)
	want = append(want, byte(wire.String))
	want = append(want, length8(5)...)
	want = append(want, "Hello"...)
	if !bytes.Equal(got, want) {
		t.Fatalf("emitted % x, want % x", got, want)
	}
}

func TestEncodeVariantBytes(t *testing.T) {
	t.Run("unit", func(t *testing.T) {
		got := encode(t, func(e *Encoder) error { return e.EncodeUnitVariant(0) })
		want := []byte{byte(wire.UnitVariant), 0, 0, 0, 0}
		if !bytes.Equal(got, want) {
			t.Fatalf("emitted % x, want % x", got, want)
		}
	})

	t.Run("newtype", func(t *testing.T) {
		got := encode(t, func(e *Encoder) error {
			if err := e.EncodeNewtypeVariant(1); err != nil {
				return err
			}
			return e.EncodeUint8(56)
		})
		want := []byte{byte(wire.NewtypeVariant), 0, 0, 0, 1, byte(wire.Uint8), 56}
		if !bytes.Equal(got, want) {
			t.Fatalf("emitted % x, want % x", got, want)
		}
	})

	t.Run("tuple", func(t *testing.T) {
		got := encode(t, func(e *Encoder) error {
			if err := e.BeginTupleVariant(2); err != nil {
				return err
			}
			if err := e.EncodeFloat32(12.3); err != nil {
				return err
			}
			return e.EncodeString("String")
		})
		want := []byte{byte(wire.TupleVariant), 0, 0, 0, 2, byte(wire.Float32), 65, 68, 204, 205, byte(wire.String)}
		want = append(want, length8(6)...)
		want = append(want, "String"...)
		if !bytes.Equal(got, want) {
			t.Fatalf("emitted % x, want % x", got, want)
		}
	})

	t.Run("struct", func(t *testing.T) {
		got := encode(t, func(e *Encoder) error {
			if err := e.BeginStructVariant(3); err != nil {
				return err
			}
			if err := e.EncodeFloat64(42.123); err != nil {
				return err
			}
			if err := e.BeginSeq(4); err != nil {
				return err
			}
			for _, v := range []uint16{3, 7, 1, 8} {
				if err := e.EncodeUint16(v); err != nil {
					return err
				}
			}
			return nil
		})
		want := []byte{byte(wire.StructVariant), 0, 0, 0, 3, byte(wire.Float64), 64, 69, 15, 190, 118, 200, 180, 57, byte(wire.Seq)}
		want = append(want, length8(4)...)
		for _, v := range []uint16{3, 7, 1, 8} {
			want = append(want, byte(wire.Uint16), byte(v>>8), byte(v))
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("emitted % x, want % x", got, want)
		}
	})
}

func TestEncodeCountCap(t *testing.T) {
	var buffer sink.Buffer
	encoder := NewEncoder(&buffer)
	if err := encoder.BeginTuple(wire.MaxCount); err != nil {
		t.Fatalf("BeginTuple(%d): %v", wire.MaxCount, err)
	}
	if err := encoder.BeginTuple(wire.MaxCount + 1); !errors.Is(err, ErrTooManyElements) {
		t.Fatalf("BeginTuple(%d) err = %v, want ErrTooManyElements", wire.MaxCount+1, err)
	}
	if err := encoder.BeginStruct(-1); !errors.Is(err, ErrTooManyElements) {
		t.Fatalf("BeginStruct(-1) err = %v, want ErrTooManyElements", err)
	}
}

func TestTupleAtCountCap(t *testing.T) {
	encoded := encode(t, func(e *Encoder) error {
		if err := e.BeginTuple(wire.MaxCount); err != nil {
			return err
		}
		for i := range wire.MaxCount {
			if err := e.EncodeUint16(uint16(i)); err != nil {
				return err
			}
		}
		return nil
	})
	decoder := NewDecoder(encoded)
	if err := decoder.BeginTuple(wire.MaxCount); err != nil {
		t.Fatalf("BeginTuple(%d): %v", wire.MaxCount, err)
	}
	for i := range wire.MaxCount {
		got, err := decoder.DecodeUint16()
		if err != nil {
			t.Fatalf("element %d: %v", i, err)
		}
		if got != uint16(i) {
			t.Fatalf("element %d = %d, want %d", i, got, i)
		}
	}
	if remaining := decoder.Remaining(); remaining != 0 {
		t.Fatalf("%d bytes left after the final element", remaining)
	}
}

func TestUnsizedSeqTerminationPolicies(t *testing.T) {
	elements := []uint8{1, 2, 3}

	t.Run("end tag", func(t *testing.T) {
		got := encode(t, func(e *Encoder) error {
			unsized, err := e.BeginUnsizedSeq()
			if err != nil {
				return err
			}
			for _, v := range elements {
				if err := unsized.Element().EncodeUint8(v); err != nil {
					return err
				}
			}
			return unsized.End()
		})
		want := []byte{byte(wire.UnsizedSeq)}
		for _, v := range elements {
			want = append(want, byte(wire.Uint8), v)
		}
		want = append(want, byte(wire.UnsizedSeqEnd))
		if !bytes.Equal(got, want) {
			t.Fatalf("emitted % x, want % x", got, want)
		}
	})

	t.Run("count", func(t *testing.T) {
		// TerminateWithCount must be byte-identical to a sized
		// sequence of the same elements.
		var buffer sink.Buffer
		encoder := EncOptions{Termination: TerminateWithCount}.NewEncoder(&buffer)
		unsized, err := encoder.BeginUnsizedSeq()
		if err != nil {
			t.Fatalf("begin: %v", err)
		}
		for _, v := range elements {
			if err := unsized.Element().EncodeUint8(v); err != nil {
				t.Fatalf("element: %v", err)
			}
		}
		if err := unsized.End(); err != nil {
			t.Fatalf("end: %v", err)
		}

		sized := encode(t, func(e *Encoder) error {
			if err := e.BeginSeq(len(elements)); err != nil {
				return err
			}
			for _, v := range elements {
				if err := e.EncodeUint8(v); err != nil {
					return err
				}
			}
			return nil
		})
		if !bytes.Equal(buffer.Bytes(), sized) {
			t.Fatalf("emitted % x, want sized form % x", buffer.Bytes(), sized)
		}
	})
}

func TestUnsizedMapTermination(t *testing.T) {
	writeEntries := func(unsized *UnsizedEncoder) error {
		for _, key := range []string{"a", "b"} {
			element := unsized.Element()
			if err := element.EncodeString(key); err != nil {
				return err
			}
			if err := element.EncodeBool(true); err != nil {
				return err
			}
		}
		return unsized.End()
	}

	got := encode(t, func(e *Encoder) error {
		unsized, err := e.BeginUnsizedMap()
		if err != nil {
			return err
		}
		return writeEntries(unsized)
	})
	if got[0] != byte(wire.UnsizedMap) || got[len(got)-1] != byte(wire.UnsizedSeqEnd) {
		t.Fatalf("emitted % x, want UnsizedMap framing", got)
	}

	var buffer sink.Buffer
	encoder := EncOptions{Termination: TerminateWithCount}.NewEncoder(&buffer)
	unsized, err := encoder.BeginUnsizedMap()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := writeEntries(unsized); err != nil {
		t.Fatalf("entries: %v", err)
	}
	counted := buffer.Bytes()
	if counted[0] != byte(wire.Map) {
		t.Fatalf("emitted tag %d, want Map", counted[0])
	}
	if !bytes.Equal(counted[1:1+wire.LengthSize], length8(2)) {
		t.Fatalf("emitted count % x, want 2", counted[1:1+wire.LengthSize])
	}
}

func TestEncoderSinkFailure(t *testing.T) {
	// A full fixed buffer aborts the encode with the sink's error.
	fixed := sink.NewFixed(make([]byte, 3))
	encoder := NewEncoder(fixed)
	if err := encoder.EncodeString("too long"); !errors.Is(err, sink.ErrEndOfBuffer) {
		t.Fatalf("err = %v, want ErrEndOfBuffer", err)
	}
}
