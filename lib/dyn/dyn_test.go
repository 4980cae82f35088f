// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dyn

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/bureau-foundation/tagwire/lib/codec"
	"github.com/bureau-foundation/tagwire/lib/sink"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// encodeDirect runs a hand-driven encode against the engine surface
// and returns the bytes.
func encodeDirect(t *testing.T, fn func(e *codec.Encoder) error) []byte {
	t.Helper()
	var buffer sink.Buffer
	encoder := codec.NewEncoder(&buffer)
	if err := fn(encoder); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buffer.Bytes()
}

// reencode marshals a decoded tree back to bytes.
func reencode(t *testing.T, v Value) []byte {
	t.Helper()
	encoded, err := codec.Encode(v)
	if err != nil {
		t.Fatalf("re-encode %s: %v", v, err)
	}
	return encoded
}

func TestDecodeScalars(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  Value
	}{
		{"bool", true, Bool(true)},
		{"int8", int8(-5), Number{Tag: wire.Int8, Int: -5}},
		{"int64", int64(1 << 40), Number{Tag: wire.Int64, Int: 1 << 40}},
		{"uint16", uint16(65535), Number{Tag: wire.Uint16, Uint: 65535}},
		{"float32", float32(12.3), Number{Tag: wire.Float32, Float: float64(float32(12.3))}},
		{"float64", 42.125, Number{Tag: wire.Float64, Float: 42.125}},
		{"char", codec.Char('î'), Char('î')},
		{"string", "Hello", String("Hello")},
		{"bytes", []byte{1, 2, 3}, Bytes{1, 2, 3}},
		{"none", (*int)(nil), Option{}},
		{"some", ptr(uint8(7)), Option{Inner: Number{Tag: wire.Uint8, Uint: 7}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := codec.Encode(tc.value)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := Decode(encoded)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("decoded %s, want %s", got, tc.want)
			}
			if round := reencode(t, got); !bytes.Equal(round, encoded) {
				t.Fatalf("re-encode produced % x, want % x", round, encoded)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestDecodeContainers(t *testing.T) {
	t.Run("seq", func(t *testing.T) {
		encoded, err := codec.Encode([]uint16{3, 7, 1, 8})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := Array{
			Number{Tag: wire.Uint16, Uint: 3},
			Number{Tag: wire.Uint16, Uint: 7},
			Number{Tag: wire.Uint16, Uint: 1},
			Number{Tag: wire.Uint16, Uint: 8},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("decoded %s, want %s", got, want)
		}
		if round := reencode(t, got); !bytes.Equal(round, encoded) {
			t.Fatalf("re-encode produced % x, want % x", round, encoded)
		}
	})

	t.Run("map", func(t *testing.T) {
		encoded, err := codec.Encode(map[string]bool{"a": true})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		m, ok := got.(Map)
		if !ok {
			t.Fatalf("decoded %T, want Map", got)
		}
		if m.Positional() {
			t.Fatal("plain map decoded as positional")
		}
		want := []Entry{{Key: String("a"), Value: Bool(true)}}
		if !reflect.DeepEqual(m.Entries, want) {
			t.Fatalf("entries %v, want %v", m.Entries, want)
		}
		if round := reencode(t, got); !bytes.Equal(round, encoded) {
			t.Fatalf("re-encode produced % x, want % x", round, encoded)
		}
	})

	t.Run("struct", func(t *testing.T) {
		type pair struct {
			A uint8
			B string
		}
		encoded, err := codec.Encode(pair{A: 56, B: "Hello"})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		m, ok := got.(Map)
		if !ok {
			t.Fatalf("decoded %T, want Map", got)
		}
		if !m.Positional() {
			t.Fatal("struct did not decode as positional map")
		}
		want := []Entry{
			{Key: Number{Tag: wire.Uint64, Uint: 0}, Value: Number{Tag: wire.Uint8, Uint: 56}},
			{Key: Number{Tag: wire.Uint64, Uint: 1}, Value: String("Hello")},
		}
		if !reflect.DeepEqual(m.Entries, want) {
			t.Fatalf("entries %v, want %v", m.Entries, want)
		}
		// Positional maps re-emit the struct shape, not the map
		// shape, so the round trip is byte-exact.
		if round := reencode(t, got); !bytes.Equal(round, encoded) {
			t.Fatalf("re-encode produced % x, want % x", round, encoded)
		}
	})

	t.Run("nested", func(t *testing.T) {
		encoded, err := codec.Encode([][]bool{{true}, {}, {false, true}})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := Array{
			Array{Bool(true)},
			Array{},
			Array{Bool(false), Bool(true)},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("decoded %s, want %s", got, want)
		}
	})
}

func TestDecodeUnsizedSeq(t *testing.T) {
	// An end-marked sequence decodes to the same Array as its sized
	// twin; re-encoding normalizes to the sized form.
	encoded := encodeDirect(t, func(e *codec.Encoder) error {
		unsized, err := e.BeginUnsizedSeq()
		if err != nil {
			return err
		}
		for _, v := range []uint16{1, 2, 3} {
			if err := unsized.Element().EncodeUint16(v); err != nil {
				return err
			}
		}
		return unsized.End()
	})
	got, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Array{
		Number{Tag: wire.Uint16, Uint: 1},
		Number{Tag: wire.Uint16, Uint: 2},
		Number{Tag: wire.Uint16, Uint: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("decoded %s, want %s", got, want)
	}
	sized, err := codec.Encode([]uint16{1, 2, 3})
	if err != nil {
		t.Fatalf("encode sized: %v", err)
	}
	if round := reencode(t, got); !bytes.Equal(round, sized) {
		t.Fatalf("re-encode produced % x, want sized form % x", round, sized)
	}
}

func TestDecodeVariants(t *testing.T) {
	t.Run("unit", func(t *testing.T) {
		encoded := encodeDirect(t, func(e *codec.Encoder) error {
			return e.EncodeUnitVariant(3)
		})
		got, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := Enum{Kind: wire.UnitVariant, Variant: 3}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("decoded %s, want %s", got, want)
		}
		if round := reencode(t, got); !bytes.Equal(round, encoded) {
			t.Fatalf("re-encode produced % x, want % x", round, encoded)
		}
	})

	t.Run("newtype", func(t *testing.T) {
		encoded := encodeDirect(t, func(e *codec.Encoder) error {
			if err := e.EncodeNewtypeVariant(1); err != nil {
				return err
			}
			return e.EncodeUint8(56)
		})
		got, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := Enum{Kind: wire.NewtypeVariant, Variant: 1, Payload: Number{Tag: wire.Uint8, Uint: 56}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("decoded %s, want %s", got, want)
		}
		if round := reencode(t, got); !bytes.Equal(round, encoded) {
			t.Fatalf("re-encode produced % x, want % x", round, encoded)
		}
	})

	t.Run("tuple variant rejected", func(t *testing.T) {
		encoded := encodeDirect(t, func(e *codec.Encoder) error {
			if err := e.BeginTupleVariant(2); err != nil {
				return err
			}
			if err := e.EncodeUint8(1); err != nil {
				return err
			}
			return e.EncodeUint8(2)
		})
		if _, err := Decode(encoded); err == nil {
			t.Fatal("decode of tuple variant succeeded, want error")
		}
	})

	t.Run("struct variant rejected", func(t *testing.T) {
		encoded := encodeDirect(t, func(e *codec.Encoder) error {
			if err := e.BeginStructVariant(0); err != nil {
				return err
			}
			return e.EncodeBool(true)
		})
		if _, err := Decode(encoded); err == nil {
			t.Fatal("decode of struct variant succeeded, want error")
		}
	})
}

func TestDecodeNewtypeStructUnwraps(t *testing.T) {
	encoded := encodeDirect(t, func(e *codec.Encoder) error {
		if err := e.EncodeNewtypeStruct(); err != nil {
			return err
		}
		return e.EncodeUint8(9)
	})
	got, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Number{Tag: wire.Uint8, Uint: 9}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("decoded %s, want %s", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Run("int128", func(t *testing.T) {
		if _, err := Decode([]byte{byte(wire.Int128), 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}); !errors.Is(err, codec.ErrInt128Unsupported) {
			t.Fatalf("err = %v, want ErrInt128Unsupported", err)
		}
	})

	t.Run("trailing bytes", func(t *testing.T) {
		encoded, err := codec.Encode(true)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		var trailing codec.TrailingBytesError
		if _, err := Decode(append(encoded, 0)); !errors.As(err, &trailing) {
			t.Fatalf("err = %v, want TrailingBytesError", err)
		} else if int(trailing) != 1 {
			t.Fatalf("trailing = %d, want 1", int(trailing))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := Decode(nil); err == nil {
			t.Fatal("decode of empty input succeeded, want error")
		}
	})

	t.Run("stray end tag", func(t *testing.T) {
		if _, err := Decode([]byte{byte(wire.UnsizedSeqEnd)}); err == nil {
			t.Fatal("decode of bare end tag succeeded, want error")
		}
	})

	t.Run("truncated seq", func(t *testing.T) {
		encoded, err := codec.Encode([]uint8{1, 2, 3})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if _, err := Decode(encoded[:len(encoded)-1]); err == nil {
			t.Fatal("decode of truncated input succeeded, want error")
		}
	})
}

func TestValueString(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{Unit{}, "()"},
		{Bool(false), "Bool(false)"},
		{Number{Tag: wire.Int32, Int: -7}, "Int32(-7)"},
		{Option{}, "None"},
		{Option{Inner: Char('A')}, "Some('A')"},
		{Array{Bool(true), Unit{}}, "[Bool(true),()]"},
		{Map{Entries: []Entry{{Key: String("k"), Value: Bool(true)}}}, `{String("k"):Bool(true)}`},
		{Enum{Kind: wire.UnitVariant, Variant: 2}, "UnitVariant(2)"},
	}
	for _, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
