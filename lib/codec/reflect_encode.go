// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"sort"

	"github.com/bureau-foundation/tagwire/lib/sink"
)

var (
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	charType          = reflect.TypeFor[Char]()
)

// encodeAny is the reflection entry point for the encode engine.
func encodeAny(e *Encoder, v any) error {
	if v == nil {
		// The untyped null. Matches how document trees encode
		// their null nodes (see lib/transcode).
		return e.EncodeUnit()
	}
	if m, ok := v.(Marshaler); ok {
		return m.MarshalTagwire(e)
	}
	return encodeValue(e, reflect.ValueOf(v))
}

// encodeValue walks one typed value depth-first, emitting tag and
// payload per node.
func encodeValue(e *Encoder, v reflect.Value) error {
	t := v.Type()

	// Custom encoders take precedence over the kind-based walk, on
	// either the value or its pointer.
	if t.Implements(marshalerType) {
		return v.Interface().(Marshaler).MarshalTagwire(e)
	}
	if v.CanAddr() && reflect.PointerTo(t).Implements(marshalerType) {
		return v.Addr().Interface().(Marshaler).MarshalTagwire(e)
	}
	if t == charType {
		return e.EncodeChar(rune(v.Int()))
	}
	// TextMarshaler maps to the display-string production: its text
	// bytes stream into an end-marked run. Checked after the native
	// shapes' special cases above but before the generic kinds.
	if t.Implements(textMarshalerType) && t.Kind() != reflect.Pointer {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return fmt.Errorf("codec: marshaling text for %s: %w", t, err)
		}
		return e.EncodeUnsizedString(string(text))
	}

	switch v.Kind() {
	case reflect.Bool:
		return e.EncodeBool(v.Bool())
	case reflect.Int8:
		return e.EncodeInt8(int8(v.Int()))
	case reflect.Int16:
		return e.EncodeInt16(int16(v.Int()))
	case reflect.Int32:
		return e.EncodeInt32(int32(v.Int()))
	case reflect.Int64, reflect.Int:
		return e.EncodeInt64(v.Int())
	case reflect.Uint8:
		return e.EncodeUint8(uint8(v.Uint()))
	case reflect.Uint16:
		return e.EncodeUint16(uint16(v.Uint()))
	case reflect.Uint32:
		return e.EncodeUint32(uint32(v.Uint()))
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return e.EncodeUint64(v.Uint())
	case reflect.Float32:
		return e.EncodeFloat32(float32(v.Float()))
	case reflect.Float64:
		return e.EncodeFloat64(v.Float())
	case reflect.String:
		return e.EncodeString(v.String())
	case reflect.Pointer:
		if v.IsNil() {
			return e.EncodeNone()
		}
		if err := e.EncodeSome(); err != nil {
			return err
		}
		return encodeValue(e, v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			return e.EncodeUnit()
		}
		return encodeValue(e, v.Elem())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return e.EncodeBytes(v.Bytes())
		}
		return encodeSeq(e, v)
	case reflect.Array:
		return encodeSeq(e, v)
	case reflect.Map:
		return encodeMap(e, v)
	case reflect.Struct:
		return encodeStruct(e, v)
	case reflect.Func:
		return encodeIterator(e, v)
	default:
		return fmt.Errorf("codec: cannot encode %s (kind %s)", t, v.Kind())
	}
}

func encodeSeq(e *Encoder, v reflect.Value) error {
	if err := e.BeginSeq(v.Len()); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		if err := encodeValue(e, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// encodeMap emits map entries sorted by their encoded key bytes so
// that the same logical map always produces identical output. Go maps
// have no iteration order; sorting on the wire form works for any
// key type without a per-type comparison.
func encodeMap(e *Encoder, v reflect.Value) error {
	type entry struct {
		keyBytes []byte
		value    reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var buffer sink.Buffer
		keyEncoder := e.options.NewEncoder(&buffer)
		if err := encodeValue(keyEncoder, iter.Key()); err != nil {
			return fmt.Errorf("codec: encoding map key: %w", err)
		}
		entries = append(entries, entry{keyBytes: buffer.Bytes(), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].keyBytes, entries[j].keyBytes) < 0
	})

	if err := e.BeginMap(len(entries)); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := e.write(entry.keyBytes); err != nil {
			return err
		}
		if err := encodeValue(e, entry.value); err != nil {
			return err
		}
	}
	return nil
}

func encodeStruct(e *Encoder, v reflect.Value) error {
	fields := structFields(v.Type())
	if err := e.BeginStruct(len(fields)); err != nil {
		return err
	}
	for _, index := range fields {
		if err := encodeValue(e, v.Field(index)); err != nil {
			return fmt.Errorf("codec: field %s: %w", v.Type().Field(index).Name, err)
		}
	}
	return nil
}

// encodeIterator handles range-over-func values: iter.Seq becomes an
// unknown-length sequence, iter.Seq2 an unknown-length map. The
// element count is discovered during iteration, exercising the
// encoder's unsized-container path.
func encodeIterator(e *Encoder, v reflect.Value) error {
	switch {
	case v.Type().CanSeq2():
		u, err := e.BeginUnsizedMap()
		if err != nil {
			return err
		}
		var iterErr error
		for k, val := range v.Seq2() {
			child := u.Element()
			if iterErr = encodeValue(child, k); iterErr != nil {
				break
			}
			if iterErr = encodeValue(child, val); iterErr != nil {
				break
			}
		}
		if iterErr != nil {
			return iterErr
		}
		return u.End()
	case v.Type().CanSeq():
		u, err := e.BeginUnsizedSeq()
		if err != nil {
			return err
		}
		var iterErr error
		for item := range v.Seq() {
			if iterErr = encodeValue(u.Element(), item); iterErr != nil {
				break
			}
		}
		if iterErr != nil {
			return iterErr
		}
		return u.End()
	default:
		return fmt.Errorf("codec: cannot encode func %s (not an iterator)", v.Type())
	}
}

// structFields returns the indices of the fields that participate in
// encoding: exported, not tagged `tagwire:"-"`, in declaration order.
// Declaration order is the field's wire identity — reordering fields
// is a breaking format change for that struct.
func structFields(t reflect.Type) []int {
	fields := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Tag.Get("tagwire") == "-" {
			continue
		}
		fields = append(fields, i)
	}
	return fields
}
