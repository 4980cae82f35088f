// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding"
	"fmt"
	"reflect"
)

var (
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// maxPrealloc caps how many elements are pre-allocated from a
// declared container length. A hostile length prefix can claim up to
// 2^63 elements; allocation beyond this grows incrementally as
// elements actually decode.
const maxPrealloc = 256

// decodeAny is the reflection entry point for the decode engine.
func decodeAny(d *Decoder, v any) error {
	if u, ok := v.(Unmarshaler); ok {
		return u.UnmarshalTagwire(d)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("codec: decode target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(d, rv.Elem())
}

// decodeValue decodes the next value into v, which must be
// addressable. The shape expected on the wire is derived from v's
// type; a tag that does not match fails immediately.
func decodeValue(d *Decoder, v reflect.Value) error {
	t := v.Type()

	if v.CanAddr() {
		addr := v.Addr()
		if addr.Type().Implements(unmarshalerType) {
			return addr.Interface().(Unmarshaler).UnmarshalTagwire(d)
		}
		if addr.Type().Implements(textUnmarshalerType) {
			raw, err := d.DecodeStringBytes()
			if err != nil {
				return err
			}
			return addr.Interface().(encoding.TextUnmarshaler).UnmarshalText(raw)
		}
	}
	if t == charType {
		r, err := d.DecodeChar()
		if err != nil {
			return err
		}
		v.SetInt(int64(r))
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := d.DecodeBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.Int8:
		n, err := d.DecodeInt8()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int16:
		n, err := d.DecodeInt16()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int32:
		n, err := d.DecodeInt32()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
		return nil
	case reflect.Int64, reflect.Int:
		n, err := d.DecodeInt64()
		if err != nil {
			return err
		}
		if v.OverflowInt(n) {
			return fmt.Errorf("codec: value %d overflows %s", n, t)
		}
		v.SetInt(n)
		return nil
	case reflect.Uint8:
		n, err := d.DecodeUint8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint16:
		n, err := d.DecodeUint16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint32:
		n, err := d.DecodeUint32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		n, err := d.DecodeUint64()
		if err != nil {
			return err
		}
		if v.OverflowUint(n) {
			return fmt.Errorf("codec: value %d overflows %s", n, t)
		}
		v.SetUint(n)
		return nil
	case reflect.Float32:
		f, err := d.DecodeFloat32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil
	case reflect.Float64:
		f, err := d.DecodeFloat64()
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	case reflect.String:
		s, err := d.DecodeString()
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case reflect.Pointer:
		present, err := d.DecodeOption()
		if err != nil {
			return err
		}
		if !present {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return decodeValue(d, v.Elem())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			// Zero-copy: the result aliases the decoder's input
			// buffer.
			raw, err := d.DecodeBytes()
			if err != nil {
				return err
			}
			v.SetBytes(raw)
			return nil
		}
		return decodeSlice(d, v)
	case reflect.Array:
		return decodeArray(d, v)
	case reflect.Map:
		return decodeMap(d, v)
	case reflect.Struct:
		return decodeStruct(d, v)
	case reflect.Interface:
		return ErrNotSelfDescribing
	default:
		return fmt.Errorf("codec: cannot decode into %s (kind %s)", t, v.Kind())
	}
}

func decodeSlice(d *Decoder, v reflect.Value) error {
	container, err := d.BeginSeq()
	if err != nil {
		return err
	}
	capacity := 0
	if length, known := container.Len(); known {
		capacity = min(length, maxPrealloc)
	}
	result := reflect.MakeSlice(v.Type(), 0, capacity)
	for {
		more, err := container.Next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		element := reflect.New(v.Type().Elem()).Elem()
		if err := decodeValue(d, element); err != nil {
			return err
		}
		result = reflect.Append(result, element)
	}
	v.Set(result)
	return nil
}

// decodeArray requires the sequence's element count to match the
// array length exactly; shorter or longer input is a size mismatch.
func decodeArray(d *Decoder, v reflect.Value) error {
	container, err := d.BeginSeq()
	if err != nil {
		return err
	}
	if length, known := container.Len(); known && length != v.Len() {
		return &SizeMismatchError{Expected: v.Len(), Got: length}
	}
	for i := 0; i < v.Len(); i++ {
		more, err := container.Next()
		if err != nil {
			return err
		}
		if !more {
			return &SizeMismatchError{Expected: v.Len(), Got: i}
		}
		if err := decodeValue(d, v.Index(i)); err != nil {
			return err
		}
	}
	more, err := container.Next()
	if err != nil {
		return err
	}
	if more {
		return &SizeMismatchError{Expected: v.Len(), Got: v.Len() + 1}
	}
	return nil
}

func decodeMap(d *Decoder, v reflect.Value) error {
	container, err := d.BeginMap()
	if err != nil {
		return err
	}
	result := reflect.MakeMap(v.Type())
	keyType := v.Type().Key()
	valueType := v.Type().Elem()
	for {
		more, err := container.Next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		key := reflect.New(keyType).Elem()
		if err := decodeValue(d, key); err != nil {
			return err
		}
		value := reflect.New(valueType).Elem()
		if err := decodeValue(d, value); err != nil {
			return err
		}
		result.SetMapIndex(key, value)
	}
	v.Set(result)
	return nil
}

func decodeStruct(d *Decoder, v reflect.Value) error {
	fields := structFields(v.Type())
	if err := d.BeginStruct(len(fields)); err != nil {
		return err
	}
	for _, index := range fields {
		if err := decodeValue(d, v.Field(index)); err != nil {
			return fmt.Errorf("codec: field %s: %w", v.Type().Field(index).Name, err)
		}
	}
	return nil
}
