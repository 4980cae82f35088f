// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec implements the tagwire encode and decode engines: two
// symmetric state machines that walk a typed value depth-first,
// producing or consuming the tagged byte grammar defined in lib/wire.
//
// The package has two API layers. The engine layer is a pair of
// transient objects — an [Encoder] wrapping one [sink.Sink] and a
// [Decoder] borrowing one []byte — with one method per wire shape.
// Custom types plug into it by implementing [Marshaler] and
// [Unmarshaler], which is also the only way to produce and consume
// enum-variant shapes from Go. The reflection layer maps ordinary Go
// values onto the data model automatically:
//
//	bool                    → BoolTrue / BoolFalse
//	int8..int64, int        → Int8..Int64 (int encodes as Int64)
//	uint8..uint64, uint     → Uint8..Uint64 (uint encodes as Uint64)
//	float32, float64        → Float32 / Float64
//	codec.Char              → Char1..Char4 (raw UTF-8, tag carries width)
//	string                  → String (8-byte length prefix)
//	[]byte                  → ByteArray
//	*T                      → None / Some + encoded T
//	[]T, [N]T               → Seq (8-byte element count)
//	map[K]V                 → Map, entries sorted by encoded key bytes
//	struct                  → Struct, positional fields (1-byte count)
//	iter.Seq / iter.Seq2    → UnsizedSeq / UnsizedMap (end-tag terminated)
//	encoding.TextMarshaler  → UnsizedString (end-marker terminated run)
//
// Struct field names are never written; position is the only identity
// signal. The decoder validates every tag against the shape the
// target type expects and fails immediately on a mismatch — there is
// no resynchronization and no partial success.
//
// Both engines are single-threaded and transient: one instance serves
// one top-level value and is then discarded. Recursion depth equals
// the nesting depth of the value.
//
// For decoding without a target type (the self-describing mode), see
// lib/dyn.
package codec
