// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the byte-level grammar of the tagwire format:
// the one-byte tag discriminants, the fixed field widths that follow
// each tag, and the out-of-band end marker for strings of unknown
// length.
//
// Every encoded value starts with a tag byte identifying the shape of
// what follows. The tag space is partitioned: each byte value from 0
// to 37 maps to exactly one shape, and everything above is invalid.
// The grammar carries no field names, no schema, and no versioning —
// structs and tuple-likes are positional, enum variants are identified
// by a 4-byte index, and encoder and decoder agree on the target type
// out of band.
//
// All multi-byte integers on the wire are big-endian. Lengths for
// strings, byte arrays, sequences, and maps are 8 bytes; element
// counts for tuples and structs are a single byte (hard cap 255);
// enum variant indices are always 4 bytes.
package wire
