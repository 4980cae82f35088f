// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dyn decodes tagwire data without a target type. Because
// every value on the wire is tagged, a generic value tree can be
// reconstructed from the bytes alone: [Decode] replays the tag stream
// into a [Value], a tagged union covering every wire shape.
//
// The tree is a pure function of the byte stream. What the wire does
// not carry cannot be recovered: struct field names collapse to
// positions (a struct becomes a [Map] with Uint64 index keys), tuples
// collapse to an [Array], and tuple and struct variants cannot be
// decoded at all since their field arity lives only in the target
// type. These limits are inherent to the format, not to this package.
//
// Every Value re-encodes through the codec engine (it implements
// codec.Marshaler), so a tree can be inspected, modified, and written
// back.
//
// Ownership: [Bytes] nodes alias the decoded input buffer and are
// valid only as long as it is; [String] nodes are copies, as Go
// string conversion always is.
package dyn
