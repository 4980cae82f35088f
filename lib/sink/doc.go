// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sink provides the write endpoints the tagwire encoder is
// parameterized over. The same engine logic drives four targets:
//
//   - Buffer: growable heap-backed output for callers that want a
//     []byte back.
//   - Fixed: a caller-provided buffer of fixed capacity for
//     allocation-sensitive paths; overflowing it fails with
//     ErrEndOfBuffer.
//   - Counter: discards bytes but counts them, for measuring the
//     encoded size of a value before committing to a buffer.
//   - Stream: adapts any io.Writer (files, sockets, compression
//     writers).
//
// A Sink is just io.Writer plus io.ByteWriter; the decoder has no
// counterpart because it borrows a []byte directly.
package sink
