// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"errors"
	"io"
)

// Sink accepts raw encoded bytes from the encoder. Implementations
// must be all-or-nothing per call: a short write is an error, never a
// partial success.
type Sink interface {
	io.Writer
	io.ByteWriter
}

// ErrEndOfBuffer is returned by a Fixed sink when a write would
// exceed its capacity.
var ErrEndOfBuffer = errors.New("sink: reached end of buffer before end of encoding")

// Buffer is a growable heap-backed sink. The zero value is ready to
// use.
type Buffer struct {
	data []byte
}

// Write appends p to the buffer. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteByte appends a single byte to the buffer. It never fails.
func (b *Buffer) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

// Bytes returns the accumulated output. The slice aliases the
// buffer's storage; it is valid until the next Write.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes accumulated so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset discards accumulated output, retaining storage for reuse.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Fixed writes into a caller-provided buffer of fixed capacity.
type Fixed struct {
	buf  []byte
	head int
}

// NewFixed returns a sink writing into buf from the start.
func NewFixed(buf []byte) *Fixed {
	return &Fixed{buf: buf}
}

// Write copies p into the buffer. If p does not fit in the remaining
// capacity, nothing is written and ErrEndOfBuffer is returned.
func (f *Fixed) Write(p []byte) (int, error) {
	if f.head+len(p) > len(f.buf) {
		return 0, ErrEndOfBuffer
	}
	copy(f.buf[f.head:], p)
	f.head += len(p)
	return len(p), nil
}

// WriteByte writes a single byte, or ErrEndOfBuffer if the buffer is
// full.
func (f *Fixed) WriteByte(c byte) error {
	if f.head >= len(f.buf) {
		return ErrEndOfBuffer
	}
	f.buf[f.head] = c
	f.head++
	return nil
}

// Len returns the number of bytes written so far.
func (f *Fixed) Len() int {
	return f.head
}

// Counter discards everything written to it, counting bytes. Used
// for dry-run size measurement; it never fails.
type Counter struct {
	n int
}

// Write discards p and counts its length.
func (c *Counter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

// WriteByte discards the byte and counts it.
func (c *Counter) WriteByte(byte) error {
	c.n++
	return nil
}

// Len returns the total number of bytes written.
func (c *Counter) Len() int {
	return c.n
}

// Stream adapts an io.Writer into a Sink.
type Stream struct {
	w io.Writer
}

// NewStream returns a sink forwarding every write to w.
func NewStream(w io.Writer) *Stream {
	return &Stream{w: w}
}

// Write forwards p to the underlying writer, converting short writes
// into errors.
func (s *Stream) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err == nil && n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, err
}

// WriteByte writes a single byte to the underlying writer.
func (s *Stream) WriteByte(c byte) error {
	if bw, ok := s.w.(io.ByteWriter); ok {
		return bw.WriteByte(c)
	}
	_, err := s.Write([]byte{c})
	return err
}
