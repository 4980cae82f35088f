// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBufferAccumulates(t *testing.T) {
	var b Buffer
	if _, err := b.Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := b.WriteByte(4); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if got, want := b.Bytes(), []byte{1, 2, 3, 4}; !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}
	if b.Len() != 4 {
		t.Errorf("Len() = %d, want 4", b.Len())
	}
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", b.Len())
	}
}

func TestFixedCapacity(t *testing.T) {
	buf := make([]byte, 3)
	f := NewFixed(buf)
	if _, err := f.Write([]byte{1, 2}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// A write that does not fit must write nothing.
	if _, err := f.Write([]byte{3, 4}); !errors.Is(err, ErrEndOfBuffer) {
		t.Fatalf("overflowing Write: error %v, want ErrEndOfBuffer", err)
	}
	if f.Len() != 2 {
		t.Errorf("Len() after failed write = %d, want 2", f.Len())
	}
	if err := f.WriteByte(3); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if err := f.WriteByte(4); !errors.Is(err, ErrEndOfBuffer) {
		t.Fatalf("WriteByte past capacity: error %v, want ErrEndOfBuffer", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3}) {
		t.Errorf("buffer = %v, want [1 2 3]", buf)
	}
}

func TestCounterCounts(t *testing.T) {
	var c Counter
	if _, err := c.Write(make([]byte, 10)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := c.WriteByte(0); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if c.Len() != 11 {
		t.Errorf("Len() = %d, want 11", c.Len())
	}
}

// shortWriter accepts at most one byte per call.
type shortWriter struct {
	out []byte
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	w.out = append(w.out, p[0])
	if len(p) > 1 {
		return 1, nil
	}
	return 1, nil
}

func TestStreamConvertsShortWrites(t *testing.T) {
	s := NewStream(&shortWriter{})
	if _, err := s.Write([]byte{1, 2}); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("short write error = %v, want io.ErrShortWrite", err)
	}
}

func TestStreamForwards(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(&out)
	if _, err := s.Write([]byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.WriteByte('d'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if out.String() != "abcd" {
		t.Errorf("stream output = %q, want %q", out.String(), "abcd")
	}
}
