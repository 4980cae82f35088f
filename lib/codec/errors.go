// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
)

// Decode failures are terminal: the first structural or grammar
// violation aborts the whole call with no resynchronization.
// Input exhaustion mid-value is reported as io.ErrUnexpectedEOF;
// bytes outside the tag range as wire.InvalidTagError; valid tags in
// the wrong position as wire.UnexpectedTagError.
var (
	// ErrInvalidSize reports a declared length that does not fit
	// the platform's int width.
	ErrInvalidSize = errors.New("codec: declared length does not fit in int")

	// ErrInt128Unsupported reports an Int128 or Uint128 tag. The
	// tag space reserves them, but Go has no native 128-bit
	// integer type.
	ErrInt128Unsupported = errors.New("codec: 128-bit integers are not supported on this platform")

	// ErrTooManyElements reports an encode-time tuple or struct
	// exceeding the 1-byte element count cap. The cap is enforced
	// rather than silently truncated.
	ErrTooManyElements = fmt.Errorf("codec: tuple/struct element count exceeds %d", maxCountValue)

	// ErrNotSelfDescribing reports a decode that would need type
	// information the wire does not carry, such as decoding into an
	// untyped interface value.
	ErrNotSelfDescribing = errors.New("codec: target requires self-describing decode; use lib/dyn")
)

// maxCountValue mirrors wire.MaxCount without importing it into the
// error message formatting path.
const maxCountValue = 255

// TrailingBytesError reports unconsumed input after a successful
// top-level decode. The value is the number of bytes remaining.
type TrailingBytesError int

func (e TrailingBytesError) Error() string {
	return fmt.Sprintf("codec: %d trailing bytes after top-level value", int(e))
}

// SizeMismatchError reports a fixed-arity container whose declared
// element count disagrees with the arity the target type expects.
type SizeMismatchError struct {
	Expected int
	Got      int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("codec: container declares %d elements, target expects %d", e.Got, e.Expected)
}
