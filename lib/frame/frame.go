// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package frame wraps encoded payloads in an optional compression
// envelope. The envelope is out of band with respect to the encoding
// itself: a frame holds opaque bytes, and the payload decodes the
// same whether or not it traveled framed.
//
// Frame layout: 1-byte algorithm tag, 8-byte big-endian uncompressed
// size, then the (possibly compressed) body.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies the compression applied to a frame body.
// These values are format constants — changing them breaks frame
// compatibility.
type Algorithm uint8

const (
	// None is an uncompressed body. The fallback when compression
	// does not shrink the payload.
	None Algorithm = 0

	// LZ4 is LZ4 block compression: fast with moderate ratios,
	// the default for payloads of unknown shape.
	LZ4 Algorithm = 1

	// Zstd is zstd at its default level: better ratios for text-
	// heavy payloads at more CPU.
	Zstd Algorithm = 2
)

// headerSize is the algorithm tag plus the 8-byte uncompressed size.
const headerSize = 1 + 8

// ErrTruncated reports a frame shorter than its header.
var ErrTruncated = errors.New("frame: input shorter than frame header")

// String returns the algorithm's name.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// ParseAlgorithm parses an algorithm from its name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("frame: unknown algorithm %q", name)
	}
}

// zstdEncoder and zstdDecoder are shared across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("frame: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("frame: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress frames payload under the requested algorithm. If the
// compressed body would not be smaller than the payload, the frame
// falls back to None; the frame header records what actually
// happened, so Decompress needs no other context.
func Compress(payload []byte, algorithm Algorithm) ([]byte, error) {
	body, used, err := compressBody(payload, algorithm)
	if err != nil {
		return nil, err
	}
	framed := make([]byte, headerSize+len(body))
	framed[0] = byte(used)
	binary.BigEndian.PutUint64(framed[1:headerSize], uint64(len(payload)))
	copy(framed[headerSize:], body)
	return framed, nil
}

func compressBody(payload []byte, algorithm Algorithm) ([]byte, Algorithm, error) {
	switch algorithm {
	case None:
		return payload, None, nil

	case LZ4:
		bound := lz4.CompressBlockBound(len(payload))
		destination := make([]byte, bound)
		written, err := lz4.CompressBlock(payload, destination, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("frame: lz4 compress: %w", err)
		}
		// CompressBlock returns 0 for incompressible input.
		if written == 0 || written >= len(payload) {
			return payload, None, nil
		}
		return destination[:written], LZ4, nil

	case Zstd:
		compressed := zstdEncoder.EncodeAll(payload, nil)
		if len(compressed) >= len(payload) {
			return payload, None, nil
		}
		return compressed, Zstd, nil

	default:
		return nil, 0, fmt.Errorf("frame: unsupported algorithm %d", algorithm)
	}
}

// Decompress unwraps a frame and returns the original payload. The
// recovered size must match the size recorded in the header exactly.
func Decompress(framed []byte) ([]byte, error) {
	if len(framed) < headerSize {
		return nil, ErrTruncated
	}
	algorithm := Algorithm(framed[0])
	size := binary.BigEndian.Uint64(framed[1:headerSize])
	if size > uint64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("frame: declared size %d does not fit in int", size)
	}
	body := framed[headerSize:]

	switch algorithm {
	case None:
		if uint64(len(body)) != size {
			return nil, fmt.Errorf("frame: body is %d bytes, header declares %d", len(body), size)
		}
		return body, nil

	case LZ4:
		destination := make([]byte, size)
		read, err := lz4.UncompressBlock(body, destination)
		if err != nil {
			return nil, fmt.Errorf("frame: lz4 decompress: %w", err)
		}
		if uint64(read) != size {
			return nil, fmt.Errorf("frame: lz4 produced %d bytes, header declares %d", read, size)
		}
		return destination, nil

	case Zstd:
		result, err := zstdDecoder.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("frame: zstd decompress: %w", err)
		}
		if uint64(len(result)) != size {
			return nil, fmt.Errorf("frame: zstd produced %d bytes, header declares %d", len(result), size)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("frame: unsupported algorithm %d", algorithm)
	}
}
