// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes integrity digests for encoded payloads.
// Digests are 32-byte keyed BLAKE3 hashes with domain separation, so
// a payload digest can never collide with a frame digest of the same
// bytes.
package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing. The byte
// values are the ASCII encoding of the domain name, zero-padded to
// 32 bytes: readable in hex dumps, opaque to the hash.
type domainKey [32]byte

// Domain separation keys. Fixed protocol constants — changing them
// invalidates all existing digests in that domain.
var (
	payloadDomainKey = domainKey{
		't', 'a', 'g', 'w', 'i', 'r', 'e', '.',
		'p', 'a', 'y', 'l', 'o', 'a', 'd', 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	frameDomainKey = domainKey{
		't', 'a', 'g', 'w', 'i', 'r', 'e', '.',
		'f', 'r', 'a', 'm', 'e', 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Payload computes the payload-domain digest of an encoded value.
// Computed over the encoded bytes, before any compression framing,
// so the digest survives re-framing with a different algorithm.
func Payload(data []byte) Hash {
	return keyedHash(payloadDomainKey, data)
}

// Frame computes the frame-domain digest of a compressed frame.
func Frame(data []byte) Hash {
	return keyedHash(frameDomainKey, data)
}

// Format returns the hex-encoded string representation of a hash.
// The canonical form for logs and CLI output.
func Format(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// Parse parses a 64-character hex string into a Hash.
func Parse(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// keyedHash computes the BLAKE3 keyed hash with the given domain key.
func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed requires exactly 32 bytes, which domainKey
	// guarantees, so the error path is unreachable.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
