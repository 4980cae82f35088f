// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"testing"
)

func TestDomainSeparation(t *testing.T) {
	data := []byte("same input bytes")
	if Payload(data) == Frame(data) {
		t.Fatal("payload and frame digests collide for identical input")
	}
}

func TestDigestStable(t *testing.T) {
	data := []byte{1, 2, 3}
	if Payload(data) != Payload(data) {
		t.Fatal("digest is not deterministic")
	}
	if Payload(data) == Payload([]byte{1, 2, 4}) {
		t.Fatal("different inputs produced the same digest")
	}
}

func TestFormatParse(t *testing.T) {
	hash := Payload([]byte("roundtrip"))
	formatted := Format(hash)
	if len(formatted) != 64 {
		t.Fatalf("formatted digest is %d characters, want 64", len(formatted))
	}
	parsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != hash {
		t.Fatal("parse did not invert format")
	}

	if _, err := Parse("zz"); err == nil {
		t.Fatal("parse of invalid hex succeeded, want error")
	}
	if _, err := Parse("abcd"); err == nil {
		t.Fatal("parse of short hex succeeded, want error")
	}
}
