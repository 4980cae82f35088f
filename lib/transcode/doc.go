// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package transcode converts between tagwire and document formats
// (JSON, JSONC, YAML, CBOR).
//
// The inbound direction parses a document into generic Go values and
// encodes them through the codec engine, so document structure maps
// onto the wire the same way hand-written Go values do. The outbound
// direction renders a decoded [dyn.Value] tree as a document for
// inspection and interop.
//
// Outbound conversion is lossy where the document model is weaker
// than the wire: number widths collapse to the document's number
// type, enum variants and positional structs become annotated maps.
// It is a diagnostic and interop surface, not a round-trip format.
package transcode
