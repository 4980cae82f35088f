// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tagwire/lib/dyn"
	"github.com/bureau-foundation/tagwire/lib/wire"
)

// renderer prints a decoded value tree with one node per line,
// indentation showing structure, tag names styled when enabled.
type renderer struct {
	tagStyle   lipgloss.Style
	valueStyle lipgloss.Style
	keyStyle   lipgloss.Style
}

func newRenderer(styled bool) *renderer {
	r := &renderer{
		tagStyle:   lipgloss.NewStyle(),
		valueStyle: lipgloss.NewStyle(),
		keyStyle:   lipgloss.NewStyle(),
	}
	if styled {
		r.tagStyle = r.tagStyle.Foreground(lipgloss.Color("6"))
		r.valueStyle = r.valueStyle.Foreground(lipgloss.Color("2"))
		r.keyStyle = r.keyStyle.Foreground(lipgloss.Color("3"))
	}
	return r
}

func (r *renderer) render(v dyn.Value) string {
	var b strings.Builder
	r.renderNode(&b, v, 0)
	return b.String()
}

func (r *renderer) line(b *strings.Builder, depth int, tag, value string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(r.tagStyle.Render(tag))
	if value != "" {
		b.WriteByte(' ')
		b.WriteString(r.valueStyle.Render(value))
	}
	b.WriteByte('\n')
}

func (r *renderer) renderNode(b *strings.Builder, v dyn.Value, depth int) {
	switch v := v.(type) {
	case dyn.Unit:
		r.line(b, depth, "Unit", "")
	case dyn.Bool:
		r.line(b, depth, "Bool", fmt.Sprintf("%t", bool(v)))
	case dyn.Number:
		r.line(b, depth, v.Tag.String(), numberText(v))
	case dyn.Char:
		r.line(b, depth, "Char", fmt.Sprintf("%q", rune(v)))
	case dyn.String:
		r.line(b, depth, "String", fmt.Sprintf("%q", string(v)))
	case dyn.Bytes:
		r.line(b, depth, "Bytes", fmt.Sprintf("%d bytes % x", len(v), truncated(v)))
	case dyn.Option:
		if v.Inner == nil {
			r.line(b, depth, "None", "")
			return
		}
		r.line(b, depth, "Some", "")
		r.renderNode(b, v.Inner, depth+1)
	case dyn.Array:
		r.line(b, depth, "Seq", fmt.Sprintf("%d elements", len(v)))
		for _, element := range v {
			r.renderNode(b, element, depth+1)
		}
	case dyn.Map:
		label := "Map"
		if v.Positional() {
			label = "Struct"
		}
		r.line(b, depth, label, fmt.Sprintf("%d entries", len(v.Entries)))
		for _, entry := range v.Entries {
			b.WriteString(strings.Repeat("  ", depth+1))
			b.WriteString(r.keyStyle.Render(entry.Key.String()))
			b.WriteString(":\n")
			r.renderNode(b, entry.Value, depth+2)
		}
	case dyn.Enum:
		r.line(b, depth, v.Kind.String(), fmt.Sprintf("variant %d", v.Variant))
		if v.Payload != nil {
			r.renderNode(b, v.Payload, depth+1)
		}
	default:
		r.line(b, depth, fmt.Sprintf("%T", v), "")
	}
}

func numberText(v dyn.Number) string {
	switch v.Tag {
	case wire.Int8, wire.Int16, wire.Int32, wire.Int64:
		return fmt.Sprintf("%d", v.Int)
	case wire.Uint8, wire.Uint16, wire.Uint32, wire.Uint64:
		return fmt.Sprintf("%d", v.Uint)
	default:
		return fmt.Sprintf("%g", v.Float)
	}
}

// truncated caps byte previews at 16 bytes.
func truncated(p []byte) []byte {
	if len(p) > 16 {
		return p[:16]
	}
	return p
}
