package nbt

import (
	"strconv"
	"strings"
)

// ============================================================
// Canonical text helpers
// ============================================================

// formatFloat returns the shortest representation that round-trips at the
// given bit size.
func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// writeQuoted writes s in double quotes, escaping backslash, quote and the
// common control characters.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

// isBareKey reports whether a compound key can be written without quotes.
// Pattern: [A-Za-z0-9_.+-]+
func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isBareChar(s[i]) {
			return false
		}
	}
	return true
}

func isBareChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '+', c == '-':
		return true
	default:
		return false
	}
}

// writeKey writes a compound key, quoting it when it contains the map
// separator or any other character outside the bare set.
func writeKey(b *strings.Builder, key string) {
	if isBareKey(key) {
		b.WriteString(key)
		return
	}
	writeQuoted(b, key)
}

// ============================================================
// Display helpers
// ============================================================

// writeDisplayOpen writes {"type":"<Variant>","value": for kind k.
func writeDisplayOpen(b *strings.Builder, k Kind) {
	b.WriteString(`{"type":"`)
	b.WriteString(k.typeName())
	b.WriteString(`","value":`)
}

func writeDisplayScalar(b *strings.Builder, k Kind, value string) {
	writeDisplayOpen(b, k)
	b.WriteString(value)
	b.WriteByte('}')
}
