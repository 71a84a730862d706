package nbt

import (
	"bytes"
	"testing"
)

func TestModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"ascii", "abc", []byte("abc")},
		{"empty", "", nil},
		{"nul", "\x00", []byte{0xC0, 0x80}},
		{"two byte", "é", []byte{0xC3, 0xA9}},
		{"three byte", "€", []byte{0xE2, 0x82, 0xAC}},
		{"supplementary", "😀", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appendMUTF8(nil, tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encode = % x, want % x", got, tt.want)
			}
			if n := mutf8Len(tt.in); n != len(tt.want) {
				t.Errorf("mutf8Len = %d, want %d", n, len(tt.want))
			}
			back, ok := decodeMUTF8(got)
			if !ok || back != tt.in {
				t.Errorf("decode = %q, %v", back, ok)
			}
		})
	}
}

func TestModifiedUTF8_Invalid(t *testing.T) {
	for _, b := range [][]byte{
		{0xFF},
		{0xC3},
		{0xE2, 0x82},
		{0xC3, 0x41},
	} {
		if _, ok := decodeMUTF8(b); ok {
			t.Errorf("decodeMUTF8(% x) accepted invalid input", b)
		}
	}
}
