package core

import (
	"golang.org/x/text/encoding/charmap"
)

// Glyphs are code points of the console's OEM code page (437).
const (
	GlyphNull      uint16 = 0
	GlyphSpace     uint16 = 0x20
	GlyphShade     uint16 = 0xB1 // ▒
	GlyphFullBlock uint16 = 0xDB // █
	GlyphHalfBlock uint16 = 0xDC // ▄, lower half block
)

// EncodeText converts a string to code page 437 glyph bytes.
// Runes without a code page 437 form become '?'.
func EncodeText(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.CodePage437.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

// DecodeGlyph returns the rune a glyph displays as. Glyphs above 0xFF are
// already Unicode code points and pass through unchanged. Control codes
// display as a space.
func DecodeGlyph(g uint16) rune {
	if g > 0xFF {
		return rune(g)
	}
	if g < GlyphSpace || g == 0x7F {
		return ' '
	}
	return charmap.CodePage437.DecodeByte(byte(g))
}
