// Package core provides the value types shared by the rendering packages:
// coordinates, rectangles, packed colors, cells, styles and palettes.
//
// A Cell mirrors the fixed layout of a console character slot: a 16-bit
// glyph code point, one attribute byte and one color byte whose high nibble
// is the background palette index and whose low nibble is the foreground
// palette index.
//
// This package breaks import cycles between renderer, surface, page and backend.
package core
