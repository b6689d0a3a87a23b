package core

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a packed background/foreground pair: 0bBBBBFFFF.
type Color uint8

// Palette index bounds.
const (
	// PaletteSize is the number of entries in a console palette.
	PaletteSize = 16
	// MaxColorIndex is the largest valid 4-bit palette index.
	MaxColorIndex = PaletteSize - 1
)

// Pack combines a background and a foreground palette index into one byte.
// Only the low four bits of each index are used.
func Pack(bg, fg uint8) Color {
	return Color(bg<<4 | fg&0x0F)
}

// Unpack splits the color into its background and foreground indices.
func (c Color) Unpack() (bg, fg uint8) {
	return c.Background(), c.Foreground()
}

// Background returns the high nibble.
func (c Color) Background() uint8 {
	return uint8(c) >> 4
}

// Foreground returns the low nibble.
func (c Color) Foreground() uint8 {
	return uint8(c) & 0x0F
}

// XorMerge combines the high nibble of high with the low nibble of low.
// It overwrites one nibble of a cell's color without disturbing the other.
func XorMerge(high, low Color) Color {
	return high&0xF0 | low&0x0F
}

// Shuffle swaps the two nibbles.
func Shuffle(c Color) Color {
	return c>>4 | c<<4
}

// String returns "bg/fg".
func (c Color) String() string {
	return fmt.Sprintf("%d/%d", c.Background(), c.Foreground())
}

// RGB is a 24-bit palette entry.
type RGB struct {
	R, G, B uint8
}

// Uint32 returns the entry in 0x00BBGGRR order, the layout console palette
// tables store.
func (c RGB) Uint32() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
}

// RGBFromUint32 is the inverse of RGB.Uint32. The top byte is ignored.
func RGBFromUint32(v uint32) RGB {
	return RGB{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
}

// ParseRGB parses a "#RRGGBB" hex string.
func ParseRGB(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Hex returns the "#rrggbb" form of the entry.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Palette maps a 4-bit color index to an RGB value.
// A palette is set once at initialization and never mutated afterwards.
type Palette [PaletteSize]RGB

// NewPalette builds a palette from exactly PaletteSize entries.
func NewPalette(entries []RGB) (Palette, error) {
	var p Palette
	if len(entries) != PaletteSize {
		return p, fmt.Errorf("%w: got %d", ErrPaletteSize, len(entries))
	}
	copy(p[:], entries)
	return p, nil
}

// At returns the entry for a color index. Only the low four bits are used.
func (p *Palette) At(index uint8) RGB {
	return p[index&0x0F]
}

// DefaultPalette is the classic 16-color console palette.
// Index bits are 1=blue, 2=green, 4=red, 8=intensity.
var DefaultPalette = Palette{
	{0, 0, 0},
	{0, 0, 128},
	{0, 128, 0},
	{0, 128, 128},
	{128, 0, 0},
	{128, 0, 128},
	{128, 128, 0},
	{192, 192, 192},
	{128, 128, 128},
	{0, 0, 255},
	{0, 255, 0},
	{0, 255, 255},
	{255, 0, 0},
	{255, 0, 255},
	{255, 255, 0},
	{255, 255, 255},
}
