package core

// Attr is the attribute byte of a cell.
type Attr uint8

// Attribute bits. The frame bits draw grid lines along the cell edges.
const (
	AttrNone        Attr = 0
	AttrFrameTop    Attr = 0x04
	AttrFrameLeft   Attr = 0x08
	AttrFrameRight  Attr = 0x10
	AttrInvert      Attr = 0x40
	AttrFrameBottom Attr = 0x80 // underscore
)

// AttrFrame masks all four frame edges.
const AttrFrame = AttrFrameTop | AttrFrameLeft | AttrFrameRight | AttrFrameBottom

// Has returns true if every bit of attr is set.
func (a Attr) Has(attr Attr) bool {
	return a&attr == attr
}

// With returns the attribute set with attr OR'ed in. Repeated calls are idempotent.
func (a Attr) With(attr Attr) Attr {
	return a | attr
}

// Without returns the attribute set with attr cleared.
func (a Attr) Without(attr Attr) Attr {
	return a &^ attr
}

// Cell is one character-sized slot: glyph, attribute byte and packed color.
type Cell struct {
	Glyph uint16
	Attr  Attr
	Color Color
}

// NewCell creates a cell.
func NewCell(glyph uint16, attr Attr, color Color) Cell {
	return Cell{Glyph: glyph, Attr: attr, Color: color}
}

// Pack returns the 32-bit record view of the cell: glyph in bits 0-15,
// color in bits 16-23, attributes in bits 24-31.
func (c Cell) Pack() uint32 {
	return uint32(c.Glyph) | uint32(c.Color)<<16 | uint32(c.Attr)<<24
}

// UnpackCell is the inverse of Cell.Pack.
func UnpackCell(v uint32) Cell {
	return Cell{
		Glyph: uint16(v),
		Color: Color(v >> 16),
		Attr:  Attr(v >> 24),
	}
}

// Style is the color and frame setting used when writing text.
type Style struct {
	Color Color
	Frame bool
}

// DefaultStyle is white text on black without a frame.
var DefaultStyle = Style{Color: Pack(0, 7)}

// NewStyle creates a style from background and foreground indices.
func NewStyle(bg, fg uint8, frame bool) Style {
	return Style{Color: Pack(bg, fg), Frame: frame}
}

// FrameAttrs returns the attribute bytes for a run of n written glyphs.
// The first glyph gets top|left|bottom, the last top|right|bottom and the
// interior top|bottom; a single glyph gets all four edges. Without a frame
// every entry is AttrNone.
func (s Style) FrameAttrs(n int) []Attr {
	if n <= 0 {
		return nil
	}
	attrs := make([]Attr, n)
	if !s.Frame {
		return attrs
	}
	for i := range attrs {
		attrs[i] = AttrFrameTop | AttrFrameBottom
	}
	attrs[0] = attrs[0].With(AttrFrameLeft)
	attrs[n-1] = attrs[n-1].With(AttrFrameRight)
	return attrs
}
