// Package surface provides the character-cell buffer that visual elements
// draw into before a page blits it to the screen.
//
// A Surface is a flat, row-major slice of cells plus a virtual writing
// cursor. Text operations write at the cursor and clip silently; nothing is
// validated against a screen because surfaces never know where they are shown.
package surface

import (
	"fmt"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

// Surface is a width×height grid of cells with a writing cursor.
// It is not safe for concurrent use.
type Surface struct {
	width, height int
	cells         []core.Cell

	// cursorX stays in [0, width); cursorY may run past the last row until
	// the next line write scrolls it back.
	cursorX, cursorY int
}

// New creates a surface of the given size filled with zero cells.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return nil, fmt.Errorf("surface %dx%d: %w", width, height, core.ErrInvalidSize)
	}
	return &Surface{
		width:  width,
		height: height,
		cells:  make([]core.Cell, width*height),
	}, nil
}

// MustNew is like New but panics on an invalid size.
func MustNew(width, height int) *Surface {
	s, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the surface dimensions as a coordinate.
func (s *Surface) Size() core.Coord {
	return core.Coord{X: uint16(s.width), Y: uint16(s.height)}
}

// Width returns the number of columns.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s *Surface) Height() int {
	return s.height
}

// Cells returns the backing slice. Writes through it are visible to the
// surface; the slice length never changes.
func (s *Surface) Cells() []core.Cell {
	return s.cells
}

// Cell returns the cell at (x, y), or a zero cell outside the surface.
func (s *Surface) Cell(x, y int) core.Cell {
	if !s.inBounds(x, y) {
		return core.Cell{}
	}
	return s.cells[y*s.width+x]
}

// SetCell replaces the cell at (x, y). Positions outside the surface are ignored.
func (s *Surface) SetCell(x, y int, c core.Cell) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y*s.width+x] = c
}

// Cursor returns the writing cursor.
func (s *Surface) Cursor() (x, y int) {
	return s.cursorX, s.cursorY
}

// MoveTo positions the writing cursor. Columns past the right edge wrap into
// the following rows; negative values clamp to zero.
func (s *Surface) MoveTo(x, y int) {
	x = max(x, 0)
	y = max(y, 0)
	s.cursorX = x % s.width
	s.cursorY = y + x/s.width
}

// Clear fills every cell with glyph in the style's color and resets the
// cursor. A framed style also stamps the edge bits onto the border cells.
func (s *Surface) Clear(style core.Style, glyph uint16) {
	blank := core.NewCell(glyph, core.AttrNone, style.Color)
	s.cells[0] = blank
	for filled := 1; filled < len(s.cells); filled *= 2 {
		copy(s.cells[filled:], s.cells[:filled])
	}

	if style.Frame {
		s.stampFrame()
	}
	s.MoveTo(0, 0)
}

// stampFrame ORs edge bits onto the border so corners carry two edges.
func (s *Surface) stampFrame() {
	last := len(s.cells) - 1
	for x := 0; x < s.width; x++ {
		s.cells[x].Attr = s.cells[x].Attr.With(core.AttrFrameTop)
		s.cells[last-x].Attr = s.cells[last-x].Attr.With(core.AttrFrameBottom)
	}
	for y := 0; y < s.height; y++ {
		left := y * s.width
		right := left + s.width - 1
		s.cells[left].Attr = s.cells[left].Attr.With(core.AttrFrameLeft)
		s.cells[right].Attr = s.cells[right].Attr.With(core.AttrFrameRight)
	}
}

// WriteLine writes glyphs at the cursor row without touching colors or
// attributes. See WriteLineStyled for the cursor rules.
func (s *Surface) WriteLine(text []byte) {
	s.writeLine(text, nil)
}

// WriteLineStyled writes one line at the cursor. If the cursor is below the
// last row the surface scrolls up first. Text past the right edge is
// clipped. The cursor always moves down exactly one row and keeps its column.
func (s *Surface) WriteLineStyled(text []byte, style core.Style) {
	s.writeLine(text, &style)
}

// WriteLineString encodes text to code page 437 and writes it as a styled line.
func (s *Surface) WriteLineString(text string, style core.Style) {
	s.WriteLineStyled(core.EncodeText(text), style)
}

func (s *Surface) writeLine(text []byte, style *core.Style) {
	s.normalizeRow()

	n := min(len(text), s.width-s.cursorX)
	if n > 0 {
		s.put(s.cursorY*s.width+s.cursorX, text[:n], style)
	}
	s.cursorY++
}

// Write writes glyphs at the cursor without touching colors or attributes.
// See WriteStyled for the cursor rules.
func (s *Surface) Write(text []byte) {
	s.write(text, nil)
}

// WriteStyled writes text from the cursor onward, continuing across row
// boundaries. It never scrolls: text past the last cell is clipped, and
// nothing is written once the cursor is below the last row.
func (s *Surface) WriteStyled(text []byte, style core.Style) {
	s.write(text, &style)
}

// WriteString encodes text to code page 437 and writes it styled.
func (s *Surface) WriteString(text string, style core.Style) {
	s.WriteStyled(core.EncodeText(text), style)
}

func (s *Surface) write(text []byte, style *core.Style) {
	if s.cursorY >= s.height {
		return
	}

	offset := s.cursorY*s.width + s.cursorX
	n := min(len(text), len(s.cells)-offset)
	if n <= 0 {
		return
	}
	s.put(offset, text[:n], style)

	s.cursorX += n
	s.cursorY += s.cursorX / s.width
	s.cursorX %= s.width
}

// put copies glyphs to cells starting at offset. A nil style keeps the
// existing color and attributes.
func (s *Surface) put(offset int, text []byte, style *core.Style) {
	if style == nil {
		for i, g := range text {
			s.cells[offset+i].Glyph = uint16(g)
		}
		return
	}

	attrs := style.FrameAttrs(len(text))
	for i, g := range text {
		s.cells[offset+i] = core.NewCell(uint16(g), attrs[i], style.Color)
	}
}

// NewLine moves the cursor to the start of the next row, scrolling when it
// passes the last row.
func (s *Surface) NewLine() {
	s.cursorY++
	s.normalizeRow()
	s.cursorX = 0
}

// normalizeRow scrolls until the cursor row is on the surface.
func (s *Surface) normalizeRow() {
	if s.cursorY >= s.height {
		s.ScrollUp(s.cursorY - s.height + 1)
		s.cursorY = s.height - 1
	}
}

// ScrollUp shifts the content up by lines rows. The rows uncovered at the
// bottom become zero cells; scrolling by the height or more blanks everything.
func (s *Surface) ScrollUp(lines int) {
	if lines <= 0 {
		return
	}
	distance := min(lines, s.height) * s.width
	copy(s.cells, s.cells[distance:])
	clear(s.cells[len(s.cells)-distance:])
}

// ScrollLeftAround rotates the flat buffer left by chars cells. Cells pushed
// off the front reappear at the end.
func (s *Surface) ScrollLeftAround(chars int) {
	n := len(s.cells)
	k := chars % n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}

	head := make([]core.Cell, k)
	copy(head, s.cells[:k])
	copy(s.cells, s.cells[k:])
	copy(s.cells[n-k:], head)
}

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}
