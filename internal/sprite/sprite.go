// Package sprite draws bitmaps at twice the vertical resolution of the
// character grid.
//
// Every cell of a sprite shows the lower half-block glyph. The cell's
// background nibble colors the top pixel and its foreground nibble the
// bottom one, so pixel row y lives in cell row y>>1. Frames are stacked
// vertically in one surface and selected by scrolling the viewport.
package sprite

import (
	"fmt"

	"github.com/NBAH79/XConsole/internal/renderer/core"
	"github.com/NBAH79/XConsole/internal/renderer/surface"
	"github.com/NBAH79/XConsole/internal/renderer/viewport"
)

// NoPixel is returned by GetPixel for coordinates outside the bitmap.
const NoPixel = -1

// Sprite is a multi-frame half-block bitmap.
type Sprite struct {
	surf *surface.Surface
	view *viewport.Viewport

	width       int
	pixelHeight int
	rows        int // cell rows per frame
	frames      int
	frame       int
}

// New creates a sprite of width×pixelHeight pixels with frames frames,
// placed at column x, row y. All pixels start at color 0.
func New(x, y, width, pixelHeight, frames int) (*Sprite, error) {
	if frames <= 0 || pixelHeight <= 0 {
		return nil, fmt.Errorf("sprite %dx%d, %d frames: %w", width, pixelHeight, frames, core.ErrInvalidSize)
	}
	rows := (pixelHeight + 1) / 2
	surf, err := surface.New(width, rows*frames)
	if err != nil {
		return nil, fmt.Errorf("sprite: %w", err)
	}
	s := &Sprite{
		surf:        surf,
		view:        viewport.At(x, y, width, rows),
		width:       width,
		pixelHeight: pixelHeight,
		rows:        rows,
		frames:      frames,
	}
	s.Clear(0)
	return s, nil
}

// Viewport returns the on-screen placement.
func (s *Sprite) Viewport() *viewport.Viewport {
	return s.view
}

// Surface returns the backing surface holding every frame.
func (s *Sprite) Surface() *surface.Surface {
	return s.surf
}

// Width returns the width in pixels.
func (s *Sprite) Width() int {
	return s.width
}

// PixelHeight returns the height of one frame in pixels.
func (s *Sprite) PixelHeight() int {
	return s.pixelHeight
}

// Rows returns the height of one frame in cells.
func (s *Sprite) Rows() int {
	return s.rows
}

// Frames returns the number of frames.
func (s *Sprite) Frames() int {
	return s.frames
}

// Frame returns the frame currently shown.
func (s *Sprite) Frame() int {
	return s.frame
}

// SetFrame shows frame i. Indices outside [0, Frames) are ignored.
func (s *Sprite) SetFrame(i int) {
	if i < 0 || i >= s.frames {
		return
	}
	s.frame = i
	s.view.Scroll(0, i*s.rows)
}

// contains reports whether pixel (x, y) maps onto the surface. Pixel rows
// address every frame: row y>>1 may be any surface row.
func (s *Sprite) contains(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y>>1 < s.surf.Height()
}

// SetPixel sets pixel (x, y) to color c (0-15), keeping the other pixel
// sharing its cell. Out-of-range pixels are ignored.
func (s *Sprite) SetPixel(x, y int, c uint8) {
	if !s.contains(x, y) {
		return
	}
	row := y >> 1
	cell := s.surf.Cell(x, row)
	if y&1 == 1 {
		cell.Color = core.XorMerge(cell.Color, core.Color(c&0x0F))
	} else {
		cell.Color = core.XorMerge(core.Color(c<<4), cell.Color)
	}
	s.surf.SetCell(x, row, cell)
}

// GetPixel returns the color of pixel (x, y), or NoPixel when it is out of
// range.
func (s *Sprite) GetPixel(x, y int) int {
	if !s.contains(x, y) {
		return NoPixel
	}
	c := s.surf.Cell(x, y>>1).Color
	if y&1 == 0 {
		return int(c.Background())
	}
	return int(c.Foreground())
}

// ScrollUp moves the shown frame up by pixels pixel rows. Rows entering at
// the bottom are color 0; other frames are not touched.
func (s *Sprite) ScrollUp(pixels int) {
	if pixels <= 0 {
		return
	}
	if pixels >= 2*s.rows {
		s.fillFrame(0)
		return
	}
	for ; pixels >= 2; pixels -= 2 {
		s.scrollRow()
	}
	if pixels == 1 {
		s.scrollHalf()
	}
}

// scrollRow shifts the shown frame up one whole cell row.
func (s *Sprite) scrollRow() {
	top := s.frame * s.rows
	for row := top; row < top+s.rows; row++ {
		for x := 0; x < s.width; x++ {
			var c core.Color
			if row+1 < top+s.rows {
				c = s.surf.Cell(x, row+1).Color
			}
			s.setColor(x, row, c)
		}
	}
}

// scrollHalf shifts the shown frame up one pixel: each cell's bottom pixel
// moves to its top and the top pixel of the cell below becomes its bottom.
func (s *Sprite) scrollHalf() {
	top := s.frame * s.rows
	for row := top; row < top+s.rows; row++ {
		for x := 0; x < s.width; x++ {
			var below uint8
			if row+1 < top+s.rows {
				below = s.surf.Cell(x, row+1).Color.Background()
			}
			c := s.surf.Cell(x, row).Color
			s.setColor(x, row, core.Pack(c.Foreground(), below))
		}
	}
}

func (s *Sprite) fillFrame(c core.Color) {
	top := s.frame * s.rows
	for row := top; row < top+s.rows; row++ {
		for x := 0; x < s.width; x++ {
			s.setColor(x, row, c)
		}
	}
}

func (s *Sprite) setColor(x, y int, c core.Color) {
	cell := s.surf.Cell(x, y)
	cell.Color = c
	s.surf.SetCell(x, y, cell)
}

// Clear sets every pixel of every frame to color c.
func (s *Sprite) Clear(c uint8) {
	c &= 0x0F
	s.surf.Clear(core.NewStyle(c, c, false), core.GlyphHalfBlock)
}
