package backend

import (
	"github.com/NBAH79/XConsole/internal/renderer/core"
)

// ScreenBuffer is a driver-side cell grid addressed by a Handle.
type ScreenBuffer struct {
	Width         int
	Height        int
	Cells         []core.Cell
	Palette       core.Palette
	Cursor        core.Coord
	CursorVisible bool
}

// NewScreenBuffer returns a blank width×height buffer using the default
// palette.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &ScreenBuffer{
		Width:         width,
		Height:        height,
		Cells:         make([]core.Cell, width*height),
		Palette:       core.DefaultPalette,
		CursorVisible: true,
	}
}

// Resize reallocates the buffer, keeping the overlapping cells.
func (b *ScreenBuffer) Resize(width, height int) {
	if width == b.Width && height == b.Height {
		return
	}
	cells := make([]core.Cell, width*height)
	for y := 0; y < min(height, b.Height); y++ {
		copy(cells[y*width:y*width+min(width, b.Width)], b.Cells[y*b.Width:])
	}
	b.Width, b.Height, b.Cells = width, height, cells
}

// Cell returns the cell at (x, y) or a zero Cell when out of range.
func (b *ScreenBuffer) Cell(x, y int) core.Cell {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return core.Cell{}
	}
	return b.Cells[y*b.Width+x]
}

// Blit copies cells from a size.X×size.Y source, starting at origin, into
// region of the width×height destination. The region is clipped to the
// destination and to what the source can supply past origin. It returns
// the rectangle written and false when nothing was written.
func Blit(dst []core.Cell, width, height int, src []core.Cell, size, origin core.Coord, region core.Rect) (core.Rect, bool) {
	if width <= 0 || height <= 0 || region.Right < region.Left || region.Bottom < region.Top {
		return core.Rect{}, false
	}
	if int(region.Left) >= width || int(region.Top) >= height {
		return core.Rect{}, false
	}
	if int(origin.X) >= int(size.X) || int(origin.Y) >= int(size.Y) {
		return core.Rect{}, false
	}

	right := min(int(region.Right), width-1)
	bottom := min(int(region.Bottom), height-1)

	w := min(right-int(region.Left)+1, int(size.X)-int(origin.X))
	h := min(bottom-int(region.Top)+1, int(size.Y)-int(origin.Y))
	if w <= 0 || h <= 0 {
		return core.Rect{}, false
	}

	srcW := int(size.X)
	for row := 0; row < h; row++ {
		s := (int(origin.Y)+row)*srcW + int(origin.X)
		if s >= len(src) {
			h = row
			break
		}
		d := (int(region.Top)+row)*width + int(region.Left)
		copy(dst[d:d+w], src[s:min(s+w, len(src))])
	}
	if h == 0 {
		return core.Rect{}, false
	}

	return core.RectFromSize(int(region.Left), int(region.Top), w, h), true
}

// registry holds the screen buffers shared by the drivers.
type registry struct {
	width   int
	height  int
	buffers map[Handle]*ScreenBuffer
	active  Handle
	status  Status
}

func newRegistry(width, height int) registry {
	return registry{
		width:   width,
		height:  height,
		buffers: make(map[Handle]*ScreenBuffer),
	}
}

func (r *registry) fail(s Status) bool {
	r.status = s
	return false
}

func (r *registry) ok() bool {
	r.status = StatusOK
	return true
}

func (r *registry) create() (Handle, bool) {
	if r.width <= 0 || r.height <= 0 {
		return InvalidHandle, r.fail(StatusNotReady)
	}
	h := NewHandle()
	r.buffers[h] = NewScreenBuffer(r.width, r.height)
	return h, r.ok()
}

func (r *registry) lookup(h Handle) (*ScreenBuffer, bool) {
	b, ok := r.buffers[h]
	if !ok {
		r.status = StatusInvalidHandle
	}
	return b, ok
}

func (r *registry) activate(h Handle) bool {
	if _, ok := r.lookup(h); !ok {
		return false
	}
	r.active = h
	return r.ok()
}

func (r *registry) cursorInfo(h Handle, visible bool) bool {
	b, ok := r.lookup(h)
	if !ok {
		return false
	}
	b.CursorVisible = visible
	return r.ok()
}

func (r *registry) cursorPosition(h Handle, pos core.Coord) bool {
	b, ok := r.lookup(h)
	if !ok {
		return false
	}
	if int(pos.X) >= b.Width || int(pos.Y) >= b.Height {
		return r.fail(StatusInvalidParameter)
	}
	b.Cursor = pos
	return r.ok()
}

func (r *registry) write(h Handle, cells []core.Cell, size, origin core.Coord, region *core.Rect) bool {
	b, ok := r.lookup(h)
	if !ok {
		return false
	}
	if region == nil || len(cells) < int(size.X)*int(size.Y) {
		return r.fail(StatusInvalidParameter)
	}
	written, _ := Blit(b.Cells, b.Width, b.Height, cells, size, origin, *region)
	*region = written
	return r.ok()
}

func (r *registry) palette(h Handle) (core.Palette, bool) {
	b, ok := r.lookup(h)
	if !ok {
		return core.Palette{}, false
	}
	return b.Palette, r.ok()
}

func (r *registry) setPalette(h Handle, p core.Palette) bool {
	b, ok := r.lookup(h)
	if !ok {
		return false
	}
	b.Palette = p
	return r.ok()
}

func (r *registry) resize(width, height int) bool {
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return r.fail(StatusInvalidParameter)
	}
	r.width, r.height = width, height
	for _, b := range r.buffers {
		b.Resize(width, height)
	}
	return r.ok()
}
