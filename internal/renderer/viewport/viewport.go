// Package viewport maps part of a surface onto part of the screen.
package viewport

import (
	"fmt"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

// Viewport is a destination rectangle on the screen plus a scroll offset
// into the source surface. It holds no cells of its own.
//
// Nothing is validated: the caller keeps Scroll plus the transform extent
// inside the surface it is drawn with, and the driver clips whatever falls
// outside the screen.
type Viewport struct {
	transform core.Rect
	scroll    core.Coord
}

// New creates a viewport showing the surface origin at transform.
func New(transform core.Rect) *Viewport {
	return &Viewport{transform: transform}
}

// At creates a viewport of width×height cells with its top-left corner at (x, y).
func At(x, y, width, height int) *Viewport {
	return New(core.RectFromSize(x, y, width, height))
}

// Transform returns the destination rectangle in screen coordinates.
func (v *Viewport) Transform() core.Rect {
	return v.transform
}

// ScrollOffset returns the source offset used by the next blit.
func (v *Viewport) ScrollOffset() core.Coord {
	return v.scroll
}

// Scroll replaces the source offset. Negative values clamp to zero.
func (v *Viewport) Scroll(x, y int) {
	v.scroll = core.NewCoord(x, y)
}

// String returns the transform and scroll offset.
func (v *Viewport) String() string {
	return fmt.Sprintf("viewport%v+%v", v.transform, v.scroll)
}
