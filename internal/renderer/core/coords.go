package core

import "fmt"

// Coord is an unsigned column/row pair.
type Coord struct {
	X, Y uint16
}

// NewCoord creates a coordinate. Negative values are clamped to zero.
func NewCoord(x, y int) Coord {
	return Coord{X: clampU16(x), Y: clampU16(y)}
}

// String returns "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Rect is a rectangle whose Right and Bottom name the last used column and
// row. A single row has Top == Bottom.
type Rect struct {
	Left, Top, Right, Bottom uint16
}

// NewRect creates a rectangle from inclusive edges.
func NewRect(left, top, right, bottom int) Rect {
	return Rect{
		Left:   clampU16(left),
		Top:    clampU16(top),
		Right:  clampU16(right),
		Bottom: clampU16(bottom),
	}
}

// RectFromSize creates the rectangle covering width×height cells at (left, top).
func RectFromSize(left, top, width, height int) Rect {
	return NewRect(left, top, left+width-1, top+height-1)
}

// Width returns the number of columns covered.
func (r Rect) Width() int {
	if r.Right < r.Left {
		return 0
	}
	return int(r.Right) - int(r.Left) + 1
}

// Height returns the number of rows covered.
func (r Rect) Height() int {
	if r.Bottom < r.Top {
		return 0
	}
	return int(r.Bottom) - int(r.Top) + 1
}

// Contains returns true if (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= int(r.Left) && x <= int(r.Right) && y >= int(r.Top) && y <= int(r.Bottom)
}

// String returns "[left,top-right,bottom]".
func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d-%d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}

func clampU16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
