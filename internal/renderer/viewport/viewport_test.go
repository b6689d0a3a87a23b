package viewport

import (
	"testing"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

func TestNewViewport(t *testing.T) {
	rect := core.NewRect(80, 27, 115, 45)
	v := New(rect)

	if v.Transform() != rect {
		t.Errorf("Transform() = %v, want %v", v.Transform(), rect)
	}
	if v.ScrollOffset() != (core.Coord{}) {
		t.Errorf("ScrollOffset() = %v, want origin", v.ScrollOffset())
	}
}

func TestAt(t *testing.T) {
	v := At(10, 50, 100, 1)
	want := core.Rect{Left: 10, Top: 50, Right: 109, Bottom: 50}
	if v.Transform() != want {
		t.Errorf("Transform() = %v, want %v", v.Transform(), want)
	}
}

func TestScroll(t *testing.T) {
	v := At(0, 0, 10, 10)

	v.Scroll(3, 40)
	if v.ScrollOffset() != (core.Coord{X: 3, Y: 40}) {
		t.Errorf("ScrollOffset() = %v, want (3,40)", v.ScrollOffset())
	}

	// Transform is untouched by scrolling
	if v.Transform() != core.RectFromSize(0, 0, 10, 10) {
		t.Errorf("Transform changed: %v", v.Transform())
	}

	v.Scroll(-1, -5)
	if v.ScrollOffset() != (core.Coord{}) {
		t.Errorf("negative scroll = %v, want origin", v.ScrollOffset())
	}
}
