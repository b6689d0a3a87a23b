package backend

import (
	"testing"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

func TestNullDriverBuffers(t *testing.T) {
	d := NewNullDriver(10, 4)

	h, ok := d.CreateBuffer()
	if !ok || !h.Valid() {
		t.Fatalf("expected valid handle, got %v (status %v)", h, d.LastError())
	}
	if !d.SetActiveBuffer(h) {
		t.Fatalf("SetActiveBuffer failed: %v", d.LastError())
	}
	if d.Active() != h {
		t.Errorf("expected active %v, got %v", h, d.Active())
	}

	if d.SetActiveBuffer(NewHandle()) {
		t.Error("expected unknown handle to fail")
	}
	if d.LastError() != StatusInvalidHandle {
		t.Errorf("expected StatusInvalidHandle, got %v", d.LastError())
	}
	if d.Active() != h {
		t.Error("failed activation should keep the active buffer")
	}
}

func TestNullDriverWriteOutput(t *testing.T) {
	d := NewNullDriver(10, 4)
	h, _ := d.CreateBuffer()

	src := filled(3, 'A')
	region := core.NewRect(8, 0, 12, 0)
	if !d.WriteOutput(h, src, core.Coord{X: 3, Y: 1}, core.Coord{}, &region) {
		t.Fatalf("WriteOutput failed: %v", d.LastError())
	}
	if region != core.NewRect(8, 0, 9, 0) {
		t.Errorf("expected written region clipped to (8,0)-(9,0), got %v", region)
	}

	buf, _ := d.Buffer(h)
	if buf.Cell(8, 0).Glyph != 'A' || buf.Cell(9, 0).Glyph != 'B' {
		t.Errorf("unexpected glyphs %d %d", buf.Cell(8, 0).Glyph, buf.Cell(9, 0).Glyph)
	}

	writes := d.Writes()
	if len(writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(writes))
	}
	if writes[0].Request != core.NewRect(8, 0, 12, 0) {
		t.Errorf("expected recorded request, got %v", writes[0].Request)
	}

	if d.WriteOutput(h, src, core.Coord{X: 3, Y: 1}, core.Coord{}, nil) {
		t.Error("expected nil region to fail")
	}
	if d.LastError() != StatusInvalidParameter {
		t.Errorf("expected StatusInvalidParameter, got %v", d.LastError())
	}
}

func TestNullDriverPaletteAndWindow(t *testing.T) {
	d := NewNullDriver(10, 4)
	h, _ := d.CreateBuffer()

	p, ok := d.Palette(h)
	if !ok || p != core.DefaultPalette {
		t.Errorf("expected default palette on new buffer")
	}
	p[1] = core.RGB{R: 1, G: 2, B: 3}
	d.SetPalette(h, p)
	if got, _ := d.Palette(h); got[1] != p[1] {
		t.Errorf("expected palette entry %v, got %v", p[1], got[1])
	}

	if !d.SetWindowSize(20, 6) {
		t.Fatalf("SetWindowSize failed: %v", d.LastError())
	}
	if w, hgt := d.Size(); w != 20 || hgt != 6 {
		t.Errorf("expected size (20, 6), got (%d, %d)", w, hgt)
	}
	buf, _ := d.Buffer(h)
	if buf.Width != 20 || buf.Height != 6 {
		t.Errorf("expected resized buffer 20x6, got %dx%d", buf.Width, buf.Height)
	}
	if d.SetWindowSize(0, 6) {
		t.Error("expected zero width to fail")
	}

	d.SetTitle("demo")
	if d.Title() != "demo" {
		t.Errorf("expected title demo, got %q", d.Title())
	}
}

func TestNullDriverCursor(t *testing.T) {
	d := NewNullDriver(10, 4)
	h, _ := d.CreateBuffer()

	if !d.SetCursorInfo(h, false) {
		t.Fatal("SetCursorInfo failed")
	}
	if !d.SetCursorPosition(h, core.Coord{X: 3, Y: 2}) {
		t.Fatal("SetCursorPosition failed")
	}
	if d.SetCursorPosition(h, core.Coord{X: 10}) {
		t.Error("expected out of range cursor to fail")
	}

	buf, _ := d.Buffer(h)
	if buf.CursorVisible || buf.Cursor != (core.Coord{X: 3, Y: 2}) {
		t.Errorf("unexpected cursor state %v visible=%v", buf.Cursor, buf.CursorVisible)
	}
}

func TestNullDriverFailWith(t *testing.T) {
	d := NewNullDriver(10, 4)
	d.FailWith(StatusInvalidFunction)

	if _, ok := d.CreateBuffer(); ok {
		t.Error("expected CreateBuffer to fail")
	}
	if d.LastError() != StatusInvalidFunction {
		t.Errorf("expected StatusInvalidFunction, got %v", d.LastError())
	}

	d.FailWith(StatusOK)
	if _, ok := d.CreateBuffer(); !ok {
		t.Error("expected CreateBuffer to succeed after reset")
	}
}

func TestNullDriverKeys(t *testing.T) {
	d := NewNullDriver(1, 1)
	if d.KeyAvailable() {
		t.Error("expected no key")
	}
	d.PostKey()
	if !d.KeyAvailable() {
		t.Error("expected key after PostKey")
	}
}

func TestStatusString(t *testing.T) {
	if StatusInvalidHandle.String() != "invalid handle" {
		t.Errorf("unexpected %q", StatusInvalidHandle.String())
	}
	if Status(999).String() != "status 999" {
		t.Errorf("unexpected %q", Status(999).String())
	}
}
