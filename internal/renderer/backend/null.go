package backend

import (
	"sync"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

// WriteCall records one WriteOutput request seen by a NullDriver.
type WriteCall struct {
	Handle  Handle
	Size    core.Coord
	Origin  core.Coord
	Request core.Rect
	Written core.Rect
}

// NullDriver is an in-memory driver for testing. It keeps real screen
// buffers so tests can inspect what was blitted, and records every write.
type NullDriver struct {
	mu      sync.Mutex
	reg     registry
	title   string
	writes  []WriteCall
	keys    int
	failAll Status
}

// NewNullDriver creates a driver with a width×height window.
func NewNullDriver(width, height int) *NullDriver {
	return &NullDriver{reg: newRegistry(width, height)}
}

// FailWith makes every later call fail with s. StatusOK restores normal
// operation.
func (d *NullDriver) FailWith(s Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failAll = s
}

func (d *NullDriver) failing() bool {
	if d.failAll != StatusOK {
		d.reg.status = d.failAll
		return true
	}
	return false
}

// CreateBuffer implements Driver.
func (d *NullDriver) CreateBuffer() (Handle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return InvalidHandle, false
	}
	return d.reg.create()
}

// SetActiveBuffer implements Driver.
func (d *NullDriver) SetActiveBuffer(h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return false
	}
	return d.reg.activate(h)
}

// SetCursorInfo implements Driver.
func (d *NullDriver) SetCursorInfo(h Handle, visible bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return false
	}
	return d.reg.cursorInfo(h, visible)
}

// SetCursorPosition implements Driver.
func (d *NullDriver) SetCursorPosition(h Handle, pos core.Coord) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return false
	}
	return d.reg.cursorPosition(h, pos)
}

// WriteOutput implements Driver.
func (d *NullDriver) WriteOutput(h Handle, cells []core.Cell, size, origin core.Coord, region *core.Rect) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return false
	}
	call := WriteCall{Handle: h, Size: size, Origin: origin}
	if region != nil {
		call.Request = *region
	}
	ok := d.reg.write(h, cells, size, origin, region)
	if ok {
		call.Written = *region
	}
	d.writes = append(d.writes, call)
	return ok
}

// Palette implements Driver.
func (d *NullDriver) Palette(h Handle) (core.Palette, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return core.Palette{}, false
	}
	return d.reg.palette(h)
}

// SetPalette implements Driver.
func (d *NullDriver) SetPalette(h Handle, p core.Palette) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return false
	}
	return d.reg.setPalette(h, p)
}

// SetTitle implements Driver.
func (d *NullDriver) SetTitle(title string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return false
	}
	d.title = title
	return d.reg.ok()
}

// SetWindowSize implements Driver.
func (d *NullDriver) SetWindowSize(width, height int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failing() {
		return false
	}
	return d.reg.resize(width, height)
}

// LastError implements Driver.
func (d *NullDriver) LastError() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.status
}

// Title returns the last title set.
func (d *NullDriver) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

// Size returns the window size.
func (d *NullDriver) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.width, d.reg.height
}

// Active returns the visible buffer handle.
func (d *NullDriver) Active() Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.active
}

// Buffer returns a snapshot of the buffer behind h.
func (d *NullDriver) Buffer(h Handle) (ScreenBuffer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.reg.buffers[h]
	if !ok {
		return ScreenBuffer{}, false
	}
	snap := *b
	snap.Cells = append([]core.Cell(nil), b.Cells...)
	return snap, true
}

// Writes returns the recorded WriteOutput calls.
func (d *NullDriver) Writes() []WriteCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]WriteCall(nil), d.writes...)
}

// ResetWrites clears the recorded writes.
func (d *NullDriver) ResetWrites() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes = nil
}

// PostKey queues a simulated key press.
func (d *NullDriver) PostKey() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys++
}

// KeyAvailable implements InputPoller. It does not consume the key.
func (d *NullDriver) KeyAvailable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keys > 0
}

// Ensure NullDriver implements Driver and InputPoller.
var (
	_ Driver      = (*NullDriver)(nil)
	_ InputPoller = (*NullDriver)(nil)
)
