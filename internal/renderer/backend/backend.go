// Package backend defines the console driver the renderer writes through,
// together with an in-memory driver for tests and a tcell-backed terminal
// driver.
//
// Drivers follow the console API model: every call reports success as a
// bool and leaves a status code that LastError returns. Driver state
// (active buffer, cursor, palette) is shared by all pages, so every driver
// serializes its calls internally.
package backend

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

// Handle identifies one screen buffer of a driver.
type Handle uuid.UUID

// InvalidHandle is the zero handle. No buffer ever has it.
var InvalidHandle Handle

// NewHandle allocates a fresh handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

// Valid returns true for any handle other than InvalidHandle.
func (h Handle) Valid() bool {
	return h != InvalidHandle
}

// String returns the handle's UUID form.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Status is a driver's last-operation code. Values follow the console
// API's system error numbers.
type Status uint32

// Status codes.
const (
	StatusOK               Status = 0
	StatusInvalidFunction  Status = 1
	StatusInvalidHandle    Status = 6
	StatusNotReady         Status = 21
	StatusInvalidParameter Status = 87
)

// String returns a readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidFunction:
		return "invalid function"
	case StatusInvalidHandle:
		return "invalid handle"
	case StatusNotReady:
		return "not ready"
	case StatusInvalidParameter:
		return "invalid parameter"
	default:
		return fmt.Sprintf("status %d", uint32(s))
	}
}

// Driver is the console collaborator the renderer draws through.
type Driver interface {
	// CreateBuffer creates a text-mode screen buffer sized to the window.
	CreateBuffer() (Handle, bool)

	// SetActiveBuffer makes h the visible buffer.
	SetActiveBuffer(h Handle) bool

	// SetCursorInfo shows or hides the cursor of h.
	SetCursorInfo(h Handle, visible bool) bool

	// SetCursorPosition moves the cursor of h.
	SetCursorPosition(h Handle, pos core.Coord) bool

	// WriteOutput copies a block of cells into region of h. cells is a
	// row-major buffer of size.X×size.Y cells and the copy starts at origin
	// inside it. On return region holds the rectangle actually written,
	// after clipping against both the source and the screen buffer.
	WriteOutput(h Handle, cells []core.Cell, size, origin core.Coord, region *core.Rect) bool

	// Palette returns the 16-entry palette of h.
	Palette(h Handle) (core.Palette, bool)

	// SetPalette replaces the palette of h.
	SetPalette(h Handle, p core.Palette) bool

	// SetTitle sets the console window title.
	SetTitle(title string) bool

	// SetWindowSize sets the window and buffer dimensions.
	SetWindowSize(width, height int) bool

	// LastError returns the status left by the most recent call.
	LastError() Status
}

// Pacer blocks the render loop between frames.
type Pacer interface {
	Sleep(d time.Duration)
}

// InputPoller reports whether a key press is waiting.
type InputPoller interface {
	KeyAvailable() bool
}

// SleepPacer paces frames with time.Sleep.
type SleepPacer struct{}

// Sleep blocks for d.
func (SleepPacer) Sleep(d time.Duration) {
	time.Sleep(d)
}
