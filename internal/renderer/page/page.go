// Package page binds one driver screen buffer and blits surfaces into it
// through viewports.
package page

import (
	"github.com/NBAH79/XConsole/internal/logging"
	"github.com/NBAH79/XConsole/internal/renderer/backend"
	"github.com/NBAH79/XConsole/internal/renderer/core"
	"github.com/NBAH79/XConsole/internal/renderer/surface"
	"github.com/NBAH79/XConsole/internal/renderer/viewport"
)

// Page is one screen buffer of a driver.
type Page struct {
	driver backend.Driver
	handle backend.Handle
	cursor bool
	log    *logging.Logger
}

// New returns an uninitialized page bound to driver.
func New(driver backend.Driver, log *logging.Logger) *Page {
	if log == nil {
		log = logging.Null()
	}
	return &Page{driver: driver, log: log.WithComponent("page")}
}

// Initialize creates the screen buffer, sets cursor visibility and, when
// palette is non-nil, installs it. It returns false if the buffer could
// not be created; palette and cursor failures are logged and ignored.
func (p *Page) Initialize(cursor bool, palette *core.Palette) bool {
	h, ok := p.driver.CreateBuffer()
	if !ok {
		p.log.Error("create buffer: %v", p.driver.LastError())
		return false
	}
	p.handle = h
	p.cursor = cursor

	if !p.driver.SetCursorInfo(h, cursor) {
		p.log.Warn("set cursor info: %v", p.driver.LastError())
	}
	if palette != nil {
		if !p.driver.SetPalette(h, *palette) {
			p.log.Warn("set palette: %v", p.driver.LastError())
		}
	}
	p.log.Debug("buffer %s created", h)
	return true
}

// Handle returns the page's driver handle.
func (p *Page) Handle() backend.Handle {
	return p.handle
}

// Cursor reports whether the page shows the cursor.
func (p *Page) Cursor() bool {
	return p.cursor
}

// Draw copies s into the page. The copy starts at the viewport's scroll
// offset inside s and lands in the viewport's transform rectangle; the
// driver clips against both buffers.
func (p *Page) Draw(vp *viewport.Viewport, s *surface.Surface) bool {
	region := vp.Transform()
	return p.driver.WriteOutput(p.handle, s.Cells(), s.Size(), vp.ScrollOffset(), &region)
}

// Active makes this page the visible buffer and returns the driver status.
func (p *Page) Active() backend.Status {
	p.driver.SetActiveBuffer(p.handle)
	return p.driver.LastError()
}
