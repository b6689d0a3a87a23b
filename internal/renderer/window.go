// Package renderer composes surfaces onto a console page.
//
// A Window owns one Page plus a background surface covering the whole
// screen. Each frame the caller clears the window and draws its elements;
// drawing order is painting order.
package renderer

import (
	"context"
	"time"

	"github.com/NBAH79/XConsole/internal/logging"
	"github.com/NBAH79/XConsole/internal/renderer/backend"
	"github.com/NBAH79/XConsole/internal/renderer/core"
	"github.com/NBAH79/XConsole/internal/renderer/page"
	"github.com/NBAH79/XConsole/internal/renderer/surface"
	"github.com/NBAH79/XConsole/internal/renderer/viewport"
)

// Element is anything that can be drawn: a surface plus the viewport that
// places it on screen.
type Element interface {
	Viewport() *viewport.Viewport
	Surface() *surface.Surface
}

// Options configures a Window.
type Options struct {
	// Pacer blocks between frames. Defaults to backend.SleepPacer.
	Pacer backend.Pacer
	// Input ends Run when a key is pending. Nil disables key checks.
	Input backend.InputPoller
	// Logger receives lifecycle messages. Defaults to a discard logger.
	Logger *logging.Logger
}

// Window is the render context for one console.
type Window struct {
	driver backend.Driver
	pacer  backend.Pacer
	input  backend.InputPoller
	log    *logging.Logger

	page       *page.Page
	background *surface.Surface
	view       *viewport.Viewport
	frames     uint64
}

// NewWindow creates a window drawing through driver.
func NewWindow(driver backend.Driver, opts Options) *Window {
	if opts.Pacer == nil {
		opts.Pacer = backend.SleepPacer{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Null()
	}
	log := opts.Logger.WithComponent("window")
	return &Window{
		driver: driver,
		pacer:  opts.Pacer,
		input:  opts.Input,
		log:    log,
		page:   page.New(driver, opts.Logger),
	}
}

// Initialize sets the title and window size, creates the page (installing
// palette when non-nil), clears the background with the default style and
// makes the page visible. It returns the driver's last status.
func (w *Window) Initialize(width, height int, title string, palette *core.Palette, cursor bool) backend.Status {
	if !w.driver.SetTitle(title) {
		w.log.Warn("set title: %v", w.driver.LastError())
	}
	if !w.driver.SetWindowSize(width, height) {
		w.log.Error("set window size %dx%d: %v", width, height, w.driver.LastError())
		return w.driver.LastError()
	}
	if !w.page.Initialize(cursor, palette) {
		return w.driver.LastError()
	}

	bg, err := surface.New(width, height)
	if err != nil {
		w.log.Error("background: %v", err)
		return backend.StatusInvalidParameter
	}
	bg.Clear(core.DefaultStyle, core.GlyphSpace)
	w.background = bg
	w.view = viewport.At(0, 0, width, height)

	status := w.page.Active()
	w.log.Info("initialized %dx%d %q: %v", width, height, title, status)
	return status
}

// Ready reports whether Initialize has succeeded.
func (w *Window) Ready() bool {
	return w.background != nil
}

// Page returns the window's page.
func (w *Window) Page() *page.Page {
	return w.page
}

// Background returns the background surface drawn by Clear.
func (w *Window) Background() *surface.Surface {
	return w.background
}

// Clear redraws the background over the whole window.
func (w *Window) Clear() {
	if !w.Ready() {
		return
	}
	w.page.Draw(w.view, w.background)
}

// Draw draws an element.
func (w *Window) Draw(e Element) {
	w.page.Draw(e.Viewport(), e.Surface())
}

// DrawView draws s through vp.
func (w *Window) DrawView(vp *viewport.Viewport, s *surface.Surface) {
	w.page.Draw(vp, s)
}

// Frames returns the number of frames Run has completed.
func (w *Window) Frames() uint64 {
	return w.frames
}

// FrameFunc renders and updates one frame. The window has already been
// cleared when it is called.
type FrameFunc func(frame uint64) error

// Run calls fn once per frame, pausing delay between frames, until a key
// is pending, ctx is done or fn fails. The key check happens after each
// frame, so at least one frame is always drawn. A key press ends the loop
// with a nil error.
func (w *Window) Run(ctx context.Context, delay time.Duration, fn FrameFunc) error {
	w.log.Debug("run loop started, delay %v", delay)
	for {
		w.Clear()
		if err := fn(w.frames); err != nil {
			w.log.Debug("frame %d stopped the loop: %v", w.frames, err)
			return err
		}
		w.frames++

		w.pacer.Sleep(delay)

		if w.input != nil && w.input.KeyAvailable() {
			w.log.Debug("key pressed after %d frames", w.frames)
			return nil
		}
		if err := ctx.Err(); err != nil {
			w.log.Debug("run loop cancelled after %d frames", w.frames)
			return err
		}
	}
}
