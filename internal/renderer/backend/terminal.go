package backend

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

// Screen is the subset of tcell.Screen the terminal driver uses.
type Screen interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
	ShowCursor(x, y int)
	HideCursor()
	SetTitle(title string)
	PollEvent() tcell.Event
}

// Terminal implements Driver on top of a tcell screen. Screen buffers live
// in memory; the active one is presented to the terminal whenever it or the
// active selection changes.
type Terminal struct {
	screen Screen
	mu     sync.Mutex
	reg    registry

	keys    atomic.Int32
	closed  atomic.Bool
	pollWG  sync.WaitGroup
	started bool
}

// NewTerminal creates a terminal driver on a new tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal driver on an existing screen.
func NewTerminalWithScreen(screen Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen and starts the input goroutine. The window
// size defaults to the terminal size until SetWindowSize is called.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	w, h := t.screen.Size()
	t.reg = newRegistry(w, h)
	t.started = true

	t.pollWG.Add(1)
	go t.pollLoop()
	return nil
}

// Shutdown restores the terminal and waits for the input goroutine.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	if !t.started || t.closed.Swap(true) {
		t.mu.Unlock()
		return
	}
	t.screen.Fini()
	t.mu.Unlock()

	t.pollWG.Wait()
}

func (t *Terminal) pollLoop() {
	defer t.pollWG.Done()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev.(type) {
		case *tcell.EventKey:
			t.keys.Add(1)
		case *tcell.EventResize:
			t.mu.Lock()
			t.present()
			t.mu.Unlock()
		}
		if t.closed.Load() {
			return
		}
	}
}

// KeyAvailable implements InputPoller.
func (t *Terminal) KeyAvailable() bool {
	return t.keys.Load() > 0
}

// CreateBuffer implements Driver.
func (t *Terminal) CreateBuffer() (Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		t.reg.status = StatusNotReady
		return InvalidHandle, false
	}
	return t.reg.create()
}

// SetActiveBuffer implements Driver.
func (t *Terminal) SetActiveBuffer(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.reg.activate(h) {
		return false
	}
	t.present()
	return true
}

// SetCursorInfo implements Driver.
func (t *Terminal) SetCursorInfo(h Handle, visible bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.reg.cursorInfo(h, visible) {
		return false
	}
	if h == t.reg.active {
		t.present()
	}
	return true
}

// SetCursorPosition implements Driver.
func (t *Terminal) SetCursorPosition(h Handle, pos core.Coord) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.reg.cursorPosition(h, pos) {
		return false
	}
	if h == t.reg.active {
		t.present()
	}
	return true
}

// WriteOutput implements Driver.
func (t *Terminal) WriteOutput(h Handle, cells []core.Cell, size, origin core.Coord, region *core.Rect) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.reg.write(h, cells, size, origin, region) {
		return false
	}
	if h == t.reg.active {
		t.present()
	}
	return true
}

// Palette implements Driver.
func (t *Terminal) Palette(h Handle) (core.Palette, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.palette(h)
}

// SetPalette implements Driver.
func (t *Terminal) SetPalette(h Handle, p core.Palette) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.reg.setPalette(h, p) {
		return false
	}
	if h == t.reg.active {
		t.present()
	}
	return true
}

// SetTitle implements Driver.
func (t *Terminal) SetTitle(title string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		t.reg.status = StatusNotReady
		return false
	}
	t.screen.SetTitle(title)
	return t.reg.ok()
}

// SetWindowSize implements Driver. The terminal itself cannot be resized,
// so cells past its edge are simply not shown.
func (t *Terminal) SetWindowSize(width, height int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		t.reg.status = StatusNotReady
		return false
	}
	if !t.reg.resize(width, height) {
		return false
	}
	t.present()
	return true
}

// LastError implements Driver.
func (t *Terminal) LastError() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.status
}

// present draws the active buffer. Caller holds t.mu.
func (t *Terminal) present() {
	if t.closed.Load() {
		return
	}
	b, ok := t.reg.buffers[t.reg.active]
	if !ok {
		return
	}
	sw, sh := t.screen.Size()
	for y := 0; y < min(sh, b.Height); y++ {
		for x := 0; x < min(sw, b.Width); x++ {
			cell := b.Cells[y*b.Width+x]
			t.screen.SetContent(x, y, core.DecodeGlyph(cell.Glyph), nil, convertStyle(cell, &b.Palette))
		}
	}
	if b.CursorVisible && int(b.Cursor.X) < sw && int(b.Cursor.Y) < sh {
		t.screen.ShowCursor(int(b.Cursor.X), int(b.Cursor.Y))
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
}

// convertStyle maps a cell's color and attribute bytes onto a tcell style.
func convertStyle(cell core.Cell, p *core.Palette) tcell.Style {
	bg, fg := cell.Color.Unpack()
	return tcell.StyleDefault.
		Foreground(tcellColor(p.At(fg))).
		Background(tcellColor(p.At(bg))).
		Reverse(cell.Attr.Has(core.AttrInvert)).
		Underline(cell.Attr.Has(core.AttrFrameBottom))
}

func tcellColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Ensure Terminal implements Driver and InputPoller.
var (
	_ Driver      = (*Terminal)(nil)
	_ InputPoller = (*Terminal)(nil)
)
