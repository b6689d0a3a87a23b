package backend

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

type fakeContent struct {
	r     rune
	style tcell.Style
}

// fakeScreen is a minimal Screen backed by a map.
type fakeScreen struct {
	mu      sync.Mutex
	w, h    int
	content map[[2]int]fakeContent
	title   string
	shows   int
	cursor  [2]int
	hidden  bool
	events  chan tcell.Event
	once    sync.Once
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{
		w:       w,
		h:       h,
		content: make(map[[2]int]fakeContent),
		events:  make(chan tcell.Event, 4),
	}
}

func (s *fakeScreen) Init() error { return nil }

func (s *fakeScreen) Fini() {
	s.once.Do(func() { close(s.events) })
}

func (s *fakeScreen) Size() (int, int) { return s.w, s.h }

func (s *fakeScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[[2]int{x, y}] = fakeContent{r: primary, style: style}
}

func (s *fakeScreen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shows++
}

func (s *fakeScreen) ShowCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = [2]int{x, y}
	s.hidden = false
}

func (s *fakeScreen) HideCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = true
}

func (s *fakeScreen) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

func (s *fakeScreen) PollEvent() tcell.Event {
	ev, ok := <-s.events
	if !ok {
		return nil
	}
	return ev
}

func (s *fakeScreen) at(x, y int) fakeContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content[[2]int{x, y}]
}

func TestTerminalNotReadyBeforeInit(t *testing.T) {
	term := NewTerminalWithScreen(newFakeScreen(10, 4))

	if _, ok := term.CreateBuffer(); ok {
		t.Error("expected CreateBuffer to fail before Init")
	}
	if term.LastError() != StatusNotReady {
		t.Errorf("expected StatusNotReady, got %v", term.LastError())
	}
}

func TestTerminalPresentsActiveBuffer(t *testing.T) {
	screen := newFakeScreen(10, 4)
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	if !term.SetTitle("XConsole") || screen.title != "XConsole" {
		t.Errorf("expected title to reach the screen, got %q", screen.title)
	}

	h, ok := term.CreateBuffer()
	if !ok {
		t.Fatalf("CreateBuffer failed: %v", term.LastError())
	}
	term.SetCursorInfo(h, false)
	term.SetActiveBuffer(h)

	src := []core.Cell{
		core.NewCell('H', core.AttrInvert, core.Pack(1, 14)),
		core.NewCell(core.GlyphHalfBlock, core.AttrFrameBottom, core.Pack(4, 12)),
	}
	region := core.NewRect(2, 1, 3, 1)
	if !term.WriteOutput(h, src, core.Coord{X: 2, Y: 1}, core.Coord{}, &region) {
		t.Fatalf("WriteOutput failed: %v", term.LastError())
	}

	got := screen.at(2, 1)
	if got.r != 'H' {
		t.Errorf("expected 'H' at (2,1), got %q", got.r)
	}
	fg, _, attrs := got.style.Decompose()
	if fg != tcellColor(core.DefaultPalette[14]) {
		t.Errorf("expected palette foreground 14, got %v", fg)
	}
	if attrs&tcell.AttrReverse == 0 {
		t.Error("expected reverse attribute for inverted cell")
	}
	if r := screen.at(3, 1).r; r != '▄' {
		t.Errorf("expected half block at (3,1), got %q", r)
	}
	if !screen.hidden {
		t.Error("expected hidden cursor")
	}
}

func TestTerminalInactiveBufferNotShown(t *testing.T) {
	screen := newFakeScreen(10, 4)
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	a, _ := term.CreateBuffer()
	b, _ := term.CreateBuffer()
	term.SetActiveBuffer(a)

	region := core.NewRect(0, 0, 0, 0)
	term.WriteOutput(b, []core.Cell{core.NewCell('Z', 0, 0x07)}, core.Coord{X: 1, Y: 1}, core.Coord{}, &region)
	if r := screen.at(0, 0).r; r == 'Z' {
		t.Error("inactive buffer should not be drawn")
	}

	term.SetActiveBuffer(b)
	if r := screen.at(0, 0).r; r != 'Z' {
		t.Errorf("expected 'Z' after activation, got %q", r)
	}
}

func TestTerminalKeyAvailable(t *testing.T) {
	screen := newFakeScreen(10, 4)
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	if term.KeyAvailable() {
		t.Error("expected no key before input")
	}

	screen.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)

	deadline := time.Now().Add(time.Second)
	for !term.KeyAvailable() {
		if time.Now().After(deadline) {
			t.Fatal("key press was not observed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTerminalShutdownIdempotent(t *testing.T) {
	term := NewTerminalWithScreen(newFakeScreen(4, 4))
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	term.Shutdown()
	term.Shutdown()
}
