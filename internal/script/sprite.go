package script

import (
	"fmt"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/NBAH79/XConsole/internal/logging"
	"github.com/NBAH79/XConsole/internal/renderer/core"
	"github.com/NBAH79/XConsole/internal/renderer/surface"
	"github.com/NBAH79/XConsole/internal/renderer/viewport"
	"github.com/NBAH79/XConsole/internal/sprite"
)

// Sprite is a sprite whose pixels are drawn by a Lua script.
type Sprite struct {
	path    string
	sprite  *sprite.Sprite
	state   *State
	timeout time.Duration
	log     *logging.Logger

	reload atomic.Bool
	failed bool
	loads  int
}

// Options configures a scripted sprite.
type Options struct {
	X, Y        int
	Width       int
	PixelHeight int
	Frames      int
	// Timeout bounds each script call. Zero means DefaultCallTimeout.
	Timeout time.Duration
	Logger  *logging.Logger
}

// NewSprite creates the sprite and runs the script at path. A script that
// fails to load is an error here; later reload failures keep the previous
// script running.
func NewSprite(path string, opts Options) (*Sprite, error) {
	if opts.Frames == 0 {
		opts.Frames = 1
	}
	spr, err := sprite.New(opts.X, opts.Y, opts.Width, opts.PixelHeight, opts.Frames)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = logging.Null()
	}

	s := &Sprite{
		path:    path,
		sprite:  spr,
		timeout: opts.Timeout,
		log:     opts.Logger.WithComponent("script").WithField("path", path),
	}
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	s.state = state
	return s, nil
}

// Viewport implements renderer.Element.
func (s *Sprite) Viewport() *viewport.Viewport {
	return s.sprite.Viewport()
}

// Surface implements renderer.Element.
func (s *Sprite) Surface() *surface.Surface {
	return s.sprite.Surface()
}

// Sprite returns the underlying bitmap.
func (s *Sprite) Sprite() *sprite.Sprite {
	return s.sprite
}

// Loads returns how many times the script has been loaded successfully.
func (s *Sprite) Loads() int {
	return s.loads
}

// RequestReload marks the script for reloading before the next Update.
// It is safe to call from any goroutine.
func (s *Sprite) RequestReload() {
	s.reload.Store(true)
}

// Update reloads the script if requested, then calls its update function.
// A failing update is logged once and skipped until the next reload.
func (s *Sprite) Update(frame uint64) {
	if s.reload.Swap(false) {
		s.Reload()
	}
	if s.failed || !s.state.HasFunction("update") {
		return
	}
	if err := s.state.Call("update", lua.LNumber(frame)); err != nil {
		s.log.Error("update: %v", err)
		s.failed = true
	}
}

// Reload runs the script in a fresh interpreter over a cleared sprite. On
// failure the previous interpreter stays in use.
func (s *Sprite) Reload() {
	state, err := s.load()
	if err != nil {
		s.log.Warn("reload failed, keeping previous script: %v", err)
		return
	}
	s.state.Close()
	s.state = state
	s.failed = false
	s.log.Info("reloaded")
}

// Close releases the interpreter.
func (s *Sprite) Close() {
	s.state.Close()
}

func (s *Sprite) load() (*State, error) {
	state := NewState(s.timeout)
	state.L.SetGlobal("sprite", s.module(state.L))

	restore := s.snapshot()
	s.sprite.Clear(0)
	s.sprite.SetFrame(0)
	s.sprite.Viewport().Scroll(0, 0)

	if err := state.DoFile(s.path); err != nil {
		state.Close()
		restore()
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	if state.HasFunction("init") {
		if err := state.Call("init"); err != nil {
			state.Close()
			restore()
			return nil, fmt.Errorf("init %s: %w", s.path, err)
		}
	}
	s.loads++
	return state, nil
}

// snapshot records the pixels, frame and scroll offset and returns a
// function that puts them back.
func (s *Sprite) snapshot() func() {
	cells := append([]core.Cell(nil), s.sprite.Surface().Cells()...)
	frame := s.sprite.Frame()
	scroll := s.sprite.Viewport().ScrollOffset()
	return func() {
		copy(s.sprite.Surface().Cells(), cells)
		s.sprite.SetFrame(frame)
		s.sprite.Viewport().Scroll(int(scroll.X), int(scroll.Y))
	}
}

// module builds the sprite table exposed to the script.
func (s *Sprite) module(L *lua.LState) *lua.LTable {
	spr := s.sprite
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"set_pixel": func(L *lua.LState) int {
			spr.SetPixel(L.CheckInt(1), L.CheckInt(2), uint8(L.CheckInt(3)))
			return 0
		},
		"get_pixel": func(L *lua.LState) int {
			L.Push(lua.LNumber(spr.GetPixel(L.CheckInt(1), L.CheckInt(2))))
			return 1
		},
		"scroll": func(L *lua.LState) int {
			spr.ScrollUp(L.OptInt(1, 1))
			return 0
		},
		"clear": func(L *lua.LState) int {
			spr.Clear(uint8(L.OptInt(1, 0)))
			return 0
		},
		"frame": func(L *lua.LState) int {
			spr.SetFrame(L.CheckInt(1))
			return 0
		},
		"width": func(L *lua.LState) int {
			L.Push(lua.LNumber(spr.Width()))
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(spr.PixelHeight()))
			return 1
		},
		"frames": func(L *lua.LState) int {
			L.Push(lua.LNumber(spr.Frames()))
			return 1
		},
	})
}
