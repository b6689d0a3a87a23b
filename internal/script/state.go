// Package script drives sprites from Lua.
//
// A script is a Lua file that may define two globals:
//
//	function init()          -- called once after every (re)load
//	function update(frame)   -- called once per rendered frame
//
// Both draw through the sprite table:
//
//	sprite.set_pixel(x, y, color)
//	sprite.get_pixel(x, y)   -- -1 outside the bitmap
//	sprite.scroll(pixels)
//	sprite.clear(color)
//	sprite.frame(i)
//	sprite.width() sprite.height() sprite.frames()
//
// Only the base, table, string and math libraries are available.
package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultCallTimeout bounds a single script call.
const DefaultCallTimeout = 100 * time.Millisecond

// State is a sandboxed Lua interpreter. Calls are serialized.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

// NewState creates a state with the safe standard libraries open.
func NewState(timeout time.Duration) *State {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &State{L: L, timeout: timeout}
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// base opens file loaders
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile runs a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// DoString runs a Lua chunk.
func (s *State) DoString(code string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// HasFunction reports whether the global name is a function.
func (s *State) HasFunction(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.L.GetGlobal(name).Type() == lua.LTFunction
}

// Call calls the global function name, discarding its results.
func (s *State) Call(name string, args ...lua.LValue) error {
	return s.run(func(L *lua.LState) error {
		fn := L.GetGlobal(name)
		if fn.Type() != lua.LTFunction {
			return fmt.Errorf("%q: %w (got %s)", name, ErrNotFunction, fn.Type())
		}
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	})
}

// run executes fn under the call deadline, converting panics and
// cancellations into errors.
func (s *State) run(fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn(s.L)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// Close releases the interpreter. Further calls return ErrStateClosed.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
