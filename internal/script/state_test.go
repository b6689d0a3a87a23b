package script

import (
	"errors"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	s := NewState(0)
	defer s.Close()

	if err := s.DoString(`x = math.floor(7 / 2)`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if v := s.L.GetGlobal("x"); v.String() != "3" {
		t.Errorf("expected x = 3, got %v", v)
	}
}

func TestStateSandbox(t *testing.T) {
	s := NewState(0)
	defer s.Close()

	for _, name := range []string{"io", "os", "dofile", "loadfile"} {
		if v := s.L.GetGlobal(name); v != lua.LNil {
			t.Errorf("expected %s to be unavailable, got %v", name, v.Type())
		}
	}
}

func TestStateCall(t *testing.T) {
	s := NewState(0)
	defer s.Close()

	if err := s.DoString(`function add(a, b) result = a + b end; notfn = 1`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if !s.HasFunction("add") || s.HasFunction("notfn") {
		t.Error("unexpected HasFunction results")
	}
	if err := s.Call("add", lua.LNumber(2), lua.LNumber(3)); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if v := s.L.GetGlobal("result"); v.String() != "5" {
		t.Errorf("expected result 5, got %v", v)
	}
	if err := s.Call("notfn"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("expected ErrNotFunction, got %v", err)
	}
}

func TestStateTimeout(t *testing.T) {
	s := NewState(20 * time.Millisecond)
	defer s.Close()

	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("expected ErrExecutionTimeout, got %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState(0)
	s.Close()
	s.Close()

	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("expected ErrStateClosed, got %v", err)
	}
	if s.HasFunction("print") {
		t.Error("expected no functions on a closed state")
	}
}
