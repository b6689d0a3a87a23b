package effect

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

func newFire(t *testing.T, w, h int) *Fire {
	t.Helper()
	f, err := NewFire(1, 2, w, h, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewFire failed: %v", err)
	}
	return f
}

func TestNewFireInvalid(t *testing.T) {
	if _, err := NewFire(0, 0, 4, 10, nil); !errors.Is(err, core.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestFireReset(t *testing.T) {
	f := newFire(t, 30, 10)
	s := f.Sprite()

	bottom := 9
	for x := 0; x < 30; x++ {
		n := x - 2
		want := 0
		if n >= 0 && n < 26 && n&8 != 0 {
			want = EmberColor
		}
		if got := s.GetPixel(x, bottom); got != want {
			t.Errorf("bottom pixel %d: expected %d, got %d", x, want, got)
		}
		if got := s.GetPixel(x, 0); got != 0 {
			t.Errorf("top pixel %d: expected 0, got %d", x, got)
		}
	}
}

func TestFireUpdateRises(t *testing.T) {
	f := newFire(t, 30, 10)
	s := f.Sprite()

	for i := 0; i < 20; i++ {
		f.Update(200)
	}

	lit := 0
	for y := 0; y < 9; y++ {
		for x := 0; x < 30; x++ {
			p := s.GetPixel(x, y)
			if p < 0 || p > 15 {
				t.Fatalf("pixel (%d,%d) out of range: %d", x, y, p)
			}
			if p > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected flames above the embers after updates")
	}
	if got := s.GetPixel(10, 9); got != EmberColor {
		t.Errorf("expected embers re-seeded, got %d", got)
	}
}

func TestFireElement(t *testing.T) {
	f := newFire(t, 8, 4)
	if f.Viewport().Transform() != core.NewRect(1, 2, 8, 3) {
		t.Errorf("unexpected transform %v", f.Viewport().Transform())
	}
	if f.Surface().Width() != 8 {
		t.Errorf("expected width 8, got %d", f.Surface().Width())
	}
}
