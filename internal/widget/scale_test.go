package widget

import (
	"testing"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

func inverted(p *PercentScale) int {
	n := 0
	for x := 0; x < p.Len(); x++ {
		if p.Surface().Cell(x, 0).Attr.Has(core.AttrInvert) {
			n++
		}
	}
	return n
}

func label(p *PercentScale) string {
	b := make([]byte, p.Len())
	for x := range b {
		b[x] = byte(p.Surface().Cell(x, 0).Glyph)
	}
	return string(b)
}

func TestNewPercentScale(t *testing.T) {
	p, err := NewPercentScale(10, 50, 20)
	if err != nil {
		t.Fatalf("NewPercentScale failed: %v", err)
	}
	if tr := p.Viewport().Transform(); tr != core.NewRect(10, 50, 29, 50) {
		t.Errorf("expected single-row transform, got %v", tr)
	}
	if _, err := NewPercentScale(0, 0, 0); err == nil {
		t.Error("expected error for zero length")
	}
}

func TestUpdatePercent(t *testing.T) {
	p, _ := NewPercentScale(0, 0, 20)
	style := core.NewStyle(0, 13, true)

	p.UpdatePercent(25, style)

	if got := inverted(p); got != 5 {
		t.Errorf("expected 5 inverted cells, got %d", got)
	}
	if got := label(p); got != "       25.0%        " {
		t.Errorf("unexpected label %q", got)
	}
	if c := p.Surface().Cell(0, 0); !c.Attr.Has(core.AttrFrameTop|core.AttrFrameLeft) || c.Color != style.Color {
		t.Errorf("expected framed style on first cell, got %+v", c)
	}

	p.UpdatePercent(25, style)
	if got := inverted(p); got != 5 {
		t.Errorf("expected repeated update to be stable, got %d", got)
	}
}

func TestUpdateRatio(t *testing.T) {
	p, _ := NewPercentScale(0, 0, 10)

	p.UpdateRatio(3, 10, core.DefaultStyle)
	if got := inverted(p); got != 3 {
		t.Errorf("expected 3 inverted cells, got %d", got)
	}
	if got := label(p); got != "   3/10   " {
		t.Errorf("unexpected label %q", got)
	}

	p.UpdateRatio(5, 0, core.DefaultStyle)
	if got := inverted(p); got != 0 {
		t.Errorf("expected no progress for zero total, got %d", got)
	}
}

func TestUpdateMarquee(t *testing.T) {
	p, _ := NewPercentScale(0, 0, 40)

	p.UpdateMarquee(core.DefaultStyle)
	if p.Marquee() != 1 {
		t.Errorf("expected marker at 1, got %d", p.Marquee())
	}
	if got := inverted(p); got != 3 {
		t.Errorf("expected 3 inverted cells, got %d", got)
	}

	for i := 0; i < 42; i++ {
		p.UpdateMarquee(core.DefaultStyle)
	}
	if p.Marquee() != -2 {
		t.Errorf("expected marker to wrap to -2, got %d", p.Marquee())
	}
	if got := inverted(p); got != 0 {
		t.Errorf("expected no inverted cells off the bar, got %d", got)
	}
}
