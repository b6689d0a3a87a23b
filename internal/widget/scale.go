// Package widget provides ready-made elements for text panels.
package widget

import (
	"fmt"

	"github.com/NBAH79/XConsole/internal/renderer/core"
	"github.com/NBAH79/XConsole/internal/renderer/surface"
	"github.com/NBAH79/XConsole/internal/renderer/viewport"
)

// PercentScale is a one-row progress bar. Progress is shown by inverting
// the cells on its left; a centered label shows the value.
type PercentScale struct {
	surf   *surface.Surface
	view   *viewport.Viewport
	length int

	marquee int
}

// NewPercentScale creates a bar of length cells at column x, row y.
func NewPercentScale(x, y, length int) (*PercentScale, error) {
	surf, err := surface.New(length, 1)
	if err != nil {
		return nil, fmt.Errorf("percent scale: %w", err)
	}
	return &PercentScale{
		surf:   surf,
		view:   viewport.At(x, y, length, 1),
		length: length,
	}, nil
}

// Viewport implements renderer.Element.
func (p *PercentScale) Viewport() *viewport.Viewport {
	return p.view
}

// Surface implements renderer.Element.
func (p *PercentScale) Surface() *surface.Surface {
	return p.surf
}

// Len returns the bar length in cells.
func (p *PercentScale) Len() int {
	return p.length
}

// UpdatePercent shows percent (0-100) with one decimal.
func (p *PercentScale) UpdatePercent(percent float64, style core.Style) {
	p.redraw(style, fmt.Sprintf("%.1f%%", percent))
	p.invert(0, int(float64(p.length)*percent/100))
}

// UpdateRatio shows quantity out of total.
func (p *PercentScale) UpdateRatio(quantity, total int, style core.Style) {
	p.redraw(style, fmt.Sprintf("%d/%d", quantity, total))
	if total == 0 {
		return
	}
	p.invert(0, int(float64(p.length)*float64(quantity)/float64(total)))
}

// UpdateMarquee advances a marker across the bar for progress of unknown
// length. The marker covers a twentieth of the bar on each side of its
// position and re-enters from the left after leaving on the right.
func (p *PercentScale) UpdateMarquee(style core.Style) {
	p.surf.Clear(style, core.GlyphSpace)

	marker := max(p.length/20, 1)
	pos := p.marquee
	p.marquee++
	if pos == p.length+marker {
		p.marquee = -marker
	}
	p.invert(p.marquee-marker, p.marquee+marker)
}

// Marquee returns the current marker position.
func (p *PercentScale) Marquee() int {
	return p.marquee
}

func (p *PercentScale) redraw(style core.Style, label string) {
	p.surf.Clear(style, core.GlyphSpace)

	text := core.EncodeText(label)
	if len(text) > p.length {
		text = text[:p.length]
	}
	p.surf.MoveTo((p.length-len(text))/2, 0)
	p.surf.Write(text)
}

// invert sets the invert bit on cells [from, to), clipped to the bar.
func (p *PercentScale) invert(from, to int) {
	from = max(from, 0)
	to = min(to, p.length)
	for x := from; x < to; x++ {
		c := p.surf.Cell(x, 0)
		c.Attr = c.Attr.With(core.AttrInvert)
		p.surf.SetCell(x, 0, c)
	}
}
