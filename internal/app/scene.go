package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/NBAH79/XConsole/internal/effect"
	"github.com/NBAH79/XConsole/internal/renderer"
	"github.com/NBAH79/XConsole/internal/renderer/core"
	"github.com/NBAH79/XConsole/internal/renderer/surface"
	"github.com/NBAH79/XConsole/internal/renderer/viewport"
	"github.com/NBAH79/XConsole/internal/sprite"
	"github.com/NBAH79/XConsole/internal/widget"
)

// Scene layout.
const (
	textWidth  = 64
	textHeight = 40
	textLines  = 100

	scaleX      = 10
	scaleY      = 50
	scaleLength = 100

	fireX      = 5
	fireY      = 0
	fireWidth  = 72
	fireHeight = 96

	spriteX      = 80
	spriteY      = 3
	spriteWidth  = 35
	spriteHeight = 40
	spriteFrames = 4

	// frameTicks is how many render frames each sprite frame stays up.
	frameTicks = 16
)

// Scene is the demo: a wrapped text panel, three progress bars, a fire and
// a four-frame sprite.
type Scene struct {
	text     *surface.Surface
	textView *viewport.Viewport

	percent *widget.PercentScale
	ratio   *widget.PercentScale
	marquee *widget.PercentScale

	fire           *effect.Fire
	fireIterations int

	sprite *sprite.Sprite

	labelStyle core.Style
	tick       int
	progress   float64
}

// NewScene builds the demo elements.
func NewScene(fireIterations int, rng *rand.Rand) (*Scene, error) {
	s := &Scene{
		textView:       viewport.New(core.NewRect(80, 27, 115, 45)),
		fireIterations: fireIterations,
		labelStyle:     core.NewStyle(0, 13, true),
	}

	var err error
	if s.text, err = surface.New(textWidth, textHeight); err != nil {
		return nil, err
	}
	s.fillText()

	if s.percent, err = widget.NewPercentScale(scaleX, scaleY, scaleLength); err != nil {
		return nil, err
	}
	if s.ratio, err = widget.NewPercentScale(scaleX, scaleY+2, scaleLength); err != nil {
		return nil, err
	}
	if s.marquee, err = widget.NewPercentScale(scaleX, scaleY+4, scaleLength); err != nil {
		return nil, err
	}

	if s.fire, err = effect.NewFire(fireX, fireY, fireWidth, fireHeight, rng); err != nil {
		return nil, err
	}

	if s.sprite, err = sprite.New(spriteX, spriteY, spriteWidth, spriteHeight, spriteFrames); err != nil {
		return nil, err
	}
	s.paintSprite()

	return s, nil
}

// fillText writes numbered greetings until the panel wraps, cycling the
// style color through every background/foreground pair.
func (s *Scene) fillText() {
	style := core.NewStyle(1, 4, true)
	for n := 0; n < textLines; n++ {
		style.Color = core.Color(n)
		s.text.WriteString(fmt.Sprintf(" HELLO WORLD %d", n), style)
	}
}

// paintSprite fills each frame with its own color and marks two corners.
func (s *Scene) paintSprite() {
	for f := 0; f < spriteFrames; f++ {
		top := f * spriteHeight
		color := uint8(f*3 + 6)
		for y := 0; y < spriteHeight; y++ {
			for x := 0; x < spriteWidth; x++ {
				s.sprite.SetPixel(x, top+y, color)
			}
		}
		s.sprite.SetPixel(0, top, 13)
		s.sprite.SetPixel(spriteWidth-1, top+spriteHeight-1, 13)
	}
}

// Elements returns the drawable elements in painting order, without the
// text panel.
func (s *Scene) Elements() []renderer.Element {
	return []renderer.Element{s.percent, s.ratio, s.marquee, s.fire, s.sprite}
}

// Draw paints the scene onto w.
func (s *Scene) Draw(w *renderer.Window) {
	s.sprite.SetFrame(s.tick / frameTicks)
	for _, e := range s.Elements() {
		w.Draw(e)
	}
	w.DrawView(s.textView, s.text)
}

// Update advances every animation by one frame.
func (s *Scene) Update() {
	s.percent.UpdatePercent(s.progress, s.labelStyle)
	s.ratio.UpdateRatio(int(100-s.progress), 100, s.labelStyle)
	s.marquee.UpdateMarquee(s.labelStyle)
	s.fire.Update(s.fireIterations)

	if s.progress < 100 {
		s.progress += 0.1
	} else {
		s.progress = 0
	}
	s.tick++
	if s.tick == spriteFrames*frameTicks {
		s.tick = 0
	}
}
