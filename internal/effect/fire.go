// Package effect holds animated elements built on sprites.
package effect

import (
	"fmt"
	"math/rand/v2"

	"github.com/NBAH79/XConsole/internal/renderer/core"
	"github.com/NBAH79/XConsole/internal/renderer/surface"
	"github.com/NBAH79/XConsole/internal/renderer/viewport"
	"github.com/NBAH79/XConsole/internal/sprite"
)

// EmberColor is the color of the fuel pixels along the bottom edge.
const EmberColor = 12

// minFireWidth leaves room for the two-pixel margin the sampler reads.
const minFireWidth = 5

// Fire is a rising-flame animation. Each update blurs random pixels with
// their neighbors, scrolls the bitmap up one pixel and re-seeds the bottom
// row.
type Fire struct {
	sprite *sprite.Sprite
	rng    *rand.Rand
}

// NewFire creates a width×pixelHeight fire at column x, row y. A nil rng
// gets a randomly seeded source.
func NewFire(x, y, width, pixelHeight int, rng *rand.Rand) (*Fire, error) {
	if width < minFireWidth || pixelHeight < 2 {
		return nil, fmt.Errorf("fire %dx%d: %w", width, pixelHeight, core.ErrInvalidSize)
	}
	s, err := sprite.New(x, y, width, pixelHeight, 1)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Fire{sprite: s, rng: rng}
	f.Reset()
	return f, nil
}

// Viewport implements renderer.Element.
func (f *Fire) Viewport() *viewport.Viewport {
	return f.sprite.Viewport()
}

// Surface implements renderer.Element.
func (f *Fire) Surface() *surface.Surface {
	return f.sprite.Surface()
}

// Sprite returns the underlying bitmap.
func (f *Fire) Sprite() *sprite.Sprite {
	return f.sprite
}

// Reset blanks the fire and lays the embers.
func (f *Fire) Reset() {
	f.sprite.Clear(0)
	f.seed()
}

// seed draws embers on the bottom pixel row in blocks of eight, two pixels
// in from each side.
func (f *Fire) seed() {
	bottom := f.bottom()
	for n := 0; n < f.sprite.Width()-4; n++ {
		if n&8 != 0 {
			f.sprite.SetPixel(n+2, bottom, EmberColor)
		}
	}
}

func (f *Fire) bottom() int {
	return f.sprite.Rows()*2 - 1
}

// Update samples iterations+1 random pixels, then scrolls and re-seeds.
func (f *Fire) Update(iterations int) {
	w := f.sprite.Width()
	for n := 0; n <= iterations; n++ {
		x := 2 + f.rng.IntN(w-4)
		y := f.rng.IntN(f.bottom())
		f.sprite.SetPixel(x, y, f.sample(x, y))
	}
	f.sprite.ScrollUp(1)
	f.seed()
}

// sample averages a pixel with the ones beside and below it. The pixel
// itself counts double; the outer neighbors count half.
func (f *Fire) sample(x, y int) uint8 {
	sum := f.pixel(x, y)<<1 +
		f.pixel(x, y+1) +
		f.pixel(x-1, y) +
		f.pixel(x+1, y) +
		f.pixel(x-2, y)>>1 +
		f.pixel(x+2, y)>>1 +
		f.pixel(x-1, y+1)>>1 +
		f.pixel(x+1, y+1)>>1
	return uint8(min(float64(sum)/6.666, 15))
}

func (f *Fire) pixel(x, y int) int {
	return max(f.sprite.GetPixel(x, y), 0)
}
