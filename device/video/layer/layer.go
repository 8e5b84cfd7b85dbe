// Package layer maintains off-screen pixel buffers that are composited onto
// the framebuffer in z-order.
package layer

import (
	"kdisplay/device/video/font"
	"kdisplay/device/video/gfx"
	"kdisplay/kernel"
)

// ErrBitmapSize is returned when a bitmap's pixel count does not match its
// dimensions.
var ErrBitmapSize = &kernel.Error{Module: "layer", Message: "bitmap size does not match width and height"}

// Layer is an off-screen buffer of colors. A Layer is only ever accessed
// through its Handle which guards it with a lock.
type Layer struct {
	pixels        []gfx.Color
	width, height uint32

	// Screen position of the top-left corner.
	x, y uint32

	hidden bool
	font   font.Provider
}

// Width returns the layer width in pixels.
func (l *Layer) Width() uint32 { return l.width }

// Height returns the layer height in pixels.
func (l *Layer) Height() uint32 { return l.height }

// Position returns the screen position of the layer's top-left corner.
func (l *Layer) Position() (uint32, uint32) { return l.x, l.y }

// Hidden returns true if the layer is excluded from compositing.
func (l *Layer) Hidden() bool { return l.hidden }

// SetPosition moves the layer. Nothing is redrawn until the next render.
func (l *Layer) SetPosition(x, y uint32) {
	l.x, l.y = x, y
}

// SetHidden excludes the layer from (or includes it in) compositing.
func (l *Layer) SetHidden(hidden bool) {
	l.hidden = hidden
}

// SetFont selects the glyph provider used by DrawChar and DrawString.
func (l *Layer) SetFont(f font.Provider) {
	l.font = f
}

// At returns the color of layer pixel (x, y) or Transparent for
// coordinates outside the layer.
func (l *Layer) At(x, y uint32) gfx.Color {
	if x >= l.width || y >= l.height {
		return gfx.Transparent
	}
	return l.pixels[y*l.width+x]
}

// DrawPixel sets layer pixel (x, y) to c. Coordinates outside the layer and
// transparent colors are ignored.
func (l *Layer) DrawPixel(x, y uint32, c gfx.Color) {
	if x >= l.width || y >= l.height || c.Transparent() {
		return
	}
	l.pixels[y*l.width+x] = c
}

// DrawRect fills a rectangle clipped to the layer bounds.
func (l *Layer) DrawRect(x, y, w, h uint32, c gfx.Color) {
	if c.Transparent() || x >= l.width || y >= l.height {
		return
	}

	w = min(w, l.width-x)
	h = min(h, l.height-y)
	for row := y; row < y+h; row++ {
		line := l.pixels[row*l.width+x : row*l.width+x+w]
		for i := range line {
			line[i] = c
		}
	}
}

// Fill sets every pixel of the layer to c. Unlike the drawing functions,
// Fill accepts Transparent and uses it to clear the layer.
func (l *Layer) Fill(c gfx.Color) {
	for i := range l.pixels {
		l.pixels[i] = c
	}
}

// DrawBitmap copies a w x h bitmap stored in row-major order to (x, y).
// Transparent bitmap pixels leave the layer untouched.
func (l *Layer) DrawBitmap(x, y, w, h uint32, pixels []gfx.Color) *kernel.Error {
	if uint64(len(pixels)) != uint64(w)*uint64(h) {
		return ErrBitmapSize
	}

	for j := uint32(0); j < h; j++ {
		py, ok := offsetWithin(y, j, l.height)
		if !ok {
			break
		}
		for i := uint32(0); i < w; i++ {
			px, ok := offsetWithin(x, i, l.width)
			if !ok {
				break
			}
			l.DrawPixel(px, py, pixels[int(j)*int(w)+int(i)])
		}
	}
	return nil
}

// offsetWithin returns origin+delta if the sum is below limit. Sums that
// would wrap around count as outside the layer.
func offsetWithin(origin, delta, limit uint32) (uint32, bool) {
	v := uint64(origin) + uint64(delta)
	return uint32(v), v < uint64(limit)
}

// CharWidth returns the advance of r in the layer font.
func (l *Layer) CharWidth(r rune) uint32 {
	if l.font == nil {
		return 0
	}
	if g, ok := l.font.Lookup(r); ok {
		return g.Width()
	}
	return 0
}

// DrawChar draws r at (x, y) and returns its advance in pixels.
func (l *Layer) DrawChar(x, y uint32, r rune, c gfx.Color) uint32 {
	if l.font == nil {
		return 0
	}

	g, ok := l.font.Lookup(r)
	if !ok {
		return 0
	}

	w := g.Width()
	for j := uint32(0); j < font.GlyphHeight; j++ {
		py, ok := offsetWithin(y, j, l.height)
		if !ok {
			break
		}
		for i := uint32(0); i < w; i++ {
			px, ok := offsetWithin(x, i, l.width)
			if !ok {
				break
			}
			if g.PixelAt(i, j) {
				l.DrawPixel(px, py, c)
			}
		}
	}
	return w
}

// DrawString draws s at (x, y) and returns its total advance. Characters
// past the right edge are measured but not drawn.
func (l *Layer) DrawString(x, y uint32, s string, c gfx.Color) uint32 {
	var adv uint32
	for _, r := range s {
		cx, ok := offsetWithin(x, adv, l.width)
		if !ok {
			adv += l.CharWidth(r)
			continue
		}
		adv += l.DrawChar(cx, y, r, c)
	}
	return adv
}
