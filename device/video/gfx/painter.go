// Package gfx draws into the linear framebuffer handed over by the boot
// loader and composites layer surfaces onto it.
package gfx

import (
	"image"
	"kdisplay/device/video/font"
	"kdisplay/kernel"
	"kdisplay/kernel/kfmt"
)

var (
	// ErrBitmapSize is returned when a bitmap's pixel count does not match
	// its dimensions.
	ErrBitmapSize = &kernel.Error{Module: "gfx", Message: "bitmap size does not match width and height"}

	// ErrFramebufferSize is returned when a framebuffer is too small for
	// the geometry that describes it.
	ErrFramebufferSize = &kernel.Error{Module: "gfx", Message: "framebuffer smaller than its geometry"}

	// ErrUnsupportedFormat is reported when drawing requires a pixel
	// layout that the painter does not know.
	ErrUnsupportedFormat = &kernel.Error{Module: "gfx", Message: "unsupported pixel format"}
)

// Painter draws primitives into a framebuffer. A Painter performs no
// locking; the package-level wrappers serialize access to the global
// instance.
type Painter struct {
	fb   []byte
	geom Geometry
	font font.Provider

	// painted is reused by RenderPartial to track the pixels of the
	// render region that already received their final color.
	painted []bool
}

// NewPainter creates a painter for fb. The text functions use the default
// font until SetFont is called. Only RGB and BGR layouts with at least 3
// bytes per pixel are accepted, so drawing never hits an unknown format.
func NewPainter(fb []byte, geom Geometry) (*Painter, *kernel.Error) {
	if geom.BytesPerPixel < 3 || (geom.Format != PixelFormatRGB && geom.Format != PixelFormatBGR) {
		return nil, ErrUnsupportedFormat
	}

	if geom.Stride < geom.Width || uint64(len(fb)) < uint64(geom.Stride)*uint64(geom.Height)*uint64(geom.BytesPerPixel) {
		return nil, ErrFramebufferSize
	}

	p := &Painter{fb: fb, geom: geom}
	if f := font.Default(); f != nil {
		p.font = f
	}

	return p, nil
}

// Dimensions returns the visible framebuffer size in pixels.
func (p *Painter) Dimensions() (uint32, uint32) {
	return p.geom.Width, p.geom.Height
}

// Geometry returns the framebuffer layout.
func (p *Painter) Geometry() Geometry {
	return p.geom
}

// SetFont selects the glyph provider used by DrawChar and DrawString.
func (p *Painter) SetFont(f font.Provider) {
	p.font = f
}

// channelOffsets returns the byte offsets of the red, green and blue
// channels within a pixel. An unknown format is a fatal configuration
// error.
func (p *Painter) channelOffsets() (r, g, b uint32) {
	switch p.geom.Format {
	case PixelFormatRGB:
		return 0, 1, 2
	case PixelFormatBGR:
		return 2, 1, 0
	default:
		kfmt.Panic(ErrUnsupportedFormat)
		return 0, 0, 0
	}
}

// DrawPixel sets pixel (x, y) to c. Off-screen coordinates and transparent
// colors are ignored.
func (p *Painter) DrawPixel(x, y uint32, c Color) {
	if x >= p.geom.Width || y >= p.geom.Height || c.Transparent() {
		return
	}

	rOff, gOff, bOff := p.channelOffsets()
	off := p.geom.Offset(x, y)
	p.fb[off+rOff] = c.R
	p.fb[off+gOff] = c.G
	p.fb[off+bOff] = c.B
}

// DrawRect fills the w x h rectangle at (x, y) with c. The rectangle is
// clipped to the screen. Transparent colors and rectangles whose origin is
// off-screen draw nothing.
func (p *Painter) DrawRect(x, y, w, h uint32, c Color) {
	if c.Transparent() || x >= p.geom.Width || y >= p.geom.Height {
		return
	}

	if w > p.geom.Width-x {
		w = p.geom.Width - x
	}
	if h > p.geom.Height-y {
		h = p.geom.Height - y
	}
	if w == 0 || h == 0 {
		return
	}

	var (
		rOff, gOff, bOff = p.channelOffsets()
		bpp              = p.geom.BytesPerPixel
		rowOffset        = p.geom.Offset(x, y)
		rowPitch         = p.geom.Stride * bpp
	)

	for ; h > 0; h, rowOffset = h-1, rowOffset+rowPitch {
		for off, end := rowOffset, rowOffset+w*bpp; off < end; off += bpp {
			p.fb[off+rOff] = c.R
			p.fb[off+gOff] = c.G
			p.fb[off+bOff] = c.B
		}
	}
}

// Fill paints the whole visible screen with c.
func (p *Painter) Fill(c Color) {
	p.DrawRect(0, 0, p.geom.Width, p.geom.Height, c)
}

// ScrollUp moves the framebuffer contents up by rows pixel rows. The caller
// is responsible for clearing the rows exposed at the bottom. Scrolling by
// zero rows or by the full screen height is a no-op.
func (p *Painter) ScrollUp(rows uint32) {
	if rows == 0 || rows >= p.geom.Height {
		return
	}

	var (
		rowPitch = p.geom.Stride * p.geom.BytesPerPixel
		src      = rows * rowPitch
		end      = p.geom.Height * rowPitch
	)

	copy(p.fb[:end-src], p.fb[src:end])
}

// DrawBitmap draws a w x h bitmap stored in row-major order at (x, y) with
// the same clipping and transparency rules as DrawPixel. A bitmap whose
// length does not match its dimensions is rejected and nothing is drawn.
func (p *Painter) DrawBitmap(x, y, w, h uint32, pixels []Color) *kernel.Error {
	if uint64(len(pixels)) != uint64(w)*uint64(h) {
		return ErrBitmapSize
	}

	for j := uint32(0); j < h; j++ {
		py, ok := offsetWithin(y, j, p.geom.Height)
		if !ok {
			break
		}

		row := pixels[int(j)*int(w) : int(j+1)*int(w)]
		for i, c := range row {
			px, ok := offsetWithin(x, uint32(i), p.geom.Width)
			if !ok {
				break
			}
			p.DrawPixel(px, py, c)
		}
	}

	return nil
}

// offsetWithin returns origin+delta if the sum is below limit. Sums that
// would wrap around are treated as off-screen.
func offsetWithin(origin, delta, limit uint32) (uint32, bool) {
	v := uint64(origin) + uint64(delta)
	return uint32(v), v < uint64(limit)
}

// glyph returns the glyph for r or nil if the active font has none.
func (p *Painter) glyph(r rune) font.Glyph {
	if p.font == nil {
		return nil
	}

	g, ok := p.font.Lookup(r)
	if !ok {
		return nil
	}
	return g
}

// CharWidth returns the advance of r in pixels or 0 if no glyph exists.
func (p *Painter) CharWidth(r rune) uint32 {
	if g := p.glyph(r); g != nil {
		return g.Width()
	}
	return 0
}

// DrawChar draws r with its top-left corner at (x, y) and returns its
// advance in pixels. Characters without a glyph draw nothing and advance
// by 0.
func (p *Painter) DrawChar(x, y uint32, r rune, c Color) uint32 {
	g := p.glyph(r)
	if g == nil {
		return 0
	}

	w := g.Width()
	for j := uint32(0); j < font.GlyphHeight; j++ {
		py, ok := offsetWithin(y, j, p.geom.Height)
		if !ok {
			break
		}
		for i := uint32(0); i < w; i++ {
			px, ok := offsetWithin(x, i, p.geom.Width)
			if !ok {
				break
			}
			if g.PixelAt(i, j) {
				p.DrawPixel(px, py, c)
			}
		}
	}

	return w
}

// DrawString draws s starting at (x, y) and returns the total advance.
// Characters past the right edge are measured but not drawn.
func (p *Painter) DrawString(x, y uint32, s string, c Color) uint32 {
	var adv uint32
	for _, r := range s {
		cx, ok := offsetWithin(x, adv, p.geom.Width)
		if !ok {
			adv += p.CharWidth(r)
			continue
		}
		adv += p.DrawChar(cx, y, r, c)
	}
	return adv
}

// Snapshot returns a copy of the visible framebuffer contents.
func (p *Painter) Snapshot() *image.RGBA {
	var (
		img              = image.NewRGBA(image.Rect(0, 0, int(p.geom.Width), int(p.geom.Height)))
		rOff, gOff, bOff = p.channelOffsets()
	)

	for y := uint32(0); y < p.geom.Height; y++ {
		for x := uint32(0); x < p.geom.Width; x++ {
			src := p.geom.Offset(x, y)
			dst := img.PixOffset(int(x), int(y))
			img.Pix[dst] = p.fb[src+rOff]
			img.Pix[dst+1] = p.fb[src+gOff]
			img.Pix[dst+2] = p.fb[src+bOff]
			img.Pix[dst+3] = 0xff
		}
	}

	return img
}
