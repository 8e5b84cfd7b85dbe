// Package font provides the fixed-height bitmap glyphs used for text output
// on the framebuffer. Every glyph is GlyphHeight rows tall and either 8
// (half-width) or 16 (full-width) columns wide.
package font

import (
	"image"
	"kdisplay/kernel/sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/width"
)

// GlyphHeight is the height in pixels of every glyph.
const GlyphHeight = 16

var (
	// The list of available fonts.
	availableFonts []*Font
)

// Glyph is a bitmap glyph.
type Glyph interface {
	// Width returns the glyph advance in pixels (8 or 16).
	Width() uint32

	// PixelAt returns true if the pixel at (x, y) is set. Coordinates
	// outside the glyph return false.
	PixelAt(x, y uint32) bool
}

// Provider is implemented by objects that map characters to glyphs.
type Provider interface {
	// Lookup returns the glyph for r and true, or false if the provider
	// has no glyph for r.
	Lookup(r rune) (Glyph, bool)
}

// HalfWidthGlyph is an 8-pixel wide glyph. Each row stores its pixels with
// the most significant bit on the left.
type HalfWidthGlyph [GlyphHeight]uint8

// Width implements Glyph.
func (g *HalfWidthGlyph) Width() uint32 { return 8 }

// PixelAt implements Glyph.
func (g *HalfWidthGlyph) PixelAt(x, y uint32) bool {
	return x < 8 && y < GlyphHeight && g[y]&(0x80>>x) != 0
}

// FullWidthGlyph is a 16-pixel wide glyph. Each row stores its pixels with
// the most significant bit on the left.
type FullWidthGlyph [GlyphHeight]uint16

// Width implements Glyph.
func (g *FullWidthGlyph) Width() uint32 { return 16 }

// PixelAt implements Glyph.
func (g *FullWidthGlyph) PixelAt(x, y uint32) bool {
	return x < 16 && y < GlyphHeight && g[y]&(0x8000>>x) != 0
}

// Font is a Provider that rasterizes glyphs on demand from an x/image font
// face and caches the resulting bitmaps.
type Font struct {
	// The name of the font
	Name string

	// Font priority (lower is better). Default returns the font with the
	// lowest priority.
	Priority uint32

	face   xfont.Face
	covers func(rune) bool

	// baseline is the glyph row where the face baseline is placed so that
	// the face's ascent and descent are centered in GlyphHeight rows.
	baseline int

	// fallback supplies glyphs for runes the face does not cover.
	fallback *Font

	lock  sync.Spinlock
	cache map[rune]Glyph
}

// NewFont creates a font backed by face. The covers function reports
// whether face has a real glyph for a rune; faces usually substitute a
// replacement glyph for missing runes which must not be drawn.
func NewFont(name string, priority uint32, face xfont.Face, covers func(rune) bool) *Font {
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	top := (GlyphHeight - ascent - descent) / 2
	if top < 0 {
		top = 0
	}

	return &Font{
		Name:     name,
		Priority: priority,
		face:     face,
		covers:   covers,
		baseline: top + ascent,
		cache:    make(map[rune]Glyph),
	}
}

// SetFallback makes Lookup consult fb for runes that f does not cover.
// Passing f itself or nil removes the fallback.
func (f *Font) SetFallback(fb *Font) {
	if fb == f {
		fb = nil
	}
	f.fallback = fb
}

// Lookup implements Provider. Control characters never have a glyph.
// Fullwidth forms of characters that the face only has in their narrow form
// are synthesized by doubling every column of the narrow glyph. Runes the
// face does not cover are looked up in the fallback font, if any.
func (f *Font) Lookup(r rune) (Glyph, bool) {
	if r < 0x20 || (r >= 0x7f && r < 0xa0) {
		return nil, false
	}

	if g := f.lookup(r); g != nil {
		return g, true
	}

	if f.fallback != nil {
		return f.fallback.Lookup(r)
	}
	return nil, false
}

func (f *Font) lookup(r rune) Glyph {
	f.lock.Acquire()
	defer f.lock.Release()

	g, cached := f.cache[r]
	if !cached {
		g = f.rasterize(r)
		f.cache[r] = g
	}
	return g
}

// rasterize renders r into a glyph bitmap or returns nil if the face does
// not cover r.
func (f *Font) rasterize(r rune) Glyph {
	var (
		props = width.LookupRune(r)
		kind  = props.Kind()
		src   = r
	)

	if kind == width.EastAsianFullwidth {
		if narrow := props.Narrow(); narrow != 0 {
			src = narrow
		}
	}

	if !f.covers(src) {
		return nil
	}

	switch {
	case kind != width.EastAsianWide && kind != width.EastAsianFullwidth:
		var g HalfWidthGlyph
		for y, row := range f.rows(src, 8) {
			g[y] = uint8(row)
		}
		return &g
	case src != r:
		var g FullWidthGlyph
		for y, row := range f.rows(src, 8) {
			g[y] = doubleColumns(uint8(row))
		}
		return &g
	default:
		var g FullWidthGlyph
		for y, row := range f.rows(src, 16) {
			g[y] = row
		}
		return &g
	}
}

// rows samples the face's glyph mask for r into cols-bit wide rows.
func (f *Font) rows(r rune, cols int) [GlyphHeight]uint16 {
	var out [GlyphHeight]uint16

	dr, mask, maskp, _, ok := f.face.Glyph(fixed.P(0, f.baseline), r)
	if !ok || mask == nil {
		return out
	}

	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < cols; x++ {
			if !image.Pt(x, y).In(dr) {
				continue
			}

			_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				out[y] |= 1 << uint(cols-1-x)
			}
		}
	}

	return out
}

// doubleColumns widens an 8-pixel row to 16 pixels by repeating each bit.
func doubleColumns(row uint8) uint16 {
	var out uint16
	for x := 0; x < 8; x++ {
		if row&(0x80>>uint(x)) != 0 {
			out |= 0xc000 >> uint(2*x)
		}
	}
	return out
}

// Register adds f to the list of available fonts.
func Register(f *Font) {
	availableFonts = append(availableFonts, f)
}

// FindByName looks up a font instance by name. If the font is not found then
// the function returns nil.
func FindByName(name string) *Font {
	for _, f := range availableFonts {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// Default returns the available font with the lowest priority value or nil
// if no fonts are available. Ties are resolved in registration order.
func Default() *Font {
	var best *Font
	for _, f := range availableFonts {
		if best == nil || f.Priority < best.Priority {
			best = f
		}
	}

	return best
}
