package gfx

import (
	"image"
	"iter"
	"kdisplay/device/video/font"
	"kdisplay/kernel"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/klog"
	"kdisplay/kernel/sync"

	"go.uber.org/zap"
)

var (
	// screenPainter is a pointer so tests can swap in a fresh cell.
	screenPainter = &sync.OnceCell[*Painter]{}
	painterLock   sync.Spinlock
)

// Init creates the global painter that backs the package-level drawing
// functions. Calling Init more than once is a fatal error.
func Init(fb []byte, geom Geometry) *kernel.Error {
	p, err := NewPainter(fb, geom)
	if err != nil {
		return err
	}

	screenPainter.Init(p)
	return nil
}

// Initialized returns true once Init has succeeded.
func Initialized() bool {
	return screenPainter.IsInitialized()
}

// withPainter runs fn with interrupts masked while holding the global painter
// lock. Using the package-level functions before Init is fatal.
func withPainter(fn func(p *Painter)) {
	p := screenPainter.MustGet()
	irq.WithoutInterrupts(func() {
		painterLock.Acquire()
		defer painterLock.Release()
		fn(p)
	})
}

// DrawPixel draws a pixel on the screen.
func DrawPixel(x, y uint32, c Color) {
	withPainter(func(p *Painter) { p.DrawPixel(x, y, c) })
}

// DrawRect fills a rectangle on the screen.
func DrawRect(x, y, w, h uint32, c Color) {
	withPainter(func(p *Painter) { p.DrawRect(x, y, w, h, c) })
}

// DrawLine draws a line on the screen.
func DrawLine(x0, y0, x1, y1 uint32, c Color) {
	withPainter(func(p *Painter) { p.DrawLine(x0, y0, x1, y1, c) })
}

// DrawChar draws a character on the screen and returns its advance.
func DrawChar(x, y uint32, r rune, c Color) (adv uint32) {
	withPainter(func(p *Painter) { adv = p.DrawChar(x, y, r, c) })
	return adv
}

// DrawString draws a string on the screen and returns its advance.
func DrawString(x, y uint32, s string, c Color) (adv uint32) {
	withPainter(func(p *Painter) { adv = p.DrawString(x, y, s, c) })
	return adv
}

// CharWidth returns the advance of r in the screen font.
func CharWidth(r rune) (adv uint32) {
	withPainter(func(p *Painter) { adv = p.CharWidth(r) })
	return adv
}

// DrawBitmap draws a bitmap on the screen. Rejected bitmaps are logged
// once the painter lock has been released since the log may be mirrored on
// the screen.
func DrawBitmap(x, y, w, h uint32, pixels []Color) (err *kernel.Error) {
	withPainter(func(p *Painter) { err = p.DrawBitmap(x, y, w, h, pixels) })
	if err != nil {
		klog.L().Error("cannot draw bitmap",
			zap.String("module", err.Module),
			zap.String("reason", err.Message),
			zap.Uint32("width", w),
			zap.Uint32("height", h),
			zap.Int("pixels", len(pixels)),
		)
	}
	return err
}

// ScrollUp scrolls the screen contents up by rows pixels.
func ScrollUp(rows uint32) {
	withPainter(func(p *Painter) { p.ScrollUp(rows) })
}

// SetFont selects the font used for screen text.
func SetFont(f font.Provider) {
	withPainter(func(p *Painter) { p.SetFont(f) })
}

// Dimensions returns the screen size in pixels.
func Dimensions() (w, h uint32) {
	withPainter(func(p *Painter) { w, h = p.Dimensions() })
	return w, h
}

// Render composites surfaces, bottom-most first, onto the whole screen.
func Render(surfaces iter.Seq[Surface]) {
	withPainter(func(p *Painter) { p.RenderFull(surfaces) })
}

// RenderRegion composites surfaces, top-most first, onto a screen region.
func RenderRegion(surfaces iter.Seq[Surface], x, y, w, h uint32) {
	withPainter(func(p *Painter) { p.RenderPartial(surfaces, x, y, w, h) })
}

// Snapshot returns a copy of the screen contents.
func Snapshot() (img *image.RGBA) {
	withPainter(func(p *Painter) { img = p.Snapshot() })
	return img
}

// Screen draws on the global painter. Its zero value is ready to use and
// lets code written against a small drawing interface target the screen.
type Screen struct{}

// Dimensions returns the screen size in pixels.
func (Screen) Dimensions() (uint32, uint32) { return Dimensions() }

// DrawRect fills a rectangle on the screen.
func (Screen) DrawRect(x, y, w, h uint32, c Color) { DrawRect(x, y, w, h, c) }

// DrawChar draws a character on the screen.
func (Screen) DrawChar(x, y uint32, r rune, c Color) uint32 { return DrawChar(x, y, r, c) }

// CharWidth returns the advance of r.
func (Screen) CharWidth(r rune) uint32 { return CharWidth(r) }

// ScrollUp scrolls the screen contents up.
func (Screen) ScrollUp(rows uint32) { ScrollUp(rows) }
