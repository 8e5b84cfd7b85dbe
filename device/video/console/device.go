package console

import "kdisplay/device/video/gfx"

// The Canvas interface is implemented by surfaces that a Logger can print
// to. Both *gfx.Painter and gfx.Screen implement it.
type Canvas interface {
	// Dimensions returns the canvas width and height in pixels.
	Dimensions() (uint32, uint32)

	// DrawRect fills a rectangle clipped to the canvas.
	DrawRect(x, y, w, h uint32, c gfx.Color)

	// DrawChar draws a character and returns its advance in pixels.
	DrawChar(x, y uint32, r rune, c gfx.Color) uint32

	// CharWidth returns the advance of a character without drawing it.
	CharWidth(r rune) uint32

	// ScrollUp moves the canvas contents up. The caller is responsible for
	// clearing the exposed rows.
	ScrollUp(rows uint32)
}
