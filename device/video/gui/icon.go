package gui

import "kdisplay/device/video/gfx"

// Icon is a palette-indexed image. Icon sources are generated by
// tools/makeicon.
type Icon struct {
	// The width and height of the icon in pixels.
	Width  uint32
	Height uint32

	// TransparentIndex is the palette index that is not drawn.
	TransparentIndex uint8

	Palette []gfx.Color

	// Width*Height palette indices in row-major order.
	Data []uint8
}

// Bitmap expands the icon into a bitmap suitable for DrawBitmap.
func (ic *Icon) Bitmap() []gfx.Color {
	out := make([]gfx.Color, len(ic.Data))
	for i, idx := range ic.Data {
		if idx == ic.TransparentIndex || int(idx) >= len(ic.Palette) {
			out[i] = gfx.Transparent
			continue
		}
		out[i] = ic.Palette[idx]
	}
	return out
}
