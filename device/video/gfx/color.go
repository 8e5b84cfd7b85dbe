package gfx

import "image/color"

// AlphaTransparent is the alpha value of a fully transparent color. Every
// other alpha value is treated as fully opaque.
const AlphaTransparent uint8 = 0

// Color is a 24-bit color with a binary transparency gate.
type Color struct {
	R, G, B uint8

	// A is AlphaTransparent for colors that are never drawn. Any other
	// value makes the color opaque; there is no blending.
	A uint8
}

// The color palette shared by the kernel's display code.
var (
	Red               = Hex(0xFA4B4B)
	Orange            = Hex(0xFF7E35)
	Yellow            = Hex(0xFCBB13)
	Green             = Hex(0x12B76A)
	White             = Hex(0xFFFFFF)
	Black             = Hex(0x000000)
	DesktopBackground = Hex(0x202020)
	BrightRed         = Hex(0xFCA5A5)
	BrightYellow      = Hex(0xFDDD89)
	TraceLog          = Hex(0xAAAAAA)
	MouseFill         = Hex(0x101010)
	WindowBorder      = Hex(0x3C3C3C)
	Transparent       = Color{}
)

// Hex returns the opaque color encoded as 0xRRGGBB.
func Hex(rgb uint32) Color {
	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

// RGBA returns a color from its components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts c to a Color. Colors with a zero alpha become
// transparent; everything else becomes opaque with its premultiplied
// channels undone.
func FromColor(c color.Color) Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nc.A == 0 {
		return Transparent
	}

	return Color{R: nc.R, G: nc.G, B: nc.B, A: 0xff}
}

// Transparent returns true if the color must not be drawn.
func (c Color) Transparent() bool {
	return c.A == AlphaTransparent
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	if c.Transparent() {
		return 0, 0, 0, 0
	}

	r, g, b = uint32(c.R), uint32(c.G), uint32(c.B)
	return r<<8 | r, g<<8 | g, b<<8 | b, 0xffff
}
