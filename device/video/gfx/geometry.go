package gfx

import "kdisplay/kernel/hal/bootinfo"

// PixelFormat describes the order of the color channels inside a pixel.
type PixelFormat uint8

const (
	// PixelFormatUnknown is any layout the painter cannot draw to.
	PixelFormatUnknown PixelFormat = iota

	// PixelFormatRGB stores red, green and blue in increasing byte
	// offsets.
	PixelFormatRGB

	// PixelFormatBGR stores blue, green and red in increasing byte
	// offsets.
	PixelFormatBGR
)

// String implements fmt.Stringer for PixelFormat.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB:
		return "RGB"
	case PixelFormatBGR:
		return "BGR"
	default:
		return "unknown"
	}
}

// Geometry describes the memory layout of a framebuffer.
type Geometry struct {
	// Visible dimensions in pixels.
	Width, Height uint32

	// Stride is the length of a row in pixels, including padding.
	Stride uint32

	// BytesPerPixel is at least 3; extra bytes are left untouched.
	BytesPerPixel uint32

	Format PixelFormat
}

// Offset returns the byte offset of pixel (x, y).
func (g Geometry) Offset(x, y uint32) uint32 {
	return (y*g.Stride + x) * g.BytesPerPixel
}

// Size returns the minimum framebuffer length in bytes.
func (g Geometry) Size() uint32 {
	return g.Stride * g.Height * g.BytesPerPixel
}

// GeometryFromBootInfo converts the framebuffer description handed over by
// the boot loader.
func GeometryFromBootInfo(info bootinfo.FramebufferInfo) Geometry {
	geom := Geometry{
		Width:         info.Width,
		Height:        info.Height,
		Stride:        info.Stride,
		BytesPerPixel: info.BytesPerPixel,
	}

	switch info.Format {
	case bootinfo.FormatRGB:
		geom.Format = PixelFormatRGB
	case bootinfo.FormatBGR:
		geom.Format = PixelFormatBGR
	}

	return geom
}
