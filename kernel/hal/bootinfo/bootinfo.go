// Package bootinfo holds the data that the boot loader hands over to the
// kernel: the linear framebuffer and the kernel command line.
package bootinfo

import (
	"kdisplay/kernel/sync"
)

// Format describes the channel layout of a framebuffer pixel as reported by
// the boot loader.
type Format uint8

const (
	// FormatUnknown is reported for layouts that the loader could not
	// describe.
	FormatUnknown Format = iota

	// FormatRGB stores red in the lowest byte of each pixel.
	FormatRGB

	// FormatBGR stores blue in the lowest byte of each pixel.
	FormatBGR

	// FormatU8 is a single-byte grayscale layout.
	FormatU8
)

// String implements fmt.Stringer for Format.
func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatBGR:
		return "bgr"
	case FormatU8:
		return "u8"
	default:
		return "unknown"
	}
}

// FramebufferInfo provides information about the framebuffer initialized by
// the boot loader.
type FramebufferInfo struct {
	// Width and height in pixels.
	Width, Height uint32

	// Stride is the length of a framebuffer row in pixels, including any
	// padding.
	Stride uint32

	// BytesPerPixel is the size of a single pixel.
	BytesPerPixel uint32

	// The pixel channel layout.
	Format Format
}

type framebuffer struct {
	buf  []byte
	info FramebufferInfo
}

var (
	fbLock sync.Spinlock
	fb     *framebuffer
)

// SetFramebuffer records the framebuffer handed over by the boot loader. It
// must be called before the hal probes for devices.
func SetFramebuffer(buf []byte, info FramebufferInfo) {
	fbLock.Acquire()
	fb = &framebuffer{buf: buf, info: info}
	fbLock.Release()
}

// TakeFramebuffer transfers ownership of the boot framebuffer to the caller.
// Only the first call after SetFramebuffer returns the buffer; subsequent
// calls return nil so that no two drivers ever write to the same memory.
func TakeFramebuffer() ([]byte, *FramebufferInfo) {
	fbLock.Acquire()
	defer fbLock.Release()

	if fb == nil {
		return nil, nil
	}

	taken := fb
	fb = nil
	return taken.buf, &taken.info
}
