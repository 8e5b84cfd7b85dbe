//go:build linux

package main

import (
	"fmt"
	"os"
	"unsafe"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"

	"kdisplay/kernel/hal/bootinfo"
)

// <linux/fb.h> ioctls
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// fixScreenInfo mirrors struct fb_fix_screeninfo.
type fixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	_            [2]uint16
}

type bitField struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// varScreenInfo mirrors struct fb_var_screeninfo.
type varScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Alpha  bitField
	NonStd                   uint32
	Activate                 uint32
	Height, Width            uint32
	_                        uint32
	PixelClock               uint32
	LeftMargin               uint32
	RightMargin              uint32
	UpperMargin              uint32
	LowerMargin              uint32
	HSyncLen                 uint32
	VSyncLen                 uint32
	Sync                     uint32
	VMode                    uint32
	Rotate                   uint32
	ColorSpace               uint32
	_                        [4]uint32
}

// device is a memory mapped Linux framebuffer device.
type device struct {
	file *os.File
	buf  []byte
	info bootinfo.FramebufferInfo
}

func ioctl(f *os.File, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// openDevice maps the framebuffer device at path into memory.
func openDevice(path string) (*device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	var (
		vi varScreenInfo
		fi fixScreenInfo
	)
	if err := ioctl(f, fbioGetVScreenInfo, unsafe.Pointer(&vi)); err != nil {
		f.Close()
		return nil, fmt.Errorf("get variable screen info: %w", err)
	}
	if err := ioctl(f, fbioGetFScreenInfo, unsafe.Pointer(&fi)); err != nil {
		f.Close()
		return nil, fmt.Errorf("get fixed screen info: %w", err)
	}

	info, err := framebufferInfo(vi, fi)
	if err != nil {
		f.Close()
		return nil, err
	}

	buf, err := unix.Mmap(int(f.Fd()), 0, int(fi.LineLength*vi.YRes), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: %w", err)
	}

	return &device{file: f, buf: buf, info: info}, nil
}

// framebufferInfo translates the device description into the boot
// framebuffer descriptor.
func framebufferInfo(vi varScreenInfo, fi fixScreenInfo) (bootinfo.FramebufferInfo, error) {
	bpp := vi.BitsPerPixel / 8
	if bpp < 3 {
		return bootinfo.FramebufferInfo{}, fmt.Errorf("unsupported pixel depth: %d bits", vi.BitsPerPixel)
	}

	format := bootinfo.FormatUnknown
	switch {
	case vi.Red.Offset == 0 && vi.Blue.Offset == 16:
		format = bootinfo.FormatRGB
	case vi.Red.Offset == 16 && vi.Blue.Offset == 0:
		format = bootinfo.FormatBGR
	}

	return bootinfo.FramebufferInfo{
		Width:         vi.XRes,
		Height:        vi.YRes,
		Stride:        fi.LineLength / bpp,
		BytesPerPixel: bpp,
		Format:        format,
	}, nil
}

// Close unmaps the framebuffer and closes the device.
func (d *device) Close() error {
	return multierr.Combine(unix.Munmap(d.buf), d.file.Close())
}
