// Command fbview boots the display subsystem on the host, either into an
// in-memory framebuffer or onto a Linux framebuffer device, and optionally
// saves the result as a BMP image.
package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"kdisplay/device/input/mouse"
	"kdisplay/device/input/ps2"
	"kdisplay/device/video/gfx"
	"kdisplay/kernel/hal/bootinfo"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/klog"
	"kdisplay/kernel/kmain"
)

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	width := flag.Uint("width", 800, "width of the in-memory framebuffer")
	height := flag.Uint("height", 600, "height of the in-memory framebuffer")
	cmdLine := flag.String("cmdline", "desktop", "kernel command line")
	out := flag.String("out", "", "write a BMP snapshot of the screen to this file")
	fbDev := flag.String("fb", "", "framebuffer device to draw on instead of memory (e.g. /dev/fb0)")
	moves := flag.String("moves", "", "mouse movements to replay, as dx:dy pairs separated by commas")
	flag.Parse()

	var err error
	var l *zap.Logger
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer l.Sync() //nolint:errcheck
	klog.SetLogger(l)

	packets, err := parseMoves(*moves)
	if err != nil {
		l.Fatal("parse moves", zap.String("moves", *moves), zap.Error(err))
	}

	var (
		buf  []byte
		info bootinfo.FramebufferInfo
	)
	if *fbDev != "" {
		dev, err := openDevice(*fbDev)
		if err != nil {
			l.Fatal("open framebuffer device", zap.String("path", *fbDev), zap.Error(err))
		}
		defer dev.Close() //nolint:errcheck
		buf, info = dev.buf, dev.info
	} else {
		buf, info = memoryFramebuffer(uint32(*width), uint32(*height))
	}

	l.Info("booting",
		zap.Uint32("width", info.Width),
		zap.Uint32("height", info.Height),
		zap.Stringer("format", info.Format),
		zap.String("cmdline", *cmdLine),
	)
	kmain.Kmain(buf, info, *cmdLine)

	replay(packets)

	if *out != "" {
		if err := writeSnapshot(*out); err != nil {
			l.Fatal("write snapshot", zap.String("path", *out), zap.Error(err))
		}
		l.Info("snapshot written", zap.String("path", *out))
	}
}

// memoryFramebuffer allocates a 32-bit RGB framebuffer without row padding.
func memoryFramebuffer(w, h uint32) ([]byte, bootinfo.FramebufferInfo) {
	return make([]byte, int(w)*int(h)*4), bootinfo.FramebufferInfo{
		Width:         w,
		Height:        h,
		Stride:        w,
		BytesPerPixel: 4,
		Format:        bootinfo.FormatRGB,
	}
}

// replay feeds the packets to the mouse driver through the PS/2 controller.
func replay(packets []mouse.Packet) {
	if len(packets) == 0 || mouse.Active() == nil {
		return
	}

	ps2.Inject(irq.Mouse, mouse.AckByte)
	for _, p := range packets {
		b := p.Bytes()
		ps2.Inject(irq.Mouse, b[:]...)
	}
}

func writeSnapshot(path string) error {
	img := gfx.Snapshot()

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = bmp.Encode(f, img)
	return multierr.Append(err, f.Close())
}
