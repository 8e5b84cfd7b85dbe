// Package kmain contains the kernel boot sequence for the display subsystem.
package kmain

import (
	"kdisplay/device/video/console"
	"kdisplay/device/video/gfx"
	"kdisplay/device/video/gui"
	"kdisplay/device/video/layer"
	"kdisplay/kernel"
	"kdisplay/kernel/hal"
	"kdisplay/kernel/hal/bootinfo"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/kfmt"
	"kdisplay/kernel/klog"

	"go.uber.org/zap"

	// Drivers register themselves with the hal.
	_ "kdisplay/device/input/mouse"
	_ "kdisplay/device/input/ps2"
)

const (
	// WelcomeMessage is printed once the kernel is up.
	WelcomeMessage = "Welcome to kdisplay!"

	demoWindowZIndex = 1
	demoWindowWidth  = 300
	demoWindowHeight = 200
	demoWindowTitle  = "kdisplay"
)

var (
	errNoDisplay = &kernel.Error{Module: "kmain", Message: "no display driver could be initialized"}

	// detectHardwareFn and displayReadyFn are mocked by tests.
	detectHardwareFn = hal.DetectHardware
	displayReadyFn   = gfx.Initialized
)

// Kmain hands the boot framebuffer and command line to the hal, brings up
// the display drivers and, when the desktop option is set, composites the
// desktop. Without a working painter Kmain panics.
func Kmain(fb []byte, info bootinfo.FramebufferInfo, cmdLine string) {
	bootinfo.SetBootCmdLine(cmdLine)
	bootinfo.SetFramebuffer(fb, info)

	if err := detectHardwareFn(); err != nil {
		klog.L().Warn("some drivers failed to initialize", zap.Error(err))
	}

	if !displayReadyFn() {
		kfmt.Panic(errNoDisplay)
	}

	if cons := console.Active(); cons != nil {
		cons.OK("Kernel initialization done")
		cons.Print("\n")
		cons.OK(WelcomeMessage)
	}
	klog.L().Info(WelcomeMessage)

	if bootinfo.CmdLineBool("desktop", false) {
		startDesktop()
	}

	irq.Enable()
}

// startDesktop registers the wallpaper and a demo window and composites
// the whole screen.
func startDesktop() {
	if !layer.Initialized() {
		klog.L().Warn("layer compositor unavailable; desktop disabled")
		return
	}

	w, h := gfx.Dimensions()
	layer.Register(gui.NewWallpaper(w, h))

	ww, wh := min(demoWindowWidth, w), min(demoWindowHeight, h)
	win, err := gui.NewWindow(ww, wh, (w-ww)/2, (h-wh)/2, demoWindowZIndex, demoWindowTitle)
	if err != nil {
		klog.L().Warn("cannot create demo window",
			zap.String("module", err.Module),
			zap.String("reason", err.Message),
		)
	} else {
		layer.Register(win)
	}

	layer.Render()
}
