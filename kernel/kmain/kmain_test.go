package kmain

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kdisplay/device/input/mouse"
	"kdisplay/device/input/ps2"
	"kdisplay/device/video/console"
	"kdisplay/device/video/gfx"
	"kdisplay/device/video/layer"
	"kdisplay/kernel"
	"kdisplay/kernel/hal"
	"kdisplay/kernel/hal/bootinfo"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/klog"
)

func TestKmainWithoutDisplay(t *testing.T) {
	defer func() {
		detectHardwareFn = hal.DetectHardware
		displayReadyFn = gfx.Initialized
		klog.SetLogger(nil)
	}()

	core, logs := observer.New(zapcore.ErrorLevel)
	klog.SetLogger(zap.New(core))

	detectHardwareFn = func() error { return nil }
	displayReadyFn = func() bool { return false }

	defer func() {
		err, ok := recover().(*kernel.Error)
		if !ok || err != errNoDisplay {
			t.Fatalf("expected Kmain to panic with errNoDisplay; got %v", err)
		}

		if got := logs.FilterMessage("unrecoverable error").Len(); got != 1 {
			t.Fatalf("expected the fatal error to be logged; got %d entries", got)
		}
	}()

	Kmain(nil, bootinfo.FramebufferInfo{}, "")
	t.Fatal("expected Kmain to panic")
}

func TestKmainDesktop(t *testing.T) {
	defer klog.SetLogger(nil)

	core, logs := observer.New(zapcore.InfoLevel)
	klog.SetLogger(zap.New(core))

	const (
		width  = 320
		height = 240
	)

	fb := make([]byte, width*height*4)
	Kmain(fb, bootinfo.FramebufferInfo{
		Width:         width,
		Height:        height,
		Stride:        width,
		BytesPerPixel: 4,
		Format:        bootinfo.FormatRGB,
	}, "desktop mouse=on")

	if !gfx.Initialized() || !layer.Initialized() {
		t.Fatal("expected the painter and the compositor to be initialized")
	}
	if console.Active() == nil {
		t.Fatal("expected the screen console to be initialized")
	}
	if mouse.Active() == nil {
		t.Fatal("expected the mouse driver to be initialized")
	}
	if got := logs.FilterMessage(WelcomeMessage).Len(); got != 1 {
		t.Fatalf("expected the welcome message to be logged once; got %d", got)
	}

	specs := []struct {
		x, y int
		exp  gfx.Color
	}{
		// wallpaper
		{0, 0, gfx.DesktopBackground},
		// window title bar and body
		{200, 21, gfx.WindowBorder},
		{10, 219, gfx.WindowBorder},
		{100, 150, gfx.DesktopBackground},
		// cursor tip in the middle of the screen
		{160, 120, gfx.White},
		{160, 122, gfx.White},
		{161, 122, gfx.MouseFill},
	}

	img := gfx.Snapshot()
	for specIndex, spec := range specs {
		if got := gfx.FromColor(img.At(spec.x, spec.y)); got != spec.exp {
			t.Errorf("[spec %d] expected pixel (%d, %d) to be %v; got %v", specIndex, spec.x, spec.y, spec.exp, got)
		}
	}

	// Interrupts are enabled once Kmain returns so injected input is
	// handled right away.
	move := mouse.Packet{DX: 10, DY: -5}.Bytes()
	ps2.Inject(irq.Mouse, mouse.AckByte)
	ps2.Inject(irq.Mouse, move[:]...)

	if st := mouse.Active().Status(); st.X != 170 || st.Y != 125 {
		t.Fatalf("expected cursor at (170, 125); got (%d, %d)", st.X, st.Y)
	}

	img = gfx.Snapshot()
	if got := gfx.FromColor(img.At(170, 125)); got != gfx.White {
		t.Errorf("expected cursor tip at (170, 125); got %v", got)
	}
	if got := gfx.FromColor(img.At(160, 120)); got != gfx.DesktopBackground {
		t.Errorf("expected the old cursor position to show the window body; got %v", got)
	}
}
