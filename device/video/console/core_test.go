package console

import (
	"errors"
	"io"
	"kdisplay/device/video/gfx"
	"kdisplay/kernel/hal/bootinfo"
	"kdisplay/kernel/klog"
	"kdisplay/kernel/sync"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCoreLevels(t *testing.T) {
	m := &mockCanvas{w: 800, h: 600}
	log := zap.New(NewCore(NewLogger(m, 20, 4), zapcore.DebugLevel))

	log.Debug("probing")
	log.Info("hello", zap.Int("n", 1))
	log.Warn("slow")
	log.Error("failed", zap.Error(errors.New("boom")))
	log.With(zap.String("module", "gfx")).DPanic("broken")

	assertLines(t, m,
		"[-TRACE] probing",
		`[ INFO ] hello {"n": 1}`,
		"[ WARN ] slow",
		`[ERROR!] failed {"error": "boom"}`,
		`[PANIC!] broken {"module": "gfx"}`,
	)

	tagColors := []gfx.Color{gfx.TraceLog, gfx.White, gfx.Yellow, gfx.Red, gfx.Red}
	bodyColors := []gfx.Color{gfx.TraceLog, gfx.White, gfx.BrightYellow, gfx.BrightRed, gfx.Red}
	for _, ch := range m.chars {
		line := (ch.y - 4) / 20
		exp := bodyColors[line]
		if ch.x < 4+9*8 {
			exp = tagColors[line]
		}

		if ch.c != exp {
			t.Fatalf("expected %q on line %d to be %+v; got %+v", ch.r, line, exp, ch.c)
		}
	}
}

func TestCoreLevelFilter(t *testing.T) {
	m := &mockCanvas{w: 800, h: 600}
	log := zap.New(NewCore(NewLogger(m, 20, 4), zapcore.WarnLevel))

	log.Info("hidden")
	log.Warn("shown")

	assertLines(t, m, "[ WARN ] shown")

	if err := log.Sync(); err != nil {
		t.Fatal(err)
	}
}

func TestConsoleDriver(t *testing.T) {
	defer func() {
		active = &sync.OnceCell[*Logger]{}
		teeFn = klog.Tee
		bootinfo.SetBootCmdLine("")
	}()
	active = &sync.OnceCell[*Logger]{}

	if !gfx.Initialized() {
		if probeForConsole() != nil {
			t.Fatal("expected the probe to fail without a screen")
		}

		geom := gfx.Geometry{Width: 200, Height: 100, Stride: 200, BytesPerPixel: 3, Format: gfx.PixelFormatRGB}
		if err := gfx.Init(make([]byte, geom.Size()), geom); err != nil {
			t.Fatal(err)
		}
	}

	var teed zapcore.Core
	teeFn = func(c zapcore.Core) { teed = c }

	bootinfo.SetBootCmdLine("consoleFont=gomono consoleLineHeight=18 consoleMargin=2 logLevel=debug")

	drv := probeForConsole()
	if drv == nil {
		t.Fatal("expected the console probe to succeed")
	}

	var out strings.Builder
	if err := drv.DriverInit(&out); err != nil {
		t.Fatal(err)
	}

	if exp := "font gomono, line height 18, margin 2, level debug\n"; out.String() != exp {
		t.Fatalf("expected driver output %q; got %q", exp, out.String())
	}

	if teed == nil || !teed.Enabled(zapcore.DebugLevel) {
		t.Fatal("expected a debug-enabled core to be attached to the kernel log")
	}

	l := Active()
	if l == nil {
		t.Fatal("expected an active console")
	}
	if x, y := l.Cursor(); x != 2 || y != 2 {
		t.Fatalf("expected the console cursor at (2, 2); got (%d, %d)", x, y)
	}

	l.OK("ready")
	if x, _ := l.Cursor(); x != 2 {
		t.Fatalf("expected the cursor to return to the margin; got %d", x)
	}

	if err := drv.DriverInit(io.Discard); err == nil {
		t.Fatal("expected a second init to fail")
	}
}

func TestConsoleDriverUnknownFont(t *testing.T) {
	defer func() {
		active = &sync.OnceCell[*Logger]{}
		teeFn = klog.Tee
		bootinfo.SetBootCmdLine("")
	}()
	active = &sync.OnceCell[*Logger]{}

	if !gfx.Initialized() {
		geom := gfx.Geometry{Width: 200, Height: 100, Stride: 200, BytesPerPixel: 3, Format: gfx.PixelFormatRGB}
		if err := gfx.Init(make([]byte, geom.Size()), geom); err != nil {
			t.Fatal(err)
		}
	}

	teeFn = func(zapcore.Core) {}
	bootinfo.SetBootCmdLine("consoleFont=comic logLevel=loud")

	var out strings.Builder
	if err := (consoleDriver{}).DriverInit(&out); err != nil {
		t.Fatal(err)
	}

	exp := "unknown font \"comic\"; using default\n" +
		"invalid log level; using info\n" +
		"font basic7x13, line height 20, margin 4, level info\n"
	if out.String() != exp {
		t.Fatalf("expected driver output %q; got %q", exp, out.String())
	}
}
