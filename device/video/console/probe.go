package console

import (
	"fmt"
	"io"
	"kdisplay/device"
	"kdisplay/device/video/font"
	"kdisplay/device/video/gfx"
	"kdisplay/kernel"
	"kdisplay/kernel/hal/bootinfo"
	"kdisplay/kernel/klog"
	"kdisplay/kernel/sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLineHeight = 20
	defaultMargin     = 4
)

var (
	active = &sync.OnceCell[*Logger]{}

	// teeFn is mocked by tests.
	teeFn = klog.Tee
)

// Active returns the screen console or nil if it has not been initialized.
func Active() *Logger {
	l, _ := active.Get()
	return l
}

type consoleDriver struct{}

func (consoleDriver) DriverName() string {
	return "console"
}

func (consoleDriver) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit selects the console font, creates the screen logger and
// mirrors the kernel log onto it.
func (consoleDriver) DriverInit(w io.Writer) *kernel.Error {
	f := font.Default()
	if name, ok := bootinfo.GetBootCmdLine()["consoleFont"]; ok {
		if sel := font.FindByName(name); sel != nil {
			f = sel
		} else {
			fmt.Fprintf(w, "unknown font %q; using default\n", name)
		}
	}
	if f != nil {
		gfx.SetFont(f)
	}

	var (
		lineHeight = bootinfo.CmdLineUint("consoleLineHeight", defaultLineHeight)
		margin     = bootinfo.CmdLineUint("consoleMargin", defaultMargin)
		level      = zapcore.InfoLevel
	)

	if err := level.UnmarshalText([]byte(bootinfo.CmdLineString("logLevel", "info"))); err != nil {
		fmt.Fprintf(w, "invalid log level; using info\n")
		level = zapcore.InfoLevel
	}

	logger := NewLogger(gfx.Screen{}, lineHeight, margin)
	if err := active.TryInit(logger); err != nil {
		return err
	}

	teeFn(NewCore(logger, level))

	fontName := "none"
	if f != nil {
		fontName = f.Name
	}
	fmt.Fprintf(w, "font %s, line height %d, margin %d, level %s\n", fontName, lineHeight, margin, level)
	klog.L().Debug("console attached", zap.String("module", "console"))
	return nil
}

func probeForConsole() device.Driver {
	if !gfx.Initialized() {
		return nil
	}
	return consoleDriver{}
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderBeforeCompositor,
		Probe: probeForConsole,
	})
}
