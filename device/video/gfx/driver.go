package gfx

import (
	"fmt"
	"io"
	"kdisplay/device"
	"kdisplay/kernel"
	"kdisplay/kernel/hal/bootinfo"
	"kdisplay/kernel/klog"

	"go.uber.org/zap"
)

// lfbDriver exposes the boot framebuffer as a device driver so the hal can
// bring up the global painter before any other display driver.
type lfbDriver struct {
	fb   []byte
	geom Geometry
}

func (d *lfbDriver) DriverName() string {
	return "lfb"
}

func (d *lfbDriver) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes the global painter and clears the screen.
func (d *lfbDriver) DriverInit(w io.Writer) *kernel.Error {
	if err := Init(d.fb, d.geom); err != nil {
		return err
	}

	DrawRect(0, 0, d.geom.Width, d.geom.Height, DesktopBackground)

	fmt.Fprintf(w, "%dx%d %s, stride %d, %d bytes per pixel\n",
		d.geom.Width, d.geom.Height, d.geom.Format, d.geom.Stride, d.geom.BytesPerPixel,
	)
	return nil
}

// probeForLFB claims the boot framebuffer.
func probeForLFB() device.Driver {
	buf, info := bootinfo.TakeFramebuffer()
	if buf == nil {
		klog.L().Debug("no boot framebuffer available", zap.String("module", "gfx"))
		return nil
	}

	return &lfbDriver{fb: buf, geom: GeometryFromBootInfo(*info)}
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderEarly,
		Probe: probeForLFB,
	})
}
