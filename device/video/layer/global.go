package layer

import (
	"io"
	"kdisplay/device"
	"kdisplay/device/video/gfx"
	"kdisplay/kernel"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/sync"
)

var (
	// screenLayers is a pointer so tests can swap in a fresh cell.
	screenLayers   = &sync.OnceCell[*Controller]{}
	controllerLock sync.Spinlock
)

// Init creates the global controller. Calling Init more than once is a
// fatal error.
func Init() {
	screenLayers.Init(NewController())
}

// Initialized returns true once Init has been called.
func Initialized() bool {
	return screenLayers.IsInitialized()
}

// withController runs fn with interrupts masked while holding the controller
// lock. Rendering then takes the painter lock followed by each layer's lock.
func withController(fn func(c *Controller)) {
	c := screenLayers.MustGet()
	irq.WithoutInterrupts(func() {
		controllerLock.Acquire()
		defer controllerLock.Release()
		fn(c)
	})
}

// Register adds h to the global controller.
func Register(h *Handle) *Handle {
	withController(func(c *Controller) { c.Register(h) })
	return h
}

// Unregister removes h from the global controller.
func Unregister(h *Handle) (out *Handle, err *kernel.Error) {
	withController(func(c *Controller) { out, err = c.Unregister(h) })
	return out, err
}

// SetZIndex changes the z-index of a layer registered with the global
// controller.
func SetZIndex(h *Handle, z uint32) (err *kernel.Error) {
	withController(func(c *Controller) { err = c.SetZIndex(h, z) })
	return err
}

// Render composites every registered layer onto the screen.
func Render() {
	withController(func(c *Controller) { gfx.Render(c.Layers()) })
}

// RenderRegion recomposites a region of the screen.
func RenderRegion(x, y, w, h uint32) {
	withController(func(c *Controller) { gfx.RenderRegion(c.Backward(), x, y, w, h) })
}

type compositorDriver struct{}

func (compositorDriver) DriverName() string {
	return "compositor"
}

func (compositorDriver) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

func (compositorDriver) DriverInit(_ io.Writer) *kernel.Error {
	Init()
	return nil
}

// probeForCompositor enables layer compositing once a screen exists.
func probeForCompositor() device.Driver {
	if !gfx.Initialized() {
		return nil
	}
	return compositorDriver{}
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderCompositor,
		Probe: probeForCompositor,
	})
}
