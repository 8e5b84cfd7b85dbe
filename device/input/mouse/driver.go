package mouse

import (
	"fmt"
	"io"
	"kdisplay/device"
	"kdisplay/device/input/ps2"
	"kdisplay/device/video/gfx"
	"kdisplay/device/video/layer"
	"kdisplay/kernel"
	"kdisplay/kernel/hal/bootinfo"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/sync"
	"math"
)

var (
	// renderRegionFn is mocked by tests.
	renderRegionFn = layer.RenderRegion

	// screenDimensionsFn is mocked by tests.
	screenDimensionsFn = gfx.Dimensions

	// registerLayerFn is mocked by tests.
	registerLayerFn = layer.Register
)

// CursorZIndex keeps the cursor above every other layer.
const CursorZIndex = math.MaxUint32

// Driver tracks the mouse and moves its cursor layer.
type Driver struct {
	lock    sync.Spinlock
	decoder Decoder
	status  Status

	screenW, screenH uint32
	cursor           *layer.Handle
}

func (d *Driver) DriverName() string {
	return "ps2mouse"
}

func (d *Driver) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit places the cursor in the middle of the screen and starts
// listening for mouse interrupts.
func (d *Driver) DriverInit(w io.Writer) *kernel.Error {
	d.screenW, d.screenH = screenDimensionsFn()
	d.status = Status{X: int(d.screenW / 2), Y: int(d.screenH / 2)}

	d.cursor = layer.New(cursorWidth, cursorHeight, uint32(d.status.X), uint32(d.status.Y), CursorZIndex)

	var err *kernel.Error
	d.cursor.Update(func(l *layer.Layer) {
		err = l.DrawBitmap(0, 0, cursorWidth, cursorHeight, cursorBitmap())
	})
	if err != nil {
		return err
	}

	registerLayerFn(d.cursor)
	renderRegionFn(uint32(d.status.X), uint32(d.status.Y), cursorWidth, cursorHeight)

	irq.HandleInterrupt(irq.Mouse, d.handleInterrupt)

	fmt.Fprintf(w, "cursor at (%d, %d)\n", d.status.X, d.status.Y)
	return nil
}

// Status returns the current cursor position and button state.
func (d *Driver) Status() (st Status) {
	d.locked(func() { st = d.status })
	return st
}

// locked runs fn with interrupts masked while holding the driver lock.
func (d *Driver) locked(fn func()) {
	irq.WithoutInterrupts(func() {
		d.lock.Acquire()
		defer d.lock.Release()
		fn()
	})
}

// Cursor returns the cursor layer.
func (d *Driver) Cursor() *layer.Handle {
	return d.cursor
}

func (d *Driver) handleInterrupt() {
	for b, ok := ps2.ReadData(irq.Mouse); ok; b, ok = ps2.ReadData(irq.Mouse) {
		d.feed(b)
	}
}

// feed decodes b and redraws the cursor after each complete packet.
func (d *Driver) feed(b byte) {
	var (
		oldX, oldY, newX, newY int
		moved                  bool
	)
	d.locked(func() {
		p, ok := d.decoder.Feed(b)
		if !ok {
			return
		}

		oldX, oldY = d.status.X, d.status.Y
		d.status.Apply(p, d.screenW, d.screenH)
		newX, newY = d.status.X, d.status.Y
		moved = true
	})
	if !moved {
		return
	}

	d.cursor.SetPosition(uint32(newX), uint32(newY))
	renderRegionFn(uint32(oldX), uint32(oldY), cursorWidth, cursorHeight)
	renderRegionFn(uint32(newX), uint32(newY), cursorWidth, cursorHeight)
}

var active *Driver

// Active returns the initialized mouse driver or nil.
func Active() *Driver {
	return active
}

func probeForMouse() device.Driver {
	if !bootinfo.CmdLineBool("mouse", true) || !gfx.Initialized() || !layer.Initialized() {
		return nil
	}

	active = &Driver{}
	return active
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderLast,
		Probe: probeForMouse,
	})
}
