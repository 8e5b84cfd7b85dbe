package ps2

import (
	"io"
	"kdisplay/device"
	"kdisplay/kernel"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/klog"
	"kdisplay/kernel/sync"

	"go.uber.org/zap"
)

var scancodes = &sync.OnceCell[*Queue]{}

// AddScancode queues a keyboard scancode. It runs in interrupt context, so a
// scancode that does not fit is dropped with a warning instead of blocking.
func AddScancode(code byte) {
	q, ok := scancodes.Get()
	if !ok {
		klog.L().Warn("keyboard scancode queue uninitialized", zap.String("module", "ps2"))
		return
	}

	if err := q.Push(code); err != nil {
		klog.L().Warn("keyboard scancode queue full; dropping keyboard input",
			zap.String("module", "ps2"),
			zap.String("scancode", hexByte(code)),
		)
	}
}

// ReadScancode returns the oldest queued scancode, if any.
func ReadScancode() (byte, bool) {
	q, ok := scancodes.Get()
	if !ok {
		return 0, false
	}
	return q.Pop()
}

func hexByte(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{'0', 'x', digits[b>>4], digits[b&0xf]})
}

// keyboardDriver moves scancodes from the controller to the scancode queue.
type keyboardDriver struct{}

func (keyboardDriver) DriverName() string {
	return "ps2kbd"
}

func (keyboardDriver) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

func (keyboardDriver) DriverInit(w io.Writer) *kernel.Error {
	if err := scancodes.TryInit(&Queue{}); err != nil {
		return err
	}

	irq.HandleInterrupt(irq.Keyboard, handleKeyboardInterrupt)
	return nil
}

func handleKeyboardInterrupt() {
	for code, ok := ReadData(irq.Keyboard); ok; code, ok = ReadData(irq.Keyboard) {
		AddScancode(code)
	}
}

func probeForKeyboard() device.Driver {
	return keyboardDriver{}
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderLast,
		Probe: probeForKeyboard,
	})
}
