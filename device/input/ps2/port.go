package ps2

import (
	"kdisplay/kernel/irq"
	"kdisplay/kernel/klog"

	"go.uber.org/zap"
)

// dataPorts models the controller's output buffer for each device line.
// Reading from the data port consumes one byte.
var dataPorts = map[irq.Line]*Queue{
	irq.Keyboard: {},
	irq.Mouse:    {},
}

// Inject delivers bytes from the device on line to the controller and
// raises the device interrupt. Bytes that do not fit in the controller
// buffer are lost, just like on real hardware.
func Inject(line irq.Line, data ...byte) {
	port, ok := dataPorts[line]
	if !ok {
		return
	}

	for _, b := range data {
		if err := port.Push(b); err != nil {
			klog.L().Warn("controller buffer full; dropping byte",
				zap.String("module", "ps2"),
				zap.Uint8("line", uint8(line)),
				zap.Uint8("data", b),
			)
		}
	}

	irq.Raise(line)
}

// ReadData reads the next byte for line from the controller. It returns
// false once the buffer is drained.
func ReadData(line irq.Line) (byte, bool) {
	port, ok := dataPorts[line]
	if !ok {
		return 0, false
	}
	return port.Pop()
}
