// Package irq routes hardware interrupt lines to their handlers and provides
// the interrupt-masked critical sections that every framebuffer-touching
// operation runs in.
package irq

import (
	"kdisplay/kernel/cpu"
	"kdisplay/kernel/sync"
	"sync/atomic"
)

// Line identifies an interrupt line routed through the interrupt controller.
type Line uint8

// The interrupt lines used by the display subsystem and its consumers.
const (
	// Timer is raised by the programmable interval timer.
	Timer = Line(0)

	// Keyboard is raised when the PS/2 controller receives a keyboard byte.
	Keyboard = Line(1)

	// Mouse is raised when the PS/2 controller receives a mouse byte.
	Mouse = Line(12)

	numLines = 16
)

// Handler services an interrupt. Handlers always run with interrupts
// disabled and must not block.
type Handler func()

var (
	handlers [numLines]atomic.Pointer[Handler]

	// pending holds one bit per line raised while interrupts were masked.
	pending atomic.Uint32

	// dispatchLock ensures that at most one handler runs at any time, the
	// same guarantee a single core with interrupts masked inside handlers
	// provides.
	dispatchLock sync.Spinlock
)

// HandleInterrupt registers handler for the given line, replacing any
// previously registered handler. Passing a nil handler removes it.
func HandleInterrupt(line Line, handler Handler) {
	if line >= numLines {
		return
	}

	if handler == nil {
		handlers[line].Store(nil)
		return
	}
	handlers[line].Store(&handler)
}

// Raise signals an interrupt on line. If interrupts are enabled the
// registered handler runs before Raise returns; otherwise the interrupt stays
// pending until interrupts are enabled again.
func Raise(line Line) {
	if line >= numLines {
		return
	}

	pending.Or(1 << line)
	cpu.Wake()

	if cpu.InterruptsEnabled() {
		dispatchPending()
	}
}

// Pending returns true if an interrupt has been raised on line but not yet
// delivered.
func Pending(line Line) bool {
	return line < numLines && pending.Load()&(1<<line) != 0
}

// Enable enables interrupt handling and delivers any interrupts that were
// raised while interrupts were masked.
func Enable() {
	cpu.EnableInterrupts()
	dispatchPending()
}

// dispatchPending delivers pending interrupts in line order. If another
// dispatch is already in progress it will pick up the newly raised lines.
func dispatchPending() {
	for cpu.InterruptsEnabled() && pending.Load() != 0 {
		if !dispatchLock.TryToAcquire() {
			return
		}

		lines := pending.Swap(0)
		for line := Line(0); line < numLines; line++ {
			if lines&(1<<line) != 0 {
				runHandler(line)
			}
		}

		dispatchLock.Release()
	}
}

// runHandler invokes the handler for line with interrupts disabled, the way
// an interrupt gate enters its service routine.
func runHandler(line Line) {
	h := handlers[line].Load()
	if h == nil {
		return
	}

	cpu.DisableInterrupts()
	defer cpu.EnableInterrupts()

	(*h)()
}
