// Package cpu models the processor state the display subsystem depends on:
// the interrupt-enable flag and the ability to idle until the next interrupt.
package cpu

import "sync/atomic"

var (
	// interruptFlag mirrors the IF bit. The CPU comes out of the boot
	// loader with interrupts disabled.
	interruptFlag atomic.Bool

	// wakeCh is signalled whenever an interrupt is raised so that a halted
	// CPU resumes execution.
	wakeCh = make(chan struct{}, 1)
)

// EnableInterrupts enables interrupt handling.
func EnableInterrupts() {
	interruptFlag.Store(true)
}

// DisableInterrupts disables interrupt handling.
func DisableInterrupts() {
	interruptFlag.Store(false)
}

// InterruptsEnabled returns true if interrupt handling is enabled.
func InterruptsEnabled() bool {
	return interruptFlag.Load()
}

// Halt stops instruction execution until the next interrupt is raised.
func Halt() {
	<-wakeCh
}

// Wake resumes a halted CPU. If the CPU is not halted, the wake-up is
// remembered and the next call to Halt returns immediately.
func Wake() {
	select {
	case wakeCh <- struct{}{}:
	default:
	}
}
