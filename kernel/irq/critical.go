package irq

import "kdisplay/kernel/cpu"

// WithoutInterrupts runs fn with interrupts disabled and restores the
// previous interrupt state afterwards, including when fn panics. Locks that
// interrupt handlers may also take must only be acquired inside fn; holding
// such a lock with interrupts enabled lets a handler re-enter it on the same
// core and spin forever.
//
// Calls may nest: only the outermost call re-enables interrupts.
func WithoutInterrupts(fn func()) {
	wasEnabled := cpu.InterruptsEnabled()
	cpu.DisableInterrupts()

	defer func() {
		if wasEnabled {
			Enable()
		}
	}()

	fn()
}
