package cpu

import (
	"testing"
	"time"
)

func TestInterruptFlag(t *testing.T) {
	defer DisableInterrupts()

	if InterruptsEnabled() {
		t.Fatal("expected interrupts to be disabled at boot")
	}

	EnableInterrupts()
	if !InterruptsEnabled() {
		t.Fatal("expected interrupts to be enabled after EnableInterrupts")
	}

	DisableInterrupts()
	if InterruptsEnabled() {
		t.Fatal("expected interrupts to be disabled after DisableInterrupts")
	}
}

func TestHaltWake(t *testing.T) {
	done := make(chan struct{})
	go func() {
		Halt()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("expected Halt to block until Wake is called")
	case <-time.After(20 * time.Millisecond):
	}

	Wake()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Halt to return after Wake")
	}

	// A pending wake-up makes the next Halt return immediately and
	// repeated wake-ups do not accumulate.
	Wake()
	Wake()
	Halt()
	select {
	case <-wakeCh:
		t.Fatal("expected wake-ups not to accumulate")
	default:
	}
}
