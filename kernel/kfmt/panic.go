// Package kfmt implements the kernel's fatal error path and helpers for
// formatting driver output.
package kfmt

import (
	"kdisplay/kernel"
	"kdisplay/kernel/klog"

	"go.uber.org/zap"
)

var (
	// abortFn is mocked by tests. It must not return in a running kernel.
	abortFn = func(err *kernel.Error) { panic(err) }

	errRuntimePanic = &kernel.Error{Module: "rt", Message: "unknown cause"}
)

// Panic outputs the supplied error (if not nil) to the kernel log and aborts
// the current control flow by panicking with a *kernel.Error. Calls to Panic
// never return; deferred cleanups (such as restoring the interrupt flag) still
// run while the panic unwinds.
func Panic(e interface{}) {
	var err *kernel.Error

	switch t := e.(type) {
	case *kernel.Error:
		err = t
	case string:
		err = &kernel.Error{Module: "rt", Message: t}
	case error:
		err = &kernel.Error{Module: "rt", Message: t.Error()}
	}

	log := klog.L()
	if err != nil {
		log.Error("unrecoverable error", zap.String("module", err.Module), zap.String("reason", err.Message))
	} else {
		err = errRuntimePanic
	}
	log.Error("*** kernel panic: system halted ***")
	_ = log.Sync()

	abortFn(err)
}
