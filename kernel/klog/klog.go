// Package klog holds the kernel-wide structured logger. Until a logger is
// installed with SetLogger all output is discarded, which keeps early boot
// code (that runs before any console exists) free of nil checks.
package klog

import (
	"bytes"
	"io"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// L returns the active kernel logger.
func L() *zap.Logger {
	return loggerPtr.Load()
}

// SetLogger installs l as the kernel logger. Passing nil restores the
// silent default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Tee extends the active logger so that every entry is also sent to core.
// It is used to mirror kernel diagnostics onto the framebuffer console once
// the console driver is up.
func Tee(core zapcore.Core) {
	cur := L()
	loggerPtr.Store(zap.New(zapcore.NewTee(cur.Core(), core), zap.AddCaller()))
}

// Writer returns an io.Writer that emits every complete line written to it
// as a separate log entry at the given level. Trailing partial lines are
// held back until the next newline arrives.
func Writer(level zapcore.Level) io.Writer {
	return &lineWriter{level: level}
}

type lineWriter struct {
	level zapcore.Level
	buf   bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// incomplete line; put it back for the next call
			w.buf.Reset()
			w.buf.Write(line)
			return len(p), nil
		}

		if ce := L().Check(w.level, string(bytes.TrimRight(line, "\n"))); ce != nil {
			ce.Write()
		}
	}
}
