// Package console prints kernel messages on the framebuffer as scrolling,
// color-coded text.
package console

import (
	"kdisplay/device/video/gfx"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/sync"
)

const (
	// indentUnit is the width in pixels of one indentation step.
	indentUnit = 8

	// bodyIndent aligns message bodies after a tag such as "[ INFO ] ".
	bodyIndent = 9
)

// Logger prints text on a Canvas. Text wraps at the right margin and the
// canvas scrolls up by one line once the cursor approaches the bottom
// margin. Logger is safe for concurrent use, including from interrupt
// handlers.
type Logger struct {
	lock   sync.Spinlock
	canvas Canvas

	lineHeight uint32
	margin     uint32

	// Cursor position in pixels.
	x, y uint32

	color      gfx.Color
	background gfx.Color

	// Continuation lines start indent*indentUnit pixels after the margin.
	indent uint32
}

// NewLogger returns a logger that prints on canvas using lines that are
// lineHeight pixels tall, keeping margin pixels free on every side.
func NewLogger(canvas Canvas, lineHeight, margin uint32) *Logger {
	return &Logger{
		canvas:     canvas,
		lineHeight: lineHeight,
		margin:     margin,
		x:          margin,
		y:          margin,
		color:      gfx.White,
		background: gfx.DesktopBackground,
	}
}

// locked runs fn with interrupts masked while holding the logger lock.
func (l *Logger) locked(fn func()) {
	irq.WithoutInterrupts(func() {
		l.lock.Acquire()
		defer l.lock.Release()
		fn()
	})
}

// SetColor selects the text color for subsequent output.
func (l *Logger) SetColor(c gfx.Color) {
	l.locked(func() { l.color = c })
}

// SetIndent sets the indentation of continuation lines in units of 8
// pixels.
func (l *Logger) SetIndent(indent uint32) {
	l.locked(func() { l.indent = indent })
}

// Cursor returns the pixel position where the next character is drawn.
func (l *Logger) Cursor() (uint32, uint32) {
	var x, y uint32
	l.locked(func() { x, y = l.x, l.y })
	return x, y
}

// Write implements io.Writer.
func (l *Logger) Write(p []byte) (int, error) {
	l.Print(string(p))
	return len(p), nil
}

// Print prints s with the current color.
func (l *Logger) Print(s string) {
	l.locked(func() { l.print(s) })
}

// Log prints a tagged message: tag in tagColor followed by msg in bodyColor.
// Lines of msg that wrap or follow a newline are aligned with the first
// character after the tag. An empty msg prints the tag only.
func (l *Logger) Log(tag string, tagColor, bodyColor gfx.Color, msg string) {
	l.locked(func() {
		l.color = tagColor
		if msg == "" {
			l.print(tag + "\n")
			return
		}

		l.print(tag + " ")
		l.color = bodyColor
		l.indent = bodyIndent
		l.print(msg)
		l.indent = 0
		l.print("\n")
	})
}

// OK prints a success message.
func (l *Logger) OK(msg string) {
	l.Log("[  OK  ]", gfx.Green, gfx.White, msg)
}

func (l *Logger) print(s string) {
	w, _ := l.canvas.Dimensions()

	for _, r := range s {
		if l.x+l.canvas.CharWidth(r) > w-l.margin {
			l.newLine()
		}

		if r == '\n' {
			l.newLine()
			continue
		}

		l.x += l.canvas.DrawChar(l.x, l.y, r, l.color)
	}
}

// newLine moves the cursor to the start of the next line and clears it.
func (l *Logger) newLine() {
	w, h := l.canvas.Dimensions()

	l.x = l.margin + l.indent*indentUnit
	l.canvas.DrawRect(l.x, l.y+l.lineHeight, w-2*l.margin, l.lineHeight, l.background)

	if l.y+3*l.lineHeight > h-l.margin {
		l.scrollUp()
		return
	}
	l.y += l.lineHeight
}

// scrollUp moves everything up by one line and clears the last line. The
// cursor keeps its row.
func (l *Logger) scrollUp() {
	w, h := l.canvas.Dimensions()

	l.canvas.ScrollUp(l.lineHeight)
	l.canvas.DrawRect(l.margin, h-l.margin-l.lineHeight, w-2*l.margin, l.lineHeight, l.background)
}
