// Package gui draws desktop decorations such as window chrome and the
// wallpaper into layers.
package gui

import (
	"kdisplay/device/video/font"
	"kdisplay/device/video/gfx"
	"kdisplay/device/video/layer"
	"kdisplay/kernel"
)

const (
	// TitleBarHeight is the height of the window title bar in pixels.
	TitleBarHeight = 25

	// MinWindowWidth and MinWindowHeight are the smallest layer
	// dimensions that fit the window chrome.
	MinWindowWidth  = 56
	MinWindowHeight = 30

	iconY      = 7
	minimizeX  = 9
	closeInset = 20
	titleX     = 28
)

// ErrWindowTooSmall is returned when a layer cannot fit the window chrome.
var ErrWindowTooSmall = &kernel.Error{Module: "gui", Message: "layer is too small to draw a window"}

// DrawWindow decorates the entire layer as a window: a title bar with the
// minimize and close icons and the title, a one pixel border and a body
// cleared to the desktop background.
func DrawWindow(l *layer.Layer, title string) *kernel.Error {
	w, h := l.Width(), l.Height()
	if w < MinWindowWidth || h < MinWindowHeight {
		return ErrWindowTooSmall
	}

	l.DrawRect(0, 0, w, TitleBarHeight, gfx.WindowBorder)
	l.DrawRect(0, TitleBarHeight, 1, h-TitleBarHeight, gfx.WindowBorder)
	l.DrawRect(w-1, TitleBarHeight, 1, h-TitleBarHeight, gfx.WindowBorder)
	l.DrawRect(0, h-1, w, 1, gfx.WindowBorder)

	// Both icons are 11x11 so neither call can fail.
	_ = l.DrawBitmap(minimizeX, iconY, MinimizeIcon.Width, MinimizeIcon.Height, MinimizeIcon.Bitmap())
	_ = l.DrawBitmap(w-closeInset, iconY, CloseIcon.Width, CloseIcon.Height, CloseIcon.Bitmap())

	drawTitle(l, title, w-closeInset-titleX)

	l.DrawRect(1, TitleBarHeight, w-2, h-TitleBarHeight-1, gfx.DesktopBackground)
	return nil
}

// drawTitle draws as much of title as fits in maxWidth pixels.
func drawTitle(l *layer.Layer, title string, maxWidth uint32) {
	var (
		x = uint32(titleX)
		y = uint32(TitleBarHeight-font.GlyphHeight) / 2
	)
	for _, r := range title {
		cw := l.CharWidth(r)
		if x+cw > titleX+maxWidth {
			return
		}
		x += l.DrawChar(x, y, r, gfx.White)
	}
}

// NewWindow creates a w x h layer at (x, y) with z-index z and draws the
// window chrome into it. The layer is not registered.
func NewWindow(w, h, x, y, z uint32, title string) (*layer.Handle, *kernel.Error) {
	if w < MinWindowWidth || h < MinWindowHeight {
		return nil, ErrWindowTooSmall
	}

	hd := layer.New(w, h, x, y, z)
	var err *kernel.Error
	hd.Update(func(l *layer.Layer) {
		err = DrawWindow(l, title)
	})
	if err != nil {
		return nil, err
	}
	return hd, nil
}
