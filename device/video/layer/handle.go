package layer

import (
	"kdisplay/device/video/font"
	"kdisplay/device/video/gfx"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/sync"
	"sync/atomic"
)

const unregistered = -1

// Handle shares a Layer between the code that draws into it and the
// controller that composites it. The z-index and slot are owned by the
// controller; everything else is accessed through Update and View.
type Handle struct {
	lock  sync.Spinlock
	layer Layer

	z    atomic.Uint32
	slot atomic.Int64
}

// New creates a fully transparent w x h layer at screen position (x, y)
// with z-index z. The layer is drawn only after it is registered with a
// controller.
func New(w, h, x, y, z uint32) *Handle {
	hd := &Handle{
		layer: Layer{
			pixels: make([]gfx.Color, int(w)*int(h)),
			width:  w,
			height: h,
			x:      x,
			y:      y,
		},
	}

	if f := font.Default(); f != nil {
		hd.layer.font = f
	}

	hd.z.Store(z)
	hd.slot.Store(unregistered)
	return hd
}

// Update runs fn with exclusive access to the layer. Interrupts are masked
// while fn runs; fn must not render since rendering locks the layer again.
func (h *Handle) Update(fn func(l *Layer)) {
	irq.WithoutInterrupts(func() {
		h.lock.Acquire()
		defer h.lock.Release()
		fn(&h.layer)
	})
}

// View implements gfx.Surface.
func (h *Handle) View(fn func(gfx.SurfaceImage)) {
	irq.WithoutInterrupts(func() {
		h.lock.Acquire()
		defer h.lock.Release()

		l := &h.layer
		fn(gfx.SurfaceImage{
			X:      l.x,
			Y:      l.y,
			Width:  l.width,
			Height: l.height,
			Hidden: l.hidden,
			Pixels: l.pixels,
		})
	})
}

// SetPosition moves the layer.
func (h *Handle) SetPosition(x, y uint32) {
	h.Update(func(l *Layer) { l.SetPosition(x, y) })
}

// SetHidden hides or shows the layer.
func (h *Handle) SetHidden(hidden bool) {
	h.Update(func(l *Layer) { l.SetHidden(hidden) })
}

// Bounds returns the screen rectangle covered by the layer.
func (h *Handle) Bounds() (x, y, w, hgt uint32) {
	h.Update(func(l *Layer) {
		x, y, w, hgt = l.x, l.y, l.width, l.height
	})
	return x, y, w, hgt
}

// ZIndex returns the layer's z-index.
func (h *Handle) ZIndex() uint32 {
	return h.z.Load()
}

// Slot returns the layer's position in its controller and true, or false
// if the layer is not registered.
func (h *Handle) Slot() (int, bool) {
	s := h.slot.Load()
	return int(s), s != unregistered
}
