package layer

import (
	"iter"
	"kdisplay/device/video/gfx"
	"kdisplay/kernel"
	"sort"
)

// ErrNotRegistered is returned when a layer is not registered with the
// controller it is removed from.
var ErrNotRegistered = &kernel.Error{Module: "layer", Message: "layer not registered with controller"}

// Controller keeps layers sorted by ascending z-index. Layers with the same
// z-index are kept in registration order so that the most recently
// registered one is drawn on top. A Controller performs no locking; the
// package-level functions serialize access to the global instance.
type Controller struct {
	layers []*Handle
}

// NewController returns an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// Len returns the number of registered layers.
func (c *Controller) Len() int {
	return len(c.layers)
}

// Register inserts h after every layer whose z-index is less than or equal
// to its own. Registering a layer twice is a no-op.
func (c *Controller) Register(h *Handle) *Handle {
	if _, ok := h.Slot(); ok {
		return h
	}

	z := h.ZIndex()
	pos := sort.Search(len(c.layers), func(i int) bool {
		return c.layers[i].ZIndex() > z
	})

	c.layers = append(c.layers, nil)
	copy(c.layers[pos+1:], c.layers[pos:])
	c.layers[pos] = h
	c.renumber(pos)

	return h
}

// Unregister removes h from the controller.
func (c *Controller) Unregister(h *Handle) (*Handle, *kernel.Error) {
	slot, ok := h.Slot()
	if !ok || slot >= len(c.layers) || c.layers[slot] != h {
		return nil, ErrNotRegistered
	}

	copy(c.layers[slot:], c.layers[slot+1:])
	c.layers[len(c.layers)-1] = nil
	c.layers = c.layers[:len(c.layers)-1]
	c.renumber(slot)

	h.slot.Store(unregistered)
	return h, nil
}

// SetZIndex changes the z-index of h. The layer is placed after all other
// layers with the same z-index.
func (c *Controller) SetZIndex(h *Handle, z uint32) *kernel.Error {
	if _, err := c.Unregister(h); err != nil {
		return err
	}

	h.z.Store(z)
	c.Register(h)
	return nil
}

// renumber updates the slots of all layers starting at index from.
func (c *Controller) renumber(from int) {
	for i := from; i < len(c.layers); i++ {
		c.layers[i].slot.Store(int64(i))
	}
}

// All yields the registered layers and their slots, bottom-most first.
func (c *Controller) All() iter.Seq2[int, *Handle] {
	return func(yield func(int, *Handle) bool) {
		for i, h := range c.layers {
			if !yield(i, h) {
				return
			}
		}
	}
}

// Layers yields the registered layers bottom-most first.
func (c *Controller) Layers() iter.Seq[gfx.Surface] {
	return func(yield func(gfx.Surface) bool) {
		for _, h := range c.layers {
			if !yield(h) {
				return
			}
		}
	}
}

// Backward yields the registered layers top-most first.
func (c *Controller) Backward() iter.Seq[gfx.Surface] {
	return func(yield func(gfx.Surface) bool) {
		for i := len(c.layers) - 1; i >= 0; i-- {
			if !yield(c.layers[i]) {
				return
			}
		}
	}
}

// RenderTo composites all layers onto p.
func (c *Controller) RenderTo(p *gfx.Painter) {
	p.RenderFull(c.Layers())
}

// RenderRegionTo recomposites a region of p.
func (c *Controller) RenderRegionTo(p *gfx.Painter, x, y, w, h uint32) {
	p.RenderPartial(c.Backward(), x, y, w, h)
}
