package sync

import (
	"kdisplay/kernel"
	"kdisplay/kernel/kfmt"
	"sync/atomic"
)

var (
	// ErrAlreadyInitialized is returned when a OnceCell is initialized twice.
	ErrAlreadyInitialized = &kernel.Error{Module: "sync", Message: "cell already initialized"}

	// ErrNotInitialized is reported when a OnceCell is read before it was
	// initialized.
	ErrNotInitialized = &kernel.Error{Module: "sync", Message: "cell not initialized"}
)

const (
	cellEmpty uint32 = iota
	cellInitializing
	cellReady
)

// OnceCell holds a value that is set exactly once, typically during boot, and
// read many times afterwards. Reads never observe a partially published
// value. A zero OnceCell is empty and ready to use.
type OnceCell[T any] struct {
	state atomic.Uint32
	value T
}

// TryInit stores value in the cell. It returns ErrAlreadyInitialized if the
// cell has already been initialized (or an initialization is in progress).
func (c *OnceCell[T]) TryInit(value T) *kernel.Error {
	if !c.state.CompareAndSwap(cellEmpty, cellInitializing) {
		return ErrAlreadyInitialized
	}

	c.value = value
	c.state.Store(cellReady)
	return nil
}

// Init stores value in the cell. Initializing a cell twice is a programming
// error that aborts via kfmt.Panic.
func (c *OnceCell[T]) Init(value T) {
	if err := c.TryInit(value); err != nil {
		kfmt.Panic(err)
	}
}

// Get returns the stored value and true, or the zero value and false if the
// cell has not been initialized yet.
func (c *OnceCell[T]) Get() (T, bool) {
	if c.state.Load() != cellReady {
		var zero T
		return zero, false
	}

	return c.value, true
}

// MustGet returns the stored value. Reading an empty cell aborts via
// kfmt.Panic.
func (c *OnceCell[T]) MustGet() T {
	v, ok := c.Get()
	if !ok {
		kfmt.Panic(ErrNotInitialized)
	}

	return v
}

// IsInitialized returns true if the cell holds a value.
func (c *OnceCell[T]) IsInitialized() bool {
	return c.state.Load() == cellReady
}
