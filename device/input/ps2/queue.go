// Package ps2 buffers the bytes delivered by the PS/2 controller and hands
// keyboard scancodes to their consumers.
package ps2

import (
	"kdisplay/kernel"
	"kdisplay/kernel/irq"
	"kdisplay/kernel/sync"
)

// QueueSize is the capacity of a Queue. It must always be a power of 2.
const QueueSize = 64

// ErrQueueFull is returned when a byte is pushed to a full queue.
var ErrQueueFull = &kernel.Error{Module: "ps2", Message: "queue full"}

// Queue is a bounded FIFO of bytes. Unlike a ring buffer that overwrites the
// oldest entry, a full Queue rejects new bytes so that the bytes already
// queued keep their order. It is safe for concurrent use, including from
// interrupt handlers.
type Queue struct {
	lock           sync.Spinlock
	buffer         [QueueSize]byte
	rIndex, wIndex uint32
}

// locked runs fn with interrupts masked while holding the queue lock.
func (q *Queue) locked(fn func()) {
	irq.WithoutInterrupts(func() {
		q.lock.Acquire()
		defer q.lock.Release()
		fn()
	})
}

// Push appends b to the queue or returns ErrQueueFull.
func (q *Queue) Push(b byte) (err *kernel.Error) {
	q.locked(func() {
		if q.wIndex-q.rIndex == QueueSize {
			err = ErrQueueFull
			return
		}

		q.buffer[q.wIndex&(QueueSize-1)] = b
		q.wIndex++
	})
	return err
}

// Pop removes and returns the oldest byte. It returns false if the queue is
// empty.
func (q *Queue) Pop() (b byte, ok bool) {
	q.locked(func() {
		if q.rIndex == q.wIndex {
			return
		}

		b, ok = q.buffer[q.rIndex&(QueueSize-1)], true
		q.rIndex++
	})
	return b, ok
}

// Len returns the number of queued bytes.
func (q *Queue) Len() (n int) {
	q.locked(func() { n = int(q.wIndex - q.rIndex) })
	return n
}
