package sync

import (
	"sync"
	"testing"
	"time"
)

func TestSpinlock(t *testing.T) {
	var (
		sl         Spinlock
		wg         sync.WaitGroup
		numWorkers = 10
		counter    int
	)

	sl.Acquire()

	if sl.TryToAcquire() != false {
		t.Error("expected TryToAcquire to return false when lock is held")
	}

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sl.Acquire()
				counter++
				sl.Release()
			}
		}(i)
	}

	<-time.After(50 * time.Millisecond)
	if counter != 0 {
		t.Errorf("expected workers to wait for the lock; counter is %d", counter)
	}
	sl.Release()
	wg.Wait()

	if exp := numWorkers * 100; counter != exp {
		t.Fatalf("expected counter to be %d; got %d", exp, counter)
	}

	if !sl.TryToAcquire() {
		t.Fatal("expected TryToAcquire to succeed on a free lock")
	}
	sl.Release()
}

func TestSpinlockYields(t *testing.T) {
	defer func(origYieldFn func()) { yieldFn = origYieldFn }(yieldFn)

	var (
		sl     Spinlock
		yields int
	)

	sl.Acquire()
	yieldFn = func() {
		if yields++; yields == 3 {
			sl.Release()
		}
	}

	sl.Acquire()
	if yields != 3 {
		t.Fatalf("expected Acquire to yield 3 times; got %d", yields)
	}
}
