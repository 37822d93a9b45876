package memory

import (
	"sync/atomic"
	"time"

	"github.com/funvibe/quandary/internal/value"
)

// cellLock is a bounded-wait, non-reentrant mutex. The semaphore channel
// queues blocked senders in arrival order, which keeps waiters fair.
type cellLock struct {
	sem    chan struct{}
	holder atomic.Int64 // 0 when unlocked
}

func newCellLock() *cellLock {
	return &cellLock{sem: make(chan struct{}, 1)}
}

func (l *cellLock) tryAcquire(holder int64, wait time.Duration) bool {
	if l.holder.Load() == holder {
		return false
	}
	select {
	case l.sem <- struct{}{}:
		l.holder.Store(holder)
		return true
	default:
	}
	if wait <= 0 {
		return false
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case l.sem <- struct{}{}:
		l.holder.Store(holder)
		return true
	case <-timer.C:
		return false
	}
}

func (l *cellLock) release(holder int64) bool {
	if !l.holder.CompareAndSwap(holder, 0) {
		return false
	}
	<-l.sem
	return true
}

// TryAcquire attempts to lock the cell for holder, waiting at most the
// heap's lock timeout. A holder that already owns the lock gets false.
func (h *Heap) TryAcquire(ref value.Value, holder int64) (bool, error) {
	c, err := h.Cell(ref)
	if err != nil {
		return false, err
	}
	return c.lock.tryAcquire(holder, h.lockTimeout), nil
}

// Release unlocks the cell. It reports false when holder does not own it.
func (h *Heap) Release(ref value.Value, holder int64) (bool, error) {
	c, err := h.Cell(ref)
	if err != nil {
		return false, err
	}
	return c.lock.release(holder), nil
}

// HeldBy reports whether holder currently owns the cell's lock.
func (h *Heap) HeldBy(ref value.Value, holder int64) bool {
	c, err := h.Cell(ref)
	if err != nil {
		return false
	}
	return c.lock.holder.Load() == holder
}
