// Package memory implements the Quandary heap: an arena of pair cells
// addressed by id, each carrying an advisory lock.
package memory

import (
	"sync"
	"time"

	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/value"
)

// CellBytes is the accounted size of one cell: two 8-byte words.
const CellBytes int64 = 16

// Field selects one half of a cell.
type Field uint8

const (
	LeftField Field = iota
	RightField
)

func (f Field) String() string {
	if f == LeftField {
		return "left"
	}
	return "right"
}

// Cell is a heap pair. Fields are guarded by mu so concurrent access is
// memory safe in Go; the Quandary-level lock is separate and advisory.
type Cell struct {
	id    uint64
	mu    sync.Mutex
	left  value.Value
	right value.Value
	lock  *cellLock
}

func (c *Cell) get(f Field) value.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f == LeftField {
		return c.left
	}
	return c.right
}

func (c *Cell) set(f Field, v value.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f == LeftField {
		c.left = v
	} else {
		c.right = v
	}
}

// Stats describes heap usage.
type Stats struct {
	Cells      int
	BytesInUse int64
}

// Heap owns every cell of a run. Ids start at 1 and are never reused.
type Heap struct {
	mu          sync.RWMutex
	cells       []*Cell // cells[id-1]
	capacity    int64
	lockTimeout time.Duration
}

func newHeap(capacity int64, lockTimeout time.Duration) *Heap {
	return &Heap{capacity: capacity, lockTimeout: lockTimeout}
}

// Allocate stores a new pair and returns a Ref to it.
func (h *Heap) Allocate(left, right value.Value) (value.Value, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if int64(len(h.cells)+1)*CellBytes > h.capacity {
		return value.Nil, fault.New(fault.OutOfMemory,
			"cannot allocate cell: %d of %d bytes in use", int64(len(h.cells))*CellBytes, h.capacity)
	}
	c := &Cell{
		id:    uint64(len(h.cells) + 1),
		left:  left,
		right: right,
		lock:  newCellLock(),
	}
	h.cells = append(h.cells, c)
	return value.Ref(c.id), nil
}

// Cell resolves a Ref. Nil is a nil-reference fault and any other
// non-Ref value is a dynamic type fault.
func (h *Heap) Cell(ref value.Value) (*Cell, error) {
	id, ok := ref.AsRef()
	if !ok {
		if ref.IsNil() {
			return nil, fault.New(fault.NilRef, "dereference of nil")
		}
		return nil, fault.New(fault.DynamicType, "expected Ref, got %s", ref.Kind())
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if id == 0 || id > uint64(len(h.cells)) {
		return nil, fault.New(fault.Host, "dangling reference to cell %d", id)
	}
	return h.cells[id-1], nil
}

func (h *Heap) Get(ref value.Value, f Field) (value.Value, error) {
	c, err := h.Cell(ref)
	if err != nil {
		return value.Nil, err
	}
	return c.get(f), nil
}

func (h *Heap) Set(ref value.Value, f Field, v value.Value) error {
	c, err := h.Cell(ref)
	if err != nil {
		return err
	}
	c.set(f, v)
	return nil
}

func (h *Heap) Left(ref value.Value) (value.Value, error)  { return h.Get(ref, LeftField) }
func (h *Heap) Right(ref value.Value) (value.Value, error) { return h.Get(ref, RightField) }

func (h *Heap) SetLeft(ref, v value.Value) error  { return h.Set(ref, LeftField, v) }
func (h *Heap) SetRight(ref, v value.Value) error { return h.Set(ref, RightField, v) }

// Stats reports the number of cells allocated so far.
func (h *Heap) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{Cells: len(h.cells), BytesInUse: int64(len(h.cells)) * CellBytes}
}
