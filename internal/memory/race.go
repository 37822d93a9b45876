package memory

import (
	"fmt"
	"sort"
	"strings"
)

// FieldKey identifies one field of one cell.
type FieldKey struct {
	Cell  uint64
	Field Field
}

func (k FieldKey) String() string {
	return fmt.Sprintf("cell %d %s", k.Cell, k.Field)
}

// WriteSet records the fields a worker wrote, each with whether every
// write to it happened under the cell's lock. It is owned by a single
// worker and needs no synchronization.
type WriteSet map[FieldKey]bool

func NewWriteSet() WriteSet {
	return make(WriteSet)
}

// Record notes a write. One unlocked write marks the field unlocked for
// good.
func (w WriteSet) Record(cell uint64, f Field, locked bool) {
	k := FieldKey{Cell: cell, Field: f}
	if prev, ok := w[k]; ok {
		locked = locked && prev
	}
	w[k] = locked
}

// Merge folds a finished child's writes into w.
func (w WriteSet) Merge(other WriteSet) {
	for k, locked := range other {
		w.Record(k.Cell, k.Field, locked)
	}
}

// Conflicts returns the fields written by both sets where at least one
// side wrote without the lock, ordered by cell.
func (w WriteSet) Conflicts(other WriteSet) []FieldKey {
	small, large := w, other
	if len(small) > len(large) {
		small, large = large, small
	}
	var out []FieldKey
	for k, lockedA := range small {
		lockedB, ok := large[k]
		if ok && !(lockedA && lockedB) {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell != out[j].Cell {
			return out[i].Cell < out[j].Cell
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// DescribeConflicts joins conflicting fields for a fault message.
func DescribeConflicts(keys []FieldKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}
