package memory

import (
	"fmt"
	"time"

	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/fault"
)

// Manager selects the memory management strategy.
type Manager int

const (
	NoGC Manager = iota
	MarkSweep
	Explicit
	RefCount
)

var managerNames = map[Manager]string{
	NoGC:      config.NoGCName,
	MarkSweep: config.MarkSweepName,
	Explicit:  config.ExplicitName,
	RefCount:  config.RefCountName,
}

func (m Manager) String() string {
	if name, ok := managerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Manager(%d)", int(m))
}

// ParseManager maps a -gc argument to a Manager.
func ParseManager(name string) (Manager, error) {
	for m, n := range managerNames {
		if n == name {
			return m, nil
		}
	}
	return NoGC, fmt.Errorf("unknown memory manager %q", name)
}

type Options struct {
	Manager     Manager
	HeapSize    int64
	LockTimeout time.Duration
}

// NewHeap creates the heap for the selected manager. Only NoGC exists;
// the other managers fail at run time.
func NewHeap(opts Options) (*Heap, error) {
	if opts.Manager != NoGC {
		return nil, fault.New(fault.Host, "%s not implemented", opts.Manager)
	}
	if opts.HeapSize <= 0 || opts.HeapSize%config.WordSize != 0 {
		return nil, fault.New(fault.Host, "heap size %d is not a positive multiple of %d", opts.HeapSize, config.WordSize)
	}
	return newHeap(opts.HeapSize, opts.LockTimeout), nil
}
