package evaluator

import (
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/value"
)

// Binding is a named value with the mutability fixed at its binding site.
type Binding struct {
	Value   value.Value
	Mutable bool
}

// Frame maps names to bindings for one block or call.
type Frame map[string]*Binding

// Stack is the per-thread environment. Lookup scans frames innermost-out.
type Stack struct {
	frames []Frame
}

func NewStack() *Stack {
	return &Stack{frames: []Frame{make(Frame)}}
}

func (s *Stack) Push() {
	s.frames = append(s.frames, make(Frame))
}

func (s *Stack) Pop() {
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth is the number of frames on the stack.
func (s *Stack) Depth() int {
	return len(s.frames)
}

func (s *Stack) top() Frame {
	return s.frames[len(s.frames)-1]
}

// Declare binds name in the top frame, replacing a binding of the same
// name in that frame.
func (s *Stack) Declare(name string, v value.Value, mutable bool) {
	s.top()[name] = &Binding{Value: v, Mutable: mutable}
}

func (s *Stack) resolve(name string) *Binding {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b
		}
	}
	return nil
}

// Assign updates the innermost binding of name in place.
func (s *Stack) Assign(name string, v value.Value) error {
	b := s.resolve(name)
	if b == nil {
		return fault.New(fault.StaticCheck, "undefined variable %s", name)
	}
	if !b.Mutable {
		return fault.New(fault.StaticCheck, "cannot assign to immutable variable %s", name)
	}
	b.Value = v
	return nil
}

func (s *Stack) Lookup(name string) (value.Value, error) {
	b := s.resolve(name)
	if b == nil {
		return value.Nil, fault.New(fault.StaticCheck, "undefined variable %s", name)
	}
	return b.Value, nil
}

// Fork deep-copies every frame and binding, then pushes a fresh top frame
// seeded with the current top frame's bindings. Refs are shared by id.
func (s *Stack) Fork() *Stack {
	frames := make([]Frame, len(s.frames), len(s.frames)+1)
	for i, f := range s.frames {
		frames[i] = f.clone()
	}
	frames = append(frames, s.top().clone())
	return &Stack{frames: frames}
}

func (f Frame) clone() Frame {
	out := make(Frame, len(f))
	for name, b := range f {
		copied := *b
		out[name] = &copied
	}
	return out
}
