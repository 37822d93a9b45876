// Package fault defines the fatal runtime error categories and their
// process exit codes.
package fault

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

type Kind int

const (
	// Host covers failures outside the language's own categories, such as
	// an unimplemented memory manager or exhausted recursion depth.
	Host Kind = iota
	Parse
	StaticCheck
	DynamicType
	NilRef
	OutOfMemory
	DataRace
	Nondeterminism
)

// Exit codes
const (
	ExitSuccess          = 0
	ExitParseError       = 1
	ExitStaticCheckError = 2
	ExitDynamicTypeError = 3
	ExitNilRefError      = 4
	ExitOutOfMemoryError = 5
	ExitDataRaceError    = 6
	ExitNondeterminism   = 7
	ExitHostError        = 1
)

var kindNames = map[Kind]string{
	Host:           "Host error",
	Parse:          "Parsing error",
	StaticCheck:    "Static checking error",
	DynamicType:    "Dynamic type error",
	NilRef:         "Nil reference error",
	OutOfMemory:    "Quandary heap out of memory",
	DataRace:       "Data race error",
	Nondeterminism: "Nondeterminism error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode maps a fault kind to the process exit status.
func ExitCode(k Kind) int {
	switch k {
	case Parse:
		return ExitParseError
	case StaticCheck:
		return ExitStaticCheckError
	case DynamicType:
		return ExitDynamicTypeError
	case NilRef:
		return ExitNilRefError
	case OutOfMemory:
		return ExitOutOfMemoryError
	case DataRace:
		return ExitDataRaceError
	case Nondeterminism:
		return ExitNondeterminism
	}
	return ExitHostError
}

// StackFrame is one user-level call on the way to a fault: the callee and
// the position of the call.
type StackFrame struct {
	Name   string
	Line   int
	Column int
}

// Fault is a fatal runtime condition.
type Fault struct {
	Kind    Kind
	Message string
	Line    int
	Column  int

	// Stack holds the calls active when the fault was raised, outermost first.
	Stack []StackFrame
}

func New(kind Kind, format string, args ...interface{}) *Fault {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Fault{Kind: kind, Message: msg}
}

// At creates a fault carrying a source position.
func At(kind Kind, line, column int, format string, args ...interface{}) *Fault {
	f := New(kind, format, args...)
	f.Line, f.Column = line, column
	return f
}

func (f *Fault) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", f.Kind, f.Line, f.Column, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// WithPosition fills in the position if the fault does not have one yet.
func (f *Fault) WithPosition(line, column int) *Fault {
	if f.Line == 0 {
		f.Line, f.Column = line, column
	}
	return f
}

// WithStack records the call chain unless one is already attached. The
// frames are copied.
func (f *Fault) WithStack(frames []StackFrame) *Fault {
	if f.Stack == nil && len(frames) > 0 {
		f.Stack = append([]StackFrame(nil), frames...)
	}
	return f
}

// StackTrace renders the call chain innermost first, one "at" line per
// frame. It is empty when no chain is attached.
func (f *Fault) StackTrace() string {
	if len(f.Stack) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Stack trace:\n")
	for i := len(f.Stack) - 1; i >= 0; i-- {
		frame := f.Stack[i]
		fmt.Fprintf(&b, "  at %s (%d:%d)\n", frame.Name, frame.Line, frame.Column)
	}
	return b.String()
}

// KindOf returns the category of err. Errors that are not faults are Host.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Host
}

// Report prints err on its own line and returns the exit code to use.
// The call chain of a fault, if any, goes to trace; trace may be nil.
func Report(w, trace io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(w, err.Error())
	var f *Fault
	if trace != nil && errors.As(err, &f) {
		io.WriteString(trace, f.StackTrace())
	}
	return ExitCode(KindOf(err))
}
