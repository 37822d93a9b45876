// Package value defines the tagged value representation shared by the heap
// and the evaluator.
package value

import "strconv"

type Kind uint8

const (
	NilKind Kind = iota
	IntKind
	BoolKind
	RefKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "Nil"
	case IntKind:
		return "Int"
	case BoolKind:
		return "Bool"
	case RefKind:
		return "Ref"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a small comparable sum of Int, Bool, Nil and Ref. Only the field
// matching Kind is meaningful; the others stay zero so == is structural.
type Value struct {
	kind Kind
	i    int64
	b    bool
	ref  uint64
}

// Nil is the absence of a reference. The zero Value is Nil.
var Nil = Value{}

var (
	True  = Value{kind: BoolKind, b: true}
	False = Value{kind: BoolKind}
)

func Int(i int64) Value { return Value{kind: IntKind, i: i} }

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Ref wraps a heap cell id. Ids start at 1.
func Ref(id uint64) Value { return Value{kind: RefKind, ref: id} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == IntKind }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

func (v Value) AsRef() (uint64, bool) { return v.ref, v.kind == RefKind }

func (v Value) IsNil() bool { return v.kind == NilKind }

// IsAtom reports whether v is Nil or an Int.
func (v Value) IsAtom() bool { return v.kind == NilKind || v.kind == IntKind }

// Equal is structural equality: Refs compare by cell identity and values of
// different kinds are never equal.
func Equal(a, b Value) bool { return a == b }

// String renders non-Ref values. Refs need the heap to print their fields,
// so they render as an opaque handle here.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case BoolKind:
		return strconv.FormatBool(v.b)
	case RefKind:
		return "ref#" + strconv.FormatUint(v.ref, 10)
	}
	return "nil"
}
