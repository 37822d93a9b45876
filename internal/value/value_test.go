package value

import "testing"

func TestEquality(t *testing.T) {
	values := []Value{Nil, Int(0), Int(1), Int(-1), True, False, Ref(1), Ref(2)}

	for i, a := range values {
		if !Equal(a, a) {
			t.Errorf("Equal(%s, %s) = false, want reflexive", a, a)
		}
		for j, b := range values {
			if Equal(a, b) != Equal(b, a) {
				t.Errorf("Equal not symmetric for %s, %s", a, b)
			}
			if i != j && Equal(a, b) {
				t.Errorf("Equal(%s, %s) = true, want false", a, b)
			}
		}
	}

	if !Equal(Int(7), Int(7)) || !Equal(Ref(3), Ref(3)) || !Equal(Bool(true), True) {
		t.Errorf("equal values compare unequal")
	}
	// Nil never equals Int 0 or false.
	if Equal(Nil, Int(0)) || Equal(Nil, False) {
		t.Errorf("Nil equals a non-Nil value")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		v      Value
		isNil  bool
		isAtom bool
	}{
		{Nil, true, true},
		{Int(5), false, true},
		{True, false, false},
		{Ref(1), false, false},
	}
	for _, tt := range tests {
		if tt.v.IsNil() != tt.isNil {
			t.Errorf("%s.IsNil() = %v", tt.v, tt.v.IsNil())
		}
		if tt.v.IsAtom() != tt.isAtom {
			t.Errorf("%s.IsAtom() = %v", tt.v, tt.v.IsAtom())
		}
	}
}

func TestAccessors(t *testing.T) {
	if n, ok := Int(42).AsInt(); !ok || n != 42 {
		t.Errorf("AsInt() = %d, %v", n, ok)
	}
	if _, ok := True.AsInt(); ok {
		t.Errorf("Bool.AsInt() succeeded")
	}
	if b, ok := Bool(false).AsBool(); !ok || b {
		t.Errorf("AsBool() = %v, %v", b, ok)
	}
	if id, ok := Ref(9).AsRef(); !ok || id != 9 {
		t.Errorf("AsRef() = %d, %v", id, ok)
	}
	if _, ok := Nil.AsRef(); ok {
		t.Errorf("Nil.AsRef() succeeded")
	}
}

func TestString(t *testing.T) {
	tests := map[Value]string{
		Nil:      "nil",
		Int(-12): "-12",
		True:     "true",
		False:    "false",
		Ref(4):   "ref#4",
	}
	for v, want := range tests {
		if got := v.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
