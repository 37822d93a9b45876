package quandary

import (
	"fmt"
	"reflect"

	"github.com/funvibe/quandary/internal/memory"
	"github.com/funvibe/quandary/internal/value"
)

// Pair is the Go form of a heap cell.
type Pair struct {
	Left  interface{}
	Right interface{}
}

// Marshaller handles conversion between Go and Quandary values. Go values
// that need cells are allocated on its heap.
type Marshaller struct {
	heap *memory.Heap
}

func NewMarshaller(heap *memory.Heap) *Marshaller {
	return &Marshaller{heap: heap}
}

// ToValue converts a Go value to a Quandary value. Integers become Int,
// bools become Bool, nil becomes nil, *Pair and Pair become cells and
// slices become nil-terminated lists of cells.
func (m *Marshaller) ToValue(val interface{}) (value.Value, error) {
	if val == nil {
		return value.Nil, nil
	}
	if v, ok := val.(value.Value); ok {
		return v, nil
	}

	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return value.Nil, nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Int(int64(v.Uint())), nil
	case reflect.Bool:
		return value.Bool(v.Bool()), nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Ptr:
		if v.IsNil() {
			return value.Nil, nil
		}
		if p, ok := val.(*Pair); ok {
			return m.pairToCell(*p)
		}
	case reflect.Struct:
		if p, ok := val.(Pair); ok {
			return m.pairToCell(p)
		}
	}
	return value.Nil, fmt.Errorf("cannot convert %T to a Quandary value", val)
}

func (m *Marshaller) pairToCell(p Pair) (value.Value, error) {
	left, err := m.ToValue(p.Left)
	if err != nil {
		return value.Nil, err
	}
	right, err := m.ToValue(p.Right)
	if err != nil {
		return value.Nil, err
	}
	return m.heap.Allocate(left, right)
}

// sliceToList builds the list back to front so each cell points at the
// rest of the list.
func (m *Marshaller) sliceToList(v reflect.Value) (value.Value, error) {
	list := value.Nil
	for i := v.Len() - 1; i >= 0; i-- {
		item, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return value.Nil, err
		}
		if list, err = m.heap.Allocate(item, list); err != nil {
			return value.Nil, err
		}
	}
	return list, nil
}

// FromValue converts a Quandary value to a Go value: int64, bool, nil or
// *Pair. Shared and cyclic cells map to shared and cyclic *Pair values.
func (m *Marshaller) FromValue(v value.Value) (interface{}, error) {
	return m.fromValue(v, make(map[uint64]*Pair))
}

func (m *Marshaller) fromValue(v value.Value, seen map[uint64]*Pair) (interface{}, error) {
	switch v.Kind() {
	case value.IntKind:
		return v.AsInt(), nil
	case value.BoolKind:
		return v.AsBool(), nil
	case value.NilKind:
		return nil, nil
	}

	if p, ok := seen[v.AsRef()]; ok {
		return p, nil
	}
	p := &Pair{}
	seen[v.AsRef()] = p

	left, err := m.heap.Left(v)
	if err != nil {
		return nil, err
	}
	right, err := m.heap.Right(v)
	if err != nil {
		return nil, err
	}
	if p.Left, err = m.fromValue(left, seen); err != nil {
		return nil, err
	}
	if p.Right, err = m.fromValue(right, seen); err != nil {
		return nil, err
	}
	return p, nil
}
