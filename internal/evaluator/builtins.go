package evaluator

import (
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/memory"
	"github.com/funvibe/quandary/internal/value"
)

// BuiltinFunction is the Go implementation of a built-in.
type BuiltinFunction func(e *Evaluator, args []value.Value) (value.Value, error)

type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
}

var builtins map[string]*Builtin

func init() {
	fns := map[string]BuiltinFunction{
		config.RandomIntFuncName: builtinRandomInt,
		config.LeftFuncName:      builtinGetter(memory.LeftField),
		config.RightFuncName:     builtinGetter(memory.RightField),
		config.SetLeftFuncName:   builtinSetter(memory.LeftField),
		config.SetRightFuncName:  builtinSetter(memory.RightField),
		config.IsAtomFuncName:    builtinIsAtom,
		config.IsNilFuncName:     builtinIsNil,
		config.AcquireFuncName:   builtinAcquire,
		config.ReleaseFuncName:   builtinRelease,
	}
	builtins = make(map[string]*Builtin, len(fns))
	for name, fn := range fns {
		builtins[name] = &Builtin{Name: name, Arity: config.BuiltinArity[name], Fn: fn}
	}
}

func boolToInt(b bool) value.Value {
	if b {
		return value.Int(1)
	}
	return value.Int(0)
}

func builtinRandomInt(e *Evaluator, args []value.Value) (value.Value, error) {
	n, ok := args[0].AsInt()
	if !ok {
		return value.Nil, fault.New(fault.DynamicType, "randomInt expects Int, got %s", args[0].Kind())
	}
	if n <= 0 {
		return value.Nil, fault.New(fault.DynamicType, "randomInt bound must be positive, got %d", n)
	}
	return value.Int(e.rt.Random.Int64N(n)), nil
}

func builtinGetter(field memory.Field) BuiltinFunction {
	return func(e *Evaluator, args []value.Value) (value.Value, error) {
		return e.rt.Heap.Get(args[0], field)
	}
}

// builtinSetter writes a field and returns 1. With race detection on, the
// write is recorded for the join check along with whether the writer held
// the cell's lock.
func builtinSetter(field memory.Field) BuiltinFunction {
	return func(e *Evaluator, args []value.Value) (value.Value, error) {
		ref := args[0]
		if err := e.rt.Heap.Set(ref, field, args[1]); err != nil {
			return value.Nil, err
		}
		if e.writes != nil {
			id, _ := ref.AsRef()
			e.writes.Record(id, field, e.rt.Heap.HeldBy(ref, e.holder))
		}
		return value.Int(1), nil
	}
}

func builtinIsAtom(e *Evaluator, args []value.Value) (value.Value, error) {
	return boolToInt(args[0].IsAtom()), nil
}

func builtinIsNil(e *Evaluator, args []value.Value) (value.Value, error) {
	return boolToInt(args[0].IsNil()), nil
}

func builtinAcquire(e *Evaluator, args []value.Value) (value.Value, error) {
	ok, err := e.rt.Heap.TryAcquire(args[0], e.holder)
	if err != nil {
		return value.Nil, err
	}
	e.trace("acq", "cell", args[0].String(), "acquired", ok)
	return boolToInt(ok), nil
}

func builtinRelease(e *Evaluator, args []value.Value) (value.Value, error) {
	ok, err := e.rt.Heap.Release(args[0], e.holder)
	if err != nil {
		return value.Nil, err
	}
	e.trace("rel", "cell", args[0].String(), "released", ok)
	return boolToInt(ok), nil
}
