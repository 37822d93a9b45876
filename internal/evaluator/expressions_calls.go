package evaluator

import (
	"errors"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/value"
)

func (e *Evaluator) evalCallExpression(node *ast.CallExpression) (value.Value, error) {
	args := make([]value.Value, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		v, err := e.Eval(arg)
		if err != nil {
			return value.Nil, err
		}
		args = append(args, v)
	}

	tok := node.GetToken()
	e.calls = append(e.calls, fault.StackFrame{Name: node.Function.Value, Line: tok.Line, Column: tok.Column})
	defer func() { e.calls = e.calls[:len(e.calls)-1] }()

	v, err := e.Call(node.Function.Value, args)
	if err != nil {
		var f *fault.Fault
		if errors.As(err, &f) {
			f.WithStack(e.calls)
		}
	}
	return v, err
}

// Call invokes a built-in or user function with evaluated arguments.
// Built-ins take precedence over user functions of the same name.
func (e *Evaluator) Call(name string, args []value.Value) (value.Value, error) {
	if builtin, ok := builtins[name]; ok {
		if len(args) != builtin.Arity {
			return value.Nil, fault.New(fault.DynamicType, "%s expects %d argument(s), got %d", name, builtin.Arity, len(args))
		}
		return builtin.Fn(e, args)
	}

	fn, ok := e.rt.Functions.Lookup(name)
	if !ok {
		return value.Nil, fault.New(fault.StaticCheck, "undefined function %s", name)
	}
	return e.applyFunction(fn, args)
}

func (e *Evaluator) applyFunction(fn *ast.FunctionDecl, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Parameters) {
		return value.Nil, fault.New(fault.DynamicType, "%s expects %d argument(s), got %d",
			fn.Name.Value, len(fn.Parameters), len(args))
	}
	if err := e.checkCancelled(); err != nil {
		return value.Nil, err
	}

	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.rt.Settings.MaxDepth {
		return value.Nil, fault.New(fault.Host, "maximum recursion depth exceeded")
	}

	e.stack.Push()
	defer e.stack.Pop()
	for i, param := range fn.Parameters {
		e.stack.Declare(param.Name.Value, args[i], param.Mutable)
	}
	e.trace("call", "fn", fn.Name.Value, "depth", e.depth)

	// The body runs directly in the call frame.
	for _, stmt := range fn.Body.Statements {
		ret, err := e.Exec(stmt)
		if err != nil {
			return value.Nil, err
		}
		if ret != nil {
			return ret.Value, nil
		}
	}
	return value.Nil, fault.At(fault.DynamicType, fn.Token.Line, fn.Token.Column,
		"function %s ended without a return statement", fn.Name.Value)
}
