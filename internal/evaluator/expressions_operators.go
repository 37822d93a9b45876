package evaluator

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/value"
)

func evalPrefix(operator string, right value.Value) (value.Value, error) {
	switch operator {
	case "-":
		n, ok := right.AsInt()
		if !ok {
			return value.Nil, fault.New(fault.DynamicType, "operator - expects Int, got %s", right.Kind())
		}
		return value.Int(-n), nil
	case "!":
		b, ok := right.AsBool()
		if !ok {
			return value.Nil, fault.New(fault.DynamicType, "operator ! expects Bool, got %s", right.Kind())
		}
		return value.Bool(!b), nil
	}
	return value.Nil, fault.New(fault.Host, "unknown prefix operator %s", operator)
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression) (value.Value, error) {
	if e.rt.Settings.ShortCircuit() && (node.Operator == "&&" || node.Operator == "||") {
		return e.evalShortCircuit(node)
	}

	left, err := e.Eval(node.Left)
	if err != nil {
		return value.Nil, err
	}
	right, err := e.Eval(node.Right)
	if err != nil {
		return value.Nil, err
	}
	return e.applyInfix(node.Operator, left, right)
}

// evalShortCircuit skips the right operand of && and || when the left one
// decides the result.
func (e *Evaluator) evalShortCircuit(node *ast.InfixExpression) (value.Value, error) {
	left, err := e.Eval(node.Left)
	if err != nil {
		return value.Nil, err
	}
	l, ok := left.AsBool()
	if !ok {
		return value.Nil, fault.New(fault.DynamicType, "operator %s expects Bool operands, got %s", node.Operator, left.Kind())
	}
	if (node.Operator == "&&" && !l) || (node.Operator == "||" && l) {
		return value.Bool(l), nil
	}

	right, err := e.Eval(node.Right)
	if err != nil {
		return value.Nil, err
	}
	r, ok := right.AsBool()
	if !ok {
		return value.Nil, fault.New(fault.DynamicType, "operator %s expects Bool operands, got %s", node.Operator, right.Kind())
	}
	return value.Bool(r), nil
}

// applyInfix combines two evaluated operands. It is shared by the sequential
// and the concurrent forms.
func (e *Evaluator) applyInfix(operator string, left, right value.Value) (value.Value, error) {
	switch operator {
	case ".":
		return e.rt.Heap.Allocate(left, right)
	case "==":
		return value.Bool(value.Equal(left, right)), nil
	case "!=":
		return value.Bool(!value.Equal(left, right)), nil
	case "&&", "||":
		l, lok := left.AsBool()
		r, rok := right.AsBool()
		if !lok || !rok {
			return value.Nil, fault.New(fault.DynamicType, "operator %s expects Bool operands, got %s and %s",
				operator, left.Kind(), right.Kind())
		}
		if operator == "&&" {
			return value.Bool(l && r), nil
		}
		return value.Bool(l || r), nil
	}

	l, lok := left.AsInt()
	r, rok := right.AsInt()
	if !lok || !rok {
		return value.Nil, fault.New(fault.DynamicType, "operator %s expects Int operands, got %s and %s",
			operator, left.Kind(), right.Kind())
	}
	switch operator {
	case "+":
		return value.Int(l + r), nil
	case "-":
		return value.Int(l - r), nil
	case "*":
		return value.Int(l * r), nil
	case "<":
		return value.Bool(l < r), nil
	case "<=":
		return value.Bool(l <= r), nil
	case ">":
		return value.Bool(l > r), nil
	case ">=":
		return value.Bool(l >= r), nil
	}
	return value.Nil, fault.New(fault.Host, "unknown operator %s", operator)
}

func (e *Evaluator) evalCastExpression(node *ast.CastExpression) (value.Value, error) {
	v, err := e.Eval(node.Right)
	if err != nil {
		return value.Nil, err
	}

	ok := false
	switch node.Target.Name {
	case config.IntTypeName:
		ok = v.Kind() == value.IntKind
	case config.BoolTypeName:
		ok = v.Kind() == value.BoolKind
	case config.RefTypeName:
		ok = v.Kind() == value.RefKind || v.IsNil()
	case config.AnyTypeName:
		ok = true
	}
	if !ok {
		return value.Nil, fault.New(fault.DynamicType, "cannot cast %s to %s", v.Kind(), node.Target.Name)
	}
	return v, nil
}
