package evaluator

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/value"
)

// ReturnValue is the sentinel a return statement propagates out of blocks
// and loops up to the enclosing call.
type ReturnValue struct {
	Value value.Value
}

// Exec runs a statement. A non-nil ReturnValue means a return is unwinding.
func (e *Evaluator) Exec(stmt ast.Statement) (*ReturnValue, error) {
	ret, err := e.execCore(stmt)
	if err != nil {
		return nil, withPosition(err, stmt.GetToken())
	}
	return ret, nil
}

func (e *Evaluator) execCore(stmt ast.Statement) (*ReturnValue, error) {
	switch stmt := stmt.(type) {
	case *ast.VarDeclaration:
		v, err := e.Eval(stmt.Value)
		if err != nil {
			return nil, err
		}
		e.stack.Declare(stmt.Name.Value, v, stmt.Mutable)
		return nil, nil
	case *ast.AssignStatement:
		v, err := e.Eval(stmt.Value)
		if err != nil {
			return nil, err
		}
		return nil, e.stack.Assign(stmt.Name.Value, v)
	case *ast.PrintStatement:
		v, err := e.Eval(stmt.Value)
		if err != nil {
			return nil, err
		}
		if err := e.rt.Printer.Println(e.rt.Heap.Format(v)); err != nil {
			return nil, fault.New(fault.Host, "print: %v", err)
		}
		return nil, nil
	case *ast.IfStatement:
		return e.execIfStatement(stmt)
	case *ast.WhileStatement:
		return e.execWhileStatement(stmt)
	case *ast.BlockStatement:
		return e.execBlockStatement(stmt)
	case *ast.ReturnStatement:
		v, err := e.Eval(stmt.ReturnValue)
		if err != nil {
			return nil, err
		}
		return &ReturnValue{Value: v}, nil
	case *ast.CallStatement:
		_, err := e.Eval(stmt.Call)
		return nil, err
	}
	return nil, fault.New(fault.Host, "unknown statement %T", stmt)
}

func (e *Evaluator) evalCondition(cond ast.Expression, construct string) (bool, error) {
	v, err := e.Eval(cond)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, fault.New(fault.DynamicType, "%s condition must be Bool, got %s", construct, v.Kind()).
			WithPosition(cond.GetToken().Line, cond.GetToken().Column)
	}
	return b, nil
}

// execIfStatement runs a branch. A branch that is not a block declares into
// the enclosing scope.
func (e *Evaluator) execIfStatement(stmt *ast.IfStatement) (*ReturnValue, error) {
	cond, err := e.evalCondition(stmt.Condition, "if")
	if err != nil {
		return nil, err
	}
	if cond {
		return e.Exec(stmt.Consequence)
	}
	if stmt.Alternative != nil {
		return e.Exec(stmt.Alternative)
	}
	return nil, nil
}

func (e *Evaluator) execWhileStatement(stmt *ast.WhileStatement) (*ReturnValue, error) {
	for {
		cond, err := e.evalCondition(stmt.Condition, "while")
		if err != nil {
			return nil, err
		}
		if !cond {
			return nil, nil
		}
		ret, err := e.Exec(stmt.Body)
		if err != nil || ret != nil {
			return ret, err
		}
		if err := e.checkCancelled(); err != nil {
			return nil, err
		}
	}
}

// execBlockStatement pushes a frame and pops it on every exit path.
func (e *Evaluator) execBlockStatement(block *ast.BlockStatement) (*ReturnValue, error) {
	e.stack.Push()
	defer e.stack.Pop()

	for _, stmt := range block.Statements {
		ret, err := e.Exec(stmt)
		if err != nil || ret != nil {
			return ret, err
		}
	}
	return nil, nil
}
