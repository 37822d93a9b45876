package evaluator

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/memory"
	"github.com/funvibe/quandary/internal/value"
)

// evalConcurrentExpression evaluates both operands on their own goroutines,
// each with a forked environment, then combines the results like the
// sequential operator. The heap is the only state the workers share.
func (e *Evaluator) evalConcurrentExpression(node *ast.ConcurrentExpression) (value.Value, error) {
	operands := [2]ast.Expression{node.Left, node.Right}
	stacks := [2]*Stack{e.stack.Fork(), e.stack.Fork()}

	var (
		workers [2]*Evaluator
		results [2]value.Value
		errs    [2]error
		g       errgroup.Group
	)
	e.trace("fork", "op", node.Operator, "line", node.Token.Line)

	for i := range operands {
		g.Go(func() error {
			w := e.spawn(stacks[i])
			workers[i] = w
			results[i], errs[i] = w.evalWorker(operands[i])
			return errs[i]
		})
	}

	// The left worker's fault wins regardless of which finished first.
	if err := g.Wait(); err != nil {
		if errs[0] != nil {
			return value.Nil, errs[0]
		}
		return value.Nil, errs[1]
	}
	e.trace("join", "op", node.Operator, "left", results[0].String(), "right", results[1].String())

	if e.writes != nil {
		if conflicts := workers[0].writes.Conflicts(workers[1].writes); len(conflicts) > 0 {
			return value.Nil, fault.New(fault.DataRace, "unsynchronized writes from both sides of a concurrent expression: %s",
				memory.DescribeConflicts(conflicts))
		}
		e.writes.Merge(workers[0].writes)
		e.writes.Merge(workers[1].writes)
	}

	return e.applyInfix(node.Operator, results[0], results[1])
}

// spawn creates a worker evaluator bound to the calling goroutine. Call
// depth carries over so nested forks stay bounded by maxDepth.
func (e *Evaluator) spawn(stack *Stack) *Evaluator {
	w := newEvaluator(e.rt, stack)
	w.depth = e.depth
	w.calls = append([]fault.StackFrame(nil), e.calls...)
	return w
}

// evalWorker evaluates one operand and turns a panic into a Host fault.
func (e *Evaluator) evalWorker(operand ast.Expression) (v value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = value.Nil, fault.New(fault.Host, "worker panic: %s", fmt.Sprint(r))
		}
	}()
	return e.Eval(operand)
}
