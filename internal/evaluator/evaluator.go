package evaluator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/petermattis/goid"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/memory"
	"github.com/funvibe/quandary/internal/token"
	"github.com/funvibe/quandary/internal/value"
)

// Options configures a Runtime.
type Options struct {
	Context  context.Context
	Settings config.Settings
	Out      io.Writer
	Logger   *slog.Logger
}

// Runtime is the state shared by every Quandary thread of one run.
type Runtime struct {
	Context   context.Context
	Functions *FunctionTable
	Heap      *memory.Heap
	Printer   *Printer
	Random    *Random
	Settings  config.Settings
	Logger    *slog.Logger

	tracing bool
}

func NewRuntime(program *ast.Program, heap *memory.Heap, opts Options) (*Runtime, error) {
	functions, err := NewFunctionTable(program.Functions)
	if err != nil {
		return nil, fault.New(fault.StaticCheck, "%s", err.Error())
	}

	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	rt := &Runtime{
		Context:   opts.Context,
		Functions: functions,
		Heap:      heap,
		Printer:   NewPrinter(opts.Out),
		Random:    NewRandom(opts.Settings.Seed),
		Settings:  opts.Settings,
		Logger:    opts.Logger,
	}
	rt.tracing = rt.Logger.Enabled(rt.Context, slog.LevelDebug)
	return rt, nil
}

// Run calls main with the integer argument on the calling goroutine.
func (rt *Runtime) Run(arg int64) (value.Value, error) {
	if _, ok := rt.Functions.Lookup(config.EntryFuncName); !ok {
		return value.Nil, fault.New(fault.Host, "Main function not found")
	}
	e := New(rt)
	return e.Call(config.EntryFuncName, []value.Value{value.Int(arg)})
}

// Evaluator is one Quandary thread: its own environment stack on top of the
// shared Runtime.
type Evaluator struct {
	rt     *Runtime
	stack  *Stack
	holder int64 // goroutine id, identifies the thread to cell locks
	depth  int

	// writes collects field writes when race detection is on.
	writes memory.WriteSet

	// calls is the chain of call sites being evaluated, attached to faults.
	calls []fault.StackFrame
}

// New creates an evaluator bound to the calling goroutine.
func New(rt *Runtime) *Evaluator {
	return newEvaluator(rt, NewStack())
}

func newEvaluator(rt *Runtime, stack *Stack) *Evaluator {
	e := &Evaluator{
		rt:     rt,
		stack:  stack,
		holder: goid.Get(),
	}
	if rt.Settings.DetectRaces {
		e.writes = memory.NewWriteSet()
	}
	return e
}

// Stack exposes the environment, mainly for tests.
func (e *Evaluator) Stack() *Stack {
	return e.stack
}

func (e *Evaluator) trace(msg string, args ...any) {
	if !e.rt.tracing {
		return
	}
	e.rt.Logger.Debug(msg, append(args, "thread", e.holder)...)
}

// checkCancelled turns a cancelled run context into a Host fault.
func (e *Evaluator) checkCancelled() error {
	if err := e.rt.Context.Err(); err != nil {
		return fault.New(fault.Host, "execution cancelled: %v", err)
	}
	return nil
}

// withPosition attaches the node's source position to a fault that has none.
func withPosition(err error, tok token.Token) error {
	var f *fault.Fault
	if errors.As(err, &f) && tok.Line > 0 {
		f.WithPosition(tok.Line, tok.Column)
	}
	return err
}

// Eval evaluates an expression.
func (e *Evaluator) Eval(node ast.Expression) (value.Value, error) {
	v, err := e.evalCore(node)
	if err != nil {
		return value.Nil, withPosition(err, node.GetToken())
	}
	return v, nil
}

func (e *Evaluator) evalCore(node ast.Expression) (value.Value, error) {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return value.Int(node.Value), nil
	case *ast.BooleanLiteral:
		return value.Bool(node.Value), nil
	case *ast.NilLiteral:
		return value.Nil, nil
	case *ast.Identifier:
		return e.stack.Lookup(node.Value)
	case *ast.PrefixExpression:
		right, err := e.Eval(node.Right)
		if err != nil {
			return value.Nil, err
		}
		return evalPrefix(node.Operator, right)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node)
	case *ast.CastExpression:
		return e.evalCastExpression(node)
	case *ast.CallExpression:
		return e.evalCallExpression(node)
	case *ast.ConcurrentExpression:
		return e.evalConcurrentExpression(node)
	}
	return value.Nil, fault.New(fault.Host, "unknown expression %T", node)
}
