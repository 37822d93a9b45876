// Package quandary embeds the Quandary interpreter in Go programs: load a
// program once, then call its functions with Go values.
package quandary

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/quandary/internal/analyzer"
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/evaluator"
	"github.com/funvibe/quandary/internal/lexer"
	"github.com/funvibe/quandary/internal/memory"
	"github.com/funvibe/quandary/internal/parser"
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/value"
)

// Interpreter holds one loaded program and its heap. Cells allocated by
// one call stay alive for later calls. Calls must not overlap.
type Interpreter struct {
	Settings Settings
	Out      io.Writer

	runtime    *evaluator.Runtime
	heap       *memory.Heap
	marshaller *Marshaller
}

// New creates an interpreter with default settings printing to stdout.
func New() *Interpreter {
	return &Interpreter{
		Settings: config.Default(),
		Out:      os.Stdout,
	}
}

// Load parses and checks a program. Unlike the command line, a loaded
// program does not need a main function.
func (in *Interpreter) Load(code string) error {
	return in.load(code, "<embed>")
}

// LoadFile parses and checks a program file.
func (in *Interpreter) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return in.load(string(content), path)
}

func (in *Interpreter) load(code, path string) error {
	ctx := pipeline.NewPipelineContext(code)
	ctx.FilePath = path

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	)
	ctx = p.Run(ctx)

	var errs []string
	for _, e := range ctx.Errors {
		if e.Code == diagnostics.ErrA002 {
			continue
		}
		errs = append(errs, e.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during compilation:\n%s", strings.Join(errs, "\n"))
	}

	manager, err := memory.ParseManager(in.Settings.GC)
	if err != nil {
		return err
	}
	heap, err := memory.NewHeap(memory.Options{
		Manager:     manager,
		HeapSize:    in.Settings.HeapSize,
		LockTimeout: in.Settings.LockTimeout,
	})
	if err != nil {
		return err
	}
	rt, err := evaluator.NewRuntime(ctx.AstRoot.(*ast.Program), heap, evaluator.Options{
		Settings: in.Settings,
		Out:      in.Out,
	})
	if err != nil {
		return err
	}

	in.runtime = rt
	in.heap = heap
	in.marshaller = NewMarshaller(heap)
	return nil
}

// Call calls a function or built-in of the loaded program by name.
func (in *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	return in.CallContext(context.Background(), funcName, args...)
}

// CallContext is Call with a context that cancels the evaluation.
func (in *Interpreter) CallContext(ctx context.Context, funcName string, args ...interface{}) (interface{}, error) {
	if in.runtime == nil {
		return nil, fmt.Errorf("no program loaded")
	}

	qArgs := make([]value.Value, len(args))
	for i, arg := range args {
		v, err := in.marshaller.ToValue(arg)
		if err != nil {
			return nil, err
		}
		qArgs[i] = v
	}

	in.runtime.Context = ctx
	result, err := evaluator.New(in.runtime).Call(funcName, qArgs)
	if err != nil {
		return nil, err
	}
	return in.marshaller.FromValue(result)
}

// Run calls main with arg and returns the textual form of its result, the
// way the command line prints it.
func (in *Interpreter) Run(arg int64) (string, error) {
	if in.runtime == nil {
		return "", fmt.Errorf("no program loaded")
	}
	result, err := in.runtime.Run(arg)
	if err != nil {
		return "", err
	}
	return in.heap.Format(result), nil
}

// HeapStats reports the cells allocated so far.
func (in *Interpreter) HeapStats() HeapStats {
	if in.heap == nil {
		return HeapStats{}
	}
	return in.heap.Stats()
}
