package backend

import (
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/evaluator"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/memory"
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/value"
)

// TreeWalkBackend evaluates the AST directly.
type TreeWalkBackend struct{}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}

// Run builds the heap from ctx.Settings, calls main with ctx.Argument and
// records the rendered result and heap statistics in ctx.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (value.Value, error) {
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok || program == nil {
		return value.Nil, fault.New(fault.Host, "no program to execute")
	}

	manager, err := memory.ParseManager(ctx.Settings.GC)
	if err != nil {
		return value.Nil, fault.New(fault.Host, "%s", err.Error())
	}
	heap, err := memory.NewHeap(memory.Options{
		Manager:     manager,
		HeapSize:    ctx.Settings.HeapSize,
		LockTimeout: ctx.Settings.LockTimeout,
	})
	if err != nil {
		return value.Nil, err
	}

	rt, err := evaluator.NewRuntime(program, heap, evaluator.Options{
		Context:  ctx.Context,
		Settings: ctx.Settings,
		Out:      ctx.Out,
		Logger:   ctx.Logger,
	})
	if err != nil {
		return value.Nil, err
	}

	result, err := rt.Run(ctx.Argument)

	stats := heap.Stats()
	ctx.Stats = pipeline.RunStats{CellsAllocated: stats.Cells, BytesInUse: stats.BytesInUse}
	if err != nil {
		return value.Nil, err
	}
	ctx.Result = heap.Format(result)
	return result, nil
}
