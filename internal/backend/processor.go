package backend

import (
	"github.com/funvibe/quandary/internal/pipeline"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	if _, err := p.Backend.Run(ctx); err != nil {
		ctx.RuntimeError = err
	}
	return ctx
}
