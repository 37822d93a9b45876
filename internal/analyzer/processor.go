package analyzer

import (
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/symbols"
)

type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.HasParseErrors() {
		return ctx
	}

	analyzer := New(symbols.NewSymbolTable())
	analyzer.File = ctx.FilePath
	if errors := analyzer.Analyze(ctx.AstRoot); len(errors) > 0 {
		ctx.Errors = append(ctx.Errors, errors...)
	}
	return ctx
}
