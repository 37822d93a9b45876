package parser

import (
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	program := parser.ParseProgram()
	program.File = ctx.FilePath
	ctx.AstRoot = program

	// Ensure all errors have file path set
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
