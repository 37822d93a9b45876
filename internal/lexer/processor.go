package lexer

import (
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	stream := NewTokenStream(New(ctx.SourceCode))
	ctx.TokenStream = stream

	for _, tok := range stream.Tokens() {
		if tok.Type != token.ILLEGAL {
			continue
		}
		var err *diagnostics.DiagnosticError
		if isDigit([]rune(tok.Lexeme)[0]) {
			err = diagnostics.NewError(diagnostics.ErrP003, tok, "integer literal %s out of range", tok.Lexeme)
		} else {
			err = diagnostics.NewError(diagnostics.ErrP002, tok, "illegal character %q", tok.Lexeme)
		}
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
