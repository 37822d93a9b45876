package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/token"
)

// TokenStream is the buffered token source produced by the lexer stage.
type TokenStream interface {
	Next() token.Token
	Peek(n int) []token.Token
}

// RunStats describes a finished execution.
type RunStats struct {
	CellsAllocated int
	BytesInUse     int64
}

type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream TokenStream
	AstRoot     ast.Node
	Errors      []*diagnostics.DiagnosticError

	// Execution inputs
	Context  context.Context
	Argument int64
	Settings config.Settings
	Out      io.Writer
	Logger   *slog.Logger

	// Execution outputs
	Result       string // textual form of main's return value
	RuntimeError error  // fault raised while executing
	Stats        RunStats
}

// NewPipelineContext creates a context with default settings writing to stdout.
func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{
		SourceCode: sourceCode,
		Context:    context.Background(),
		Settings:   config.Default(),
		Out:        os.Stdout,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// HasParseErrors reports whether any collected diagnostic is a parse error.
func (ctx *PipelineContext) HasParseErrors() bool {
	for _, err := range ctx.Errors {
		if err.IsParse() {
			return true
		}
	}
	return false
}
