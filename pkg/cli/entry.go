// Package cli is the quandary command: argument handling, settings, the
// processing pipeline and exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/funvibe/quandary/internal/analyzer"
	"github.com/funvibe/quandary/internal/ast"
	"github.com/funvibe/quandary/internal/backend"
	"github.com/funvibe/quandary/internal/config"
	"github.com/funvibe/quandary/internal/diagnostics"
	"github.com/funvibe/quandary/internal/fault"
	"github.com/funvibe/quandary/internal/journal"
	"github.com/funvibe/quandary/internal/lexer"
	"github.com/funvibe/quandary/internal/parser"
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/prettyprinter"
	"github.com/funvibe/quandary/internal/trace"
)

// Main runs the interpreter with args (program name excluded) and returns
// the process exit code. Results and faults go to stdout; trace records and
// journal problems go to stderr.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args)
	if err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintln(stdout, err)
		}
		fmt.Fprint(stdout, usage)
		return fault.ExitSuccess
	}

	settings, err := opts.Settings()
	if err != nil {
		fmt.Fprintln(stdout, err)
		fmt.Fprint(stdout, usage)
		return fault.ExitSuccess
	}

	source, err := os.ReadFile(opts.ProgramFile)
	if err != nil {
		fmt.Fprintln(stdout, err)
		fmt.Fprint(stdout, usage)
		return fault.ExitSuccess
	}

	if opts.Format {
		return formatProgram(string(source), opts.ProgramFile, stdout)
	}

	r := &run{
		id:       trace.NewRunID(),
		opts:     opts,
		settings: settings,
		stdout:   stdout,
		stderr:   stderr,
		started:  time.Now(),
	}
	return r.execute(ctx, string(source))
}

type run struct {
	id       string
	opts     *Options
	settings config.Settings
	stdout   io.Writer
	stderr   io.Writer
	started  time.Time

	// last line written for the run, recorded in the journal
	summary string
}

func (r *run) execute(ctx context.Context, source string) int {
	logger := trace.NewLogger(r.stderr, r.id, r.settings.Trace)

	initialContext := pipeline.NewPipelineContext(source)
	initialContext.FilePath = r.opts.ProgramFile
	initialContext.Context = ctx
	initialContext.Argument = r.opts.Argument
	initialContext.Settings = r.settings
	initialContext.Out = r.stdout
	initialContext.Logger = logger

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		backend.NewExecutionProcessor(backend.NewTreeWalk()),
	)
	finalContext := processingPipeline.Run(initialContext)

	code := r.report(finalContext)
	logger.Debug("finished", "exit", code, "cells", finalContext.Stats.CellsAllocated,
		"elapsed", time.Since(r.started))
	r.record(ctx, finalContext, code)
	return code
}

// report prints diagnostics, the fault or the result line and returns the
// exit code.
func (r *run) report(ctx *pipeline.PipelineContext) int {
	if len(ctx.Errors) > 0 {
		return r.reportDiagnostics(ctx.Errors)
	}
	if ctx.RuntimeError != nil {
		r.summary = ctx.RuntimeError.Error()
		return fault.Report(r.stdout, r.stderr, ctx.RuntimeError)
	}
	r.summary = "Interpreter returned " + ctx.Result
	fmt.Fprintln(r.stdout, r.summary)
	return fault.ExitSuccess
}

func (r *run) reportDiagnostics(errs []*diagnostics.DiagnosticError) int {
	kind := fault.StaticCheck
	for _, err := range errs {
		if err.IsParse() {
			kind = fault.Parse
			break
		}
	}
	for _, err := range errs {
		if kind == fault.Parse && !err.IsParse() {
			continue
		}
		r.summary = fmt.Sprintf("%s: %s", kind, err.Error())
		fmt.Fprintln(r.stdout, r.summary)
	}
	return fault.ExitCode(kind)
}

func (r *run) record(ctx context.Context, final *pipeline.PipelineContext, code int) {
	if r.settings.Journal == "" {
		return
	}
	j, err := journal.Open(ctx, r.settings.Journal)
	if err != nil {
		fmt.Fprintln(r.stderr, err)
		return
	}
	defer j.Close()

	err = j.Record(ctx, journal.Entry{
		RunID:     r.id,
		Program:   r.opts.ProgramFile,
		Argument:  r.opts.Argument,
		Result:    r.summary,
		ExitCode:  code,
		Cells:     final.Stats.CellsAllocated,
		Duration:  time.Since(r.started),
		StartedAt: r.started,
	})
	if err != nil {
		fmt.Fprintln(r.stderr, err)
	}
}

// formatProgram prints the canonical layout of a program that parses.
func formatProgram(source, path string, stdout io.Writer) int {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if len(ctx.Errors) > 0 {
		for _, err := range ctx.Errors {
			fmt.Fprintf(stdout, "%s: %s\n", fault.Parse, err.Error())
		}
		return fault.ExitParseError
	}
	fmt.Fprint(stdout, prettyprinter.Format(ctx.AstRoot.(*ast.Program)))
	return fault.ExitSuccess
}
