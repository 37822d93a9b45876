// Package backend runs a checked program. The tree-walk interpreter is the
// only backend; the interface keeps the execution stage independent of it.
package backend

import (
	"github.com/funvibe/quandary/internal/pipeline"
	"github.com/funvibe/quandary/internal/value"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the value
	// main returned, already rendered into ctx.Result.
	Run(ctx *pipeline.PipelineContext) (value.Value, error)

	// Name returns the backend name for display
	Name() string
}
