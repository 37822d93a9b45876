// Package trace builds the structured logger used for evaluator tracing.
package trace

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

const RunIDKey = "run"

// NewRunID returns a fresh identifier shared by a run's log records and
// its journal entry.
func NewRunID() string {
	return uuid.NewString()
}

// NewLogger returns a debug-level text logger on w tagged with runID, or a
// discarding logger when enabled is false.
func NewLogger(w io.Writer, runID string, enabled bool) *slog.Logger {
	if !enabled || w == nil {
		return slog.New(slog.DiscardHandler)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With(RunIDKey, runID)
}
