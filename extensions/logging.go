// Package extensions contains optional Extension implementations for
// observing a board's write path: structured logging and dependency-graph
// debugging. The core package stays log-free; everything here hooks in
// through blackboard.WithExtension.
package extensions

import (
	"log/slog"
	"time"

	blackboard "github.com/blackboard-go/blackboard"
)

// LoggingExtension logs every set pass with its outcome and duration.
type LoggingExtension struct {
	blackboard.BaseExtension
	logger *slog.Logger
}

// NewLoggingExtension creates a logging extension writing through the given
// slog handler (use NewHumanHandler for terminal output, slog.NewJSONHandler
// for machine-readable logs, NewSilentHandler for tests).
func NewLoggingExtension(handler slog.Handler) *LoggingExtension {
	return &LoggingExtension{
		BaseExtension: blackboard.NewBaseExtension("logging"),
		logger:        slog.New(handler),
	}
}

func (e *LoggingExtension) Wrap(next func() error, op *blackboard.Operation) error {
	start := time.Now()
	err := next()
	duration := time.Since(start)

	attrs := []any{
		"board", op.Board.Name(),
		"op", string(op.Kind),
		"duration", duration,
	}
	if op.Field != nil {
		attrs = append(attrs, "field", op.Field.Name())
	}

	if err != nil {
		attrs = append(attrs, "error", err.Error())
		e.logger.Error("set pass failed", attrs...)
	} else {
		e.logger.Info("set pass completed", attrs...)
	}
	return err
}
