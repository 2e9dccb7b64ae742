package blackboard

import "fmt"

// ConfigError reports an invalid board or field declaration. It is returned
// synchronously from construction and never at runtime: a board that was
// assembled without errors cannot hit one later.
type ConfigError struct {
	Board  string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("blackboard: config error for field %q on board %q: %s", e.Field, e.Board, e.Reason)
	}
	return fmt.Sprintf("blackboard: config error on board %q: %s", e.Board, e.Reason)
}

// UsageError reports an invalid call against a correctly configured board,
// such as setting a derived field through the dynamic API or waiting with a
// nil predicate.
type UsageError struct {
	Op     string
	Field  string
	Reason string
}

func (e *UsageError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("blackboard: %s on field %q: %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("blackboard: %s: %s", e.Op, e.Reason)
}

// ComputeError reports a combine function failure during recomputation. The
// failing field and everything downstream of it keep their previous cached
// values; the Set call that triggered the pass receives this error.
type ComputeError struct {
	Field string
	Cause error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("blackboard: computing field %q: %v", e.Field, e.Cause)
}

func (e *ComputeError) Unwrap() error {
	return e.Cause
}

func newConfigError(board, field, reason string) *ConfigError {
	return &ConfigError{Board: board, Field: field, Reason: reason}
}

func newUsageError(op, field, reason string) *UsageError {
	return &UsageError{Op: op, Field: field, Reason: reason}
}

func typeMismatch(want, got any) string {
	return fmt.Sprintf("value of type %T does not match field type %T", got, want)
}
