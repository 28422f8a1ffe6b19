package kanren

import (
	"errors"
	"fmt"
)

// Sentinel errors of the engine. Mode errors (a predicate that cannot
// decide which way to run given the current bindings) are never surfaced
// as errors — they are logical failures, recovered silently by
// backtracking.
var (
	// ErrContractViolation is raised when a host-supplied Stream breaks
	// the pull/close contract in a way the engine can detect: with debug
	// checking enabled (see WithDebugChecks in driver.go), a Close or
	// exhaustion that leaves the trail longer than it was at Stream
	// creation. It is not returned: the driver panics with an error
	// wrapping it, and Cursor.Next does not recover that panic.
	ErrContractViolation = errors.New("kanren: stream contract violation")
)

// QueryError is a fatal, query-aborting error: a built-in predicate was
// given an argument of the wrong shape (e.g. a comparison over a
// non-number). Unlike a logical failure, a QueryError unwinds the whole
// query: Driver recovers it, closes the stream to restore the store, and
// returns it to the caller.
type QueryError struct {
	Op  string
	Msg string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("kanren: %s: %s", e.Op, e.Msg)
}

// raiseTypeError panics with a *QueryError. It is called while a Goal
// builds its Stream; under a Driver every Goal is invoked from within some
// Stream's Next, so the panic unwinds through whatever combinators are on
// the call stack and is recovered by Cursor.Next, which then closes the
// stream (restoring bindings) before returning the error.
func raiseTypeError(op, format string, args ...any) {
	panic(&QueryError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
