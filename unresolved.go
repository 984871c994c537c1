package errdispatch

import (
	"fmt"
	"io"
	"os"
)

// UnresolvedError reports that a failure matched no registered entry and
// the engine has no fallback handler.
type UnresolvedError struct {
	// Failure is the original unresolved failure.
	Failure error
}

var _ error = (*UnresolvedError)(nil)

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("errdispatch: unresolved failure: %v", e.Failure)
}

func (e *UnresolvedError) Unwrap() error {
	return e.Failure
}

// Stubbed in tests.
var (
	stderr io.Writer = os.Stderr
	osExit           = os.Exit
)

func fatalUnresolved(failure error, ctx Context) {
	_, _ = fmt.Fprintf(stderr, "errdispatch: unresolved failure: %+v\n", failure)

	if trace := traceFromContext(ctx); len(trace) > 0 {
		_, _ = fmt.Fprintln(stderr, "diagnostic trace:")
		for _, f := range trace {
			_, _ = fmt.Fprintf(stderr, "\t%s\n\t\t%s:%d\n", f.Func, f.File, f.Line)
		}
	}
	osExit(1)
}

func traceFromContext(ctx Context) []Frame {
	additional, ok := ctx[AdditionalContextKey].(Context)
	if !ok {
		return nil
	}
	trace, ok := additional[DiagnosticTraceKey].([]Frame)
	if !ok {
		return nil
	}
	return trace
}
