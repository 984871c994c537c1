package errdispatch

import (
	"context"
	"errors"
)

// Result is the two-variant success/failure abstraction consumed by the
// unwrap adapters. It is an external collaborator: any type exposing the
// discriminant and the two accessors can be unwrapped.
type Result[T any] interface {
	// OK reports whether the result denotes success.
	OK() bool
	// Value returns the contained value of a success result.
	Value() T
	// Err returns the contained failure of a failure result.
	Err() error
}

// ErrResultClosed is dispatched as the failure when a result channel is
// closed before settling.
var ErrResultClosed = errors.New("errdispatch: result channel closed before settling")

// Unwrap returns the contained value of a success result. A failure result
// is dispatched through the engine with a context holding only the
// additional context layer and its diagnostic trace; there is no wrap-time
// binding and no captured arguments. An unresolved failure is returned as
// *UnresolvedError.
func (e *Engine[T]) Unwrap(res Result[T]) (T, error) {
	if res.OK() {
		return res.Value(), nil
	}
	return e.dispatchResult(res.Err())
}

// UnwrapChan awaits an asynchronous result and delegates to Unwrap.
// Cancellation of ctx while awaiting surfaces as an ordinary failure
// (ctx.Err()) routed through the engine, as does a channel closed before
// settling (ErrResultClosed).
func (e *Engine[T]) UnwrapChan(ctx context.Context, ch <-chan Result[T]) (T, error) {
	select {
	case res, ok := <-ch:
		if !ok {
			return e.dispatchResult(ErrResultClosed)
		}
		return e.Unwrap(res)
	case <-ctx.Done():
		return e.dispatchResult(ctx.Err())
	}
}

func (e *Engine[T]) dispatchResult(failure error) (T, error) {
	ctx := Context{
		AdditionalContextKey: Context{
			DiagnosticTraceKey: traceFrom(failure, 1),
		},
	}
	return e.Dispatch(failure, ctx)
}
