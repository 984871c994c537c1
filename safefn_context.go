package errdispatch

import "context"

type (
	// CtxFn is a fallible operation that completes asynchronously relative
	// to its caller's context. It may suspend only at its own internal
	// suspension points; the wrapper introduces none of its own.
	CtxFn[T any] func(ctx context.Context, args ...any) (T, error)

	// SafeCtxFn wraps a context-aware operation. Once the operation
	// settles, dispatch resolution and handler invocation run synchronously
	// relative to that settlement; handlers stay ordinary synchronous
	// functions.
	SafeCtxFn[T any] struct {
		engine    *Engine[T]
		fn        CtxFn[T]
		static    Context
		extension Context
	}
)

// SafeFnContext wraps fn with this engine. static is the context bound at
// wrap time and may be nil.
func (e *Engine[T]) SafeFnContext(fn CtxFn[T], static Context) *SafeCtxFn[T] {
	return &SafeCtxFn[T]{
		engine: e,
		fn:     fn,
		static: static.Clone(),
	}
}

// Call executes the wrapped operation with ctx. Request-scoped values
// attached with ContextWithValues are folded into the additional context
// layer passed to handlers. An unresolved failure is returned as
// *UnresolvedError.
func (f *SafeCtxFn[T]) Call(ctx context.Context, args ...any) (T, error) {
	v, failure := f.invoke(ctx, args)
	if failure == nil {
		return v, nil
	}
	return f.engine.Dispatch(failure, f.callContext(ctx, failure, args))
}

// MustCall is like Call, but an unresolved failure is fatal: a diagnostic
// is written to the standard error stream and the process terminates with
// a non-zero status.
func (f *SafeCtxFn[T]) MustCall(ctx context.Context, args ...any) T {
	v, failure := f.invoke(ctx, args)
	if failure == nil {
		return v
	}
	return f.engine.MustDispatch(failure, f.callContext(ctx, failure, args))
}

// AddContext returns a new wrapper identical to this one except that its
// additional context layer also merges extra. The extension always applies
// on top of the original static context; repeated calls do not accumulate.
func (f *SafeCtxFn[T]) AddContext(extra Context) *SafeCtxFn[T] {
	return &SafeCtxFn[T]{
		engine:    f.engine,
		fn:        f.fn,
		static:    f.static,
		extension: extra.Clone(),
	}
}

func (f *SafeCtxFn[T]) invoke(ctx context.Context, args []any) (v T, failure error) {
	defer func() {
		if r := recover(); r != nil {
			failure = newPanicError(r, boundarySkip)
		}
	}()
	return f.fn(ctx, args...)
}

func (f *SafeCtxFn[T]) callContext(ctx context.Context, failure error, args []any) Context {
	return buildCallContext(f.static, valuesFromContext(ctx), f.extension, args, traceFrom(failure, 1))
}
