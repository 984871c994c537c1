package errdispatch

type (
	// Fn is a fallible synchronous operation. It may also signal failure by
	// panicking; the wrapper captures panics as PanicError failures.
	Fn[T any] func(args ...any) (T, error)

	// SafeFn wraps a fallible operation so that every failure it produces
	// is routed through the owning engine. On success, calling the wrapper
	// is indistinguishable from calling the raw operation.
	SafeFn[T any] struct {
		engine    *Engine[T]
		fn        Fn[T]
		static    Context
		extension Context
	}
)

// SafeFn wraps fn with this engine. static is the context bound at wrap
// time; it lives as long as the wrapper and may be nil.
func (e *Engine[T]) SafeFn(fn Fn[T], static Context) *SafeFn[T] {
	return &SafeFn[T]{
		engine: e,
		fn:     fn,
		static: static.Clone(),
	}
}

// Call executes the wrapped operation. On success the produced value is
// returned unchanged. On failure the engine dispatches the failure with a
// freshly built context; the handler's result becomes the return value.
// An unresolved failure is returned as *UnresolvedError.
func (f *SafeFn[T]) Call(args ...any) (T, error) {
	v, failure := f.invoke(args)
	if failure == nil {
		return v, nil
	}
	return f.engine.Dispatch(failure, f.callContext(failure, args))
}

// MustCall is like Call, but an unresolved failure is fatal: a diagnostic
// is written to the standard error stream and the process terminates with
// a non-zero status.
func (f *SafeFn[T]) MustCall(args ...any) T {
	v, failure := f.invoke(args)
	if failure == nil {
		return v
	}
	return f.engine.MustDispatch(failure, f.callContext(failure, args))
}

// AddContext returns a new wrapper identical to this one except that its
// additional context layer also merges extra.
//
// The extension always applies on top of the original static context:
// repeated AddContext calls do not accumulate, each produces an
// independent one-layer extension of the same base wrapper.
func (f *SafeFn[T]) AddContext(extra Context) *SafeFn[T] {
	return &SafeFn[T]{
		engine:    f.engine,
		fn:        f.fn,
		static:    f.static,
		extension: extra.Clone(),
	}
}

func (f *SafeFn[T]) invoke(args []any) (v T, failure error) {
	defer func() {
		if r := recover(); r != nil {
			failure = newPanicError(r, boundarySkip)
		}
	}()
	return f.fn(args...)
}

func (f *SafeFn[T]) callContext(failure error, args []any) Context {
	return buildCallContext(f.static, nil, f.extension, args, traceFrom(failure, 1))
}
