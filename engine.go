package errdispatch

import "slices"

type (
	// Handler produces a substitute value for a matched failure.
	Handler[T any] func(failure error, ctx Context) T

	// Entry pairs one Matcher with one Handler. Entry order in an engine is
	// significant and equals registration order.
	Entry[T any] struct {
		Matcher Matcher
		Handler Handler[T]
	}

	// Resolution is the outcome of resolving a failure against an engine.
	Resolution[T any] struct {
		// Handler is the resolved handler.
		Handler Handler[T]
		// Fallback reports whether the handler is the engine's fallback
		// rather than a specifically matched entry.
		Fallback bool
	}

	// Engine holds an ordered registry of matcher/handler entries plus an
	// optional fallback handler, and resolves failures against them.
	//
	// Engines are immutable: Catch, CatchMany and CatchAll return a new
	// engine with the registration applied, leaving the receiver untouched.
	// A fully built engine is therefore safe to share across goroutines.
	Engine[T any] struct {
		entries  []Entry[T]
		fallback Handler[T]
	}
)

// New creates a new engine pre-seeded with the given entries, in order.
func New[T any](entries ...Entry[T]) *Engine[T] {
	return &Engine[T]{entries: slices.Clone(entries)}
}

// Catch returns a new engine with the matcher/handler pair appended to the
// registry.
func (e *Engine[T]) Catch(m Matcher, h Handler[T]) *Engine[T] {
	return e.CatchMany(Entry[T]{Matcher: m, Handler: h})
}

// CatchMany returns a new engine with the entries appended to the registry,
// in order.
func (e *Engine[T]) CatchMany(entries ...Entry[T]) *Engine[T] {
	next := e.clone()
	next.entries = append(next.entries, entries...)
	return next
}

// CatchAll returns a new engine whose fallback handler is h. The fallback
// is invoked when no registered matcher classifies a failure.
func (e *Engine[T]) CatchAll(h Handler[T]) *Engine[T] {
	next := e.clone()
	next.fallback = h
	return next
}

// Entries returns the registered entries in registration order.
func (e *Engine[T]) Entries() []Entry[T] {
	return slices.Clone(e.entries)
}

// Resolve walks the registry in registration order and returns the first
// entry whose matcher classifies the failure. If none matches and a
// fallback is registered, the fallback is returned. Otherwise ok is false
// and the failure is unresolved.
func (e *Engine[T]) Resolve(failure error) (res Resolution[T], ok bool) {
	for _, entry := range e.entries {
		if entry.Matcher.Matches(failure) {
			return Resolution[T]{Handler: entry.Handler}, true // First entry wins
		}
	}
	if e.fallback != nil {
		return Resolution[T]{Handler: e.fallback, Fallback: true}, true
	}
	return Resolution[T]{}, false
}

// Dispatch resolves the failure and invokes the chosen handler with the
// failure and context, returning the handler's result untouched.
//
// If the failure is unresolved, the zero value and an *UnresolvedError
// wrapping the failure are returned; the caller decides whether to
// escalate. A failure raised (panicked) inside a handler is not caught by
// this layer and propagates to the caller.
func (e *Engine[T]) Dispatch(failure error, ctx Context) (T, error) {
	res, ok := e.Resolve(failure)
	if !ok {
		var zero T
		return zero, &UnresolvedError{Failure: failure}
	}
	return res.Handler(failure, ctx), nil
}

// MustDispatch is like Dispatch, but an unresolved failure is fatal: a
// diagnostic is written to the standard error stream and the process
// terminates with a non-zero status.
func (e *Engine[T]) MustDispatch(failure error, ctx Context) T {
	v, err := e.Dispatch(failure, ctx)
	if err != nil {
		fatalUnresolved(failure, ctx)
	}
	return v
}

func (e *Engine[T]) clone() *Engine[T] {
	return &Engine[T]{
		entries:  slices.Clone(e.entries),
		fallback: e.fallback,
	}
}
