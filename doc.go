/*
Package errdispatch is a Go library for declarative failure classification
and dispatch.

errdispatch wraps a fallible operation so that any failure it produces is
intercepted, classified against an ordered set of matchers, and resolved to
a substitute value. Instead of branching on errors at every call site, you
register "if the failure looks like X, do Y" rules once and reuse them
everywhere.

# Basic Usage

First, build an engine with the matchers and handlers used in your
application. Registration is chainable and every call returns a new engine,
so a fully built engine is a frozen snapshot that is safe to share.

	package myapp

	import "github.com/shiwano/errdispatch"

	var engine = errdispatch.New[string]().
		Catch(errdispatch.Substring("timeout"), func(err error, ctx errdispatch.Context) string {
			return "T"
		}).
		CatchAll(func(err error, ctx errdispatch.Context) string {
			return "unknown"
		})

Next, obtain a wrapped function from the engine. On success the wrapped call
is indistinguishable from the raw operation; on failure the engine resolves
a handler and its return value becomes the call's return value.

	safeFetch := engine.SafeFn(fetch, errdispatch.Context{"operation": "fetch"})

	value, err := safeFetch.Call("user-123")
	if err != nil {
		// No matcher and no fallback applied; escalate as you see fit.
		var unresolved *errdispatch.UnresolvedError
		if errors.As(err, &unresolved) {
			log.Fatal(unresolved)
		}
	}

# Matchers

Four matcher kinds classify failures. Each is produced by a dedicated
constructor, so a failure-category check and an arbitrary predicate are
never confused with each other.

	errdispatch.Category(io.EOF)                 // errors.Is over the chain
	errdispatch.CategoryOf[*net.OpError]()       // errors.As over the chain
	errdispatch.Substring("connection refused")  // literal, case-sensitive
	errdispatch.Shape(map[string]any{"status": 404})
	errdispatch.Predicate(func(err error) bool { return isFlaky(err) })

Shape matchers classify structured failures. A failure is structured when it
carries fields attached with WithFields, or when it is a struct-backed error
whose exported fields are readable.

	err := errdispatch.WithFields(baseErr, map[string]any{"status": 404})

# Layered Context

Handlers receive a Context assembled fresh per call from up to three layers:
the static context bound at wrap time, an optional extension bound with
AddContext, and per-invocation data (the call's arguments and a diagnostic
trace extracted from the failure).

	reporting := safeFetch.AddContext(errdispatch.Context{"user_id": "u1"})

Each AddContext call starts from the original static context, so independent
extensions never observe each other.

# Context Integration

You can use context.Context to attach request-scoped values that the
context-aware wrapper folds into the additional context layer.

	ctx := errdispatch.ContextWithValues(r.Context(), errdispatch.Context{
		"trace_id": r.Header.Get("X-Request-ID"),
	})
	value, err := safeQuery.Call(ctx, "user-123")
*/
package errdispatch
