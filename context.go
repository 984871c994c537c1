package errdispatch

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// Context is a layered mapping of diagnostic and caller-supplied data
// passed to handlers. It is assembled fresh for every dispatched call and
// never aliased between calls.
type Context map[string]any

// Reserved keys of the context assembled for a dispatched call.
const (
	// ArgsKey holds the positional arguments of the failing call.
	ArgsKey = "args"
	// AdditionalContextKey holds the merged additional context layer.
	AdditionalContextKey = "additional_context"
	// DiagnosticTraceKey holds the diagnostic trace as []Frame.
	DiagnosticTraceKey = "diagnostic_trace"
)

// Clone returns a shallow copy of the context.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	return maps.Clone(c)
}

// Merge returns a new context with the given layers applied on top of this
// one, in order. Later layers win on key collisions. The receiver is never
// mutated.
func (c Context) Merge(layers ...Context) Context {
	merged := c.Clone()
	for _, l := range layers {
		maps.Copy(merged, l)
	}
	return merged
}

// LogValue implements slog.LogValuer, grouping the context's entries
// sorted by key.
func (c Context) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(c))
	for _, k := range slices.Sorted(maps.Keys(c)) {
		attrs = append(attrs, slog.Any(k, c[k]))
	}
	return slog.GroupValue(attrs...)
}

var _ slog.LogValuer = (Context)(nil)

type contextKey struct{}

var valuesFromContextKey = contextKey{}

// ContextWithValues adds request-scoped values to a context.Context.
// The context-aware wrappers fold these values into the additional context
// layer passed to handlers. Repeated calls accumulate; later values win on
// key collisions.
func ContextWithValues(ctx context.Context, values Context) context.Context {
	if len(values) == 0 {
		return ctx
	}
	merged := valuesFromContext(ctx).Merge(values)
	return context.WithValue(ctx, valuesFromContextKey, merged)
}

func valuesFromContext(ctx context.Context) Context {
	if ctx == nil {
		return nil
	}
	raw := ctx.Value(valuesFromContextKey)
	if raw == nil {
		return nil
	}
	values, ok := raw.(Context)
	if !ok {
		return nil
	}
	return values
}

// buildCallContext assembles the per-call context passed to handlers.
//
// The top level is the static context plus the captured arguments. The
// additional context layer merges, in order: the static context's own
// additional context, request-scoped context values, the AddContext
// extension, and the diagnostic trace.
func buildCallContext(static, ctxValues, extension Context, args []any, trace []Frame) Context {
	merged := static.Clone()

	additional := Context{}
	if base, ok := merged[AdditionalContextKey].(Context); ok {
		additional = base.Clone()
	}
	additional = additional.Merge(ctxValues, extension)
	additional[DiagnosticTraceKey] = trace

	merged[ArgsKey] = slices.Clone(args)
	merged[AdditionalContextKey] = additional
	return merged
}
