package errdispatch

import (
	"errors"
	"runtime"
)

type (
	// Frame represents a single frame in a diagnostic trace.
	Frame struct {
		Func string `json:"func"`
		File string `json:"file"`
		Line int    `json:"line"`
	}

	// stackTracer is implemented by errors that carry their own stack trace,
	// such as errors created by github.com/shiwano/errdef or the Sentry SDK.
	stackTracer interface {
		StackTrace() []uintptr
	}

	stack []uintptr
)

const (
	maxStackDepth = 32

	// boundarySkip is the number of skip frames when capturing at the
	// wrapper boundary: runtime.Callers, newStack, and traceFrom.
	boundarySkip = 3
)

func newStack(skip int) stack {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

func (s stack) Frames() []Frame {
	if len(s) == 0 {
		return nil
	}
	fs := runtime.CallersFrames(s)
	frames := make([]Frame, 0, maxStackDepth)
	for {
		f, more := fs.Next()
		frames = append(frames, Frame{
			Func: f.Function,
			File: f.File,
			Line: f.Line,
		})
		if !more {
			break
		}
	}
	return frames
}

// traceFrom extracts the diagnostic trace from a failure. Failures that
// carry their own stack trace win; otherwise a trace is captured at the
// wrapper boundary so handlers always receive one.
func traceFrom(failure error, extraSkip int) []Frame {
	var st stackTracer
	if errors.As(failure, &st) {
		if pcs := st.StackTrace(); len(pcs) > 0 {
			return stack(pcs).Frames()
		}
	}
	return newStack(boundarySkip + extraSkip).Frames()
}
