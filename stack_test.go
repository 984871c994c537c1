package errdispatch

import (
	"strings"
	"testing"
)

type tracedError struct {
	pcs []uintptr
}

func (e *tracedError) Error() string          { return "traced" }
func (e *tracedError) StackTrace() []uintptr { return e.pcs }

func TestTraceFrom(t *testing.T) {
	t.Run("prefers the failure's own stack trace", func(t *testing.T) {
		own := newStack(2)
		frames := traceFrom(&tracedError{pcs: own}, 0)

		if len(frames) != len(own.Frames()) {
			t.Fatalf("want %d frames, got %d", len(own.Frames()), len(frames))
		}
		if frames[0] != own.Frames()[0] {
			t.Errorf("want the failure's own frames, got %v", frames[0])
		}
	})

	t.Run("captures at the boundary when the failure has none", func(t *testing.T) {
		frames := traceFrom(&tracedError{}, 0)

		if len(frames) == 0 {
			t.Fatal("want a boundary trace")
		}

		found := false
		for _, f := range frames {
			if strings.Contains(f.Func, "TestTraceFrom") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("want the boundary trace to include the caller, got %v", frames)
		}
	})
}

func TestStack_Frames(t *testing.T) {
	t.Run("empty stack has no frames", func(t *testing.T) {
		if frames := (stack)(nil).Frames(); frames != nil {
			t.Errorf("want nil frames, got %v", frames)
		}
	})

	t.Run("frames carry function and file information", func(t *testing.T) {
		frames := newStack(2).Frames()

		if len(frames) == 0 {
			t.Fatal("want captured frames")
		}
		top := frames[0]
		if !strings.Contains(top.Func, "TestStack_Frames") {
			t.Errorf("want top frame to be the caller, got %q", top.Func)
		}
		if top.File == "" || top.Line == 0 {
			t.Errorf("want file and line to be populated, got %+v", top)
		}
	})
}
